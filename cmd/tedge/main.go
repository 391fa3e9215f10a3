// Command tedge runs edge detection on an image and writes one result per
// algorithm, with an optional labeled comparison sheet.
package main

import (
	"os"

	"github.com/Fepozopo/tedge/pkg/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
