package cli

// Version is the build version, stamped at release time via
// -ldflags "-X github.com/Fepozopo/tedge/pkg/cli.Version=1.2.3".
var Version = "0.0.0-dev"
