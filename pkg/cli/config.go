package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Fepozopo/tedge/pkg/edge"
)

// Config holds adapter-level settings sourced from the environment. Engine
// behavior is flag-driven; the environment carries machine preferences
// that rarely change between runs.
type Config struct {
	// MaxDimension caps decoded image width and height.
	MaxDimension int
	// FontPath names a TTF/OTF used for panel labels; empty means the
	// built-in bitmap face.
	FontPath string
	// PreviewBackend forces a terminal preview protocol ("kitty",
	// "inline", "chafa"); empty auto-detects.
	PreviewBackend string
	// Debug turns on stderr diagnostics.
	Debug bool
}

var debugEnabled bool

// LoadConfig reads the TEDGE_* variables, loading an optional .env file
// from the working directory first.
func LoadConfig() *Config {
	_ = godotenv.Load()
	cfg := &Config{
		Debug: getEnvBool("TEDGE_DEBUG", false),
	}
	debugEnabled = cfg.Debug
	cfg.MaxDimension = getEnvInt("TEDGE_MAX_DIMENSION", edge.DefaultMaxDimension)
	cfg.FontPath = getEnv("TEDGE_FONT", "")
	cfg.PreviewBackend = getEnv("TEDGE_PREVIEW_BACKEND", "")
	return cfg
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		debugf("ignoring %s=%q: %v", key, v, err)
		return defaultVal
	}
	return n
}

func getEnvBool(key string, defaultVal bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	case "0", "f", "false", "n", "no", "off":
		return false
	}
	return defaultVal
}

func debugf(format string, args ...any) {
	if debugEnabled {
		fmt.Fprintf(os.Stderr, "tedge: "+format+"\n", args...)
	}
}
