package config

import (
	"os"
	"strings"

	"filetz/internal/domain"
)

const (
	DefaultSourceDir      = "./"
	DefaultDestinationDir = "./"
	DefaultZone           = "UTC"
	DefaultPattern        = "%y%d%m%H%M%S"
)

// Config holds the options as given on the command line, before validation.
type Config struct {
	SourceDir      string
	DestinationDir string
	FromTZ         string
	ToTZ           string
	Mode           domain.Mode
	Pattern        string
	DryRun         bool
	Verbose        bool
	TUI            bool
}

func Default() Config {
	return Config{
		SourceDir:      DefaultSourceDir,
		DestinationDir: DefaultDestinationDir,
		FromTZ:         DefaultZone,
		ToTZ:           DefaultZone,
		Mode:           domain.ModeCopy,
		Pattern:        DefaultPattern,
	}
}

// Environment variables consulted for options not given as flags.
const (
	EnvSourceDir      = "FILETZ_SOURCE_DIR"
	EnvDestinationDir = "FILETZ_DESTINATION_DIR"
	EnvFromTZ         = "FILETZ_FROM_TZ"
	EnvToTZ           = "FILETZ_TO_TZ"
	EnvMode           = "FILETZ_MODE"
	EnvPattern        = "FILETZ_PATTERN"
	EnvDryRun         = "FILETZ_DRY_RUN"
	EnvVerbose        = "FILETZ_VERBOSE"
)

func EnvOrEmpty(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func EnvTruthy(key string) bool {
	val := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	return val == "1" || val == "true" || val == "yes" || val == "y"
}
