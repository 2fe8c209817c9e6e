package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvHome         = "FRACTIS_HOME"
	EnvShares       = "FRACTIS_SHARES"
	EnvThreshold    = "FRACTIS_THRESHOLD"
	EnvScheme       = "FRACTIS_SCHEME"
	EnvOutputFormat = "FRACTIS_OUTPUT_FORMAT"
	EnvVerbose      = "FRACTIS_VERBOSE"
	EnvLogLevel     = "FRACTIS_LOG_LEVEL"
	EnvNoColor      = "NO_COLOR"
)

// ApplyEnvironment applies environment variable overrides to the configuration.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Home = v
	}

	if v := os.Getenv(EnvShares); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Split.Shares = n
		}
	}

	if v := os.Getenv(EnvThreshold); v != "" {
		if k, err := strconv.Atoi(v); err == nil && k > 0 {
			cfg.Split.Threshold = k
		}
	}

	if v := os.Getenv(EnvScheme); v != "" {
		cfg.Split.Scheme = strings.ToLower(v)
	}

	if v := os.Getenv(EnvOutputFormat); v != "" {
		cfg.Output.DefaultFormat = strings.ToLower(v)
	}

	if v := os.Getenv(EnvVerbose); v != "" {
		cfg.Output.Verbose = parseBool(v)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}

	// NO_COLOR disables colored output
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		cfg.Output.Color = "never"
	}
}

// parseBool parses a boolean string value.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "1" || s == "true" || s == "yes" || s == "on" {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}
