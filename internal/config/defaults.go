package config

// Default sharing parameters. Three of five is a common custody split:
// it survives the loss of two shares without letting any two holders
// collude to reconstruct.
const (
	DefaultShares    = 5
	DefaultThreshold = 3
	DefaultScheme    = "shamir"
)

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.fractis",
		Split: SplitConfig{
			Shares:    DefaultShares,
			Threshold: DefaultThreshold,
			Scheme:    DefaultScheme,
		},
		Security: SecurityConfig{
			MemoryLock: true,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Color:         "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.fractis/fractis.log",
		},
	}
}
