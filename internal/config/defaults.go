package config

import "github.com/MuddySheep/Shamirs-Leak/internal/prng"

// Defaults returns the default configuration.
func Defaults() *Config {
	defaults := prng.DefaultSettings()

	return &Config{
		Version: 1,
		Home:    "~/.shamirleak",
		Recovery: RecoveryConfig{
			Threads:            0, // 0 => GOMAXPROCS at runtime
			PRNGReusePeriod:    defaults.ReusePeriod,
			PRNGMask:           defaults.Mask,
			IndexCollisionProb: 0,
			Progress:           false,
			MaxDepth:           65536,
			RatePerSecond:      0, // 0 disables throttling
			AttemptLogPath:     "",
			AgeRecipient:       "",
			EncryptAttemptLog:  false,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.shamirleak/shamirleak.log",
		},
	}
}
