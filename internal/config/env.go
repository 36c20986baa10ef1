package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvHome               = "SHAMIRLEAK_HOME"
	EnvThreads            = "SHAMIRLEAK_THREADS"
	EnvPRNGReusePeriod    = "SHAMIRLEAK_PRNG_REUSE"
	EnvPRNGMask           = "SHAMIRLEAK_PRNG_MASK"
	EnvIndexCollisionProb = "SHAMIRLEAK_INDEX_COLLISION"
	EnvAttemptLogPath     = "SHAMIRLEAK_ATTEMPT_LOG"
	EnvAgeRecipient       = "SHAMIRLEAK_AGE_RECIPIENT"
	EnvOutputFormat       = "SHAMIRLEAK_OUTPUT_FORMAT"
	EnvVerbose            = "SHAMIRLEAK_VERBOSE"
	EnvLogLevel           = "SHAMIRLEAK_LOG_LEVEL"
)

// ApplyEnvironment applies environment variable overrides to the
// configuration. Values that fail to parse are recorded as warnings and
// otherwise ignored, mirroring the "never fatal at this layer" contract.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Home = v
	}

	if v := os.Getenv(EnvThreads); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Recovery.Threads = n
		} else {
			cfg.Warnings = append(cfg.Warnings, "SHAMIRLEAK_THREADS: not a non-negative integer")
		}
	}

	if v := os.Getenv(EnvPRNGReusePeriod); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil && n >= 1 {
			cfg.Recovery.PRNGReusePeriod = n
		} else {
			cfg.Warnings = append(cfg.Warnings, "SHAMIRLEAK_PRNG_REUSE: not a positive integer")
		}
	}

	if v := os.Getenv(EnvPRNGMask); v != "" {
		if n, err := strconv.ParseUint(v, 10, 8); err == nil {
			cfg.Recovery.PRNGMask = byte(n)
		} else {
			cfg.Warnings = append(cfg.Warnings, "SHAMIRLEAK_PRNG_MASK: not a byte value")
		}
	}

	if v := os.Getenv(EnvIndexCollisionProb); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil && p >= 0 && p <= 1 {
			cfg.Recovery.IndexCollisionProb = p
		} else {
			cfg.Warnings = append(cfg.Warnings, "SHAMIRLEAK_INDEX_COLLISION: not a probability in [0,1]")
		}
	}

	if v := os.Getenv(EnvAttemptLogPath); v != "" {
		cfg.Recovery.AttemptLogPath = v
	}

	if v := os.Getenv(EnvAgeRecipient); v != "" {
		cfg.Recovery.AgeRecipient = v
		cfg.Recovery.EncryptAttemptLog = true
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
}

// parseBool parses a boolean-ish string value.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "1" || s == "true" || s == "yes" || s == "on" {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}
