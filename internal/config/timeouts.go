package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	InstanceRunning   time.Duration // Waiting for the instance to reach running
	InstanceReady     time.Duration // Polling the instance for engine readiness
	ReadyPollInterval time.Duration // Interval between readiness probes
	Delete            time.Duration // All delete operations
	RemoteCommand     time.Duration // A single remote command execution
	RetryMaxAttempts  int           // Maximum number of retry attempts
	RetryInitialDelay time.Duration // Initial delay between retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - MATCHFRAME_TIMEOUT_INSTANCE_RUNNING (default: 5m)
//   - MATCHFRAME_TIMEOUT_INSTANCE_READY (default: 5m)
//   - MATCHFRAME_READY_POLL_INTERVAL (default: 5s)
//   - MATCHFRAME_TIMEOUT_DELETE (default: 5m)
//   - MATCHFRAME_TIMEOUT_REMOTE_COMMAND (default: 10m)
//   - MATCHFRAME_RETRY_MAX_ATTEMPTS (default: 5)
//   - MATCHFRAME_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		InstanceRunning:   parseDuration("MATCHFRAME_TIMEOUT_INSTANCE_RUNNING", 5*time.Minute),
		InstanceReady:     parseDuration("MATCHFRAME_TIMEOUT_INSTANCE_READY", 5*time.Minute),
		ReadyPollInterval: parseDuration("MATCHFRAME_READY_POLL_INTERVAL", 5*time.Second),
		Delete:            parseDuration("MATCHFRAME_TIMEOUT_DELETE", 5*time.Minute),
		RemoteCommand:     parseDuration("MATCHFRAME_TIMEOUT_REMOTE_COMMAND", 10*time.Minute),
		RetryMaxAttempts:  parseInt("MATCHFRAME_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("MATCHFRAME_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}
