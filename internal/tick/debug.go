package tick

import "sync/atomic"

// debugLoggingEnabled controls per-round debug logging of the scheduler.
// Package-level flag to avoid checking the log level on every round.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables scheduler debug logging.
// Called from main after parsing config.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if debug logging is enabled.
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
