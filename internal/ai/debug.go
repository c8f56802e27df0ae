package ai

import "sync/atomic"

// debugLoggingEnabled gates per-tick debug logs of the AI subsystem.
// Set once from main based on config log level.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables per-tick AI debug logs.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if AI debug logging is enabled.
// Guard expensive log calls with it:
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("retarget", "destination", dest)
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
