// Package logging provides structured logging for the SICP tools.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the CLI and bridge daemon. It provides both general
// logging functions and specialized functions for protocol-specific logging.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (frame hex dumps, per-exchange traces)
//   - Info: Normal operations (poll cycles, bridge connections, state changes)
//   - Warn: Non-fatal issues (unreachable displays, retries, stale snapshots)
//   - Error: Fatal issues (startup failures, critical errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Display polled",
//	    zap.String("display", "lobby"),
//	    zap.Duration("elapsed", elapsed),
//	    zap.Int("failed_fields", 2),
//	)
//
// # Specialized Logging
//
// Protocol exchanges can be traced with a single call:
//
//	logging.LogExchange(addr, command, requestFrame, responseFrame)
//	logging.LogRawBytes("response frame", buf)
//
// Frame hex dumps are only emitted when the debug level is enabled.
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// CLI commands that want silent-by-default behavior use InitializeFromEnv,
// which only enables output when SICP_LOG_LEVEL is set.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
