// Package logging provides a simple leveled logging interface for the
// media gallery generator, backed by zap.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information
//   - INFO: General operational messages
//   - WARN: Warning conditions
//   - ERROR: Error conditions
//
// The log level is configured via the LOG_LEVEL environment variable or the
// --log-level flag. Output is colored console text when stderr is a terminal
// and JSON lines otherwise.
package logging
