// Package logger wraps a process-wide zap logger with context-first helpers
// and a shared atomic level that configuration can adjust at startup.
package logger
