// Package logger builds structured slog loggers with automatic injection of
// request-scoped attributes (temple id, principal id) via context extractors.
package logger
