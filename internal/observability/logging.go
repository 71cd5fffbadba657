// Package observability provides structured logging and tracing for launches.
package observability

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const redactedValue = "[REDACTED]"

// Config holds the configuration for the observability logger.
type Config struct {
	Level      string
	Format     string
	LogFile    string
	StderrMode string
	Version    string
}

// NewLogger creates a structured logger from the given configuration. With no
// sink enabled it returns a logger that discards every record.
func NewLogger(cfg *Config) (*slog.Logger, func() error, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	stderrEnabled, err := parseStderrMode(cfg.StderrMode)
	if err != nil {
		return nil, nil, err
	}

	if !stderrEnabled && strings.TrimSpace(cfg.LogFile) == "" {
		return slog.New(slog.DiscardHandler), noopCleanup, nil
	}

	writers := make([]io.Writer, 0, 2)
	closers := make([]io.Closer, 0, 1)

	if stderrEnabled {
		writers = append(writers, os.Stderr)
	}

	if strings.TrimSpace(cfg.LogFile) != "" {
		logFile, openErr := openLogFile(cfg.LogFile)
		if openErr != nil {
			return nil, nil, openErr
		}

		writers = append(writers, logFile)
		closers = append(closers, logFile)
	}

	handler, err := newHandler(io.MultiWriter(writers...), cfg.Format, level)
	if err != nil {
		for _, closer := range closers {
			_ = closer.Close()
		}

		return nil, nil, err
	}

	logger := slog.New(handler).With(slog.String("envexec.version", cfg.Version))

	cleanup := func() error {
		var firstErr error
		for _, closer := range closers {
			if closeErr := closer.Close(); closeErr != nil && firstErr == nil {
				firstErr = closeErr
			}
		}

		return firstErr
	}

	return logger, cleanup, nil
}

func newHandler(w io.Writer, format string, level slog.Leveler) (slog.Handler, error) {
	handlerOpts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redactAttr,
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return slog.NewTextHandler(w, handlerOpts), nil
	case "json":
		return slog.NewJSONHandler(w, handlerOpts), nil
	default:
		return nil, fmt.Errorf("invalid log format: %q (allowed: text, json)", format)
	}
}

func openLogFile(path string) (*os.File, error) {
	cleanPath := strings.TrimSpace(path)

	if mkErr := os.MkdirAll(filepath.Dir(cleanPath), 0o700); mkErr != nil {
		return nil, fmt.Errorf("create log file directory: %w", mkErr)
	}

	file, err := os.OpenFile(filepath.Clean(cleanPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return file, nil
}

func parseStderrMode(mode string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "off", "false", "0":
		return false, nil
	case "on", "true", "1":
		return true, nil
	default:
		return false, fmt.Errorf("invalid log stderr value %q (allowed: on, off)", mode)
	}
}

func parseLevel(level string) (slog.Leveler, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return nil, fmt.Errorf("invalid log level: %q (allowed: error, warn, info, debug)", level)
	}
}

// EnvAttr renders launch bindings as a log group. Values of keys that look
// like credentials are redacted.
func EnvAttr(keys, values []string) slog.Attr {
	attrs := make([]any, 0, len(keys))

	for i, key := range keys {
		value := values[i]
		if isSensitiveKey(strings.ToLower(key)) {
			value = redactedValue
		}

		attrs = append(attrs, slog.String(key, value))
	}

	return slog.Group("env", attrs...)
}

func redactAttr(_ []string, attr slog.Attr) slog.Attr {
	key := strings.ToLower(attr.Key)
	if isSensitiveKey(key) {
		return slog.String(attr.Key, redactedValue)
	}

	return attr
}

func isSensitiveKey(key string) bool {
	if key == "authorization" {
		return true
	}

	sensitiveSubstrings := []string{"token", "api_key", "apikey", "secret", "credential", "password"}
	for _, pattern := range sensitiveSubstrings {
		if strings.Contains(key, pattern) {
			return true
		}
	}

	return false
}

func noopCleanup() error { return nil }
