// Package config reads envexec settings using Viper.
//
// Settings come from environment variables (ENVEXEC_*) and built-in
// defaults only. There is no config file.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultColor is the default diagnostic color mode.
	DefaultColor = "auto"
	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"
	// DefaultLogFormat is the default log record format.
	DefaultLogFormat = "text"
	// DefaultLogStderr disables stderr logging so test output stays quiet.
	DefaultLogStderr = "off"
)

// Config holds the envexec configuration.
type Config struct {
	v *viper.Viper
}

// Load reads configuration from the environment.
func Load() *Config {
	v := viper.New()

	v.SetDefault("color", DefaultColor)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("log.stderr", DefaultLogStderr)
	v.SetDefault("log.file", "")
	v.SetDefault("otel.enabled", false)
	v.SetDefault("otel.endpoint", "")

	v.SetEnvPrefix("ENVEXEC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Config{v: v}
}

// GetString returns a configuration value as string.
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// All returns all configuration as a map.
func (c *Config) All() map[string]interface{} {
	return c.v.AllSettings()
}

// Color returns the diagnostic color mode.
func (c *Config) Color() string {
	return c.GetString("color")
}

// LogLevel returns the configured log level.
func (c *Config) LogLevel() string {
	return c.GetString("log.level")
}

// LogFormat returns the configured log format.
func (c *Config) LogFormat() string {
	return c.GetString("log.format")
}

// LogStderr returns the stderr logging mode.
func (c *Config) LogStderr() string {
	return c.GetString("log.stderr")
}

// LogFile returns the log file path, empty when file logging is off.
func (c *Config) LogFile() string {
	return c.GetString("log.file")
}

// TelemetryEnabled reports whether the tracing pipeline should be started.
func (c *Config) TelemetryEnabled() bool {
	return c.v.GetBool("otel.enabled")
}

// TelemetryEndpoint returns the OTLP/HTTP endpoint, empty for the exporter default.
func (c *Config) TelemetryEndpoint() string {
	return c.GetString("otel.endpoint")
}
