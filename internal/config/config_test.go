package config

import (
	"os"
	"testing"
)

// unsetEnvForTest unsets an environment variable and registers cleanup to
// restore its original state.
func unsetEnvForTest(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"ENVEXEC_COLOR",
		"ENVEXEC_LOG_LEVEL",
		"ENVEXEC_LOG_FORMAT",
		"ENVEXEC_LOG_STDERR",
		"ENVEXEC_LOG_FILE",
		"ENVEXEC_OTEL_ENABLED",
		"ENVEXEC_OTEL_ENDPOINT",
	} {
		unsetEnvForTest(t, key)
	}

	cfg := Load()

	tests := []struct {
		name     string
		accessor func(*Config) interface{}
		want     interface{}
	}{
		{name: "color", accessor: func(c *Config) interface{} { return c.Color() }, want: DefaultColor},
		{name: "log level", accessor: func(c *Config) interface{} { return c.LogLevel() }, want: DefaultLogLevel},
		{name: "log format", accessor: func(c *Config) interface{} { return c.LogFormat() }, want: DefaultLogFormat},
		{name: "log stderr", accessor: func(c *Config) interface{} { return c.LogStderr() }, want: DefaultLogStderr},
		{name: "log file", accessor: func(c *Config) interface{} { return c.LogFile() }, want: ""},
		{name: "telemetry enabled", accessor: func(c *Config) interface{} { return c.TelemetryEnabled() }, want: false},
		{name: "telemetry endpoint", accessor: func(c *Config) interface{} { return c.TelemetryEndpoint() }, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.accessor(cfg); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("ENVEXEC_COLOR", "never")
	t.Setenv("ENVEXEC_LOG_LEVEL", "debug")
	t.Setenv("ENVEXEC_LOG_FORMAT", "json")
	t.Setenv("ENVEXEC_LOG_STDERR", "on")
	t.Setenv("ENVEXEC_LOG_FILE", "/tmp/envexec.log")
	t.Setenv("ENVEXEC_OTEL_ENABLED", "true")
	t.Setenv("ENVEXEC_OTEL_ENDPOINT", "localhost:4318")

	cfg := Load()

	if got := cfg.Color(); got != "never" {
		t.Errorf("Color() = %q, want %q", got, "never")
	}

	if got := cfg.LogLevel(); got != "debug" {
		t.Errorf("LogLevel() = %q, want %q", got, "debug")
	}

	if got := cfg.LogFormat(); got != "json" {
		t.Errorf("LogFormat() = %q, want %q", got, "json")
	}

	if got := cfg.LogStderr(); got != "on" {
		t.Errorf("LogStderr() = %q, want %q", got, "on")
	}

	if got := cfg.LogFile(); got != "/tmp/envexec.log" {
		t.Errorf("LogFile() = %q, want %q", got, "/tmp/envexec.log")
	}

	if !cfg.TelemetryEnabled() {
		t.Errorf("TelemetryEnabled() = false, want true")
	}

	if got := cfg.TelemetryEndpoint(); got != "localhost:4318" {
		t.Errorf("TelemetryEndpoint() = %q, want %q", got, "localhost:4318")
	}
}

func TestConfig_All(t *testing.T) {
	unsetEnvForTest(t, "ENVEXEC_COLOR")

	all := Load().All()

	if _, ok := all["color"]; !ok {
		t.Errorf("All() missing %q: %v", "color", all)
	}

	if _, ok := all["log"]; !ok {
		t.Errorf("All() missing %q: %v", "log", all)
	}
}
