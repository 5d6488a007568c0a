package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		name     string
		level    LogLevel
		expected string
	}{
		{"DEBUG level", DEBUG, "DEBUG"},
		{"INFO level", INFO, "INFO"},
		{"WARN level", WARN, "WARN"},
		{"ERROR level", ERROR, "ERROR"},
		{"Unknown level", LogLevel(999), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.level.String()
			if result != tt.expected {
				t.Errorf("LogLevel.String() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  LogLevel
		wantError bool
	}{
		{"Parse DEBUG", "DEBUG", DEBUG, false},
		{"Parse debug lowercase", "debug", DEBUG, false},
		{"Parse INFO", "INFO", INFO, false},
		{"Parse WARN", "WARN", WARN, false},
		{"Parse WARNING", "WARNING", WARN, false},
		{"Parse ERROR", "ERROR", ERROR, false},
		{"Parse invalid", "INVALID", INFO, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantError {
				t.Errorf("ParseLevel() error = %v, wantError %v", err, tt.wantError)
			}
			if !tt.wantError && result != tt.expected {
				t.Errorf("ParseLevel() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	logger := New()

	if logger == nil {
		t.Fatal("New() returned nil")
	}
	if logger.level != INFO {
		t.Errorf("Default level = %v, want %v", logger.level, INFO)
	}
	if logger.mode != "" {
		t.Errorf("Default mode = %v, want empty string", logger.mode)
	}
	if logger.fields == nil {
		t.Error("Fields map not initialized")
	}
}

func TestLogger_WithFields(t *testing.T) {
	logger := New()

	newLogger := logger.WithFields("key1", "value1", "key2", 123, "key3", true)

	if newLogger == logger {
		t.Error("WithFields should return new logger instance")
	}
	if len(newLogger.fields) != 3 {
		t.Errorf("Expected 3 fields, got %d", len(newLogger.fields))
	}
	if len(logger.fields) != 0 {
		t.Errorf("parent logger fields mutated: %v", logger.fields)
	}

	// odd number of arguments drops the dangling key
	oddLogger := logger.WithFields("key1", "value1", "key2")
	if len(oddLogger.fields) != 1 {
		t.Errorf("Expected 1 field with odd args, got %d", len(oddLogger.fields))
	}
}

func TestLogger_WithMode(t *testing.T) {
	logger := New().WithField("existing", "field")

	newLogger := logger.WithMode("submit")

	if newLogger.mode != "submit" {
		t.Errorf("Mode = %v, want 'submit'", newLogger.mode)
	}
	if newLogger.fields["existing"] != "field" {
		t.Error("WithMode should preserve existing fields")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{
		Level:  INFO,
		Output: &buf,
	})

	logger.Debug("debug message")
	if buf.Len() > 0 {
		t.Error("DEBUG message logged when level is INFO")
	}

	for _, log := range []func(string, ...interface{}){logger.Info, logger.Warn, logger.Error} {
		buf.Reset()
		log("visible message")
		if !strings.Contains(buf.String(), "visible message") {
			t.Errorf("message not logged at level INFO: %q", buf.String())
		}
	}
}

func TestLogger_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{
		Level:  DEBUG,
		Output: &buf,
		Mode:   "test",
	})

	logger.WithField("component", "orchestrator").Info("with fields", "key1", "value1", "key2", 42)
	output := buf.String()

	for _, want := range []string{"level=info", "mode=test", "component=orchestrator", "key1=value1", "key2=42", "with fields"} {
		if !strings.Contains(output, want) {
			t.Errorf("output %q missing %q", output, want)
		}
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{
		Level:  DEBUG,
		Output: &buf,
		Format: "json",
	})

	logger.Warn("json message", "job", "a")

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if decoded["msg"] != "json message" {
		t.Errorf("msg = %v, want 'json message'", decoded["msg"])
	}
	if decoded["level"] != "warning" {
		t.Errorf("level = %v, want 'warning'", decoded["level"])
	}
	if decoded["job"] != "a" {
		t.Errorf("job = %v, want 'a'", decoded["job"])
	}
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{
		Level:  ERROR,
		Output: &buf,
	})

	logger.Info("should not appear")
	if buf.Len() > 0 {
		t.Error("INFO logged when level is ERROR")
	}

	logger.SetLevel(INFO)
	logger.Info("should appear")
	if !strings.Contains(buf.String(), "should appear") {
		t.Error("INFO not logged after level changed to INFO")
	}
	if logger.GetLevel() != INFO {
		t.Errorf("GetLevel() = %v, want INFO", logger.GetLevel())
	}
}

func TestGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	previous := Global()
	defer func() { globalLogger = previous }()

	Configure(Config{Level: DEBUG, Output: &buf})
	Debug("debug msg")
	Info("info msg")
	Warn("warn msg")
	Error("error msg")
	WithField("id", "123").Info("scoped msg")

	output := buf.String()
	for _, want := range []string{"debug msg", "info msg", "warn msg", "error msg", "id=123"} {
		if !strings.Contains(output, want) {
			t.Errorf("global output missing %q", want)
		}
	}
}

func BenchmarkLogger_InfoWithFields(b *testing.B) {
	logger := NewWithConfig(Config{
		Level:  INFO,
		Output: &bytes.Buffer{},
	})

	contextLogger := logger.WithFields("request_id", "123")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		contextLogger.Info("message", "additional", "field")
	}
}
