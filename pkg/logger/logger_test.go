package logger

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/vivmac33/marketprism/pkg/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"INFO", zerolog.InfoLevel},
		{"unknown", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLogLevel(tt.input); got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "debug",
		LogFormat: "json",
	}

	log := New(cfg)
	if log == nil {
		t.Fatal("New() returned nil")
	}

	// Derived loggers must not be nil and must not share state mutations
	child := log.Component("test").WithField("k", "v")
	if child == nil {
		t.Fatal("derived logger is nil")
	}
}

func TestNewNop(t *testing.T) {
	log := NewNop()

	// Should not panic
	log.Debug("debug")
	log.Info("info")
	log.WithError(nil).Warn("warn")
	log.WithFields(map[string]interface{}{"a": 1}).Error("error")
}
