package logger

import (
	"testing"

	"github.com/examsheet/examsheet/internal/config"
)

func TestGetBeforeInitialize(t *testing.T) {
	log = nil
	l := Get()
	if l == nil {
		t.Fatal("Get returned nil before Initialize")
	}
	// must be safe to use
	l.Info("noop message")

	if err := Sync(); err != nil {
		t.Errorf("Sync before Initialize: %v", err)
	}
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LoggerConfig
	}{
		{"development", config.LoggerConfig{Env: "development", Level: "debug"}},
		{"production", config.LoggerConfig{Env: "production", Level: "warn"}},
		{"unknown level defaults", config.LoggerConfig{Env: "development", Level: "chatty"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log = nil
			if err := Initialize(tt.cfg); err != nil {
				t.Fatalf("Initialize: %v", err)
			}
			if log == nil {
				t.Fatal("Initialize did not set the global logger")
			}
			Get().Debug("debug message")
			Get().Info("info message")
		})
	}

	log = nil
}
