package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "default config",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name:    "nil config falls back to default",
			config:  nil,
			wantErr: false,
		},
		{
			name: "console output",
			config: &Config{
				Level:  "info",
				Format: "console",
				Output: "console",
			},
			wantErr: false,
		},
		{
			name: "both output",
			config: &Config{
				Level:  "warn",
				Format: "json",
				Output: "both",
				File: FileConfig{
					Filename:   filepath.Join(dir, "gateway.log"),
					MaxSize:    10,
					MaxAge:     7,
					MaxBackups: 3,
				},
			},
			wantErr: false,
		},
		{
			name: "invalid level",
			config: &Config{
				Level:  "verbose",
				Format: "json",
				Output: "console",
			},
			wantErr: true,
		},
		{
			name: "file output without filename",
			config: &Config{
				Level:  "info",
				Format: "json",
				Output: "file",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && l == nil {
				t.Error("New() returned nil logger")
			}
			if l != nil {
				_ = l.Sync()
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{"valid config", DefaultConfig(), false},
		{"invalid format", &Config{Level: "info", Format: "xml", Output: "console"}, true},
		{"invalid output", &Config{Level: "info", Format: "json", Output: "syslog"}, true},
		{"zero maxsize", &Config{Level: "info", Format: "json", Output: "file", File: FileConfig{Filename: "x.log", MaxAge: 1}}, true},
		{"upper case level", &Config{Level: "DEBUG", Format: "json", Output: "console"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLogger_WithAndNamed(t *testing.T) {
	l, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	defer l.Sync()

	child := l.With(zap.String("key", "value"))
	if child == nil || child.Config() != l.Config() {
		t.Error("With() should keep the parent config")
	}

	named := l.Named("gateway")
	if named == nil {
		t.Error("Named() returned nil logger")
	}
	named.Info("test message")
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	if GetRequestID(ctx) != "" {
		t.Error("empty context should have no request id")
	}

	ctx = WithRequestID(ctx, "req-1")
	ctx = WithRoute(ctx, "/api/process-topic")

	if got := GetRequestID(ctx); got != "req-1" {
		t.Errorf("GetRequestID() = %v, want req-1", got)
	}
	if got := GetRoute(ctx); got != "/api/process-topic" {
		t.Errorf("GetRoute() = %v, want /api/process-topic", got)
	}

	l := NewNop()
	if l.WithContext(context.Background()) != l {
		t.Error("WithContext() without request fields should return the same logger")
	}
	if l.WithContext(ctx) == l {
		t.Error("WithContext() should attach request fields")
	}
	l.WithContext(ctx).Info("info message")
}

func TestGlobalLogger(t *testing.T) {
	if L() == nil {
		t.Fatal("L() returned nil logger")
	}

	if err := InitGlobal(DefaultConfig()); err != nil {
		t.Errorf("InitGlobal() error = %v", err)
	}

	Debug("debug message", zap.String("key", "value"))
	Info("info message", zap.String("key", "value"))

	nop := NewNop()
	SetGlobal(nop)
	if L() != nop {
		t.Error("SetGlobal() did not replace the global logger")
	}
	_ = Sync()
}

func TestDevelopment(t *testing.T) {
	l, err := Development()
	if err != nil {
		t.Fatalf("Development() error = %v", err)
	}
	if l.Config().Level != "debug" || l.Config().Format != "console" {
		t.Errorf("unexpected development config: %+v", l.Config())
	}
}

func TestFileOutput(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "nested", "gateway.log")
	l, err := NewWithOptions(WithOutput("file"), WithFilename(filename))
	if err != nil {
		t.Fatalf("NewWithOptions() error = %v", err)
	}
	l.Info("written to file")
	_ = l.Sync()

	if _, err := os.Stat(filename); err != nil {
		t.Errorf("expected log file to exist: %v", err)
	}
}
