package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Errorf("addr: got %q, want %q", cfg.Addr, ":8080")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level: got %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.MaxUploadMB != 32 {
		t.Errorf("max upload: got %d, want 32", cfg.MaxUploadMB)
	}
	if cfg.BodyLimit() != 32<<20 {
		t.Errorf("body limit: got %d, want %d", cfg.BodyLimit(), 32<<20)
	}
	if cfg.Patterns.CardHeader != "" || cfg.Patterns.Transaction != "" {
		t.Errorf("expected built-in patterns, got %+v", cfg.Patterns)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BILLSPLIT_ADDR", ":9090")
	t.Setenv("BILLSPLIT_LOG_FORMAT", "json")
	t.Setenv("BILLSPLIT_PATTERNS_CARD_HEADER", `ACCOUNT (\d+)`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Addr != ":9090" {
		t.Errorf("addr: got %q, want %q", cfg.Addr, ":9090")
	}
	if cfg.LogFormat != "json" {
		t.Errorf("log format: got %q, want %q", cfg.LogFormat, "json")
	}
	if cfg.Patterns.CardHeader != `ACCOUNT (\d+)` {
		t.Errorf("card header pattern: got %q", cfg.Patterns.CardHeader)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "billsplit.yaml")
	content := "addr: \":7000\"\nmax_upload_mb: 4\npatterns:\n  transaction: '^(\\d{2}/\\d{2}) (.+) (\\S+)$'\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Addr != ":7000" {
		t.Errorf("addr: got %q, want %q", cfg.Addr, ":7000")
	}
	if cfg.MaxUploadMB != 4 {
		t.Errorf("max upload: got %d, want 4", cfg.MaxUploadMB)
	}
	if cfg.Patterns.Transaction != `^(\d{2}/\d{2}) (.+) (\S+)$` {
		t.Errorf("transaction pattern: got %q", cfg.Patterns.Transaction)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{MaxUploadMB: 1, LogFormat: "console"}, false},
		{"json upper", Config{MaxUploadMB: 1, LogFormat: "JSON"}, false},
		{"zero upload", Config{MaxUploadMB: 0, LogFormat: "console"}, true},
		{"bad format", Config{MaxUploadMB: 1, LogFormat: "xml"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
