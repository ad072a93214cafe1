package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Environment != "local" {
		t.Errorf("expected environment 'local', got %q", s.Environment)
	}
	if s.LogLevel != "info" {
		t.Errorf("expected log level 'info', got %q", s.LogLevel)
	}
	if s.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %s", s.Timeout)
	}
	if s.DBPath != "./data/lantran.db" {
		t.Errorf("unexpected db path %q", s.DBPath)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("LANTRAN_LOG_LEVEL", "debug")
	t.Setenv("LANTRAN_TIMEOUT", "5s")

	s, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.LogLevel != "debug" {
		t.Errorf("expected log level 'debug', got %q", s.LogLevel)
	}
	if s.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %s", s.Timeout)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("LANTRAN_DB=/tmp/from-file.db\n"), 0644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Setenv("LANTRAN_DB", "")
	os.Unsetenv("LANTRAN_DB")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.DBPath != "/tmp/from-file.db" {
		t.Errorf("expected db path from env file, got %q", s.DBPath)
	}
}

func TestLoad_MissingEnvFileIgnored(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("LANTRAN_TIMEOUT", "0s")

	if _, err := Load(""); err == nil {
		t.Error("expected error for zero timeout")
	}
}
