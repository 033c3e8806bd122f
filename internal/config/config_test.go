package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("addr=%q, want :8080", cfg.Addr)
	}
	if cfg.DBPath == "" {
		t.Fatalf("db path empty")
	}
	if cfg.LogFormat != "text" {
		t.Fatalf("log format=%q, want text", cfg.LogFormat)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "altair.yaml")
	data := []byte("addr: \":9999\"\ntimezone: America/New_York\nassist:\n  model: gpt-4o\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Fatalf("addr=%q, want :9999", cfg.Addr)
	}
	if cfg.Timezone != "America/New_York" {
		t.Fatalf("timezone=%q", cfg.Timezone)
	}
	if cfg.Assist.Model != "gpt-4o" {
		t.Fatalf("assist model=%q", cfg.Assist.Model)
	}

	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("Location: %v", err)
	}
	if loc.String() != "America/New_York" {
		t.Fatalf("location=%q", loc.String())
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "altair.yaml")
	if err := os.WriteFile(path, []byte("addr: \":9999\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ALTAIR_ADDR", ":7777")
	t.Setenv("ALTAIR_TIMEZONE", "UTC")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":7777" {
		t.Fatalf("addr=%q, want env override :7777", cfg.Addr)
	}
	if cfg.Timezone != "UTC" {
		t.Fatalf("timezone=%q, want UTC", cfg.Timezone)
	}
}

func TestMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("addr=%q, want default", cfg.Addr)
	}
}

func TestBadTimezone(t *testing.T) {
	cfg := &Config{Timezone: "Not/AZone"}
	if _, err := cfg.Location(); err == nil {
		t.Fatalf("expected error for bad timezone")
	}
}
