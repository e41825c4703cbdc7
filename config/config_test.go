package config

import (
	"testing"
	"time"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{"DATABASE_URL": "postgres://localhost/squares"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "5200" {
		t.Fatalf("port = %q, want 5200", cfg.Port)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("origins = %v", cfg.AllowedOrigins)
	}
	if cfg.HeartbeatInterval != 15*time.Second {
		t.Fatalf("heartbeat = %v, want 15s", cfg.HeartbeatInterval)
	}
	if cfg.R2.Enabled() {
		t.Fatalf("r2 should be disabled without bucket")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"DATABASE_URL":          "postgres://db/squares",
		"PORT":                  "8080",
		"ALLOWED_ORIGINS":       " https://a.example , https://b.example,",
		"HEARTBEAT_INTERVAL":    "5s",
		"CLOUDFLARE_ACCOUNT_ID": "acct",
		"R2_BUCKET_NAME":        "results",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("port = %q, want 8080", cfg.Port)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("origins = %v", cfg.AllowedOrigins)
	}
	if cfg.HeartbeatInterval != 5*time.Second {
		t.Fatalf("heartbeat = %v, want 5s", cfg.HeartbeatInterval)
	}
	if !cfg.R2.Enabled() {
		t.Fatalf("r2 should be enabled")
	}
}

func TestFromEnvErrors(t *testing.T) {
	if _, err := FromEnv(envOf(nil)); err == nil {
		t.Fatalf("expected error without DATABASE_URL")
	}
	_, err := FromEnv(envOf(map[string]string{"DATABASE_URL": "x", "HEARTBEAT_INTERVAL": "soon"}))
	if err == nil {
		t.Fatalf("expected error for bad HEARTBEAT_INTERVAL")
	}
}
