package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with defaults failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Database.Type != "memory" {
		t.Errorf("expected default database type memory, got %s", cfg.Database.Type)
	}
	if cfg.Payment.VerifyPolicy != "permissive" {
		t.Errorf("expected default verify policy permissive, got %s", cfg.Payment.VerifyPolicy)
	}
	if !cfg.IsDevelopment() {
		t.Error("expected default env to be development")
	}
	if cfg.Database.Retry.MaxAttempts != 3 {
		t.Errorf("expected 3 retry attempts, got %d", cfg.Database.Retry.MaxAttempts)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
app:
  env: staging
server:
  port: "9090"
database:
  type: mysql
  host: db.internal
payment:
  verify_policy: strict
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Database.Type != "mysql" || cfg.Database.Host != "db.internal" {
		t.Errorf("database section not applied: %+v", cfg.Database)
	}
	if cfg.Payment.VerifyPolicy != "strict" {
		t.Errorf("expected strict policy, got %s", cfg.Payment.VerifyPolicy)
	}
	// Unset keys keep their defaults
	if cfg.Database.Port != "3306" {
		t.Errorf("expected default database port, got %s", cfg.Database.Port)
	}
}

func TestProductionGuards(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		return path
	}

	// Permissive verification must never reach production
	path := write("permissive.yaml", `
app:
  env: production
auth:
  jwt_secret: something
payment:
  verify_policy: permissive
`)
	if _, err := Load(path); err == nil {
		t.Error("expected error for permissive policy in production")
	}

	// Production requires a JWT secret
	path = write("nosecret.yaml", `
app:
  env: production
payment:
  verify_policy: strict
`)
	if _, err := Load(path); err == nil {
		t.Error("expected error for missing jwt secret in production")
	}

	// A compliant production config loads
	path = write("ok.yaml", `
app:
  env: production
auth:
  jwt_secret: something
payment:
  verify_policy: strict
`)
	if _, err := Load(path); err != nil {
		t.Errorf("compliant production config rejected: %v", err)
	}
}
