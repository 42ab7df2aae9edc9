package database

import "testing"

func TestConfigFromEnvRequiresCredentials(t *testing.T) {
	t.Setenv("DB_USER", "")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "userhub")

	if _, err := ConfigFromEnv(); err == nil {
		t.Fatal("expected error for missing DB_USER")
	}
}

func TestConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "userhub")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	if cfg.Host != "localhost" || cfg.Port != "5432" {
		t.Fatalf("unexpected defaults: %s:%s", cfg.Host, cfg.Port)
	}
	if cfg.MaxOpenConns != 25 {
		t.Fatalf("invalid int should fall back to default, got %d", cfg.MaxOpenConns)
	}
	if cfg.SSLMode != "disable" {
		t.Fatalf("unexpected sslmode: %s", cfg.SSLMode)
	}
}
