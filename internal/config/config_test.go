package config

import (
	"testing"
	"time"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() unexpected error: %v", err)
	}

	if cfg.Host != defaultHost {
		t.Fatalf("Host = %q, want %q", cfg.Host, defaultHost)
	}
	if cfg.Port != defaultPort {
		t.Fatalf("Port = %d, want %d", cfg.Port, defaultPort)
	}
	if cfg.IdleTimeout != defaultIdleTimeout {
		t.Fatalf("IdleTimeout = %s, want %s", cfg.IdleTimeout, defaultIdleTimeout)
	}
	if cfg.MaxSessions != defaultMaxSessions {
		t.Fatalf("MaxSessions = %d, want %d", cfg.MaxSessions, defaultMaxSessions)
	}
	if cfg.ThemePollInterval != defaultThemePollInterval {
		t.Fatalf("ThemePollInterval = %s, want %s", cfg.ThemePollInterval, defaultThemePollInterval)
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("MOSAIC_SSH_HOST", "127.0.0.1")
	t.Setenv("MOSAIC_SSH_PORT", "2323")
	t.Setenv("MOSAIC_DATA_DIR", "/var/lib/mosaic/")
	t.Setenv("MOSAIC_CATALOG_PATH", "/srv/books/catalog.json")
	t.Setenv("MOSAIC_THEME_POLL_INTERVAL", "5s")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() unexpected error: %v", err)
	}

	if cfg.Host != "127.0.0.1" {
		t.Fatalf("Host = %q, want 127.0.0.1", cfg.Host)
	}
	if cfg.Port != 2323 {
		t.Fatalf("Port = %d, want 2323", cfg.Port)
	}
	if cfg.DataDir != "/var/lib/mosaic" {
		t.Fatalf("DataDir = %q, want /var/lib/mosaic", cfg.DataDir)
	}
	if cfg.CatalogPath != "/srv/books/catalog.json" {
		t.Fatalf("CatalogPath = %q, want /srv/books/catalog.json", cfg.CatalogPath)
	}
	if cfg.ThemePollInterval != 5*time.Second {
		t.Fatalf("ThemePollInterval = %s, want 5s", cfg.ThemePollInterval)
	}
}

func TestLoadFromEnvInvalidPort(t *testing.T) {
	t.Setenv("MOSAIC_SSH_PORT", "not-a-number")
	if _, err := LoadFromEnv(); err == nil {
		t.Fatal("LoadFromEnv() expected error for invalid port")
	}
}

func TestLoadFromEnvPortOutOfRange(t *testing.T) {
	t.Setenv("MOSAIC_SSH_PORT", "70000")
	if _, err := LoadFromEnv(); err == nil {
		t.Fatal("LoadFromEnv() expected error for out-of-range port")
	}
}

func TestLoadFromEnvEmptyHost(t *testing.T) {
	t.Setenv("MOSAIC_SSH_HOST", "")
	if _, err := LoadFromEnv(); err == nil {
		t.Fatal("LoadFromEnv() expected error for empty host")
	}
}

func TestLoadFromEnvInvalidHostKeyPath(t *testing.T) {
	t.Setenv("MOSAIC_SSH_HOST_KEY_PATH", ".")
	if _, err := LoadFromEnv(); err == nil {
		t.Fatal("LoadFromEnv() expected error for host key path resolving to current directory")
	}
}

func TestLoadFromEnvInvalidIdleTimeout(t *testing.T) {
	t.Setenv("MOSAIC_SSH_IDLE_TIMEOUT", "not-duration")
	if _, err := LoadFromEnv(); err == nil {
		t.Fatal("LoadFromEnv() expected error for invalid duration")
	}
}

func TestLoadFromEnvInvalidMaxSessions(t *testing.T) {
	t.Setenv("MOSAIC_SSH_MAX_SESSIONS", "0")
	if _, err := LoadFromEnv(); err == nil {
		t.Fatal("LoadFromEnv() expected error for invalid max sessions")
	}
}

func TestLoadFromEnvInvalidRateLimit(t *testing.T) {
	t.Setenv("MOSAIC_SSH_RATE_LIMIT_PER_SECOND", "0")
	if _, err := LoadFromEnv(); err == nil {
		t.Fatal("LoadFromEnv() expected error for invalid rate limit")
	}
}

func TestLoadFromEnvInvalidThemePollInterval(t *testing.T) {
	t.Setenv("MOSAIC_THEME_POLL_INTERVAL", "-1s")
	if _, err := LoadFromEnv(); err == nil {
		t.Fatal("LoadFromEnv() expected error for negative poll interval")
	}
}
