package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  host: localhost
  name: vibecheck
  user: vc
nats:
  url: nats://localhost:4222
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want default 8080", cfg.Server.Port)
	}
	if cfg.SocialGraph.MinPublicUsers != 25 {
		t.Errorf("MinPublicUsers = %d, want default 25", cfg.SocialGraph.MinPublicUsers)
	}
	if cfg.SocialGraph.SyntheticMean != 60 || cfg.SocialGraph.SyntheticStddev != 15 {
		t.Errorf("synthetic distribution = (%v, %v), want (60, 15)",
			cfg.SocialGraph.SyntheticMean, cfg.SocialGraph.SyntheticStddev)
	}
	if cfg.Vision.FaceThreshold != 0.5 || cfg.Vision.ObjectThreshold != 0.4 {
		t.Errorf("thresholds = (%v, %v), want (0.5, 0.4)",
			cfg.Vision.FaceThreshold, cfg.Vision.ObjectThreshold)
	}
	if cfg.Insight.Model != "gpt-4o-mini" {
		t.Errorf("Insight.Model = %q, want default", cfg.Insight.Model)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
database:
  host: localhost
`)

	t.Setenv("VC_SERVER_PORT", "9100")
	t.Setenv("VC_DB_HOST", "db.internal")
	t.Setenv("VC_SOCIAL_GRAPH_MIN_PUBLIC_USERS", "10")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, env override should win over file", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("Database.Host = %q, want env override", cfg.Database.Host)
	}
	if cfg.SocialGraph.MinPublicUsers != 10 {
		t.Errorf("MinPublicUsers = %d, want env override 10", cfg.SocialGraph.MinPublicUsers)
	}
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "localhost", Port: 5432, Name: "vibecheck",
		User: "vc", Password: "secret", MaxConns: 10,
	}
	dsn := cfg.DSN()
	for _, part := range []string{"localhost", "5432", "vibecheck", "vc", "secret"} {
		if !strings.Contains(dsn, part) {
			t.Errorf("DSN %q missing %q", dsn, part)
		}
	}
}
