package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	DBPath      string        `env:"TEST_DB_PATH" envDefault:"manaforge.db"`
	SnapshotTTL time.Duration `env:"TEST_SNAPSHOT_TTL" envDefault:"1h"`
	Rounds      int           `env:"TEST_ROUNDS" envDefault:"6"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.DBPath != "manaforge.db" || cfg.SnapshotTTL != time.Hour || cfg.Rounds != 6 {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestParseEnvUsesPrefix(t *testing.T) {
	t.Setenv("MANAFORGE_TEST_DB_PATH", "/tmp/games.db")
	t.Setenv("TEST_ROUNDS", "2")

	var cfg envTestConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.DBPath != "/tmp/games.db" {
		t.Fatalf("db path = %q, want /tmp/games.db", cfg.DBPath)
	}
	if cfg.Rounds != 6 {
		t.Fatalf("rounds = %d, want unprefixed variable ignored", cfg.Rounds)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("MANAFORGE_TEST_ROUNDS", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
