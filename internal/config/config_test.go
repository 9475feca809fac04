package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Full(t *testing.T) {
	path := writeConfig(t, `
target: http://localhost:8080
users: 120
spawn_rate: 20
duration: 2m
rps: 50
profiles:
  - slow-only
  - mixed
thresholds:
  request_duration:
    p95: 3s
  failure_rate: "5%"
execution:
  max_iterations: 100
  warmup_iterations: 10
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Target != "http://localhost:8080" {
		t.Errorf("target = %q", cfg.Target)
	}
	if cfg.Users != 120 || cfg.SpawnRate != 20 || cfg.Duration != 2*time.Minute {
		t.Errorf("load shape wrong: %+v", cfg)
	}
	if cfg.RPS != 50 {
		t.Errorf("rps = %d", cfg.RPS)
	}
	if len(cfg.Profiles) != 2 || cfg.Profiles[0] != "slow-only" || cfg.Profiles[1] != "mixed" {
		t.Errorf("profiles = %v", cfg.Profiles)
	}
	if cfg.Thresholds == nil || cfg.Thresholds.RequestDuration == nil {
		t.Fatal("thresholds not parsed")
	}
	if cfg.Thresholds.RequestDuration.P95 != 3*time.Second {
		t.Errorf("p95 = %v", cfg.Thresholds.RequestDuration.P95)
	}
	if cfg.Thresholds.FailureRate != "5%" {
		t.Errorf("failure_rate = %q", cfg.Thresholds.FailureRate)
	}
	if cfg.Execution.MaxIterations != 100 || cfg.Execution.WarmupIterations != 10 {
		t.Errorf("execution = %+v", cfg.Execution)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "target: http://localhost:8080\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Users != DefaultUsers {
		t.Errorf("users = %d, want default %d", cfg.Users, DefaultUsers)
	}
	if cfg.SpawnRate != DefaultSpawnRate {
		t.Errorf("spawn_rate = %g, want default %g", cfg.SpawnRate, DefaultSpawnRate)
	}
	if cfg.Duration != DefaultDuration {
		t.Errorf("duration = %v, want default %v", cfg.Duration, DefaultDuration)
	}
	if cfg.Thresholds != nil {
		t.Error("thresholds should be nil when absent")
	}
}

func TestLoad_MissingTarget(t *testing.T) {
	path := writeConfig(t, "users: 10\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for missing target")
	}
}

func TestLoad_NegativeValues(t *testing.T) {
	path := writeConfig(t, "target: http://x\nusers: -5\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for negative users")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "target: [unclosed\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
