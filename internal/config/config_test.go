package config

import "testing"

func TestLoad_Default(t *testing.T) {
	t.Setenv(EnvDataDir, "")

	cfg := Load()
	if cfg.DataDir != "data" {
		t.Errorf("DataDir = %q, want data", cfg.DataDir)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv(EnvDataDir, "/tmp/budget-test")

	cfg := Load()
	if cfg.DataDir != "/tmp/budget-test" {
		t.Errorf("DataDir = %q, want /tmp/budget-test", cfg.DataDir)
	}
}
