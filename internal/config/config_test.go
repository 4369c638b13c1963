package config

import (
	"os"
	"testing"
)

func TestLoadConfig_DefaultValues(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	cfg := LoadConfig()

	if cfg.AuditDSN != "" {
		t.Errorf("Expected empty AuditDSN, got %q", cfg.AuditDSN)
	}
	if cfg.Workers != 0 {
		t.Errorf("Expected Workers 0, got %d", cfg.Workers)
	}
	if cfg.RetentionRuns != 20 {
		t.Errorf("Expected RetentionRuns 20, got %d", cfg.RetentionRuns)
	}
	if cfg.WALAutoCheckpointMB != 128 {
		t.Errorf("Expected WALAutoCheckpointMB 128, got %d", cfg.WALAutoCheckpointMB)
	}
	if cfg.DiffContext != 3 {
		t.Errorf("Expected DiffContext 3, got %d", cfg.DiffContext)
	}
}

func TestLoadConfig_EnvironmentVariables(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	os.Setenv("ACTIONTREE_AUDIT_DSN", "file:runs.db")
	os.Setenv("ACTIONTREE_WORKERS", "4")
	os.Setenv("ACTIONTREE_RETENTION_RUNS", "50")
	os.Setenv("ACTIONTREE_WAL_AUTOCHECKPOINT_MB", "256")
	os.Setenv("ACTIONTREE_DIFF_CONTEXT", "5")

	cfg := LoadConfig()

	if cfg.AuditDSN != "file:runs.db" {
		t.Errorf("Expected AuditDSN 'file:runs.db', got %q", cfg.AuditDSN)
	}
	if cfg.Workers != 4 {
		t.Errorf("Expected Workers 4, got %d", cfg.Workers)
	}
	if cfg.RetentionRuns != 50 {
		t.Errorf("Expected RetentionRuns 50, got %d", cfg.RetentionRuns)
	}
	if cfg.WALAutoCheckpointMB != 256 {
		t.Errorf("Expected WALAutoCheckpointMB 256, got %d", cfg.WALAutoCheckpointMB)
	}
	if cfg.DiffContext != 5 {
		t.Errorf("Expected DiffContext 5, got %d", cfg.DiffContext)
	}
}

func TestLoadConfig_InvalidIntegerValues(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	os.Setenv("ACTIONTREE_WORKERS", "invalid")
	os.Setenv("ACTIONTREE_WAL_AUTOCHECKPOINT_MB", "not-a-number")
	os.Setenv("ACTIONTREE_RETENTION_RUNS", "abc")

	cfg := LoadConfig()

	if cfg.Workers != 0 {
		t.Errorf("Expected Workers 0 (default), got %d", cfg.Workers)
	}
	if cfg.WALAutoCheckpointMB != 128 {
		t.Errorf("Expected WALAutoCheckpointMB 128 (default), got %d", cfg.WALAutoCheckpointMB)
	}
	if cfg.RetentionRuns != 20 {
		t.Errorf("Expected RetentionRuns 20 (default), got %d", cfg.RetentionRuns)
	}
}

func TestLoadConfig_NegativeValues(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	os.Setenv("ACTIONTREE_WORKERS", "-1")
	os.Setenv("ACTIONTREE_WAL_AUTOCHECKPOINT_MB", "-10")
	os.Setenv("ACTIONTREE_RETENTION_RUNS", "-5")

	cfg := LoadConfig()

	if cfg.Workers != 0 {
		t.Errorf("Expected Workers 0 (default for negative), got %d", cfg.Workers)
	}
	if cfg.WALAutoCheckpointMB != 128 {
		t.Errorf("Expected WALAutoCheckpointMB 128 (default for non-positive), got %d", cfg.WALAutoCheckpointMB)
	}
	if cfg.RetentionRuns != 20 {
		t.Errorf("Expected RetentionRuns 20 (default for negative), got %d", cfg.RetentionRuns)
	}
}

func TestLoadConfig_ZeroValues(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	os.Setenv("ACTIONTREE_WORKERS", "0")
	os.Setenv("ACTIONTREE_WAL_AUTOCHECKPOINT_MB", "0")
	os.Setenv("ACTIONTREE_RETENTION_RUNS", "0")

	cfg := LoadConfig()

	if cfg.Workers != 0 {
		t.Errorf("Expected Workers 0, got %d", cfg.Workers)
	}
	if cfg.WALAutoCheckpointMB != 128 {
		t.Errorf("Expected WALAutoCheckpointMB 128 (default for zero), got %d", cfg.WALAutoCheckpointMB)
	}
	if cfg.RetentionRuns != 0 {
		t.Errorf("Expected RetentionRuns 0, got %d", cfg.RetentionRuns)
	}
}

func TestLoadConfig_LargeValues(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	os.Setenv("ACTIONTREE_WORKERS", "64")
	os.Setenv("ACTIONTREE_WAL_AUTOCHECKPOINT_MB", "10000")
	os.Setenv("ACTIONTREE_RETENTION_RUNS", "1000000")

	cfg := LoadConfig()

	if cfg.Workers != 64 {
		t.Errorf("Expected Workers 64, got %d", cfg.Workers)
	}
	if cfg.WALAutoCheckpointMB != 10000 {
		t.Errorf("Expected WALAutoCheckpointMB 10000, got %d", cfg.WALAutoCheckpointMB)
	}
	if cfg.RetentionRuns != 1000000 {
		t.Errorf("Expected RetentionRuns 1000000, got %d", cfg.RetentionRuns)
	}
}

func clearConfigEnvVars() {
	envVars := []string{
		"ACTIONTREE_AUDIT_DSN",
		"ACTIONTREE_WORKERS",
		"ACTIONTREE_RETENTION_RUNS",
		"ACTIONTREE_WAL_AUTOCHECKPOINT_MB",
		"ACTIONTREE_DIFF_CONTEXT",
	}
	for _, envVar := range envVars {
		os.Unsetenv(envVar)
	}
}
