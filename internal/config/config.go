package config

import (
	"os"
	"strconv"
)

// Config holds settings loaded from the process environment. CLI flags
// take precedence over these when both are set; see cmd/actiontree.
type Config struct {
	AuditDSN            string
	Workers             int
	RetentionRuns       int
	WALAutoCheckpointMB int
	DiffContext         int
}

// LoadConfig loads configuration from ACTIONTREE_* environment variables,
// falling back to defaults matching DefaultPolicy's conservatism: prefer
// explicit opt-in (an empty AuditDSN disables the ledger entirely).
func LoadConfig() *Config {
	cfg := &Config{
		AuditDSN:            os.Getenv("ACTIONTREE_AUDIT_DSN"),
		Workers:             0,
		RetentionRuns:       20,
		WALAutoCheckpointMB: 128,
		DiffContext:         3,
	}

	if workersStr := os.Getenv("ACTIONTREE_WORKERS"); workersStr != "" {
		if workers, err := strconv.Atoi(workersStr); err == nil && workers >= 0 {
			cfg.Workers = workers
		}
	}

	if retentionStr := os.Getenv("ACTIONTREE_RETENTION_RUNS"); retentionStr != "" {
		if retention, err := strconv.Atoi(retentionStr); err == nil && retention >= 0 {
			cfg.RetentionRuns = retention
		}
	}

	if walStr := os.Getenv("ACTIONTREE_WAL_AUTOCHECKPOINT_MB"); walStr != "" {
		if wal, err := strconv.Atoi(walStr); err == nil && wal > 0 {
			cfg.WALAutoCheckpointMB = wal
		}
	}

	if ctxStr := os.Getenv("ACTIONTREE_DIFF_CONTEXT"); ctxStr != "" {
		if ctx, err := strconv.Atoi(ctxStr); err == nil && ctx >= 0 {
			cfg.DiffContext = ctx
		}
	}

	return cfg
}
