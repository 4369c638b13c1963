// Package audit records a run ledger for the actiontree CLI: one row per
// invocation, never the edit plan or tree contents themselves. Persisting
// the action tree is an explicit non-goal; this package only answers "what
// ran, when, and how much changed."
package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Run is one audit ledger row.
type Run struct {
	ID             string `gorm:"primaryKey"`
	StartedAt      time.Time
	FinishedAt     *time.Time
	FilesProcessed int
	EditsApplied   int
	ChangedBytes   int
	Success        bool
	ErrorMessage   string
	Policy         datatypes.JSON
}

// Connect opens dsn and migrates the Run table. debug enables gorm's query
// logger; the CLI always connects with debug off.
func Connect(dsn string, debug bool) (*gorm.DB, error) {
	cfg := &gorm.Config{}
	if !debug {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}
	db, err := gorm.Open(dialectorFor(dsn), cfg)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Run{}); err != nil {
		return nil, err
	}
	return db, nil
}

// BeginRun inserts a started Run row and returns its ID, a UUID rather than
// an auto-increment integer so ledgers from different machines can be
// merged without collision.
func BeginRun(db *gorm.DB, policyJSON []byte) (string, error) {
	run := Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		Policy:    datatypes.JSON(policyJSON),
	}
	if err := db.Create(&run).Error; err != nil {
		return "", err
	}
	return run.ID, nil
}

// FinishRun stamps runID's row with its outcome. runErr is the run's
// terminal error, if any; Success is false whenever it is non-nil.
func FinishRun(db *gorm.DB, runID string, filesProcessed, editsApplied, changedBytes int, runErr error) error {
	now := time.Now()
	updates := map[string]any{
		"finished_at":     now,
		"files_processed": filesProcessed,
		"edits_applied":   editsApplied,
		"changed_bytes":   changedBytes,
		"success":         runErr == nil,
	}
	if runErr != nil {
		updates["error_message"] = runErr.Error()
	}
	return db.Model(&Run{}).Where("id = ?", runID).Updates(updates).Error
}

// EnforceRetentionPolicy keeps only the keep most recent runs, deleting the
// rest. keep<=0 disables pruning.
func EnforceRetentionPolicy(db *gorm.DB, keep int) error {
	if keep <= 0 {
		return nil
	}
	var ids []string
	if err := db.Model(&Run{}).Order("started_at desc").Limit(keep).Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	return db.Where("id NOT IN ?", ids).Delete(&Run{}).Error
}
