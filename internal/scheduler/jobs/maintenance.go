package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/brain"
	"github.com/xieerduoyishengzhidi/pentosh-brain/pkg/logger"
)

// defaultRetentionDays keeps three months of artifacts on disk.
const defaultRetentionDays = 90

// MaintenanceJob prunes expired context artifacts.
type MaintenanceJob struct {
	writer        *brain.Writer
	retentionDays int
	logger        *logger.Logger
}

// NewMaintenanceJob creates the artifact retention job.
func NewMaintenanceJob(writer *brain.Writer, log *logger.Logger) *MaintenanceJob {
	return &MaintenanceJob{
		writer:        writer,
		retentionDays: defaultRetentionDays,
		logger:        log,
	}
}

// Name returns the job name
func (j *MaintenanceJob) Name() string {
	return "maintenance"
}

// Schedule returns the cron schedule (weekly, Sunday 01:00 UTC)
func (j *MaintenanceJob) Schedule() string {
	return "0 0 1 * * 0"
}

// Run removes artifacts older than the retention window
func (j *MaintenanceJob) Run(ctx context.Context) error {
	removed, err := j.writer.Prune(j.retentionDays, time.Now())
	if err != nil {
		return fmt.Errorf("prune artifacts: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"removed":        removed,
		"retention_days": j.retentionDays,
	}).Info("Maintenance completed")

	return nil
}
