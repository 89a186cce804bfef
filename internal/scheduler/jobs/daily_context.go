package jobs

import (
	"context"
	"fmt"

	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/brain"
	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/history"
	"github.com/xieerduoyishengzhidi/pentosh-brain/pkg/config"
	"github.com/xieerduoyishengzhidi/pentosh-brain/pkg/logger"
)

// DailyContextJob generates one context artifact per day.
// SSOT: the daily generation schedule lives only in this job.
type DailyContextJob struct {
	aggregator *brain.Aggregator
	writer     *brain.Writer
	repo       *history.Repository // nil when the history store is disabled
	config     *config.Config
	logger     *logger.Logger
}

// NewDailyContextJob creates the daily context generation job.
func NewDailyContextJob(
	agg *brain.Aggregator,
	writer *brain.Writer,
	repo *history.Repository,
	cfg *config.Config,
	log *logger.Logger,
) *DailyContextJob {
	return &DailyContextJob{
		aggregator: agg,
		writer:     writer,
		repo:       repo,
		config:     cfg,
		logger:     log,
	}
}

// Name returns the job name
func (j *DailyContextJob) Name() string {
	return "daily_context"
}

// Schedule returns the cron schedule (daily at 00:10 UTC, after the
// previous trading day's ETF flow publication)
func (j *DailyContextJob) Schedule() string {
	return "0 10 0 * * *"
}

// Run builds and persists one daily context
func (j *DailyContextJob) Run(ctx context.Context) error {
	j.logger.WithField("symbol", j.config.DefaultSymbol).Info("Starting scheduled context generation")

	dc, err := j.aggregator.BuildContext(ctx, j.config.DefaultSymbol)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}

	path, err := j.writer.Write(dc)
	if err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}

	if j.repo != nil {
		if err := j.repo.Save(ctx, dc); err != nil {
			// Artifact is already on disk, the run itself succeeded
			j.logger.WithError(err).Warn("History record failed")
		}
	}

	j.logger.WithFields(map[string]interface{}{
		"path": path,
		"bias": dc.Signals.OverallBias,
		"risk": dc.Signals.RiskLevel,
	}).Info("Scheduled context generation completed")

	return nil
}
