package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/contracts"
	"github.com/xieerduoyishengzhidi/pentosh-brain/pkg/database"
	"github.com/xieerduoyishengzhidi/pentosh-brain/pkg/logger"
)

// Repository persists one row per context run, keyed by date and symbol.
// The store is optional: the artifact on disk stays the document of record
// and rows here only exist for trend queries.
// SSOT: history SQL lives only in this package.
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a history repository.
func NewRepository(db *database.DB, log *logger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: log.WithField("module", "history"),
	}
}

// Run is one recorded context run.
type Run struct {
	Date       string    `json:"date"`
	Symbol     string    `json:"symbol"`
	MacroScore int       `json:"macro_score"`
	MacroLevel string    `json:"macro_level"`
	Bias       string    `json:"overall_bias"`
	Risk       string    `json:"risk_level"`
	CreatedAt  time.Time `json:"created_at"`
}

// EnsureSchema creates the history table when missing.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS daily_context_runs (
			run_date     DATE        NOT NULL,
			symbol       TEXT        NOT NULL,
			macro_score  INTEGER     NOT NULL,
			macro_level  TEXT        NOT NULL,
			overall_bias TEXT        NOT NULL,
			risk_level   TEXT        NOT NULL,
			context      JSONB       NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (run_date, symbol)
		)`)
	if err != nil {
		return fmt.Errorf("ensure history schema: %w", err)
	}
	return nil
}

// Save upserts one run. Re-running the same date and symbol replaces the
// previous row, matching the artifact replacement semantics on disk.
func (r *Repository) Save(ctx context.Context, dc *contracts.DailyContext) error {
	doc, err := json.Marshal(dc)
	if err != nil {
		return fmt.Errorf("marshal context for history: %w", err)
	}

	score := 0
	level := string(contracts.LevelNeutral)
	if dc.Layer1.Score != nil {
		score = dc.Layer1.Score.Score
		level = string(dc.Layer1.Score.Level)
	}

	_, err = r.db.Pool.Exec(ctx, `
		INSERT INTO daily_context_runs
			(run_date, symbol, macro_score, macro_level, overall_bias, risk_level, context)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (run_date, symbol) DO UPDATE SET
			macro_score  = EXCLUDED.macro_score,
			macro_level  = EXCLUDED.macro_level,
			overall_bias = EXCLUDED.overall_bias,
			risk_level   = EXCLUDED.risk_level,
			context      = EXCLUDED.context,
			created_at   = now()`,
		dc.Date, dc.Symbol, score, level,
		string(dc.Signals.OverallBias), string(dc.Signals.RiskLevel), doc)
	if err != nil {
		return fmt.Errorf("save context run: %w", err)
	}

	r.logger.WithFields(map[string]interface{}{
		"date":   dc.Date,
		"symbol": dc.Symbol,
		"score":  score,
	}).Debug("Context run recorded")

	return nil
}

// ListRecent returns the most recent runs, newest first.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 30
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT run_date::text, symbol, macro_score, macro_level, overall_bias, risk_level, created_at
		FROM daily_context_runs
		ORDER BY run_date DESC, symbol
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query context runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.Date, &run.Symbol, &run.MacroScore,
			&run.MacroLevel, &run.Bias, &run.Risk, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan context run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate context runs: %w", err)
	}

	return runs, nil
}
