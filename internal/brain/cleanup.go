package brain

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Prune removes context artifacts whose embedded date is older than the
// retention window. Returns how many artifacts were removed.
func (w *Writer) Prune(retentionDays int, now time.Time) (int, error) {
	if retentionDays <= 0 {
		return 0, fmt.Errorf("retention days must be positive")
	}

	entries, err := os.ReadDir(w.outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read output directory: %w", err)
	}

	cutoff := now.AddDate(0, 0, -retentionDays)
	removed := 0

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || len(name) != len("Daily_Context_2006-01-02.json") || name[:14] != "Daily_Context_" {
			continue
		}
		date, err := time.Parse("2006-01-02", name[14:24])
		if err != nil {
			continue
		}
		if !date.Before(cutoff) {
			continue
		}

		path := filepath.Join(w.outputDir, name)
		if err := os.Remove(path); err != nil {
			w.logger.WithError(err).WithField("path", path).Warn("Failed to remove artifact")
			continue
		}
		removed++
		w.logger.WithField("path", path).Debug("Removed expired artifact")
	}

	if removed > 0 {
		w.logger.WithField("removed", removed).Info("Artifact cleanup completed")
	}

	return removed, nil
}
