package brain

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/contracts"
	"github.com/xieerduoyishengzhidi/pentosh-brain/pkg/logger"
)

// Writer persists context artifacts.
// SSOT: artifact serialization and naming live only here.
type Writer struct {
	outputDir string
	logger    *logger.Logger
}

// NewWriter creates a Writer for the given output directory.
func NewWriter(outputDir string, log *logger.Logger) *Writer {
	return &Writer{
		outputDir: outputDir,
		logger:    log.WithField("module", "writer"),
	}
}

// Write serializes the context to its canonical artifact path. The file is
// staged in the same directory and moved into place with a rename, so a
// reader never observes a partially written artifact. Re-running on the
// same date replaces the previous artifact whole. Any failure here is
// fatal to the run.
func (w *Writer) Write(dc *contracts.DailyContext) (string, error) {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	data, err := json.MarshalIndent(dc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize context: %w", err)
	}

	finalPath := filepath.Join(w.outputDir, dc.Filename())

	tmp, err := os.CreateTemp(w.outputDir, dc.Filename()+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp artifact: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("write temp artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close temp artifact: %w", err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("publish artifact: %w", err)
	}

	w.logger.WithFields(map[string]interface{}{
		"path":  finalPath,
		"bytes": len(data),
	}).Info("Context artifact written")

	return finalPath, nil
}

// Read loads a previously written artifact by date (YYYY-MM-DD).
func (w *Writer) Read(date string) (*contracts.DailyContext, error) {
	path := filepath.Join(w.outputDir, "Daily_Context_"+date+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", path, err)
	}

	var dc contracts.DailyContext
	if err := json.Unmarshal(data, &dc); err != nil {
		return nil, fmt.Errorf("parse artifact %s: %w", path, err)
	}

	return &dc, nil
}

// Latest returns the most recent artifact by date ordering of filenames.
func (w *Writer) Latest() (*contracts.DailyContext, error) {
	entries, err := os.ReadDir(w.outputDir)
	if err != nil {
		return nil, fmt.Errorf("read output directory: %w", err)
	}

	latest := ""
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || len(name) != len("Daily_Context_2006-01-02.json") {
			continue
		}
		if name[:14] != "Daily_Context_" || filepath.Ext(name) != ".json" {
			continue
		}
		// Date names sort lexicographically in chronological order.
		if name > latest {
			latest = name
		}
	}
	if latest == "" {
		return nil, fmt.Errorf("no context artifacts in %s", w.outputDir)
	}

	return w.Read(latest[14 : len(latest)-len(".json")])
}
