package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xieerduoyishengzhidi/pentosh-brain/pkg/config"
	"github.com/xieerduoyishengzhidi/pentosh-brain/pkg/logger"
)

// testLoggerCmd represents the test-logger command
var testLoggerCmd = &cobra.Command{
	Use:   "test-logger",
	Short: "Logger smoke test",
	Long: `Exercise the structured logger.

This command covers:
- JSON/Console format output
- Log levels
- Structured field logging
- Error context logging

Example:
  go run ./cmd/brain test-logger`,
	RunE: runTestLogger,
}

func init() {
	rootCmd.AddCommand(testLoggerCmd)
}

func runTestLogger(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Pentosh Brain Logger Test ===")

	fmt.Println("1. JSON Format (Production)")
	fmt.Println("--------------------------------")
	testJSONFormat()
	fmt.Println()

	fmt.Println("2. Console Format (Development)")
	fmt.Println("--------------------------------")
	testConsoleFormat()
	fmt.Println()

	fmt.Println("3. Structured Logging with Fields")
	fmt.Println("--------------------------------")
	testStructuredLogging()
	fmt.Println()

	fmt.Println("4. Error Logging")
	fmt.Println("--------------------------------")
	testErrorLogging()
	fmt.Println()

	fmt.Println("✅ All logger tests completed!")
	return nil
}

func testJSONFormat() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}

	log := logger.New(cfg)
	log.Info("Service started")
	log.Warn("ETF flow data missing, demoting to absence")
	log.Error("Upstream health check failed")
}

func testConsoleFormat() {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "debug",
		LogFormat: "console",
	}

	log := logger.New(cfg)
	log.Debug("HTTP request started")
	log.Info("Context build completed")
	log.Warn("Cache miss, reading artifact from disk")
}

func testStructuredLogging() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	// Single field
	runLog := log.WithField("symbol", "BTC/USDT")
	runLog.Info("Context generation started")

	// Multiple fields
	scoreLog := log.WithFields(map[string]interface{}{
		"macro_score": 65,
		"level":       "bullish",
		"bias":        "long",
		"risk":        "low",
	})
	scoreLog.Info("Signals derived")

	// Chained fields
	log.WithField("module", "liquidity_collector").
		WithField("source", "fred").
		Info("Layer collection started")
}

func testErrorLogging() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "error",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	// Simple error
	err := errors.New("connection timeout")
	log.WithError(err).Error("Failed to fetch FRED series")

	// Error with context
	log.WithError(err).
		WithFields(map[string]interface{}{
			"series_id":  "WALCL",
			"timeout_ms": 30000,
			"endpoint":   "/api/fred/series",
		}).
		Error("Component fetch failed, indicator absent")
}
