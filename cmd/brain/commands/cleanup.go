package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// cleanupCmd represents the cleanup command
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Prune old context artifacts",
	Long: `Remove Daily_Context artifacts older than the retention window.

Example:
  go run ./cmd/brain cleanup
  go run ./cmd/brain cleanup --days 30`,
	RunE: runCleanup,
}

var cleanupDays int

func init() {
	rootCmd.AddCommand(cleanupCmd)

	cleanupCmd.Flags().IntVar(&cleanupDays, "days", 90, "retention window in days")
}

func runCleanup(cmd *cobra.Command, args []string) error {
	p, err := initPipeline()
	if err != nil {
		return err
	}
	defer p.Close()

	PrintHeader("Artifact Cleanup")
	PrintKeyValue("Directory", p.cfg.OutputDir, 10)
	PrintKeyValue("Retention", fmt.Sprintf("%d days", cleanupDays), 10)

	removed, err := p.writer.Prune(cleanupDays, time.Now())
	if err != nil {
		return err
	}

	PrintSuccess(fmt.Sprintf("Removed %d artifact(s)", removed))
	return nil
}
