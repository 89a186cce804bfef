package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Query recorded context runs",
	Long: `Query the optional Postgres history store. Requires DATABASE_URL.

Subcommands:
  list - most recent runs, newest first

Example:
  go run ./cmd/brain history list
  go run ./cmd/brain history list --limit 10`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent context runs",
	RunE:  runHistoryList,
}

var historyLimit int

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)

	historyListCmd.Flags().IntVar(&historyLimit, "limit", 30, "maximum rows to show")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	p, err := initPipeline()
	if err != nil {
		return err
	}
	defer p.Close()

	if p.repo == nil {
		return fmt.Errorf("history store disabled, set DATABASE_URL to enable it")
	}

	ctx := context.Background()
	if err := p.repo.EnsureSchema(ctx); err != nil {
		return err
	}

	runs, err := p.repo.ListRecent(ctx, historyLimit)
	if err != nil {
		return err
	}

	PrintHeader("Context Run History")
	if len(runs) == 0 {
		PrintInfo("No runs recorded yet")
		return nil
	}

	widths := []int{12, 10, 6, 8, 6, 6}
	PrintTableHeader([]string{"DATE", "SYMBOL", "SCORE", "LEVEL", "BIAS", "RISK"}, widths)
	for _, run := range runs {
		PrintTableRow(formatRun(run), widths)
	}

	return nil
}
