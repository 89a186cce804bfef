package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Probe the upstream data service",
	Long: `Probe the upstream macro data service /health endpoint and report
provider availability. A failing probe here means a generation run would
abort at the health gate.

Example:
  go run ./cmd/brain status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	p, err := initPipeline()
	if err != nil {
		return err
	}
	defer p.Close()

	PrintHeader("Upstream Status")
	PrintKeyValue("URL", p.cfg.Macro.BaseURL, 10)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	health, err := p.client.Health(ctx)
	if err != nil {
		PrintError(fmt.Sprintf("Upstream unreachable: %v", err))
		return err
	}

	PrintKeyValue("Status", health.Status, 10)
	PrintSeparator()
	PrintKeyValue("FRED", availability(health.FredAvailable), 16)
	PrintKeyValue("yfinance", availability(health.YFinanceAvailable), 16)
	PrintKeyValue("DeFiLlama", availability(health.DefillamaAvailable), 16)
	PrintKeyValue("Crypto fetcher", availability(health.CryptoFetcherAvailable), 16)
	PrintDoubleSeparator()

	PrintSuccess("Upstream healthy")
	return nil
}

func availability(ok bool) string {
	if ok {
		return "available"
	}
	return "unavailable"
}
