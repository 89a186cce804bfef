package commands

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/contracts"
	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/history"
)

// contextCmd represents the context command
var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Daily context generation and inspection",
	Long: `Generate or inspect daily context artifacts.

Subcommands:
  generate - collect all layers, derive signals, write the artifact
  show     - print a previously written artifact

Example:
  go run ./cmd/brain context generate
  go run ./cmd/brain context generate ETH/USDT
  go run ./cmd/brain context show 2024-11-02`,
}

var contextGenerateCmd = &cobra.Command{
	Use:   "generate [symbol]",
	Short: "Generate today's context artifact",
	Long: `Run one full collection: probe upstream health, collect the four
indicator layers, score global liquidity, derive the signal vector and
write Daily_Context_<date>.json.

Partial data never fails the run; only an unreachable upstream or a
storage failure does.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runContextGenerate,
}

var contextShowCmd = &cobra.Command{
	Use:   "show [date]",
	Short: "Print a written context artifact",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runContextShow,
}

func init() {
	rootCmd.AddCommand(contextCmd)
	contextCmd.AddCommand(contextGenerateCmd)
	contextCmd.AddCommand(contextShowCmd)
}

func runContextGenerate(cmd *cobra.Command, args []string) error {
	p, err := initPipeline()
	if err != nil {
		return err
	}
	defer p.Close()

	symbol := p.cfg.DefaultSymbol
	if len(args) > 0 {
		symbol = args[0]
	}

	PrintHeader("Pentosh1 Daily Context")
	PrintKeyValue("Symbol", symbol, 10)
	PrintKeyValue("Upstream", p.cfg.Macro.BaseURL, 10)
	PrintSeparator()

	start := time.Now()
	ctx := context.Background()

	dc, err := p.agg.BuildContext(ctx, symbol)
	if err != nil {
		PrintError(fmt.Sprintf("Context build failed: %v", err))
		return err
	}

	path, err := p.writer.Write(dc)
	if err != nil {
		PrintError(fmt.Sprintf("Artifact write failed: %v", err))
		return err
	}

	if p.repo != nil {
		if err := p.repo.EnsureSchema(ctx); err != nil {
			PrintWarning(fmt.Sprintf("History schema: %v", err))
		} else if err := p.repo.Save(ctx, dc); err != nil {
			PrintWarning(fmt.Sprintf("History record: %v", err))
		}
	}

	printRunSummary(dc, path, time.Since(start))
	return nil
}

func runContextShow(cmd *cobra.Command, args []string) error {
	p, err := initPipeline()
	if err != nil {
		return err
	}
	defer p.Close()

	var dc *contracts.DailyContext
	if len(args) > 0 {
		dc, err = p.writer.Read(args[0])
	} else {
		dc, err = p.writer.Latest()
	}
	if err != nil {
		return err
	}

	printRunSummary(dc, "", 0)
	return nil
}

// printRunSummary prints the boxed post-run summary, including which
// layers came back thin.
func printRunSummary(dc *contracts.DailyContext, path string, elapsed time.Duration) {
	PrintHeader("Run Summary  " + dc.Date)
	PrintKeyValue("Symbol", dc.Symbol, 16)

	if dc.Layer1.Score != nil {
		PrintKeyValue("Macro Score", fmt.Sprintf("%d (%s)", dc.Layer1.Score.Score, dc.Layer1.Score.Level), 16)
		if len(dc.Layer1.Score.Signals) > 0 {
			PrintList(dc.Layer1.Score.Signals)
		}
	}

	PrintSeparator()
	printLayerLine("L1 Liquidity", dc.Layer1)
	printLayerLine("L2 Flows", dc.Layer2)
	printLayerLine("L3 Structure", dc.Layer3)
	printLayerLine("L4 Sentiment", dc.Layer4)

	PrintSeparator()
	PrintKeyValue("Macro Trend", string(dc.Signals.MacroTrend), 16)
	PrintKeyValue("Momentum", string(dc.Signals.CryptoMomentum), 16)
	PrintKeyValue("Structure", string(dc.Signals.MarketStructure), 16)
	PrintKeyValue("Sentiment", sentimentLine(dc.Signals.Sentiment), 16)
	PrintKeyValue("Overall Bias", string(dc.Signals.OverallBias), 16)
	PrintKeyValue("Risk Level", string(dc.Signals.RiskLevel), 16)
	PrintDoubleSeparator()

	if path != "" {
		PrintSuccess(fmt.Sprintf("Artifact written: %s (%.1fs)", path, elapsed.Seconds()))
	}
}

func printLayerLine(label string, layer contracts.LayerResult) {
	if len(layer.Indicators) == 0 {
		PrintKeyValue(label, "empty", 16)
		return
	}

	names := make([]string, 0, len(layer.Indicators))
	for name := range layer.Indicators {
		names = append(names, name)
	}
	sort.Strings(names)

	PrintKeyValue(label, fmt.Sprintf("%d indicators", len(names)), 16)
	for _, name := range names {
		v := layer.Indicators[name]
		PrintKeyValue("  "+name, fmt.Sprintf("%.4g %s", *v.Value, v.Unit), 24)
	}
}

func sentimentLine(flags []contracts.SentimentFlag) string {
	if len(flags) == 0 {
		return "calm"
	}
	line := ""
	for i, f := range flags {
		if i > 0 {
			line += ", "
		}
		line += string(f)
	}
	return line
}

// formatRun renders one history row for the history table.
func formatRun(run history.Run) []string {
	return []string{
		run.Date,
		run.Symbol,
		fmt.Sprintf("%d", run.MacroScore),
		run.MacroLevel,
		run.Bias,
		run.Risk,
	}
}
