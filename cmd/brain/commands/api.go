package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/api"
	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the read-only context API server",
	Long: `Start the HTTP server that exposes written context artifacts to
downstream consumers. The API never triggers a generation run.

Endpoints:
  GET /health               - Health check
  GET /api/context/latest   - Most recent context artifact
  GET /api/context/{date}   - Artifact for one date (YYYY-MM-DD)
  GET /api/signals          - Signal vector of the latest artifact

Example:
  go run ./cmd/brain api
  go run ./cmd/brain api --port 8089`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	PrintHeader("Pentosh1 Context API")

	p, err := initPipeline()
	if err != nil {
		return err
	}
	defer p.Close()

	if apiPort != "" {
		p.cfg.Port = apiPort
	}

	contextHandler := handlers.NewContextHandler(p.writer, p.cache, p.log)
	router := api.NewRouter(contextHandler, p.log)
	server := api.New(p.cfg, p.log, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	PrintSuccess(fmt.Sprintf("API listening on :%s", p.cfg.Port))
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return err
	}

	PrintSuccess("API server stopped")
	return nil
}
