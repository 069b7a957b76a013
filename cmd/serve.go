package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"storyboardgen/internal/app"
	"storyboardgen/internal/server"
	"storyboardgen/pkg/config"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the storyboard HTTP API",
	Long: `Serve the storyboard generation API. The server starts without
provider credentials; endpoints that need a missing provider degrade
instead of failing at startup.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Server.Port = servePort
	}

	service, err := app.BuildService(ctx, cfg)
	if err != nil {
		return err
	}

	if service.LLM() == nil {
		slog.Warn("GROQ_API_KEY not set; /api/generate-script will answer 502")
	}
	if service.Images() == nil {
		slog.Warn("HF_TOKEN not set; /api/generate-image will answer with transparent pixels")
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: server.New(cfg, service.LLM(), service.Images()).Router(),
	}

	go func() {
		slog.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	slog.Info("Server stopped")
	return nil
}
