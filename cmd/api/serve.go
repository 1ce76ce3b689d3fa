package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/cv-analyzer/internal/server"
	"alfredoptarigan/cv-analyzer/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("port", "p", "4000", "port to listen on (overrides PORT)")
}

func serve(cmd *cobra.Command) error {
	cfg, log, p, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	if err := p.storage.EnsureUploadDir(); err != nil {
		return err
	}

	app := server.NewApp(cfg, server.Deps{
		Storage:  p.storage,
		Intake:   p.intake,
		Analyzer: p.analyzer,
		Gate:     services.NewRequestGate(cfg.RateLimit.Max, cfg.RateLimit.Window),
	}, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		log.Info("shutting down server", zap.String("signal", sig.String()))
		if err := app.Shutdown(); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("server starting",
		zap.String("addr", addr),
		zap.String("env", cfg.Server.Env),
		zap.String("upload_path", cfg.Storage.UploadPath),
	)

	if err := app.Listen(addr); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	log.Info("server stopped")
	return nil
}
