package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/cv-analyzer/internal/config"
	"alfredoptarigan/cv-analyzer/internal/logger"
	"alfredoptarigan/cv-analyzer/internal/services"
)

const app = "cv-analyzer"

var rootCmd = &cobra.Command{
	Use:           app,
	Short:         "cv-analyzer compares a CV with a job description using an LLM",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads configuration for cmd and builds the logger and the
// services shared by every subcommand.
func bootstrap(cmd *cobra.Command) (*config.Config, *zap.Logger, *pipeline, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("creating a logger: %w", err)
	}

	inference, err := services.NewInferenceClient(cmd.Context(), cfg.Inference, log)
	if err != nil {
		return nil, nil, nil, err
	}

	if !cfg.HasAPIKey() {
		log.Warn("no inference API key configured, analysis requests will fail",
			zap.String("provider", inference.Provider()),
		)
	}

	storage := services.NewStorageService(cfg.Storage.UploadPath)

	p := &pipeline{
		storage:  storage,
		intake:   services.NewUploadIntake(storage, cfg.Storage.MaxFileSize, log),
		analyzer: services.NewAnalyzerService(services.NewPDFParserService(log), inference, log),
	}

	return cfg, log, p, nil
}

type pipeline struct {
	storage  services.StorageService
	intake   *services.UploadIntake
	analyzer services.AnalyzerService
}
