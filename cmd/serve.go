package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"github.com/spf13/cobra"

	"github.com/voxscreen/voxscreen/configs"
	"github.com/voxscreen/voxscreen/internal/screening"
	"github.com/voxscreen/voxscreen/internal/server"
	"github.com/voxscreen/voxscreen/pkg/classify"
)

var (
	serveHost       string
	servePort       int
	serveScalerPath string
	serveModelPath  string
	serveDebug      bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the voice screening HTTP server",
	Long: `Start the HTTP API. Audio is uploaded as multipart form data to
POST /api/v1/analyze and scored synchronously.

Examples:
  # Serve with default artifacts
  voxscreen serve

  # Custom port and model artifacts
  voxscreen serve --port 9090 --scaler /models/scaler.json --model /models/model.json`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "",
		"listen address (defaults to config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0,
		"listen port (defaults to config)")
	serveCmd.Flags().StringVar(&serveScalerPath, "scaler", "",
		"path to scaler JSON artifact")
	serveCmd.Flags().StringVar(&serveModelPath, "model", "",
		"path to model JSON artifact")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false,
		"enable debug routing output")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := configs.LoadConfig()
	if err != nil {
		return err
	}
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}
	if serveScalerPath != "" {
		cfg.Model.ScalerPath = serveScalerPath
	}
	if serveModelPath != "" {
		cfg.Model.ModelPath = serveModelPath
	}
	cfg.Server.Debug = cfg.Server.Debug || serveDebug
	if err := configs.ValidateConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.NewDefaultLogger()

	screener, err := buildScreener(cfg, logger)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Host:        cfg.Server.Host,
		Port:        cfg.Server.Port,
		MaxBodySize: cfg.Server.MaxBodySize,
		Debug:       cfg.Server.Debug,
	}, screener, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

// buildScreener loads model artifacts and assembles the screening stack.
func buildScreener(cfg *configs.Config, logger logging.Logger) (*screening.Screener, error) {
	scaler, err := classify.LoadScaler(cfg.Model.ScalerPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load scaler: %w", err)
	}

	model, err := classify.LoadModel(cfg.Model.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	if cfg.Model.Threshold > 0 && cfg.Model.Threshold < 1 {
		model.Threshold = cfg.Model.Threshold
	}

	pipeline := screening.NewPipeline(pipelineConfig(cfg, logger))

	return screening.NewScreener(pipeline, scaler, model, logger)
}
