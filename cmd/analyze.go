package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"github.com/spf13/cobra"

	"github.com/voxscreen/voxscreen/configs"
	"github.com/voxscreen/voxscreen/internal/screening"
	"github.com/voxscreen/voxscreen/pkg/audio/decode"
	"github.com/voxscreen/voxscreen/pkg/audio/features"
)

var (
	analyzeScalerPath   string
	analyzeModelPath    string
	analyzeFeaturesOnly bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [audio-file]",
	Short: "Score a local audio file",
	Long: `Decode a local audio file, extract its acoustic feature vector and
run the classifier.

Examples:
  # Score a recording
  voxscreen analyze sample.wav

  # Print the raw feature vector without a model
  voxscreen analyze --features-only sample.mp3`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeScalerPath, "scaler", "",
		"path to scaler JSON artifact")
	analyzeCmd.Flags().StringVar(&analyzeModelPath, "model", "",
		"path to model JSON artifact")
	analyzeCmd.Flags().BoolVar(&analyzeFeaturesOnly, "features-only", false,
		"extract features without scoring")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := configs.LoadConfig()
	if err != nil {
		return err
	}
	if analyzeScalerPath != "" {
		cfg.Model.ScalerPath = analyzeScalerPath
	}
	if analyzeModelPath != "" {
		cfg.Model.ModelPath = analyzeModelPath
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	blob := decode.Blob{Data: data, Filename: filepath.Base(path)}

	logger := logging.NewDefaultLogger()

	if analyzeFeaturesOnly {
		pipeline := screening.NewPipeline(pipelineConfig(cfg, logger))
		result, err := pipeline.Run(cmd.Context(), blob)
		if err != nil {
			return err
		}
		return printJSON(map[string]any{
			"features":    result.Vector.Named(),
			"order":       features.SlotNames(),
			"pcm_length":  result.PCMLength,
			"sample_rate": result.SampleRate,
		})
	}

	screener, err := buildScreener(cfg, logger)
	if err != nil {
		return err
	}
	result, err := screener.Screen(cmd.Context(), blob)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
