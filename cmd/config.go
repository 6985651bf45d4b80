package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/voxscreen/voxscreen/configs"
)

// configCmd represents the config inspection command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display and validate the effective configuration",
	Long: `Load the configuration and display all values in a structured format
to verify that your YAML configuration and environment overrides are being
parsed correctly.

Examples:
  # Show the effective config
  voxscreen config

  # Show a specific config file
  voxscreen --config /path/to/voxscreen.yaml config`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	fmt.Println("VOXSCREEN CONFIGURATION")
	fmt.Println(strings.Repeat("=", 80))

	config, err := configs.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if used := viper.ConfigFileUsed(); used != "" {
		printKeyValue("Config File", used)
	} else {
		printKeyValue("Config File", "(defaults only)")
	}

	printSection("APPLICATION SETTINGS")
	printKeyValue("Verbose", fmt.Sprintf("%t", config.Verbose))
	printKeyValue("Log Level", config.LogLevel)
	printKeyValue("Output Format", config.OutputFormat)
	printKeyValue("Config Directory", config.ConfigDir)
	printKeyValue("Data Directory", config.DataDir)

	printSection("SERVER CONFIGURATION")
	printKeyValue("Host", config.Server.Host)
	printKeyValue("Port", fmt.Sprintf("%d", config.Server.Port))
	printKeyValue("Max Body Size", fmt.Sprintf("%d bytes", config.Server.MaxBodySize))
	printKeyValue("Debug", fmt.Sprintf("%t", config.Server.Debug))

	printSection("AUDIO CONFIGURATION")
	printKeyValue("Max Duration", config.Audio.MaxDuration.String())
	printKeyValue("Min Duration", config.Audio.MinDuration.String())
	printKeyValue("Target Sample Rate", fmt.Sprintf("%d Hz", config.Audio.TargetSampleRate))
	printKeyValue("Silence Threshold", fmt.Sprintf("%.1f dB", config.Audio.SilenceThresholdDB))
	printKeyValue("Pad Min Duration", config.Audio.PadMinDuration.String())

	printSection("FEATURE EXTRACTION")
	printKeyValue("Frame Length", fmt.Sprintf("%d", config.Features.FrameLength))
	printKeyValue("Hop Length", fmt.Sprintf("%d", config.Features.HopLength))
	printKeyValue("Pitch Band", fmt.Sprintf("%.0f-%.0f Hz", config.Features.PitchMinHz, config.Features.PitchMaxHz))
	printKeyValue("Peak Min Distance", config.Features.PeakMinDistance.String())
	printKeyValue("Peak Min Height Ratio", fmt.Sprintf("%.2f", config.Features.PeakMinHeightRatio))
	printKeyValue("HNR Frame Length", fmt.Sprintf("%d", config.Features.HNRFrameLength))
	printKeyValue("HNR Hop Length", fmt.Sprintf("%d", config.Features.HNRHopLength))
	printKeyValue("Mel Filters", fmt.Sprintf("%d", config.Features.MelFilters))
	printKeyValue("MFCC Coefficients", fmt.Sprintf("%d", config.Features.MFCCCoefficients))
	printKeyValue("Rolloff Threshold", fmt.Sprintf("%.2f", config.Features.RolloffThreshold))

	printSection("MODEL ARTIFACTS")
	printKeyValue("Scaler Path", config.Model.ScalerPath)
	printKeyValue("Model Path", config.Model.ModelPath)
	printKeyValue("Decision Threshold", fmt.Sprintf("%.2f", config.Model.Threshold))

	printSection("VALIDATION")
	if err := configs.ValidateConfig(config); err != nil {
		printKeyValue("Status", fmt.Sprintf("INVALID: %v", err))
		return err
	}
	printKeyValue("Status", "OK")

	return nil
}

func printSection(title string) {
	fmt.Printf("\n%s\n", title)
	fmt.Println(strings.Repeat("-", len(title)))
}

func printKeyValue(key, value string) {
	if value == "" {
		fmt.Printf("%-35s\n", key)
	} else {
		fmt.Printf("%-35s %s\n", key+":", value)
	}
}
