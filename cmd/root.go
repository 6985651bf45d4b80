package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	configFile   string
	verbose      bool
	logLevel     string
	outputFormat string
	configDir    string
	dataDir      string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "voxscreen",
	Short: "Voice screening service and toolkit",
	Long: `Voxscreen analyzes short voice recordings and scores them with a
trained classifier. It decodes common audio formats with a fallback chain,
conditions the signal, extracts a fixed acoustic feature vector and runs
the loaded model.

Key features:
- MP3, WAV, AIFF, Ogg Vorbis and Opus decoding with format sniffing
- Deterministic acoustic feature extraction (pitch, jitter, shimmer,
  HNR, MFCC, spectral and waveform statistics)
- HTTP API for uploads and a CLI for local files
- Injectable scaler and classifier artifacts`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"config directory (default is $HOME/.config/voxscreen)")

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default is $HOME/.config/voxscreen/voxscreen.yaml)")

	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "",
		"data directory (default is $HOME/.local/share/voxscreen)")

	// Output and logging flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (debug, info, error)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "json",
		"output format (json, text)")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("output_format", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("config_dir", rootCmd.PersistentFlags().Lookup("config-dir"))
	viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if configFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(configFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		// Search config in home directory and /etc
		viper.AddConfigPath(home)
		viper.AddConfigPath(filepath.Join(home, ".config", "voxscreen"))
		viper.AddConfigPath("/etc/voxscreen")
		viper.AddConfigPath("./configs")
		viper.SetConfigName("voxscreen")
		viper.SetConfigType("yaml")
	}

	// Environment variable support
	viper.SetEnvPrefix("VOXSCREEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	// Set default values
	setDefaults()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		}
	}
}

// initializeConfig initializes configuration after flags are parsed
func initializeConfig(cmd *cobra.Command) error {
	// Bind all flags to viper
	return bindFlags(cmd, viper.GetViper())
}

// bindFlags binds each cobra flag to its associated viper configuration
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variable name
		envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))

		// Apply the viper config value to the flag when the flag is not set and viper has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				lastErr = err
			}
		}

		// Bind the flag to viper
		if err := v.BindPFlag(f.Name, f); err != nil {
			lastErr = err
		}

		// Bind to environment variable
		if err := v.BindEnv(f.Name, "VOXSCREEN_"+envVarSuffix); err != nil {
			lastErr = err
		}
	})

	return lastErr
}

// setDefaults sets default configuration values
func setDefaults() {
	// Application defaults
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("output_format", "json")

	// Directory defaults
	home, _ := os.UserHomeDir()
	viper.SetDefault("config_dir", filepath.Join(home, ".config", "voxscreen"))
	viper.SetDefault("data_dir", filepath.Join(home, ".local", "share", "voxscreen"))

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.max_body_size", 25<<20)

	// Audio defaults
	viper.SetDefault("audio.max_duration", "10s")
	viper.SetDefault("audio.min_duration", "100ms")
	viper.SetDefault("audio.target_sample_rate", 22050)
	viper.SetDefault("audio.silence_threshold_db", 20.0)
	viper.SetDefault("audio.pad_min_duration", "500ms")

	// Feature extraction defaults
	viper.SetDefault("features.frame_length", 2048)
	viper.SetDefault("features.hop_length", 512)
	viper.SetDefault("features.pitch_min_hz", 50.0)
	viper.SetDefault("features.pitch_max_hz", 400.0)
	viper.SetDefault("features.peak_min_distance", "5ms")
	viper.SetDefault("features.peak_min_height_ratio", 0.1)
	viper.SetDefault("features.hnr_frame_length", 1024)
	viper.SetDefault("features.hnr_hop_length", 256)
	viper.SetDefault("features.mel_filters", 26)
	viper.SetDefault("features.mfcc_coefficients", 13)
	viper.SetDefault("features.rolloff_threshold", 0.85)

	// Model defaults
	viper.SetDefault("model.scaler_path", "artifacts/scaler.json")
	viper.SetDefault("model.model_path", "artifacts/model.json")
	viper.SetDefault("model.threshold", 0.5)
}

// GetConfig returns the current viper instance
func GetConfig() *viper.Viper {
	return viper.GetViper()
}
