package configs

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose      bool   `mapstructure:"verbose"`
	LogLevel     string `mapstructure:"log_level"`
	OutputFormat string `mapstructure:"output_format"`
	ConfigDir    string `mapstructure:"config_dir"`
	DataDir      string `mapstructure:"data_dir"`

	// HTTP server configuration
	Server ServerConfig `mapstructure:"server"`

	// Audio decode and preprocessing configuration
	Audio AudioConfig `mapstructure:"audio"`

	// Feature extraction configuration
	Features FeaturesConfig `mapstructure:"features"`

	// Model artifact configuration
	Model ModelConfig `mapstructure:"model"`
}

// ServerConfig contains HTTP serving settings
type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	MaxBodySize int64  `mapstructure:"max_body_size"`
	Debug       bool   `mapstructure:"debug"`
}

// AudioConfig contains decode and preprocessing settings
type AudioConfig struct {
	MaxDuration        time.Duration `mapstructure:"max_duration"`
	MinDuration        time.Duration `mapstructure:"min_duration"`
	TargetSampleRate   int           `mapstructure:"target_sample_rate"`
	SilenceThresholdDB float64       `mapstructure:"silence_threshold_db"`
	PadMinDuration     time.Duration `mapstructure:"pad_min_duration"`
}

// FeaturesConfig contains feature extraction settings
type FeaturesConfig struct {
	FrameLength        int           `mapstructure:"frame_length"`
	HopLength          int           `mapstructure:"hop_length"`
	PitchMinHz         float64       `mapstructure:"pitch_min_hz"`
	PitchMaxHz         float64       `mapstructure:"pitch_max_hz"`
	PeakMinDistance    time.Duration `mapstructure:"peak_min_distance"`
	PeakMinHeightRatio float64       `mapstructure:"peak_min_height_ratio"`
	HNRFrameLength     int           `mapstructure:"hnr_frame_length"`
	HNRHopLength       int           `mapstructure:"hnr_hop_length"`
	MelFilters         int           `mapstructure:"mel_filters"`
	MFCCCoefficients   int           `mapstructure:"mfcc_coefficients"`
	RolloffThreshold   float64       `mapstructure:"rolloff_threshold"`
}

// ModelConfig contains model artifact settings
type ModelConfig struct {
	ScalerPath string  `mapstructure:"scaler_path"`
	ModelPath  string  `mapstructure:"model_path"`
	Threshold  float64 `mapstructure:"threshold"`
}

// LoadConfig loads configuration from the global viper instance. Unset keys
// fall back to defaults so loading works with or without a config file.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(viper.GetViper())
}

// LoadConfigFrom loads configuration from the given viper instance.
func LoadConfigFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	config := GetDefaultConfig()
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}

	if config.Audio.MaxDuration <= 0 {
		return fmt.Errorf("audio max duration must be positive")
	}

	if config.Audio.TargetSampleRate <= 0 {
		return fmt.Errorf("target sample rate must be positive")
	}

	if config.Features.FrameLength <= 0 {
		return fmt.Errorf("frame length must be positive")
	}

	if config.Features.HopLength <= 0 {
		return fmt.Errorf("hop length must be positive")
	}

	if config.Features.PitchMinHz >= config.Features.PitchMaxHz {
		return fmt.Errorf("pitch band is empty: min %.1f Hz, max %.1f Hz",
			config.Features.PitchMinHz, config.Features.PitchMaxHz)
	}

	if config.Features.RolloffThreshold <= 0 || config.Features.RolloffThreshold > 1 {
		return fmt.Errorf("rolloff threshold must be between 0 and 1")
	}

	if config.Model.Threshold < 0 || config.Model.Threshold > 1 {
		return fmt.Errorf("decision threshold must be between 0 and 1")
	}

	return nil
}
