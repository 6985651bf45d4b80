package configs

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets default configuration values for all components
func setDefaults(v *viper.Viper) {
	// Server defaults
	if !v.IsSet("server.host") {
		v.Set("server.host", "0.0.0.0")
	}
	if !v.IsSet("server.port") {
		v.Set("server.port", 8080)
	}
	if !v.IsSet("server.max_body_size") {
		v.Set("server.max_body_size", int64(25<<20))
	}
	if !v.IsSet("server.debug") {
		v.Set("server.debug", false)
	}

	// Audio defaults
	if !v.IsSet("audio.max_duration") {
		v.Set("audio.max_duration", 10*time.Second)
	}
	if !v.IsSet("audio.min_duration") {
		v.Set("audio.min_duration", 100*time.Millisecond)
	}
	if !v.IsSet("audio.target_sample_rate") {
		v.Set("audio.target_sample_rate", 22050)
	}
	if !v.IsSet("audio.silence_threshold_db") {
		v.Set("audio.silence_threshold_db", 20.0)
	}
	if !v.IsSet("audio.pad_min_duration") {
		v.Set("audio.pad_min_duration", 500*time.Millisecond)
	}

	// Feature extraction defaults
	if !v.IsSet("features.frame_length") {
		v.Set("features.frame_length", 2048)
	}
	if !v.IsSet("features.hop_length") {
		v.Set("features.hop_length", 512)
	}
	if !v.IsSet("features.pitch_min_hz") {
		v.Set("features.pitch_min_hz", 50.0)
	}
	if !v.IsSet("features.pitch_max_hz") {
		v.Set("features.pitch_max_hz", 400.0)
	}
	if !v.IsSet("features.peak_min_distance") {
		v.Set("features.peak_min_distance", 5*time.Millisecond)
	}
	if !v.IsSet("features.peak_min_height_ratio") {
		v.Set("features.peak_min_height_ratio", 0.1)
	}
	if !v.IsSet("features.hnr_frame_length") {
		v.Set("features.hnr_frame_length", 1024)
	}
	if !v.IsSet("features.hnr_hop_length") {
		v.Set("features.hnr_hop_length", 256)
	}
	if !v.IsSet("features.mel_filters") {
		v.Set("features.mel_filters", 26)
	}
	if !v.IsSet("features.mfcc_coefficients") {
		v.Set("features.mfcc_coefficients", 13)
	}
	if !v.IsSet("features.rolloff_threshold") {
		v.Set("features.rolloff_threshold", 0.85)
	}

	// Model defaults
	if !v.IsSet("model.scaler_path") {
		v.Set("model.scaler_path", "artifacts/scaler.json")
	}
	if !v.IsSet("model.model_path") {
		v.Set("model.model_path", "artifacts/model.json")
	}
	if !v.IsSet("model.threshold") {
		v.Set("model.threshold", 0.5)
	}

	// Application defaults
	if !v.IsSet("verbose") {
		v.Set("verbose", false)
	}
	if !v.IsSet("log_level") {
		v.Set("log_level", "info")
	}
	if !v.IsSet("output_format") {
		v.Set("output_format", "json")
	}
}

// GetDefaultConfig returns a Config struct with all default values set
func GetDefaultConfig() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		Verbose:      false,
		LogLevel:     "info",
		OutputFormat: "json",
		ConfigDir:    filepath.Join(home, ".config", "voxscreen"),
		DataDir:      filepath.Join(home, ".local", "share", "voxscreen"),

		Server:   GetDefaultServerConfig(),
		Audio:    GetDefaultAudioConfig(),
		Features: GetDefaultFeaturesConfig(),
		Model:    GetDefaultModelConfig(),
	}
}

// GetDefaultServerConfig returns default HTTP serving settings
func GetDefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:        "0.0.0.0",
		Port:        8080,
		MaxBodySize: 25 << 20,
		Debug:       false,
	}
}

// GetDefaultAudioConfig returns default decode and preprocessing settings
func GetDefaultAudioConfig() AudioConfig {
	return AudioConfig{
		MaxDuration:        10 * time.Second,
		MinDuration:        100 * time.Millisecond,
		TargetSampleRate:   22050,
		SilenceThresholdDB: 20.0,
		PadMinDuration:     500 * time.Millisecond,
	}
}

// GetDefaultFeaturesConfig returns default feature extraction settings.
// These values pair with the trained model artifacts; changing them
// invalidates the scaler and classifier.
func GetDefaultFeaturesConfig() FeaturesConfig {
	return FeaturesConfig{
		FrameLength:        2048,
		HopLength:          512,
		PitchMinHz:         50.0,
		PitchMaxHz:         400.0,
		PeakMinDistance:    5 * time.Millisecond,
		PeakMinHeightRatio: 0.1,
		HNRFrameLength:     1024,
		HNRHopLength:       256,
		MelFilters:         26,
		MFCCCoefficients:   13,
		RolloffThreshold:   0.85,
	}
}

// GetDefaultModelConfig returns default model artifact settings
func GetDefaultModelConfig() ModelConfig {
	return ModelConfig{
		ScalerPath: "artifacts/scaler.json",
		ModelPath:  "artifacts/model.json",
		Threshold:  0.5,
	}
}
