package configs

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEmptyViper(t *testing.T) {
	cfg, err := LoadConfigFrom(viper.New())
	require.NoError(t, err)

	def := GetDefaultConfig()
	assert.Equal(t, def.Server, cfg.Server)
	assert.Equal(t, def.Audio, cfg.Audio)
	assert.Equal(t, def.Features, cfg.Features)
	assert.Equal(t, def.Model, cfg.Model)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.OutputFormat)

	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadConfigFromRespectsSetValues(t *testing.T) {
	v := viper.New()
	v.Set("server.port", 9090)
	v.Set("audio.target_sample_rate", 16000)

	cfg, err := LoadConfigFrom(v)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 16000, cfg.Audio.TargetSampleRate)
	// Unset keys still land on defaults.
	assert.Equal(t, 2048, cfg.Features.FrameLength)
	assert.Equal(t, 100*time.Millisecond, cfg.Audio.MinDuration)
}

func TestGetDefaultConfigValidates(t *testing.T) {
	cfg := GetDefaultConfig()
	require.NoError(t, ValidateConfig(cfg))

	assert.Equal(t, 22050, cfg.Audio.TargetSampleRate)
	assert.Equal(t, 50.0, cfg.Features.PitchMinHz)
	assert.Equal(t, 400.0, cfg.Features.PitchMaxHz)
	assert.Equal(t, 13, cfg.Features.MFCCCoefficients)
	assert.Equal(t, 0.5, cfg.Model.Threshold)
}

func TestValidateConfigRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"negative max duration", func(c *Config) { c.Audio.MaxDuration = -time.Second }},
		{"empty pitch band", func(c *Config) { c.Features.PitchMinHz = 500 }},
		{"rolloff above one", func(c *Config) { c.Features.RolloffThreshold = 1.5 }},
		{"threshold above one", func(c *Config) { c.Model.Threshold = 2 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, ValidateConfig(cfg))
		})
	}
}
