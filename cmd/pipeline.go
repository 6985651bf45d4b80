package cmd

import (
	"github.com/RyanBlaney/latency-benchmark-common/logging"

	"github.com/voxscreen/voxscreen/configs"
	"github.com/voxscreen/voxscreen/internal/screening"
	"github.com/voxscreen/voxscreen/pkg/audio/features"
	"github.com/voxscreen/voxscreen/pkg/audio/preprocess"
)

// pipelineConfig maps the loaded application config onto the screening
// pipeline's per-stage settings.
func pipelineConfig(cfg *configs.Config, logger logging.Logger) screening.PipelineConfig {
	return screening.PipelineConfig{
		MaxDuration: cfg.Audio.MaxDuration,
		MinDuration: cfg.Audio.MinDuration,
		Preprocess: preprocess.Config{
			TargetSampleRate:   cfg.Audio.TargetSampleRate,
			SilenceThresholdDB: cfg.Audio.SilenceThresholdDB,
			MinDuration:        cfg.Audio.PadMinDuration,
		},
		Features: features.Config{
			FrameLength:        cfg.Features.FrameLength,
			HopLength:          cfg.Features.HopLength,
			PitchMinHz:         cfg.Features.PitchMinHz,
			PitchMaxHz:         cfg.Features.PitchMaxHz,
			PeakMinDistance:    cfg.Features.PeakMinDistance,
			PeakMinHeightRatio: cfg.Features.PeakMinHeightRatio,
			HNRFrameLength:     cfg.Features.HNRFrameLength,
			HNRHopLength:       cfg.Features.HNRHopLength,
			MelFilters:         cfg.Features.MelFilters,
			MFCCCoefficients:   cfg.Features.MFCCCoefficients,
			RolloffThreshold:   cfg.Features.RolloffThreshold,
		},
		Logger: logger,
	}
}
