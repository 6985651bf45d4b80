// Package preprocess normalizes a decoded PCM signal for feature
// extraction: resample, peak-normalize, silence-trim and pad to a minimum
// analyzable length. The pipeline is pure and never fails outward; every
// stage degrades to a no-op when its own computation cannot complete.
package preprocess

import (
	"math"
	"time"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
	resampling "github.com/tphakala/go-audio-resampling"

	"github.com/voxscreen/voxscreen/pkg/audio"
)

// Config controls the preprocessing stages.
type Config struct {
	// TargetSampleRate is the rate the signal is resampled to.
	TargetSampleRate int

	// SilenceThresholdDB is the trim threshold in decibels below peak.
	SilenceThresholdDB float64

	// MinDuration is the minimum output length; shorter results are
	// zero-padded so frame-based extractors always see a full window.
	MinDuration time.Duration

	Logger logging.Logger
}

// DefaultConfig returns the canonical preprocessing settings: 22050 Hz,
// 20 dB trim threshold, 0.5 s minimum length.
func DefaultConfig() Config {
	return Config{
		TargetSampleRate:   22050,
		SilenceThresholdDB: 20,
		MinDuration:        500 * time.Millisecond,
	}
}

// Trim silence with the same frame geometry the feature extractors use.
const (
	trimFrameLength = 2048
	trimHopLength   = 512
)

// Preprocess runs the full pipeline on a signal and returns the cleaned
// result. The input is never mutated.
func Preprocess(sig *audio.PCMSignal, cfg Config) *audio.PCMSignal {
	if sig.Empty() {
		return sig
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	out := Resample(sig, cfg.TargetSampleRate, logger)
	out = PeakNormalize(out)
	out = TrimSilence(out, cfg.SilenceThresholdDB)
	out = PadToMinDuration(out, cfg.MinDuration)
	return out
}

// Resample converts the signal to the target rate with the band-limited
// polyphase resampler. On any failure the original signal is returned
// unchanged; downstream code tolerates a mismatched rate.
func Resample(sig *audio.PCMSignal, targetRate int, logger logging.Logger) *audio.PCMSignal {
	if sig.Empty() || targetRate <= 0 || sig.SampleRate == targetRate {
		return sig
	}

	r, err := resampling.New(&resampling.Config{
		InputRate:  float64(sig.SampleRate),
		OutputRate: float64(targetRate),
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		logger.Warn("resampler unavailable, keeping original rate", logging.Fields{
			"from_rate": sig.SampleRate,
			"to_rate":   targetRate,
			"error":     err.Error(),
		})
		return sig
	}

	out, err := r.Process(sig.Samples)
	if err != nil {
		logger.Warn("resampling failed, keeping original rate", logging.Fields{
			"from_rate": sig.SampleRate,
			"to_rate":   targetRate,
			"error":     err.Error(),
		})
		return sig
	}
	if tail, err := r.Flush(); err == nil {
		out = append(out, tail...)
	}

	return audio.NewPCMSignal(out, targetRate)
}

// PeakNormalize scales the signal so the peak magnitude is 1.0. A silent
// signal (peak exactly zero) is returned unchanged.
func PeakNormalize(sig *audio.PCMSignal) *audio.PCMSignal {
	if sig.Empty() {
		return sig
	}
	peak := sig.Peak()
	if peak == 0 {
		return sig
	}

	out := make([]float64, len(sig.Samples))
	for i, v := range sig.Samples {
		out[i] = v / peak
	}
	return audio.NewPCMSignal(out, sig.SampleRate)
}

// TrimSilence removes leading and trailing regions whose frame energy sits
// more than thresholdDB below the signal peak. When no frame exceeds the
// threshold the signal is returned untrimmed.
func TrimSilence(sig *audio.PCMSignal, thresholdDB float64) *audio.PCMSignal {
	if sig.Empty() || thresholdDB <= 0 {
		return sig
	}

	peak := sig.Peak()
	if peak == 0 {
		return sig
	}
	threshold := peak * math.Pow(10, -thresholdDB/20)

	n := len(sig.Samples)
	first, last := -1, -1
	for start := 0; start < n; start += trimHopLength {
		end := start + trimFrameLength
		if end > n {
			end = n
		}
		if frameRMS(sig.Samples[start:end]) > threshold {
			if first < 0 {
				first = start
			}
			last = end
		}
	}
	if first < 0 {
		return sig
	}

	return audio.NewPCMSignal(sig.Samples[first:last], sig.SampleRate)
}

// PadToMinDuration appends zeros until the signal is at least minDuration
// long at its own sample rate.
func PadToMinDuration(sig *audio.PCMSignal, minDuration time.Duration) *audio.PCMSignal {
	if sig.Empty() || minDuration <= 0 || sig.SampleRate <= 0 {
		return sig
	}

	minSamples := int(minDuration.Seconds() * float64(sig.SampleRate))
	if len(sig.Samples) >= minSamples {
		return sig
	}

	out := make([]float64, minSamples)
	copy(out, sig.Samples)
	return audio.NewPCMSignal(out, sig.SampleRate)
}

func frameRMS(frame []float64) float64 {
	if len(frame) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range frame {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(frame)))
}
