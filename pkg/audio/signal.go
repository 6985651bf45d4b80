package audio

import (
	"math"
	"time"
)

// PCMSignal is a mono PCM signal with float64 samples in roughly [-1, 1].
// It is the canonical result of the decode chain and the unit of work for
// preprocessing and feature extraction.
type PCMSignal struct {
	Samples    []float64 `json:"-"`
	SampleRate int       `json:"sample_rate"`
}

// NewPCMSignal creates a signal from samples and a sample rate.
func NewPCMSignal(samples []float64, sampleRate int) *PCMSignal {
	return &PCMSignal{
		Samples:    samples,
		SampleRate: sampleRate,
	}
}

// Empty reports whether the signal carries no samples.
func (s *PCMSignal) Empty() bool {
	return s == nil || len(s.Samples) == 0
}

// Duration returns the signal length in wall-clock time.
func (s *PCMSignal) Duration() time.Duration {
	if s.Empty() || s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(s.Samples)) / float64(s.SampleRate) * float64(time.Second))
}

// Peak returns the maximum absolute sample value.
func (s *PCMSignal) Peak() float64 {
	peak := 0.0
	if s == nil {
		return peak
	}
	for _, v := range s.Samples {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}

// DownmixInterleaved averages interleaved multi-channel samples into mono.
// Trailing samples that do not fill a whole frame are dropped. A channel
// count below 2 returns the input unchanged.
func DownmixInterleaved(samples []float64, channels int) []float64 {
	if channels <= 1 {
		return samples
	}

	frames := len(samples) / channels
	mono := make([]float64, frames)
	for i := range frames {
		sum := 0.0
		for c := range channels {
			sum += samples[i*channels+c]
		}
		mono[i] = sum / float64(channels)
	}
	return mono
}
