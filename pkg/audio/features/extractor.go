// Package features computes a fixed-order acoustic feature vector from a
// mono PCM signal: pitch and jitter from short-time autocorrelation, shimmer
// from waveform peak amplitudes, a harmonics-to-noise ratio, mel-frequency
// cepstral coefficients, spectral summary statistics and waveform
// statistics. The algorithms are deliberately cheap approximations; their
// thresholds and frame geometries are frozen because the downstream
// classifier was trained against exactly these definitions.
package features

import (
	"math"
	"time"

	"github.com/RyanBlaney/latency-benchmark-common/logging"

	"github.com/voxscreen/voxscreen/pkg/audio"
)

// Config holds the extraction parameters. The defaults are load-bearing
// constants; see DefaultConfig.
type Config struct {
	// FrameLength and HopLength set the analysis window for pitch, MFCC
	// and spectral features.
	FrameLength int
	HopLength   int

	// PitchMinHz and PitchMaxHz bound the voiced F0 search band.
	PitchMinHz float64
	PitchMaxHz float64

	// PeakMinDistance and PeakMinHeightRatio control shimmer peak picking.
	PeakMinDistance    time.Duration
	PeakMinHeightRatio float64

	// HNRFrameLength and HNRHopLength set the HNR analysis window.
	HNRFrameLength int
	HNRHopLength   int

	// MelFilters and MFCCCoefficients size the cepstral computation.
	MelFilters       int
	MFCCCoefficients int

	// RolloffThreshold is the spectral rolloff energy fraction.
	RolloffThreshold float64

	Logger logging.Logger
}

// DefaultConfig returns the canonical extraction parameters.
func DefaultConfig() Config {
	return Config{
		FrameLength:        2048,
		HopLength:          512,
		PitchMinHz:         50,
		PitchMaxHz:         400,
		PeakMinDistance:    5 * time.Millisecond,
		PeakMinHeightRatio: 0.1,
		HNRFrameLength:     1024,
		HNRHopLength:       256,
		MelFilters:         26,
		MFCCCoefficients:   mfccCount,
		RolloffThreshold:   0.85,
	}
}

// Extractor computes feature vectors. It is stateless apart from its
// configuration and safe for concurrent use.
type Extractor struct {
	cfg    Config
	logger logging.Logger
}

// New creates an extractor. Zero-valued config fields fall back to the
// defaults.
func New(cfg Config) *Extractor {
	def := DefaultConfig()
	if cfg.FrameLength <= 0 {
		cfg.FrameLength = def.FrameLength
	}
	if cfg.HopLength <= 0 {
		cfg.HopLength = def.HopLength
	}
	if cfg.PitchMinHz <= 0 {
		cfg.PitchMinHz = def.PitchMinHz
	}
	if cfg.PitchMaxHz <= 0 {
		cfg.PitchMaxHz = def.PitchMaxHz
	}
	if cfg.PeakMinDistance <= 0 {
		cfg.PeakMinDistance = def.PeakMinDistance
	}
	if cfg.PeakMinHeightRatio <= 0 {
		cfg.PeakMinHeightRatio = def.PeakMinHeightRatio
	}
	if cfg.HNRFrameLength <= 0 {
		cfg.HNRFrameLength = def.HNRFrameLength
	}
	if cfg.HNRHopLength <= 0 {
		cfg.HNRHopLength = def.HNRHopLength
	}
	if cfg.MelFilters <= 0 {
		cfg.MelFilters = def.MelFilters
	}
	if cfg.MFCCCoefficients <= 0 || cfg.MFCCCoefficients > mfccCount {
		cfg.MFCCCoefficients = def.MFCCCoefficients
	}
	if cfg.RolloffThreshold <= 0 {
		cfg.RolloffThreshold = def.RolloffThreshold
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	return &Extractor{
		cfg:    cfg,
		logger: logger.WithFields(logging.Fields{"component": "feature_extractor"}),
	}
}

// Extract computes the full 34-slot feature vector. It never fails outward:
// sub-extractors that cannot produce a value leave their slots at 0.0, and
// an empty signal yields an all-zero vector the caller can detect with
// Vector.Degenerate.
func (e *Extractor) Extract(sig *audio.PCMSignal) Vector {
	var v Vector
	if sig.Empty() || sig.SampleRate <= 0 {
		return v
	}

	track := e.f0Track(sig)
	v[SlotPitch] = sanitize(pitchFromTrack(track))
	v[SlotJitter] = sanitize(jitterFromTrack(track))
	v[SlotShimmer] = sanitize(e.shimmer(sig))
	v[SlotHNR] = sanitize(e.hnr(sig))

	for i, c := range e.mfcc(sig) {
		v[SlotMFCC0+i] = sanitize(c)
	}

	spec := e.spectralFeatures(sig)
	v[SlotCentroidMean] = sanitize(spec.CentroidMean)
	v[SlotCentroidStd] = sanitize(spec.CentroidStd)
	v[SlotRolloffMean] = sanitize(spec.RolloffMean)
	v[SlotRolloffStd] = sanitize(spec.RolloffStd)
	v[SlotBandwidthMean] = sanitize(spec.BandwidthMean)
	v[SlotBandwidthStd] = sanitize(spec.BandwidthStd)
	v[SlotZCRMean] = sanitize(spec.ZCRMean)
	v[SlotZCRStd] = sanitize(spec.ZCRStd)

	stats := computeWaveformStats(sig.Samples)
	v[SlotStatMean] = sanitize(stats.Mean)
	v[SlotStatStd] = sanitize(stats.Std)
	v[SlotStatVar] = sanitize(stats.Var)
	v[SlotStatMedian] = sanitize(stats.Median)
	v[SlotStatMin] = sanitize(stats.Min)
	v[SlotStatMax] = sanitize(stats.Max)
	v[SlotStatRange] = sanitize(stats.Range)
	v[SlotStatSkewness] = sanitize(stats.Skewness)
	v[SlotStatKurtosis] = sanitize(stats.Kurtosis)

	e.logger.Debug("feature vector extracted", logging.Fields{
		"samples":      len(sig.Samples),
		"sample_rate":  sig.SampleRate,
		"voiced_count": len(track),
		"pitch":        v[SlotPitch],
		"degenerate":   v.Degenerate(),
	})

	return v
}

// sanitize clamps non-finite intermediate results to the degraded default.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
