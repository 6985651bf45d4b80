package features

import (
	"math"

	"github.com/voxscreen/voxscreen/pkg/audio"
)

// spectralSummary holds mean and standard deviation of the per-frame
// spectral shape descriptors.
type spectralSummary struct {
	CentroidMean  float64
	CentroidStd   float64
	RolloffMean   float64
	RolloffStd    float64
	BandwidthMean float64
	BandwidthStd  float64
	ZCRMean       float64
	ZCRStd        float64
}

// spectralFeatures computes per-frame spectral centroid, rolloff, bandwidth
// and zero-crossing rate, then summarizes each track as mean and standard
// deviation. A signal shorter than one frame yields zeros.
func (e *Extractor) spectralFeatures(sig *audio.PCMSignal) spectralSummary {
	var out spectralSummary

	frames := audio.Frames(sig, e.cfg.FrameLength, e.cfg.HopLength)
	if frames.Count() == 0 {
		return out
	}

	sa := newSpectralAnalyzer(sig.SampleRate)
	window := hannWindow(e.cfg.FrameLength)

	centroids := make([]float64, frames.Count())
	rolloffs := make([]float64, frames.Count())
	bandwidths := make([]float64, frames.Count())
	zcrs := make([]float64, frames.Count())

	for i := range frames.Count() {
		frame := frames.Frame(i)
		magnitude := sa.MagnitudeSpectrum(frame, window)
		freqs := sa.FrequencyBins(len(magnitude))

		centroids[i] = spectralCentroid(magnitude, freqs)
		rolloffs[i] = spectralRolloff(magnitude, freqs, e.cfg.RolloffThreshold)
		bandwidths[i] = spectralBandwidth(magnitude, freqs, centroids[i])
		zcrs[i] = zeroCrossingRate(frame)
	}

	out.CentroidMean, out.CentroidStd = meanStd(centroids)
	out.RolloffMean, out.RolloffStd = meanStd(rolloffs)
	out.BandwidthMean, out.BandwidthStd = meanStd(bandwidths)
	out.ZCRMean, out.ZCRStd = meanStd(zcrs)
	return out
}

// spectralCentroid computes the magnitude-weighted mean frequency.
func spectralCentroid(magnitude, freqs []float64) float64 {
	if len(magnitude) != len(freqs) {
		return 0
	}

	numerator := 0.0
	denominator := 0.0
	for i := range magnitude {
		numerator += freqs[i] * magnitude[i]
		denominator += magnitude[i]
	}
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// spectralRolloff returns the frequency below which the given fraction of
// the spectral energy is contained.
func spectralRolloff(magnitude, freqs []float64, threshold float64) float64 {
	totalEnergy := 0.0
	for _, mag := range magnitude {
		totalEnergy += mag * mag
	}
	if totalEnergy == 0 {
		return 0
	}

	target := threshold * totalEnergy
	cumulative := 0.0
	for i := range magnitude {
		cumulative += magnitude[i] * magnitude[i]
		if cumulative >= target {
			if i < len(freqs) {
				return freqs[i]
			}
			break
		}
	}

	if len(freqs) > 0 {
		return freqs[len(freqs)-1]
	}
	return 0
}

// spectralBandwidth computes the magnitude-weighted spread around the
// centroid.
func spectralBandwidth(magnitude, freqs []float64, centroid float64) float64 {
	if len(magnitude) != len(freqs) {
		return 0
	}

	numerator := 0.0
	denominator := 0.0
	for i := range magnitude {
		diff := freqs[i] - centroid
		numerator += diff * diff * magnitude[i]
		denominator += magnitude[i]
	}
	if denominator == 0 {
		return 0
	}
	return math.Sqrt(numerator / denominator)
}

// zeroCrossingRate counts sign changes per sample in a frame.
func zeroCrossingRate(frame []float64) float64 {
	if len(frame) <= 1 {
		return 0
	}
	crossings := 0
	for i := 1; i < len(frame); i++ {
		if (frame[i-1] >= 0 && frame[i] < 0) || (frame[i-1] < 0 && frame[i] >= 0) {
			crossings++
		}
	}
	return float64(crossings) / float64(len(frame)-1)
}

// meanStd returns the mean and population standard deviation.
func meanStd(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}

	mean := 0.0
	for _, v := range xs {
		mean += v
	}
	mean /= float64(len(xs))

	variance := 0.0
	for _, v := range xs {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(xs))

	return mean, math.Sqrt(variance)
}
