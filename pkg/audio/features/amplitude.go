package features

import (
	"math"
	"sort"

	"github.com/voxscreen/voxscreen/pkg/audio"
)

// shimmer measures cycle-to-cycle amplitude variation: peaks are picked from
// the absolute waveform with a minimum spacing and a minimum height relative
// to the global peak, then the mean absolute difference between consecutive
// peak amplitudes is normalized by the mean peak amplitude. 0.0 with fewer
// than two peaks.
func (e *Extractor) shimmer(sig *audio.PCMSignal) float64 {
	minDist := int(e.cfg.PeakMinDistance.Seconds() * float64(sig.SampleRate))
	if minDist < 1 {
		minDist = 1
	}

	abs := make([]float64, len(sig.Samples))
	globalPeak := 0.0
	for i, v := range sig.Samples {
		abs[i] = math.Abs(v)
		if abs[i] > globalPeak {
			globalPeak = abs[i]
		}
	}
	if globalPeak == 0 {
		return 0
	}

	peaks := findPeaks(abs, minDist, globalPeak*e.cfg.PeakMinHeightRatio)
	if len(peaks) < 2 {
		return 0
	}

	meanAmp := 0.0
	for _, p := range peaks {
		meanAmp += abs[p]
	}
	meanAmp /= float64(len(peaks))

	diffSum := 0.0
	for i := 1; i < len(peaks); i++ {
		diffSum += math.Abs(abs[peaks[i]] - abs[peaks[i-1]])
	}
	meanDiff := diffSum / float64(len(peaks)-1)

	return meanDiff / (meanAmp + 1e-8)
}

// findPeaks locates local maxima at least minHeight tall, then enforces the
// minimum inter-peak distance by keeping taller peaks first. Returned
// indices are ascending.
func findPeaks(x []float64, minDist int, minHeight float64) []int {
	var candidates []int
	for i := 1; i < len(x)-1; i++ {
		if x[i] > x[i-1] && x[i] > x[i+1] && x[i] >= minHeight {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 || minDist <= 1 {
		return candidates
	}

	// Tallest-first suppression, matching the usual peak-picking behavior.
	byHeight := make([]int, len(candidates))
	copy(byHeight, candidates)
	sort.Slice(byHeight, func(a, b int) bool { return x[byHeight[a]] > x[byHeight[b]] })

	kept := make([]bool, len(x))
	var peaks []int
	for _, p := range byHeight {
		tooClose := false
		for d := 1; d < minDist; d++ {
			if (p-d >= 0 && kept[p-d]) || (p+d < len(x) && kept[p+d]) {
				tooClose = true
				break
			}
		}
		if !tooClose {
			kept[p] = true
			peaks = append(peaks, p)
		}
	}

	sort.Ints(peaks)
	return peaks
}
