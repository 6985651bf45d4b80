package features

import (
	"math"

	"github.com/voxscreen/voxscreen/pkg/audio"
)

// f0Track estimates the fundamental frequency per analysis frame using
// short-time autocorrelation. For each frame the autocorrelation is
// evaluated over the lag band corresponding to the configured voice range
// and the first local maximum in that band gives the pitch period. Only
// estimates strictly inside the voice range count as voiced.
func (e *Extractor) f0Track(sig *audio.PCMSignal) []float64 {
	sr := sig.SampleRate
	minLag := int(float64(sr) / e.cfg.PitchMaxHz)
	maxLag := int(float64(sr) / e.cfg.PitchMinHz)
	if minLag < 1 || maxLag <= minLag || maxLag >= e.cfg.FrameLength {
		return nil
	}

	frames := audio.Frames(sig, e.cfg.FrameLength, e.cfg.HopLength)
	var track []float64
	band := make([]float64, maxLag-minLag)

	for i := range frames.Count() {
		frame := frames.Frame(i)
		for l := range band {
			band[l] = autocorrAtLag(frame, minLag+l)
		}

		// First local maximum in the band; band edges cannot qualify.
		lag := -1
		for j := 1; j < len(band)-1; j++ {
			if band[j] > band[j-1] && band[j] > band[j+1] {
				lag = minLag + j
				break
			}
		}
		if lag <= 0 {
			continue
		}

		f0 := float64(sr) / float64(lag)
		if f0 > e.cfg.PitchMinHz && f0 < e.cfg.PitchMaxHz {
			track = append(track, f0)
		}
	}
	return track
}

// pitchFromTrack returns the mean voiced F0 estimate, 0.0 when no frame
// was voiced.
func pitchFromTrack(track []float64) float64 {
	if len(track) == 0 {
		return 0
	}
	sum := 0.0
	for _, f0 := range track {
		sum += f0
	}
	return sum / float64(len(track))
}

// jitterFromTrack measures cycle-to-cycle pitch period variation: the mean
// absolute difference between consecutive voiced periods normalized by the
// mean period. Undefined (0.0) with fewer than two voiced frames.
func jitterFromTrack(track []float64) float64 {
	if len(track) < 2 {
		return 0
	}

	periods := make([]float64, len(track))
	meanPeriod := 0.0
	for i, f0 := range track {
		periods[i] = 1.0 / (f0 + 1e-8)
		meanPeriod += periods[i]
	}
	meanPeriod /= float64(len(periods))

	diffSum := 0.0
	for i := 1; i < len(periods); i++ {
		diffSum += math.Abs(periods[i] - periods[i-1])
	}
	meanDiff := diffSum / float64(len(periods)-1)

	return meanDiff / (meanPeriod + 1e-8)
}

// autocorrAtLag computes the raw autocorrelation of a frame at a single lag.
func autocorrAtLag(frame []float64, lag int) float64 {
	if lag < 0 || lag >= len(frame) {
		return 0
	}
	sum := 0.0
	for i := 0; i+lag < len(frame); i++ {
		sum += frame[i] * frame[i+lag]
	}
	return sum
}
