package features

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/voxscreen/voxscreen/pkg/audio"
)

// hnr estimates the harmonics-to-noise ratio in decibels. Per frame the
// magnitude spectrum bin with the highest energy is taken as the fundamental;
// that bin and its integer multiples form the harmonic energy, everything
// else counts as noise, and the frame ratio is 10*log10(harmonic/noise).
// Frames without noise energy are skipped; no qualifying frame yields 0.0.
func (e *Extractor) hnr(sig *audio.PCMSignal) float64 {
	frames := audio.Frames(sig, e.cfg.HNRFrameLength, e.cfg.HNRHopLength)
	if frames.Count() == 0 {
		return 0
	}

	rfft := fourier.NewFFT(e.cfg.HNRFrameLength)
	var sum float64
	var count int

	for i := range frames.Count() {
		coeffs := rfft.Coefficients(nil, frames.Frame(i))
		mag := make([]float64, len(coeffs))
		total := 0.0
		for j, c := range coeffs {
			mag[j] = cmplx.Abs(c)
			total += mag[j]
		}
		if len(mag) < 2 {
			continue
		}

		// Dominant bin over the lower half of the spectrum.
		peak := 0
		for j := 1; j < len(mag)/2; j++ {
			if mag[j] > mag[peak] {
				peak = j
			}
		}

		harmonic := total
		if peak > 0 {
			harmonic = 0
			for j := peak; j < len(mag); j += peak {
				harmonic += mag[j]
			}
		}
		noise := total - harmonic
		if noise <= 0 || harmonic <= 0 {
			continue
		}

		sum += 10 * math.Log10(harmonic/noise)
		count++
	}

	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
