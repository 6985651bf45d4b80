package features

import (
	"math"

	"github.com/voxscreen/voxscreen/pkg/audio"
)

// mfcc computes mel-frequency cepstral coefficients averaged across all
// analysis frames: Hann-windowed power spectra through a triangular mel
// filter bank, log compression with a small floor, then a DCT-II keeping
// the first MFCCCoefficients coefficients.
func (e *Extractor) mfcc(sig *audio.PCMSignal) []float64 {
	coeffs := make([]float64, e.cfg.MFCCCoefficients)

	frames := audio.Frames(sig, e.cfg.FrameLength, e.cfg.HopLength)
	if frames.Count() == 0 {
		return coeffs
	}

	sa := newSpectralAnalyzer(sig.SampleRate)
	window := hannWindow(e.cfg.FrameLength)
	freqBins := e.cfg.FrameLength/2 + 1
	filters := melFilterBank(e.cfg.MelFilters, freqBins, sig.SampleRate, 0, float64(sig.SampleRate)/2)

	logMel := make([]float64, e.cfg.MelFilters)
	power := make([]float64, freqBins)

	for i := range frames.Count() {
		magnitude := sa.MagnitudeSpectrum(frames.Frame(i), window)
		for j := range power {
			if j < len(magnitude) {
				power[j] = magnitude[j] * magnitude[j]
			} else {
				power[j] = 0
			}
		}

		for f, filter := range filters {
			sum := 0.0
			for j, coeff := range filter {
				sum += power[j] * coeff
			}
			if sum > 0 {
				logMel[f] = math.Log(sum)
			} else {
				logMel[f] = math.Log(1e-10)
			}
		}

		frameCoeffs := dctII(logMel, e.cfg.MFCCCoefficients)
		for k, v := range frameCoeffs {
			coeffs[k] += v
		}
	}

	for k := range coeffs {
		coeffs[k] /= float64(frames.Count())
	}
	return coeffs
}

// melFilterBank builds triangular filters evenly spaced on the mel scale
// between lowFreq and highFreq.
func melFilterBank(numFilters, freqBins, sampleRate int, lowFreq, highFreq float64) [][]float64 {
	lowMel := 2595.0 * math.Log10(1.0+lowFreq/700.0)
	highMel := 2595.0 * math.Log10(1.0+highFreq/700.0)

	melPoints := make([]float64, numFilters+2)
	melStep := (highMel - lowMel) / float64(numFilters+1)
	for i := range melPoints {
		melPoints[i] = lowMel + float64(i)*melStep
	}

	freqPoints := make([]float64, len(melPoints))
	for i, mel := range melPoints {
		freqPoints[i] = 700.0 * (math.Pow(10, mel/2595.0) - 1.0)
	}

	fftSize := (freqBins - 1) * 2

	filterBank := make([][]float64, numFilters)
	for i := range numFilters {
		filter := make([]float64, freqBins)

		left := freqPoints[i]
		center := freqPoints[i+1]
		right := freqPoints[i+2]

		for j := range freqBins {
			freq := float64(j) * float64(sampleRate) / float64(fftSize)

			if freq >= left && freq <= right {
				if freq <= center {
					if center > left {
						filter[j] = (freq - left) / (center - left)
					}
				} else {
					if right > center {
						filter[j] = (right - freq) / (right - center)
					}
				}
			}
		}

		filterBank[i] = filter
	}

	return filterBank
}

// dctII applies a type-II discrete cosine transform, keeping numCoeffs
// coefficients.
func dctII(input []float64, numCoeffs int) []float64 {
	out := make([]float64, numCoeffs)
	n := float64(len(input))

	for k := range numCoeffs {
		sum := 0.0
		for i, v := range input {
			sum += v * math.Cos(math.Pi*float64(k)*(float64(i)+0.5)/n)
		}
		out[k] = sum
	}

	return out
}
