package features

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// spectralAnalyzer provides the FFT plumbing shared by the frame-based
// extractors: windowing, magnitude spectra and frequency bin mapping.
type spectralAnalyzer struct {
	sampleRate int
}

func newSpectralAnalyzer(sampleRate int) *spectralAnalyzer {
	return &spectralAnalyzer{sampleRate: sampleRate}
}

// FFT computes the FFT of a real signal. mjibson/go-dsp handles all sizes,
// including non-power-of-2.
func (sa *spectralAnalyzer) FFT(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}
	return fft.FFTReal(x)
}

// MagnitudeSpectrum returns the one-sided magnitude spectrum of a frame.
// A non-nil window of matching length is applied first.
func (sa *spectralAnalyzer) MagnitudeSpectrum(frame, window []float64) []float64 {
	if len(frame) == 0 {
		return nil
	}

	input := frame
	if len(window) == len(frame) {
		input = make([]float64, len(frame))
		for i, v := range frame {
			input[i] = v * window[i]
		}
	}

	spectrum := sa.FFT(input)
	freqBins := len(spectrum)/2 + 1
	if freqBins > len(spectrum) {
		freqBins = len(spectrum)
	}

	magnitude := make([]float64, freqBins)
	for i := range freqBins {
		magnitude[i] = cmplx.Abs(spectrum[i])
	}
	return magnitude
}

// FrequencyBins returns the center frequency of each one-sided spectrum bin.
func (sa *spectralAnalyzer) FrequencyBins(numBins int) []float64 {
	freqs := make([]float64, numBins)
	if numBins < 2 {
		return freqs
	}
	for i := range numBins {
		freqs[i] = float64(i) * float64(sa.sampleRate) / float64((numBins-1)*2)
	}
	return freqs
}

// hannWindow generates a Hann window of length n.
func hannWindow(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range n {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}
