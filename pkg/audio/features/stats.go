package features

import (
	"math"
	"sort"
)

// waveformStats holds distribution statistics of the raw sample values.
// Moments are population moments (no sample-size correction) and kurtosis
// is excess kurtosis, matching the statistics the classifier was fit on.
type waveformStats struct {
	Mean     float64
	Std      float64
	Var      float64
	Median   float64
	Min      float64
	Max      float64
	Range    float64
	Skewness float64
	Kurtosis float64
}

func computeWaveformStats(samples []float64) waveformStats {
	var s waveformStats
	if len(samples) == 0 {
		return s
	}

	n := float64(len(samples))
	s.Min = samples[0]
	s.Max = samples[0]
	for _, v := range samples {
		s.Mean += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Mean /= n
	s.Range = s.Max - s.Min

	var m2, m3, m4 float64
	for _, v := range samples {
		d := v - s.Mean
		d2 := d * d
		m2 += d2
		m3 += d2 * d
		m4 += d2 * d2
	}
	m2 /= n
	m3 /= n
	m4 /= n

	s.Var = m2
	s.Std = math.Sqrt(m2)
	if s.Std > 0 {
		s.Skewness = m3 / (s.Std * s.Std * s.Std)
		s.Kurtosis = m4/(m2*m2) - 3
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		s.Median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		s.Median = sorted[mid]
	}

	return s
}
