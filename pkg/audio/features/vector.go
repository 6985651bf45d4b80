package features

// VectorLength is the fixed number of slots in a feature vector. The trained
// classifier and scaler are fit against exactly this layout; changing it or
// the slot order breaks model compatibility.
const VectorLength = 34

// Vector slot indices. Order is frozen: pitch, jitter, shimmer, HNR, 13 MFCC
// coefficients, 8 spectral summary values, 9 waveform statistics.
const (
	SlotPitch = iota
	SlotJitter
	SlotShimmer
	SlotHNR
	SlotMFCC0 // MFCC coefficients occupy slots 4..16
)

const (
	SlotCentroidMean = 17 + iota
	SlotCentroidStd
	SlotRolloffMean
	SlotRolloffStd
	SlotBandwidthMean
	SlotBandwidthStd
	SlotZCRMean
	SlotZCRStd

	SlotStatMean
	SlotStatStd
	SlotStatVar
	SlotStatMedian
	SlotStatMin
	SlotStatMax
	SlotStatRange
	SlotStatSkewness
	SlotStatKurtosis
)

// mfccCount is the number of cepstral coefficient slots.
const mfccCount = 13

// slotNames lists the feature names in slot order.
var slotNames = []string{
	"pitch", "jitter", "shimmer", "hnr",
	"mfcc_0", "mfcc_1", "mfcc_2", "mfcc_3", "mfcc_4", "mfcc_5", "mfcc_6",
	"mfcc_7", "mfcc_8", "mfcc_9", "mfcc_10", "mfcc_11", "mfcc_12",
	"spectral_centroid_mean", "spectral_centroid_std",
	"spectral_rolloff_mean", "spectral_rolloff_std",
	"spectral_bandwidth_mean", "spectral_bandwidth_std",
	"zero_crossing_rate_mean", "zero_crossing_rate_std",
	"stat_mean", "stat_std", "stat_var", "stat_median",
	"stat_min", "stat_max", "stat_range", "stat_skewness", "stat_kurtosis",
}

// Vector is a fixed-order acoustic feature vector. Sub-extractors that fail
// leave their slots at 0.0 rather than shortening the vector.
type Vector [VectorLength]float64

// Slice returns the vector as a float slice.
func (v Vector) Slice() []float64 {
	out := make([]float64, VectorLength)
	copy(out, v[:])
	return out
}

// Degenerate reports whether every slot is exactly zero, the signal that
// extraction failed entirely. Callers reject degenerate vectors explicitly
// instead of treating extraction as an error.
func (v Vector) Degenerate() bool {
	for _, val := range v {
		if val != 0 {
			return false
		}
	}
	return true
}

// Named returns the vector keyed by feature name, in no particular order.
func (v Vector) Named() map[string]float64 {
	out := make(map[string]float64, VectorLength)
	for i, name := range slotNames {
		out[name] = v[i]
	}
	return out
}

// SlotNames returns the feature names in slot order.
func SlotNames() []string {
	out := make([]string, len(slotNames))
	copy(out, slotNames)
	return out
}
