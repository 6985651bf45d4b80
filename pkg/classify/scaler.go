package classify

import (
	"encoding/json"
	"fmt"
	"os"
)

// StandardScaler applies per-feature standardization: (x - mean) / scale.
// The parameters come from a fitted scikit-learn StandardScaler exported as
// JSON.
type StandardScaler struct {
	Means  []float64 `json:"means"`
	Scales []float64 `json:"scales"`
}

// NewStandardScaler builds a scaler from explicit parameters.
func NewStandardScaler(means, scales []float64) (*StandardScaler, error) {
	if len(means) != len(scales) {
		return nil, fmt.Errorf("scaler parameter mismatch: %d means, %d scales", len(means), len(scales))
	}
	if len(means) == 0 {
		return nil, fmt.Errorf("scaler has no parameters")
	}
	return &StandardScaler{Means: means, Scales: scales}, nil
}

// LoadScaler reads StandardScaler parameters from a JSON file.
func LoadScaler(path string) (*StandardScaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scaler file: %w", err)
	}
	var s StandardScaler
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scaler file %s: %w", path, err)
	}
	return NewStandardScaler(s.Means, s.Scales)
}

// Transform standardizes the vector. A zero scale entry passes the centered
// value through unscaled.
func (s *StandardScaler) Transform(features []float64) ([]float64, error) {
	if err := ValidateLength(len(features), len(s.Means)); err != nil {
		return nil, err
	}
	out := make([]float64, len(features))
	for i, x := range features {
		centered := x - s.Means[i]
		if s.Scales[i] != 0 {
			centered /= s.Scales[i]
		}
		out[i] = centered
	}
	return out, nil
}

// ExpectedInputLength reports the fitted vector length.
func (s *StandardScaler) ExpectedInputLength() int {
	return len(s.Means)
}
