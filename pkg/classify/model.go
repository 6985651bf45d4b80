package classify

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// LogisticModel is a binary logistic regression classifier with weights
// exported from a trained scikit-learn model.
type LogisticModel struct {
	Weights   []float64 `json:"weights"`
	Bias      float64   `json:"bias"`
	Threshold float64   `json:"threshold"`
}

// NewLogisticModel builds a model from explicit parameters. A zero
// threshold defaults to 0.5.
func NewLogisticModel(weights []float64, bias, threshold float64) (*LogisticModel, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("model has no weights")
	}
	if threshold <= 0 || threshold >= 1 {
		threshold = 0.5
	}
	return &LogisticModel{Weights: weights, Bias: bias, Threshold: threshold}, nil
}

// LoadModel reads LogisticModel parameters from a JSON file.
func LoadModel(path string) (*LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}
	var m LogisticModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse model file %s: %w", path, err)
	}
	return NewLogisticModel(m.Weights, m.Bias, m.Threshold)
}

// PredictProbability returns the class probability pair. The positive-class
// probability is the sigmoid of the weighted sum; the negative class is its
// complement.
func (m *LogisticModel) PredictProbability(features []float64) ([2]float64, error) {
	if err := ValidateLength(len(features), len(m.Weights)); err != nil {
		return [2]float64{}, err
	}
	z := m.Bias
	for i, w := range m.Weights {
		z += w * features[i]
	}
	p := 1.0 / (1.0 + math.Exp(-z))
	return [2]float64{1 - p, p}, nil
}

// Predict returns 1 when the positive-class probability meets the decision
// threshold.
func (m *LogisticModel) Predict(features []float64) (int, error) {
	probs, err := m.PredictProbability(features)
	if err != nil {
		return 0, err
	}
	if probs[1] >= m.Threshold {
		return 1, nil
	}
	return 0, nil
}
