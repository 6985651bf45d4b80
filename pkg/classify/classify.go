// Package classify defines the model boundary for voice screening. The
// screening pipeline hands a fixed-length feature vector to a Scaler and a
// Classifier; both are interfaces so trained artifacts can be swapped
// without touching the audio code.
package classify

import "fmt"

// Scaler normalizes a raw feature vector into the space the classifier was
// trained on.
type Scaler interface {
	// Transform returns the scaled vector. It must not modify its input.
	Transform(features []float64) ([]float64, error)

	// ExpectedInputLength reports the vector length the scaler was
	// fitted for.
	ExpectedInputLength() int
}

// Classifier produces a binary decision with class probabilities from a
// scaled feature vector.
type Classifier interface {
	// Predict returns the predicted class label (0 or 1).
	Predict(features []float64) (int, error)

	// PredictProbability returns the class probability pair
	// [p_negative, p_positive].
	PredictProbability(features []float64) ([2]float64, error)
}

// MismatchError reports a feature vector whose length does not match what a
// model component expects.
type MismatchError struct {
	Got  int `json:"got"`
	Want int `json:"want"`
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("feature vector length mismatch: got %d, want %d", e.Got, e.Want)
}

// ValidateLength returns a MismatchError when got differs from want.
func ValidateLength(got, want int) error {
	if got != want {
		return &MismatchError{Got: got, Want: want}
	}
	return nil
}
