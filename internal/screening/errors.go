package screening

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptySignal indicates a decode produced zero usable samples.
var ErrEmptySignal = errors.New("decoded signal contains no samples")

// ErrDegenerateVector indicates feature extraction produced an all-zero
// vector, typically from silent or corrupt audio.
var ErrDegenerateVector = errors.New("extracted feature vector is degenerate")

// TooShortError indicates the preprocessed signal is below the minimum
// analyzable duration.
type TooShortError struct {
	Duration time.Duration `json:"duration"`
	Minimum  time.Duration `json:"minimum"`
}

func (e *TooShortError) Error() string {
	return fmt.Sprintf("audio too short for analysis: %v, minimum %v", e.Duration, e.Minimum)
}
