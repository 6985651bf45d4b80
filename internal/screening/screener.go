package screening

import (
	"context"
	"fmt"
	"math"

	"github.com/RyanBlaney/latency-benchmark-common/logging"

	"github.com/voxscreen/voxscreen/pkg/audio/decode"
	"github.com/voxscreen/voxscreen/pkg/audio/features"
	"github.com/voxscreen/voxscreen/pkg/classify"
)

// Screener couples the audio pipeline with a fitted scaler and classifier.
// The model handle is injected at construction so the serving layer never
// loads artifacts per request.
type Screener struct {
	pipeline   *Pipeline
	scaler     classify.Scaler
	classifier classify.Classifier
	logger     logging.Logger
}

// Screening is the scored outcome for one audio blob. Probabilities and the
// risk score are percentages rounded to two decimals.
type Screening struct {
	Success             bool      `json:"success"`
	Prediction          int       `json:"prediction"`
	RiskScore           float64   `json:"risk_score"`
	ProbabilityHealthy  float64   `json:"probability_healthy"`
	ProbabilityAffected float64   `json:"probability_affected"`
	Features            []float64 `json:"features,omitempty"`
	PCMLength           int       `json:"pcm_length"`
	SampleRate          int       `json:"sample_rate"`
	DurationMS          float64   `json:"duration_ms"`
}

// NewScreener builds a screener. The scaler and classifier must already be
// loaded; their expected lengths are checked against the vector size up
// front so a wrong artifact fails at startup instead of on first request.
func NewScreener(pipeline *Pipeline, scaler classify.Scaler, classifier classify.Classifier, logger logging.Logger) (*Screener, error) {
	if pipeline == nil {
		return nil, fmt.Errorf("screener requires a pipeline")
	}
	if scaler == nil || classifier == nil {
		return nil, fmt.Errorf("screener requires a scaler and a classifier")
	}
	if err := classify.ValidateLength(scaler.ExpectedInputLength(), features.VectorLength); err != nil {
		return nil, fmt.Errorf("scaler does not match feature vector: %w", err)
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	return &Screener{
		pipeline:   pipeline,
		scaler:     scaler,
		classifier: classifier,
		logger:     logger.WithFields(logging.Fields{"component": "screener"}),
	}, nil
}

// Screen runs the full flow for one blob: pipeline, scaling, prediction.
func (s *Screener) Screen(ctx context.Context, blob decode.Blob) (*Screening, error) {
	result, err := s.pipeline.Run(ctx, blob)
	if err != nil {
		return nil, err
	}

	raw := result.Vector.Slice()
	scaled, err := s.scaler.Transform(raw)
	if err != nil {
		return nil, err
	}

	prediction, err := s.classifier.Predict(scaled)
	if err != nil {
		return nil, err
	}
	probs, err := s.classifier.PredictProbability(scaled)
	if err != nil {
		return nil, err
	}
	risk := roundPercent(probs[1])

	s.logger.Info("screening complete", logging.Fields{
		"filename":   blob.Filename,
		"prediction": prediction,
		"risk_score": risk,
	})

	return &Screening{
		Success:             true,
		Prediction:          prediction,
		RiskScore:           risk,
		ProbabilityHealthy:  roundPercent(probs[0]),
		ProbabilityAffected: roundPercent(probs[1]),
		Features:            raw,
		PCMLength:           result.PCMLength,
		SampleRate:          result.SampleRate,
		DurationMS:          float64(result.Duration.Microseconds()) / 1000.0,
	}, nil
}

// roundPercent converts a probability to a percentage rounded to two
// decimal places.
func roundPercent(p float64) float64 {
	return math.Round(p*100*100) / 100
}
