// Package screening runs the end-to-end voice screening flow: decode an
// uploaded blob into PCM, condition the signal, extract the acoustic
// feature vector and score it against the loaded model.
package screening

import (
	"context"
	"time"

	"github.com/RyanBlaney/latency-benchmark-common/logging"

	"github.com/voxscreen/voxscreen/pkg/audio/decode"
	"github.com/voxscreen/voxscreen/pkg/audio/features"
	"github.com/voxscreen/voxscreen/pkg/audio/preprocess"
)

// PipelineConfig wires together the per-stage configuration.
type PipelineConfig struct {
	// MaxDuration clamps decoded audio; decode.DefaultOptions when zero.
	MaxDuration time.Duration

	// MinDuration rejects conditioned signals shorter than this with a
	// TooShortError. Zero disables the check.
	MinDuration time.Duration

	Preprocess preprocess.Config
	Features   features.Config

	Logger logging.Logger
}

// DefaultPipelineConfig returns the canonical pipeline settings.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		MaxDuration: decode.DefaultOptions().MaxDuration,
		MinDuration: 100 * time.Millisecond,
		Preprocess:  preprocess.DefaultConfig(),
		Features:    features.DefaultConfig(),
	}
}

// Pipeline transforms raw audio bytes into a feature vector. It holds no
// per-request state and is safe for concurrent use.
type Pipeline struct {
	cfg       PipelineConfig
	extractor *features.Extractor
	logger    logging.Logger
}

// Result carries the extraction outcome alongside signal metadata.
type Result struct {
	Vector     features.Vector `json:"-"`
	PCMLength  int             `json:"pcm_length"`
	SampleRate int             `json:"sample_rate"`
	Duration   time.Duration   `json:"duration"`
}

// NewPipeline builds a pipeline from config, filling zero values with
// defaults.
func NewPipeline(cfg PipelineConfig) *Pipeline {
	def := DefaultPipelineConfig()
	if cfg.MaxDuration <= 0 {
		cfg.MaxDuration = def.MaxDuration
	}
	if cfg.Preprocess.TargetSampleRate <= 0 {
		cfg.Preprocess = def.Preprocess
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	cfg.Preprocess.Logger = logger
	cfg.Features.Logger = logger

	return &Pipeline{
		cfg:       cfg,
		extractor: features.New(cfg.Features),
		logger:    logger.WithFields(logging.Fields{"component": "screening_pipeline"}),
	}
}

// Run decodes, conditions and featurizes one audio blob. Decode failures
// propagate as *decode.Error; post-decode failures map onto the screening
// error types. A canceled context aborts between stages.
func (p *Pipeline) Run(ctx context.Context, blob decode.Blob) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sig, err := decode.Decode(blob, &decode.Options{
		MaxDuration: p.cfg.MaxDuration,
		Logger:      p.logger,
	})
	if err != nil {
		return nil, err
	}
	if sig.Empty() {
		return nil, ErrEmptySignal
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sig = preprocess.Preprocess(sig, p.cfg.Preprocess)
	if sig.Empty() {
		return nil, ErrEmptySignal
	}
	if p.cfg.MinDuration > 0 && sig.Duration() < p.cfg.MinDuration {
		return nil, &TooShortError{Duration: sig.Duration(), Minimum: p.cfg.MinDuration}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vec := p.extractor.Extract(sig)
	if vec.Degenerate() {
		return nil, ErrDegenerateVector
	}

	p.logger.Debug("pipeline complete", logging.Fields{
		"filename":    blob.Filename,
		"pcm_length":  len(sig.Samples),
		"sample_rate": sig.SampleRate,
	})

	return &Result{
		Vector:     vec,
		PCMLength:  len(sig.Samples),
		SampleRate: sig.SampleRate,
		Duration:   sig.Duration(),
	}, nil
}
