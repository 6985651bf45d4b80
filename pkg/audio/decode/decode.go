// Package decode turns untrusted audio bytes into a canonical mono PCM
// signal. It tries several independent strategies in a fixed priority order,
// so no single codec library is load-bearing: an extension-directed decoder
// first, content sniffing second, a generic codec library third, and a
// manual RIFF/WAVE parser as the last resort.
package decode

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/RyanBlaney/latency-benchmark-common/logging"

	"github.com/voxscreen/voxscreen/pkg/audio"
)

// SupportedFormats names the container formats the chain can nominally
// handle. Reported in aggregated decode errors.
var SupportedFormats = []string{"wav", "mp3", "ogg", "opus", "webm", "aiff"}

// Blob is an untrusted audio upload: raw bytes plus a claimed filename.
// The extension is a hint only and may be wrong or absent.
type Blob struct {
	Data     []byte
	Filename string
}

// Extension returns the lower-cased filename extension without the dot,
// or "" when the filename carries none.
func (b Blob) Extension() string {
	ext := filepath.Ext(b.Filename)
	return strings.TrimPrefix(strings.ToLower(ext), ".")
}

// Options controls chain behavior.
type Options struct {
	// MaxDuration clamps the decoded signal length to cap memory and time
	// spent on oversized uploads. Zero disables the clamp.
	MaxDuration time.Duration

	Logger logging.Logger
}

// DefaultOptions returns chain options with a 10 second duration clamp.
func DefaultOptions() *Options {
	return &Options{MaxDuration: 10 * time.Second}
}

// rawPCM is the common funnel for every strategy: interleaved float samples
// plus rate and channel count, before mono normalization and clamping.
type rawPCM struct {
	samples    []float64
	sampleRate int
	channels   int
}

func (r rawPCM) signal(maxDuration time.Duration) *audio.PCMSignal {
	mono := audio.DownmixInterleaved(r.samples, r.channels)
	if maxDuration > 0 && r.sampleRate > 0 {
		maxSamples := int(maxDuration.Seconds() * float64(r.sampleRate))
		if maxSamples > 0 && len(mono) > maxSamples {
			mono = mono[:maxSamples]
		}
	}
	return audio.NewPCMSignal(mono, r.sampleRate)
}

// strategy is one link in the fallback chain.
type strategy struct {
	name   string
	decode func(blob Blob) (rawPCM, error)
}

// Decode runs the fallback chain over the blob and returns the first
// successfully decoded signal. All strategies failing yields a single
// aggregated *Error naming the input size and supported formats.
func Decode(blob Blob, opts *Options) (*audio.PCMSignal, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	logger = logger.WithFields(logging.Fields{
		"component":  "decode_chain",
		"input_size": len(blob.Data),
		"extension":  blob.Extension(),
	})

	if len(blob.Data) == 0 {
		return nil, NewError(ErrCodeEmptyInput, "empty audio input", nil)
	}

	strategies := []strategy{
		{name: "extension", decode: decodeByExtension},
		{name: "sniff", decode: decodeBySniffing},
		{name: "codec-library", decode: decodeWithCodecLibrary},
		{name: "manual-wav", decode: parseRIFF},
	}

	var attempts []string
	for _, s := range strategies {
		raw, err := s.decode(blob)
		if err != nil {
			logger.Debug("decode strategy failed", logging.Fields{
				"strategy": s.name,
				"error":    err.Error(),
			})
			attempts = append(attempts, fmt.Sprintf("%s: %v", s.name, err))
			continue
		}
		if raw.sampleRate <= 0 {
			attempts = append(attempts, fmt.Sprintf("%s: invalid sample rate", s.name))
			continue
		}

		sig := raw.signal(opts.MaxDuration)
		logger.Debug("decode strategy succeeded", logging.Fields{
			"strategy":    s.name,
			"samples":     len(sig.Samples),
			"sample_rate": sig.SampleRate,
			"channels":    raw.channels,
		})
		return sig, nil
	}

	return nil, NewError(ErrCodeUnsupported,
		fmt.Sprintf("could not decode %d byte input; supported formats: %s",
			len(blob.Data), strings.Join(SupportedFormats, ", ")),
		fmt.Errorf("%s", strings.Join(attempts, "; ")))
}

// decodeByExtension dispatches on the claimed file extension. This is a
// first guess only; mislabeled content falls through to later strategies.
func decodeByExtension(blob Blob) (rawPCM, error) {
	switch blob.Extension() {
	case "mp3":
		return decodeMP3(blob.Data)
	case "ogg", "oga":
		if raw, err := decodeOggVorbis(blob.Data); err == nil {
			return raw, nil
		}
		return decodeOggOpus(blob.Data)
	case "webm", "opus":
		// Browser recordings labeled .webm are frequently Ogg Opus or
		// Ogg Vorbis streams.
		if raw, err := decodeOggOpus(blob.Data); err == nil {
			return raw, nil
		}
		return decodeOggVorbis(blob.Data)
	case "wav", "wave":
		return decodeWAV(blob.Data)
	case "aiff", "aif":
		return decodeAIFF(blob.Data)
	default:
		return rawPCM{}, newStrategyError("extension",
			fmt.Sprintf("no decoder registered for extension %q", blob.Extension()), nil)
	}
}
