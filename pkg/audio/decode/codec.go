package decode

import (
	"bytes"
	"io"

	"github.com/go-audio/aiff"
	"github.com/go-audio/wav"
)

// decodeWithCodecLibrary is the third strategy: the go-audio decoders, which
// cover a different format matrix (chunked WAV variants, AIFF/AIFC) than the
// compressed-container decoders above it.
func decodeWithCodecLibrary(blob Blob) (rawPCM, error) {
	if raw, err := decodeWAV(blob.Data); err == nil {
		return raw, nil
	}
	return decodeAIFF(blob.Data)
}

// decodeWAV decodes a WAV container with the go-audio decoder. Integer PCM
// is rescaled to float by the format's maximum integer magnitude.
func decodeWAV(data []byte) (rawPCM, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return rawPCM{}, NewError(ErrCodeInvalidFormat, "not a valid WAV file", nil)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil && err != io.EOF {
		return rawPCM{}, newStrategyError("wav", "reading WAV PCM buffer", err)
	}
	if buf == nil {
		return rawPCM{}, newStrategyError("wav", "no PCM buffer in WAV file", nil)
	}

	scale := intScale(int(dec.BitDepth))
	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v) / scale
	}

	return rawPCM{
		samples:    samples,
		sampleRate: int(dec.SampleRate),
		channels:   int(dec.NumChans),
	}, nil
}

// decodeAIFF decodes an AIFF/AIFC container with the go-audio decoder.
func decodeAIFF(data []byte) (rawPCM, error) {
	dec := aiff.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return rawPCM{}, NewError(ErrCodeInvalidFormat, "not a valid AIFF file", nil)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil && err != io.EOF {
		return rawPCM{}, newStrategyError("aiff", "reading AIFF PCM buffer", err)
	}
	if buf == nil {
		return rawPCM{}, newStrategyError("aiff", "no PCM buffer in AIFF file", nil)
	}

	scale := intScale(int(dec.BitDepth))
	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v) / scale
	}

	return rawPCM{
		samples:    samples,
		sampleRate: int(dec.SampleRate),
		channels:   int(dec.NumChans),
	}, nil
}

// intScale returns the maximum representable magnitude for a signed PCM bit
// depth. Unknown depths fall back to 16-bit.
func intScale(bitDepth int) float64 {
	switch bitDepth {
	case 8:
		return 128
	case 16:
		return 32768
	case 24:
		return 8388608
	case 32:
		return 2147483648
	default:
		return 32768
	}
}
