package decode

import (
	"bytes"
	"io"

	"github.com/jfreymuth/oggvorbis"
)

// decodeOggVorbis decodes an Ogg Vorbis stream to interleaved float samples.
func decodeOggVorbis(data []byte) (rawPCM, error) {
	dec, err := oggvorbis.NewReader(bytes.NewReader(data))
	if err != nil {
		return rawPCM{}, newStrategyError("ogg-vorbis", "not an Ogg Vorbis stream", err)
	}

	var samples []float64
	buf := make([]float32, 16384)
	for {
		n, err := dec.Read(buf)
		for _, v := range buf[:n] {
			samples = append(samples, float64(v))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return rawPCM{}, newStrategyError("ogg-vorbis", "reading Vorbis samples", err)
		}
	}

	return rawPCM{
		samples:    samples,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}
