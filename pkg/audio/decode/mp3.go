package decode

import (
	"bytes"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

// decodeMP3 decodes an MPEG-1 Layer III stream. go-mp3 always emits 16-bit
// little-endian stereo PCM regardless of the source channel layout.
func decodeMP3(data []byte) (rawPCM, error) {
	dec, err := gomp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return rawPCM{}, newStrategyError("mp3", "not a decodable MP3 stream", err)
	}

	const channels = 2

	var samples []float64
	buf := make([]byte, 8192)
	for {
		n, err := dec.Read(buf)
		for i := 0; i+1 < n; i += 2 {
			v := int16(uint16(buf[i]) | uint16(buf[i+1])<<8)
			samples = append(samples, float64(v)/32768.0)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return rawPCM{}, newStrategyError("mp3", "reading MP3 PCM frames", err)
		}
	}

	return rawPCM{
		samples:    samples,
		sampleRate: dec.SampleRate(),
		channels:   channels,
	}, nil
}
