package decode

import (
	"bytes"
	"encoding/binary"
)

// parseRIFF is the last-resort strategy: a byte-exact RIFF/WAVE chunk walk
// that depends on no codec library at all. It validates the RIFF and WAVE
// magic markers, reads the channel count and sample rate from the `fmt `
// chunk, treats the `data` chunk as signed 16-bit little-endian PCM and
// skips every unrecognized chunk by exactly its declared length.
func parseRIFF(blob Blob) (rawPCM, error) {
	const name = "manual-wav"
	data := blob.Data

	if len(data) < 12 {
		return rawPCM{}, errTruncated(name, "RIFF header")
	}
	if !bytes.Equal(data[0:4], []byte("RIFF")) {
		return rawPCM{}, NewError(ErrCodeInvalidFormat, "missing RIFF magic", nil)
	}
	if !bytes.Equal(data[8:12], []byte("WAVE")) {
		return rawPCM{}, NewError(ErrCodeInvalidFormat, "missing WAVE magic", nil)
	}

	channels := 1
	sampleRate := 16000

	cursor := 12
	for {
		if cursor+8 > len(data) {
			return rawPCM{}, errTruncated(name, "chunk header")
		}
		tag := data[cursor : cursor+4]
		size := int(binary.LittleEndian.Uint32(data[cursor+4 : cursor+8]))
		cursor += 8

		if cursor+size > len(data) {
			return rawPCM{}, errTruncated(name, "chunk body")
		}
		body := data[cursor : cursor+size]

		switch {
		case bytes.Equal(tag, []byte("fmt ")):
			if size < 8 {
				return rawPCM{}, errTruncated(name, "fmt chunk")
			}
			channels = int(binary.LittleEndian.Uint16(body[2:4]))
			sampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
			cursor += size

		case bytes.Equal(tag, []byte("data")):
			// Assume 16-bit signed little-endian PCM.
			samples := make([]float64, size/2)
			for i := range samples {
				v := int16(binary.LittleEndian.Uint16(body[i*2 : i*2+2]))
				samples[i] = float64(v) / 32768.0
			}
			return rawPCM{
				samples:    samples,
				sampleRate: sampleRate,
				channels:   channels,
			}, nil

		default:
			// Unknown chunk: seek forward exactly its payload length.
			cursor += size
		}
	}
}
