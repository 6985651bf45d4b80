package decode

import (
	"bytes"
	"encoding/binary"

	"github.com/pion/opus"
)

// Opus frames from browser recorders are 20 ms; at the canonical 48 kHz
// decode rate that is 960 samples per channel.
const (
	opusSampleRate = 48000
	opusFrameSize  = 960
)

// decodeOggOpus walks Ogg pages, reassembles Opus packets from the segment
// lacing table and decodes them with the pure Go pion decoder. It covers the
// Ogg Opus streams browsers produce for voice recordings, including ones
// mislabeled as .webm.
func decodeOggOpus(data []byte) (rawPCM, error) {
	r := bytes.NewReader(data)
	dec := opus.NewDecoder()

	var samples []float64
	pcm := make([]byte, opusFrameSize*4)
	var packet []byte
	sawHead := false
	skippedTags := false
	channels := 1

	for r.Len() > 0 {
		header := make([]byte, 27)
		if _, err := r.Read(header); err != nil || !bytes.Equal(header[:4], []byte("OggS")) {
			return rawPCM{}, newStrategyError("ogg-opus", "invalid Ogg page header", err)
		}

		numSegments := int(header[26])
		segmentTable := make([]byte, numSegments)
		if n, err := r.Read(segmentTable); err != nil || n < numSegments {
			return rawPCM{}, errTruncated("ogg-opus", "Ogg segment table")
		}

		for _, lacing := range segmentTable {
			segment := make([]byte, int(lacing))
			if n, err := r.Read(segment); err != nil || n < len(segment) {
				return rawPCM{}, errTruncated("ogg-opus", "Ogg segment body")
			}
			packet = append(packet, segment...)
			if lacing == 255 {
				// Packet continues in the next segment.
				continue
			}

			switch {
			case !sawHead:
				if !bytes.HasPrefix(packet, []byte("OpusHead")) {
					return rawPCM{}, newStrategyError("ogg-opus", "missing OpusHead packet", nil)
				}
				sawHead = true
			case !skippedTags:
				// OpusTags metadata packet carries no audio.
				skippedTags = true
			case len(packet) > 0:
				if _, isStereo, err := dec.Decode(packet, pcm); err == nil {
					n := opusFrameSize
					if isStereo {
						n *= 2
						channels = 2
					}
					for i := 0; i < n && i*2+1 < len(pcm); i++ {
						v := int16(binary.LittleEndian.Uint16(pcm[i*2:]))
						samples = append(samples, float64(v)/32768.0)
					}
				}
			}
			packet = packet[:0]
		}
	}

	if !sawHead || len(samples) == 0 {
		return rawPCM{}, newStrategyError("ogg-opus", "no decodable Opus audio packets", nil)
	}

	return rawPCM{
		samples:    samples,
		sampleRate: opusSampleRate,
		channels:   channels,
	}, nil
}
