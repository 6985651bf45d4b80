package decode

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRIFF(t *testing.T) {
	samples := sineWave(440, 16000, time.Second)
	data := buildWAV(samples, 16000, 1)

	raw, err := parseRIFF(Blob{Data: data})
	require.NoError(t, err)
	assert.Equal(t, 16000, raw.sampleRate)
	assert.Equal(t, 1, raw.channels)
	assert.Equal(t, len(samples), len(raw.samples))
}

func TestParseRIFFUnknownChunkSkipped(t *testing.T) {
	// A LIST chunk between fmt and data must be skipped by exactly its
	// declared size.
	full := buildWAV(sineWave(440, 8000, 100*time.Millisecond), 8000, 1)
	fmtEnd := 12 + 8 + 16

	var buf bytes.Buffer
	buf.Write(full[:fmtEnd])
	buf.WriteString("LIST")
	binary.Write(&buf, binary.LittleEndian, uint32(6))
	buf.Write([]byte{1, 2, 3, 4, 5, 6})
	buf.Write(full[fmtEnd:])

	raw, err := parseRIFF(Blob{Data: buf.Bytes()})
	require.NoError(t, err)
	assert.Equal(t, 8000, raw.sampleRate)
	assert.Equal(t, 800, len(raw.samples))
}

func TestParseRIFFDefaultsWithoutFmt(t *testing.T) {
	// Mono 16 kHz is assumed when the fmt chunk is absent.
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(4+8+4))
	buf.WriteString("WAVE")
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(4))
	binary.Write(&buf, binary.LittleEndian, int16(16384))
	binary.Write(&buf, binary.LittleEndian, int16(-16384))

	raw, err := parseRIFF(Blob{Data: buf.Bytes()})
	require.NoError(t, err)
	assert.Equal(t, 16000, raw.sampleRate)
	assert.Equal(t, 1, raw.channels)
	require.Len(t, raw.samples, 2)
	assert.InDelta(t, 0.5, raw.samples[0], 0.001)
	assert.InDelta(t, -0.5, raw.samples[1], 0.001)
}

func TestParseRIFFTruncated(t *testing.T) {
	data := buildWAV(sineWave(440, 8000, 100*time.Millisecond), 8000, 1)

	cases := map[string][]byte{
		"short header":    data[:8],
		"cut data chunk":  data[:len(data)-100],
		"header only":     data[:12],
		"cut fmt payload": data[:16],
	}
	for name, input := range cases {
		_, err := parseRIFF(Blob{Data: input})
		assert.Error(t, err, name)
	}
}

func TestParseRIFFBadMagic(t *testing.T) {
	data := buildWAV(sineWave(440, 8000, 100*time.Millisecond), 8000, 1)

	riffless := append([]byte("JUNK"), data[4:]...)
	_, err := parseRIFF(Blob{Data: riffless})
	assert.Error(t, err)

	waveless := append([]byte{}, data...)
	copy(waveless[8:12], "AVI ")
	_, err = parseRIFF(Blob{Data: waveless})
	assert.Error(t, err)
}
