package decode

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildWAV assembles a canonical 16-bit PCM RIFF/WAVE file in memory.
func buildWAV(samples []float64, sampleRate, channels int) []byte {
	var pcm bytes.Buffer
	for _, s := range samples {
		v := int16(math.Max(-1, math.Min(1, s)) * 32767)
		binary.Write(&pcm, binary.LittleEndian, v)
	}

	dataLen := pcm.Len()
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*channels*2))
	binary.Write(&buf, binary.LittleEndian, uint16(channels*2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataLen))
	buf.Write(pcm.Bytes())

	return buf.Bytes()
}

func sineWave(freq float64, sampleRate int, duration time.Duration) []float64 {
	n := int(duration.Seconds() * float64(sampleRate))
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = 0.8 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return samples
}

func TestDecodeWAV(t *testing.T) {
	samples := sineWave(440, 16000, time.Second)
	data := buildWAV(samples, 16000, 1)

	sig, err := Decode(Blob{Data: data, Filename: "tone.wav"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 16000, sig.SampleRate)
	assert.Equal(t, len(samples), len(sig.Samples))
}

func TestDecodeStereoDownmix(t *testing.T) {
	// Interleaved stereo with identical channels downmixes to the mono
	// content at half the interleaved length.
	mono := sineWave(220, 8000, 500*time.Millisecond)
	stereo := make([]float64, 0, len(mono)*2)
	for _, s := range mono {
		stereo = append(stereo, s, s)
	}
	data := buildWAV(stereo, 8000, 2)

	sig, err := Decode(Blob{Data: data, Filename: "tone.wav"}, nil)
	require.NoError(t, err)
	assert.Equal(t, len(mono), len(sig.Samples))
	assert.InDelta(t, mono[100], sig.Samples[100], 0.001)
}

func TestDecodeMislabeledExtension(t *testing.T) {
	// WAV bytes with a lying .mp3 filename still decode: the extension
	// strategy fails and sniffing recognizes the RIFF magic.
	data := buildWAV(sineWave(440, 16000, time.Second), 16000, 1)

	sig, err := Decode(Blob{Data: data, Filename: "voice.mp3"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 16000, sig.SampleRate)
	assert.NotEmpty(t, sig.Samples)
}

func TestDecodeNoExtension(t *testing.T) {
	data := buildWAV(sineWave(300, 22050, time.Second), 22050, 1)

	sig, err := Decode(Blob{Data: data, Filename: "upload"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 22050, sig.SampleRate)
}

func TestDecodeEmptyInput(t *testing.T) {
	_, err := Decode(Blob{Data: nil, Filename: "empty.wav"}, nil)
	require.Error(t, err)

	var decodeErr *Error
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, ErrCodeEmptyInput, decodeErr.Code)
}

func TestDecodeGarbageAggregatesError(t *testing.T) {
	garbage := bytes.Repeat([]byte{0xDE, 0xAD, 0xBE, 0xEF}, 256)

	_, err := Decode(Blob{Data: garbage, Filename: "noise.bin"}, nil)
	require.Error(t, err)

	var decodeErr *Error
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, ErrCodeUnsupported, decodeErr.Code)
	assert.Contains(t, decodeErr.Message, "1024 byte")
	assert.Contains(t, decodeErr.Message, "wav")
	assert.Contains(t, decodeErr.Message, "mp3")
}

func TestDecodeMaxDurationClamp(t *testing.T) {
	data := buildWAV(sineWave(440, 16000, 3*time.Second), 16000, 1)

	sig, err := Decode(Blob{Data: data, Filename: "long.wav"}, &Options{MaxDuration: time.Second})
	require.NoError(t, err)
	assert.Equal(t, 16000, len(sig.Samples))
}

func TestBlobExtension(t *testing.T) {
	assert.Equal(t, "wav", Blob{Filename: "a.wav"}.Extension())
	assert.Equal(t, "ogg", Blob{Filename: "A.OGG"}.Extension())
	assert.Equal(t, "opus", Blob{Filename: "dir/rec.opus"}.Extension())
	assert.Equal(t, "", Blob{Filename: "noext"}.Extension())
	assert.Equal(t, "", Blob{}.Extension())
}
