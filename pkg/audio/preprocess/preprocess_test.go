package preprocess

import (
	"math"
	"testing"
	"time"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxscreen/voxscreen/pkg/audio"
)

func sine(freq float64, sampleRate int, duration time.Duration, amp float64) *audio.PCMSignal {
	n := int(duration.Seconds() * float64(sampleRate))
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return audio.NewPCMSignal(samples, sampleRate)
}

func TestPeakNormalize(t *testing.T) {
	sig := sine(440, 22050, time.Second, 0.25)
	out := PeakNormalize(sig)
	assert.InDelta(t, 1.0, out.Peak(), 1e-9)

	// Input untouched.
	assert.InDelta(t, 0.25, sig.Peak(), 1e-9)
}

func TestPeakNormalizeSilent(t *testing.T) {
	sig := audio.NewPCMSignal(make([]float64, 1000), 22050)
	out := PeakNormalize(sig)
	assert.Zero(t, out.Peak())
	assert.Equal(t, 1000, len(out.Samples))
}

func TestTrimSilence(t *testing.T) {
	// Half a second of silence, half a second of tone, half a second of
	// silence. Trimming at 20 dB keeps only the voiced middle.
	sr := 22050
	quiet := make([]float64, sr/2)
	voiced := sine(200, sr, 500*time.Millisecond, 0.9).Samples

	samples := append(append(append([]float64{}, quiet...), voiced...), quiet...)
	sig := audio.NewPCMSignal(samples, sr)

	out := TrimSilence(sig, 20)
	assert.Less(t, len(out.Samples), len(samples))
	// Trimming is frame-quantized, so allow one frame of slack per side.
	assert.InDelta(t, len(voiced), len(out.Samples), 2*2048)
	assert.Greater(t, out.Peak(), 0.5)
}

func TestTrimSilenceAllQuiet(t *testing.T) {
	sig := audio.NewPCMSignal(make([]float64, 8000), 16000)
	out := TrimSilence(sig, 20)
	assert.Equal(t, 8000, len(out.Samples))
}

func TestPadToMinDuration(t *testing.T) {
	sig := sine(440, 22050, 100*time.Millisecond, 0.5)
	out := PadToMinDuration(sig, 500*time.Millisecond)
	assert.Equal(t, 22050/2, len(out.Samples))

	// Padding appends zeros; the head is unchanged.
	assert.Equal(t, sig.Samples[0], out.Samples[0])
	assert.Zero(t, out.Samples[len(out.Samples)-1])

	// Already long enough: untouched.
	long := sine(440, 22050, time.Second, 0.5)
	assert.Equal(t, len(long.Samples), len(PadToMinDuration(long, 500*time.Millisecond).Samples))
}

func TestResampleSameRateNoop(t *testing.T) {
	sig := sine(440, 22050, 200*time.Millisecond, 0.5)
	out := Resample(sig, 22050, nil)
	assert.Equal(t, sig, out)
}

func TestResampleChangesRate(t *testing.T) {
	sig := sine(440, 44100, 500*time.Millisecond, 0.5)
	out := Resample(sig, 22050, logging.NewDefaultLogger())
	require.Equal(t, 22050, out.SampleRate)
	// Half the rate, about half the samples.
	assert.InDelta(t, len(sig.Samples)/2, len(out.Samples), float64(len(sig.Samples))*0.05)
}

func TestPreprocess(t *testing.T) {
	sr := 44100
	quiet := make([]float64, sr/4)
	voiced := sine(150, sr, time.Second, 0.3).Samples
	samples := append(append([]float64{}, quiet...), voiced...)

	out := Preprocess(audio.NewPCMSignal(samples, sr), DefaultConfig())
	require.False(t, out.Empty())
	assert.Equal(t, 22050, out.SampleRate)
	assert.InDelta(t, 1.0, out.Peak(), 1e-6)
	assert.GreaterOrEqual(t, out.Duration(), 500*time.Millisecond)
}

func TestPreprocessEmpty(t *testing.T) {
	out := Preprocess(audio.NewPCMSignal(nil, 22050), DefaultConfig())
	assert.True(t, out.Empty())
}
