package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardScalerTransform(t *testing.T) {
	s, err := NewStandardScaler([]float64{1, 2}, []float64{2, 4})
	require.NoError(t, err)

	out, err := s.Transform([]float64{3, 10})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, out[0], 1e-12)
	assert.InDelta(t, 2.0, out[1], 1e-12)
	assert.Equal(t, 2, s.ExpectedInputLength())
}

func TestStandardScalerZeroScale(t *testing.T) {
	s, err := NewStandardScaler([]float64{5}, []float64{0})
	require.NoError(t, err)

	out, err := s.Transform([]float64{7})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, out[0], 1e-12)
}

func TestStandardScalerLengthMismatch(t *testing.T) {
	s, err := NewStandardScaler(make([]float64, 34), onesSlice(34))
	require.NoError(t, err)

	_, err = s.Transform(make([]float64, 20))
	require.Error(t, err)

	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 20, mismatch.Got)
	assert.Equal(t, 34, mismatch.Want)
	assert.Contains(t, err.Error(), "got 20, want 34")
}

func TestStandardScalerBadParams(t *testing.T) {
	_, err := NewStandardScaler([]float64{1, 2}, []float64{1})
	assert.Error(t, err)

	_, err = NewStandardScaler(nil, nil)
	assert.Error(t, err)
}

func TestLogisticModelPredict(t *testing.T) {
	m, err := NewLogisticModel([]float64{1, -1}, 0, 0.5)
	require.NoError(t, err)

	// Positive weighted sum sits above 0.5.
	probs, err := m.PredictProbability([]float64{2, 1})
	require.NoError(t, err)
	assert.Greater(t, probs[1], 0.5)
	assert.InDelta(t, 1.0, probs[0]+probs[1], 1e-12)

	label, err := m.Predict([]float64{2, 1})
	require.NoError(t, err)
	assert.Equal(t, 1, label)

	label, err = m.Predict([]float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 0, label)
}

func TestLogisticModelZeroInput(t *testing.T) {
	m, err := NewLogisticModel([]float64{0.3, 0.3}, 0, 0.5)
	require.NoError(t, err)

	probs, err := m.PredictProbability([]float64{0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, probs[0], 1e-12)
	assert.InDelta(t, 0.5, probs[1], 1e-12)
}

func TestLogisticModelLengthMismatch(t *testing.T) {
	m, err := NewLogisticModel(make([]float64, 34), 0, 0.5)
	require.NoError(t, err)

	_, err = m.Predict(make([]float64, 20))
	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestLoadArtifacts(t *testing.T) {
	dir := t.TempDir()

	scalerPath := filepath.Join(dir, "scaler.json")
	require.NoError(t, os.WriteFile(scalerPath,
		[]byte(`{"means":[0,1],"scales":[1,2]}`), 0644))
	scaler, err := LoadScaler(scalerPath)
	require.NoError(t, err)
	assert.Equal(t, 2, scaler.ExpectedInputLength())

	modelPath := filepath.Join(dir, "model.json")
	require.NoError(t, os.WriteFile(modelPath,
		[]byte(`{"weights":[0.5,-0.5],"bias":0.1}`), 0644))
	model, err := LoadModel(modelPath)
	require.NoError(t, err)
	assert.Equal(t, 0.5, model.Threshold)
}

func TestLoadArtifactsErrors(t *testing.T) {
	_, err := LoadScaler("/does/not/exist.json")
	assert.Error(t, err)

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0644))
	_, err = LoadScaler(bad)
	assert.Error(t, err)
	_, err = LoadModel(bad)
	assert.Error(t, err)
}

func TestValidateLength(t *testing.T) {
	assert.NoError(t, ValidateLength(34, 34))
	assert.Error(t, ValidateLength(33, 34))
}

func onesSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}
