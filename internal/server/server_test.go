package server

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxscreen/voxscreen/internal/screening"
	"github.com/voxscreen/voxscreen/pkg/audio/features"
	"github.com/voxscreen/voxscreen/pkg/classify"
)

func sineWAV(freq float64, sampleRate int, duration time.Duration) []byte {
	n := int(duration.Seconds() * float64(sampleRate))

	var pcm bytes.Buffer
	for i := 0; i < n; i++ {
		v := 0.8 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
		binary.Write(&pcm, binary.LittleEndian, int16(v*32767))
	}

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+pcm.Len()))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*2))
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(pcm.Len()))
	buf.Write(pcm.Bytes())

	return buf.Bytes()
}

func testServer(t *testing.T) *Server {
	t.Helper()

	means := make([]float64, features.VectorLength)
	scales := make([]float64, features.VectorLength)
	weights := make([]float64, features.VectorLength)
	for i := range scales {
		scales[i] = 1
	}
	scaler, err := classify.NewStandardScaler(means, scales)
	require.NoError(t, err)
	model, err := classify.NewLogisticModel(weights, 0, 0.5)
	require.NoError(t, err)

	screener, err := screening.NewScreener(
		screening.NewPipeline(screening.DefaultPipelineConfig()), scaler, model, nil)
	require.NoError(t, err)

	return New(DefaultConfig(), screener, nil)
}

func multipartUpload(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func TestHealthz(t *testing.T) {
	srv := testServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	srv.Engine().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"model_loaded":true`)
}

func TestAnalyzeOK(t *testing.T) {
	srv := testServer(t)

	body, contentType := multipartUpload(t, "audio", "tone.wav", sineWAV(150, 22050, time.Second))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", body)
	req.Header.Set("Content-Type", contentType)
	srv.Engine().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result screening.Screening
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Prediction)
	assert.InDelta(t, 50.0, result.RiskScore, 1e-9)
	assert.InDelta(t, 50.0, result.ProbabilityHealthy, 1e-9)
	assert.InDelta(t, 50.0, result.ProbabilityAffected, 1e-9)
	assert.Len(t, result.Features, features.VectorLength)
}

func TestAnalyzeMissingFile(t *testing.T) {
	srv := testServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", nil)
	srv.Engine().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no audio file")
}

func TestAnalyzeUndecodableAudio(t *testing.T) {
	srv := testServer(t)

	body, contentType := multipartUpload(t, "audio", "garbage.wav",
		bytes.Repeat([]byte{0xAB, 0xCD}, 512))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", body)
	req.Header.Set("Content-Type", contentType)
	srv.Engine().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.False(t, errResp.Success)
	assert.NotEmpty(t, errResp.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestAnalyzeMislabeledExtension(t *testing.T) {
	// WAV content with a lying .mp3 name still screens successfully.
	srv := testServer(t)

	body, contentType := multipartUpload(t, "audio", "voice.mp3", sineWAV(150, 22050, time.Second))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", body)
	req.Header.Set("Content-Type", contentType)
	srv.Engine().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestAnalyzeTooLarge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxBodySize = 1024

	means := make([]float64, features.VectorLength)
	scales := make([]float64, features.VectorLength)
	for i := range scales {
		scales[i] = 1
	}
	scaler, _ := classify.NewStandardScaler(means, scales)
	model, _ := classify.NewLogisticModel(make([]float64, features.VectorLength), 0, 0.5)
	screener, err := screening.NewScreener(
		screening.NewPipeline(screening.DefaultPipelineConfig()), scaler, model, nil)
	require.NoError(t, err)
	srv := New(cfg, screener, nil)

	body, contentType := multipartUpload(t, "audio", "big.wav", sineWAV(150, 22050, time.Second))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", body)
	req.Header.Set("Content-Type", contentType)
	srv.Engine().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
