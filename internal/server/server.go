// Package server exposes the screening pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"github.com/gin-gonic/gin"

	"github.com/voxscreen/voxscreen/internal/screening"
	"github.com/voxscreen/voxscreen/pkg/audio/decode"
	"github.com/voxscreen/voxscreen/pkg/classify"
)

// Config holds the HTTP serving parameters.
type Config struct {
	Host        string
	Port        int
	MaxBodySize int64
	Debug       bool
}

// DefaultConfig returns the standard serving parameters.
func DefaultConfig() Config {
	return Config{
		Host:        "0.0.0.0",
		Port:        8080,
		MaxBodySize: 25 << 20,
	}
}

// Server wraps a gin engine around a screener.
type Server struct {
	cfg      Config
	screener *screening.Screener
	engine   *gin.Engine
	logger   logging.Logger
	srv      *http.Server
}

// ErrorResponse is the JSON body for failed requests. Success is always
// false; it mirrors the success flag on scored responses so clients can
// branch on one field.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// New builds a server around the given screener.
func New(cfg Config, screener *screening.Screener, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = DefaultConfig().MaxBodySize
	}
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:      cfg,
		screener: screener,
		engine:   gin.New(),
		logger:   logger.WithFields(logging.Fields{"component": "http_server"}),
	}
	s.engine.Use(gin.Recovery())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.healthHandler)
	v1 := s.engine.Group("/api/v1")
	v1.POST("/analyze", s.analyzeHandler)
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"model_loaded": s.screener != nil,
	})
}

func (s *Server) analyzeHandler(c *gin.Context) {
	file, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no audio file provided"})
		return
	}
	if file.Size > s.cfg.MaxBodySize {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Error: fmt.Sprintf("file too large, maximum %d bytes", s.cfg.MaxBodySize),
		})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to open upload"})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, s.cfg.MaxBodySize+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to read upload"})
		return
	}
	if int64(len(data)) > s.cfg.MaxBodySize {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Error: fmt.Sprintf("file too large, maximum %d bytes", s.cfg.MaxBodySize),
		})
		return
	}

	result, err := s.screener.Screen(c.Request.Context(), decode.Blob{Data: data, Filename: file.Filename})
	if err != nil {
		s.writeScreeningError(c, file.Filename, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// writeScreeningError maps pipeline failures onto HTTP statuses. Client
// audio problems are 4xx; model misconfiguration is 5xx.
func (s *Server) writeScreeningError(c *gin.Context, filename string, err error) {
	var decodeErr *decode.Error
	var tooShort *screening.TooShortError
	var mismatch *classify.MismatchError

	switch {
	case errors.As(err, &decodeErr):
		s.logger.Warn("decode failed", logging.Fields{"filename": filename, "code": decodeErr.Code})
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: decodeErr.Message, Code: decodeErr.Code})
	case errors.Is(err, screening.ErrEmptySignal):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Code: "EMPTY_SIGNAL"})
	case errors.As(err, &tooShort):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Code: "AUDIO_TOO_SHORT"})
	case errors.Is(err, screening.ErrDegenerateVector):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Code: "DEGENERATE_FEATURES"})
	case errors.As(err, &mismatch):
		s.logger.Error(err, "model artifact mismatch", logging.Fields{"filename": filename})
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Code: "FEATURE_MISMATCH"})
	default:
		s.logger.Error(err, "screening failed", logging.Fields{"filename": filename})
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// Run starts the HTTP listener and blocks until the context is canceled or
// the listener fails.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.ListenAndServe()
	}()

	s.logger.Info("server listening", logging.Fields{"addr": addr})

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
