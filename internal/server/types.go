// Package server exposes face detection over HTTP and WebSocket.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/facekit/facekit/internal/pipeline"
	"github.com/facekit/facekit/internal/version"
)

// Config holds server configuration.
type Config struct {
	Host              string
	Port              int
	CORSOrigin        string
	MaxUploadMB       int64
	TimeoutSec        int
	OverlayEnabled    bool
	OverlayBoxColor   string
	OverlayGuideColor string
	Pipeline          pipeline.Config
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	pipeline          *pipeline.Pipeline
	corsOrigin        string
	maxUploadMB       int64
	timeoutSec        int
	overlayEnabled    bool
	overlayBoxColor   string
	overlayGuideColor string
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

// DetectResponse wraps a detection outcome. Result is omitted when no face
// was found; the request still succeeds.
type DetectResponse struct {
	Success bool             `json:"success"`
	Found   bool             `json:"found"`
	Result  *pipeline.Result `json:"result,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// StateResponse exposes the pipeline's busy flag and last cached result.
type StateResponse struct {
	Busy       bool             `json:"busy"`
	LastResult *pipeline.Result `json:"last_result,omitempty"`
}

// NewServer creates a new detection server instance.
func NewServer(config Config) (*Server, error) {
	pl, err := pipeline.NewBuilder().
		WithCascadePath(config.Pipeline.CascadePath).
		WithMinNativeScore(config.Pipeline.MinNativeScore).
		WithForceHeuristic(config.Pipeline.ForceHeuristic).
		Build()
	if err != nil {
		return nil, err
	}

	return &Server{
		pipeline:          pl,
		corsOrigin:        config.CORSOrigin,
		maxUploadMB:       config.MaxUploadMB,
		timeoutSec:        config.TimeoutSec,
		overlayEnabled:    config.OverlayEnabled,
		overlayBoxColor:   config.OverlayBoxColor,
		overlayGuideColor: config.OverlayGuideColor,
	}, nil
}

// Backend returns the name of the detection strategy in use.
func (s *Server) Backend() string { return s.pipeline.Backend() }

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/detect", s.corsMiddleware(s.detectHandler))
	mux.HandleFunc("/state", s.corsMiddleware(s.stateHandler))
	mux.HandleFunc("/ws/detect", s.detectWebSocketHandler)
	mux.Handle("/metrics", promhttp.Handler())
}

// Version returns the server build version.
func (s *Server) Version() string { return version.Version }
