package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DocumentSource provides the composed map, if one exists yet.
type DocumentSource interface {
	Document() (domain.MapDocument, bool)
}

// Server exposes the map page, its JSON views, and the health, readiness,
// and metrics endpoints.
type Server struct {
	httpServer *http.Server
	docs       DocumentSource
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the map routes plus /healthz, /readyz, and /metrics.
func NewServer(addr string, docs DocumentSource, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		docs:   docs,
		logger: logger,
	}

	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /api/map", s.handleMap)
	mux.HandleFunc("GET /api/earthquakes.geojson", s.handleGeoJSON)
	mux.HandleFunc("GET /api/legend", s.handleLegend)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	doc, ok := s.docs.Document()
	if !ok {
		http.Error(w, "map not rendered yet", http.StatusServiceUnavailable)
		return
	}

	var buf bytes.Buffer
	if err := RenderPage(&buf, doc); err != nil {
		s.logger.Error("render page failed", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleMap(w http.ResponseWriter, _ *http.Request) {
	doc, ok := s.docs.Document()
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "map not rendered yet"})
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleGeoJSON(w http.ResponseWriter, _ *http.Request) {
	doc, ok := s.docs.Document()
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "map not rendered yet"})
		return
	}
	data, err := markersToGeoJSON(doc.Markers()).MarshalJSON()
	if err != nil {
		s.logger.Error("encode geojson failed", "error", err)
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	_, _ = w.Write(data)
}

func (s *Server) handleLegend(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, domain.BuildLegend())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
