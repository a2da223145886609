package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/ndtm"
	"github.com/aretw0/ndtm/internal/service"
	"github.com/aretw0/ndtm/internal/validator"
	"github.com/aretw0/ndtm/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes bounds request bodies, program text included.
const maxBodyBytes = 1 << 20

// Server exposes the simulator over HTTP.
type Server struct {
	svc    *service.Service
	logger *slog.Logger
}

// HandlerOption configures NewHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// WithMetricsHandler mounts /metrics for g.
func WithMetricsHandler(g prometheus.Gatherer) HandlerOption {
	return func(c *handlerConfig) {
		c.gatherer = g
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(c *handlerConfig) {
		c.logger = logger
	}
}

// NewHandler creates a new HTTP handler for the service.
func NewHandler(svc *service.Service, opts ...HandlerOption) http.Handler {
	cfg := handlerConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&cfg)
	}
	server := &Server{svc: svc, logger: cfg.logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Post("/simulate", server.Simulate)
	r.Post("/format", server.Format)
	r.Post("/validate", server.Validate)

	r.Route("/programs", func(r chi.Router) {
		r.Get("/", server.ListPrograms)
		r.Get("/{name}", server.GetProgram)
		r.Put("/{name}", server.PutProgram)
		r.Delete("/{name}", server.DeleteProgram)
	})
	r.Get("/graph/{name}", server.GetGraph)

	if cfg.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListenAndServe runs handler on addr until ctx is canceled.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logger.Info("shutting down HTTP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

// SimulateResponse is the body of a successful POST /simulate.
type SimulateResponse = ndtm.Report

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Line  int    `json:"line,omitempty"`
}

// Simulate handles the POST /simulate request.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	var body service.SimulateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	rep, err := s.svc.Simulate(r.Context(), body)
	if err != nil {
		s.fail(w, "Simulate", err)
		return
	}
	s.writeJSON(w, http.StatusOK, rep)
}

// Format handles the POST /format request. The body is program text.
func (s *Server) Format(w http.ResponseWriter, r *http.Request) {
	text, err := readText(w, r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	canonical, err := s.svc.Format(text)
	if err != nil {
		s.fail(w, "Format", err)
		return
	}
	writeText(w, http.StatusOK, canonical)
}

// Validate handles the POST /validate request. The body is program text.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	text, err := readText(w, r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	findings, err := s.svc.Validate(r.Context(), "", text)
	if err != nil {
		s.fail(w, "Validate", err)
		return
	}
	if findings == nil {
		findings = []validator.Finding{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"findings": findings})
}

// ListPrograms handles the GET /programs request.
func (s *Server) ListPrograms(w http.ResponseWriter, r *http.Request) {
	names, err := s.svc.List(r.Context())
	if err != nil {
		s.fail(w, "ListPrograms", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"programs": names})
}

// GetProgram handles the GET /programs/{name} request.
func (s *Server) GetProgram(w http.ResponseWriter, r *http.Request) {
	text, err := s.svc.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, "GetProgram", err)
		return
	}
	writeText(w, http.StatusOK, text)
}

// PutProgram handles the PUT /programs/{name} request.
// The program is parsed and stored in canonical form.
func (s *Server) PutProgram(w http.ResponseWriter, r *http.Request) {
	text, err := readText(w, r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	canonical, err := s.svc.Save(r.Context(), chi.URLParam(r, "name"), text)
	if err != nil {
		s.fail(w, "PutProgram", err)
		return
	}
	writeText(w, http.StatusOK, canonical)
}

// DeleteProgram handles the DELETE /programs/{name} request.
func (s *Server) DeleteProgram(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.fail(w, "DeleteProgram", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetGraph handles the GET /graph/{name} request.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	diagram, err := s.svc.Graph(r.Context(), chi.URLParam(r, "name"), "")
	if err != nil {
		s.fail(w, "GetGraph", err)
		return
	}
	writeText(w, http.StatusOK, diagram)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "ndtm-http",
		"version": strings.TrimSpace(ndtm.Version),
	})
}

// StatusFor maps service and machine errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrProgramNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNoProgram),
		errors.Is(err, service.ErrInvalidName),
		errors.Is(err, domain.ErrMalformedProgram),
		errors.Is(err, domain.ErrUnknownDirection):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUndefinedTransition),
		errors.Is(err, domain.ErrTapeOrigin):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "err", err)
	} else {
		s.logger.Warn(op+" rejected", "err", err, "status", status)
	}
	s.writeError(w, status, err)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	resp := ErrorResponse{Error: err.Error()}
	var me *domain.MachineError
	if errors.As(err, &me) {
		resp.Kind = me.Kind.String()
		resp.Line = me.LineNo
	}
	s.writeJSON(w, status, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func readText(w http.ResponseWriter, r *http.Request) (string, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("invalid request body: %w", err)
	}
	return string(data), nil
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, text)
}
