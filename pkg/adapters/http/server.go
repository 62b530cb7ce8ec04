package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/crapsim"
	"github.com/aretw0/crapsim/pkg/config"
	"github.com/aretw0/crapsim/pkg/domain"
	"github.com/aretw0/crapsim/pkg/export"
	"github.com/aretw0/crapsim/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes caps scenario request bodies.
const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// Server exposes a Simulator over HTTP.
type Server struct {
	sim       ports.Simulator
	logger    *slog.Logger
	defaults  domain.Scenario
	maxTrials int
	gatherer  prometheus.Gatherer
	origins   []string
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithDefaults sets the scenario request bodies are layered over.
func WithDefaults(sc domain.Scenario) Option {
	return func(s *Server) {
		s.defaults = sc
	}
}

// WithMaxTrials rejects scenarios asking for more than n trials. Zero disables the cap.
func WithMaxTrials(n int) Option {
	return func(s *Server) {
		s.maxTrials = n
	}
}

// WithMetrics serves g on /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithAllowedOrigins sets the CORS origins (default "*").
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.origins = origins
	}
}

// NewHandler creates the HTTP handler for sim.
func NewHandler(sim ports.Simulator, opts ...Option) http.Handler {
	s := &Server{
		sim:      sim,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		defaults: config.Default(),
		origins:  []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Location"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Post("/scenarios", s.PostScenario)
	r.Route("/reports", func(rr chi.Router) {
		rr.Get("/", s.ListReports)
		rr.Get("/{id}", s.GetReport)
		rr.Get("/{id}/trials.csv", s.GetTrialsCSV)
	})
	return r
}

// PostScenario handles POST /scenarios: the body is a scenario object whose
// keys override the server defaults.
func (s *Server) PostScenario(w http.ResponseWriter, r *http.Request) {
	raw := map[string]any{}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	sc, err := config.Decode(s.defaults, raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.maxTrials > 0 && sc.Trials > s.maxTrials {
		s.writeError(w, r, &config.ValidationError{
			Field:  "n_trials",
			Reason: fmt.Sprintf("must be at most %d on this server", s.maxTrials),
			Value:  sc.Trials,
		})
		return
	}

	report, err := s.sim.Simulate(r.Context(), sc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info("scenario served", "id", report.ID, "label", report.Label, "trials", len(report.Trials))
	w.Header().Set("Location", "/reports/"+report.ID)
	s.writeJSON(w, http.StatusCreated, report.Summary())
}

// ListReports handles GET /reports.
func (s *Server) ListReports(w http.ResponseWriter, r *http.Request) {
	ids, err := s.sim.Reports(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"reports": ids})
}

// GetReport handles GET /reports/{id}.
func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.sim.Report(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report.Summary())
}

// GetTrialsCSV handles GET /reports/{id}/trials.csv.
func (s *Server) GetTrialsCSV(w http.ResponseWriter, r *http.Request) {
	report, err := s.sim.Report(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.ID+".csv"))
	if err := export.WriteTrials(w, report.Label, report.Trials, true); err != nil {
		s.logger.Error("trials export failed", "id", report.ID, "error", err)
	}
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"app":        "crapsim-http",
		"version":    strings.TrimSpace(crapsim.Version),
		"max_trials": s.maxTrials,
	})
}

// writeError maps domain errors onto status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		status = http.StatusInternalServerError
		body   = ErrorResponse{Error: err.Error()}
	)
	switch {
	case errors.Is(err, config.ErrInvalidConfig):
		status = http.StatusBadRequest
		if errs := config.ValidationErrors(err); len(errs) > 0 {
			body.Error = config.ErrInvalidConfig.Error()
			for _, e := range errs {
				body.Details = append(body.Details, e.Error())
			}
		}
	case errors.Is(err, domain.ErrReportNotFound):
		status = http.StatusNotFound
	case errors.Is(err, crapsim.ErrNoStore):
		status = http.StatusNotImplemented
	case errors.Is(err, r.Context().Err()) && r.Context().Err() != nil:
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	s.writeJSON(w, status, body)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}
