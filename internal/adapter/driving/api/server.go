// Package api exposes the insight and report flows over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/rs/zerolog"

	"github.com/diillson/retail-report-go/internal/application/analytics"
	"github.com/diillson/retail-report-go/internal/application/usecase"
	"github.com/diillson/retail-report-go/internal/domain/entity"
	"github.com/diillson/retail-report-go/internal/shared/types"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// ReportService is the part of the report use case the API drives.
type ReportService interface {
	GenerateInsights(ds entity.Dataset, sel usecase.Selection) (entity.InsightReport, entity.KPISet, entity.Dataset, error)
	GenerateReport(ctx context.Context, ds entity.Dataset, sel usecase.Selection, preparedBy string) (*usecase.ReportResult, error)
}

// Server serves one dataset loaded at startup.
type Server struct {
	service ReportService
	dataset entity.Dataset
	logger  zerolog.Logger
	metrics *Metrics
	router  chi.Router
}

// NewServer builds the router for the given dataset.
func NewServer(service ReportService, ds entity.Dataset, logger zerolog.Logger) *Server {
	s := &Server{
		service: service,
		dataset: ds,
		logger:  logger.With().Str("component", "api").Logger(),
		metrics: NewMetrics(),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger, s.metrics))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.With(render.SetContentType(render.ContentTypeJSON)).Get("/insights", s.insights)
		r.Get("/insights/markdown", s.insightsMarkdown)
		r.Get("/report", s.report)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Metrics returns the server collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// ListenAndServe runs the server until ctx is canceled, then shuts it down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Int("records", s.dataset.Len()).Msg("api listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info().Msg("shutting down api")
		return srv.Shutdown(shutdownCtx)
	}
}

type insightsResponse struct {
	GeneratedAt time.Time               `json:"generated_at"`
	Records     int                     `json:"records"`
	Filters     []entity.Filter         `json:"filters"`
	KPIs        entity.KPISet           `json:"kpis"`
	Summary     entity.ExecutiveSummary `json:"summary"`
	Insights    []entity.Insight        `json:"insights"`
	Anomalies   []entity.AnomalyFlag    `json:"anomalies"`
	Monthly     []types.MonthlyRevenue  `json:"monthly"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func selectionFrom(r *http.Request) usecase.Selection {
	q := r.URL.Query()
	return usecase.Selection{
		Region:   strings.TrimSpace(q.Get("region")),
		Category: strings.TrimSpace(q.Get("category")),
		Search:   q.Get("search"),
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status":  "ok",
		"records": s.dataset.Len(),
	})
}

func (s *Server) insights(w http.ResponseWriter, r *http.Request) {
	sel := selectionFrom(r)
	started := time.Now()
	report, kpis, filtered, err := s.service.GenerateInsights(s.dataset, sel)
	s.metrics.observeBuild("insights", started, err)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	anomalies := report.Anomalies
	if anomalies == nil {
		anomalies = []entity.AnomalyFlag{}
	}
	insights := report.Insights
	if insights == nil {
		insights = []entity.Insight{}
	}

	render.JSON(w, r, insightsResponse{
		GeneratedAt: time.Now().UTC(),
		Records:     filtered.Len(),
		Filters:     sel.Filters(),
		KPIs:        kpis,
		Summary:     report.Summary,
		Insights:    insights,
		Anomalies:   anomalies,
		Monthly:     usecase.MonthlyRevenue(filtered),
	})
}

func (s *Server) insightsMarkdown(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	report, _, _, err := s.service.GenerateInsights(s.dataset, selectionFrom(r))
	s.metrics.observeBuild("insights", started, err)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(analytics.Markdown(report)))
}

func (s *Server) report(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	result, err := s.service.GenerateReport(r.Context(), s.dataset, selectionFrom(r), r.URL.Query().Get("prepared_by"))
	s.metrics.observeBuild("report", started, err)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", usecase.DefaultReportName+"_"+result.ID+".pdf"))
	w.Header().Set("X-Report-Pages", fmt.Sprint(result.Document.PageCount))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Document.Content); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("writing pdf response")
	}
}

// statusFor maps domain failures to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrInsufficientData), errors.Is(err, types.ErrDivisionUndefined), errors.Is(err, types.ErrInvalidGrid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	zerolog.Ctx(r.Context()).Error().Err(err).Int("status", status).Msg("request failed")
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: err.Error()})
}
