// Package server exposes the KPI engine over a small read-only HTTP API for
// the ops dashboard. The batch is loaded once at startup; a restart picks up
// new export drops.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/gulfstar-ops/vesselkpi/internal/geo"
	"github.com/gulfstar-ops/vesselkpi/internal/integrity"
	"github.com/gulfstar-ops/vesselkpi/internal/kpi"
	"github.com/gulfstar-ops/vesselkpi/internal/model"
	"github.com/gulfstar-ops/vesselkpi/internal/period"
	"github.com/gulfstar-ops/vesselkpi/internal/registry"
)

// Options configures the API server.
type Options struct {
	Port           int
	RequestTimeout time.Duration
	// LagMonths shifts the year-to-date reference, matching the CLI behavior.
	LagMonths int
}

// Server serves KPI and integrity queries over one loaded batch.
type Server struct {
	reg   *registry.Registry
	batch *model.Batch
	agg   *kpi.Aggregator
	opts  Options
}

// New creates a Server over an already-loaded batch.
func New(reg *registry.Registry, batch *model.Batch, opts Options) *Server {
	if opts.Port == 0 {
		opts.Port = 8080
	}
	if opts.RequestTimeout == 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	return &Server{
		reg:   reg,
		batch: batch,
		agg:   kpi.New(reg),
		opts:  opts,
	}
}

// Router builds the chi router with middleware and all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/kpis", s.handleKpis)
		r.Get("/integrity", s.handleIntegrity)
		r.Get("/facilities", s.handleFacilities)
	})

	return r
}

// ListenAndServe runs the server until the context is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(s.opts.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("server: listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"records": s.batch.Size(),
	})
}

// handleKpis computes the KPI set for the query's period and location.
// Query params: month (name), year, ytd (bool), location.
func (s *Server) handleKpis(w http.ResponseWriter, r *http.Request) {
	window, err := windowFromQuery(r, s.opts.LagMonths)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	set, err := s.agg.Compute(r.Context(), s.batch, kpi.Selection{
		Window:   window,
		Location: r.URL.Query().Get("location"),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (s *Server) handleIntegrity(w http.ResponseWriter, _ *http.Request) {
	report := integrity.NewValidator(s.reg).Validate(s.batch)
	writeJSON(w, http.StatusOK, report)
}

type facilityView struct {
	model.Facility
	TransitNM *float64 `json:"transit_nm,omitempty"`
}

func (s *Server) handleFacilities(w http.ResponseWriter, _ *http.Request) {
	facilities := s.reg.Facilities()
	out := make([]facilityView, 0, len(facilities))
	for _, f := range facilities {
		view := facilityView{Facility: f}
		if nm, ok := geo.TransitNM(f); ok {
			view.TransitNM = &nm
		}
		out = append(out, view)
	}
	writeJSON(w, http.StatusOK, out)
}

// windowFromQuery mirrors the CLI period flags: ytd beats month/year, month
// requires year, year alone means that calendar year, nothing means all-time.
func windowFromQuery(r *http.Request, lagMonths int) (period.Window, error) {
	q := r.URL.Query()

	if ytd, _ := strconv.ParseBool(q.Get("ytd")); ytd {
		return period.CurrentYTD(time.Now(), lagMonths), nil
	}

	year := 0
	if ys := q.Get("year"); ys != "" {
		y, err := strconv.Atoi(ys)
		if err != nil {
			return period.Window{}, errBadParam{"year", ys}
		}
		year = y
	}

	if ms := q.Get("month"); ms != "" {
		if year == 0 {
			return period.Window{}, errBadParam{"month", "requires year"}
		}
		m, err := parseMonth(ms)
		if err != nil {
			return period.Window{}, errBadParam{"month", ms}
		}
		return period.MonthWindow(m, year), nil
	}
	if year != 0 {
		return period.YTDWindow(year), nil
	}
	return period.AllTimeWindow(), nil
}

func parseMonth(name string) (time.Month, error) {
	for _, layout := range []string{"January", "Jan", "1"} {
		if t, err := time.Parse(layout, strings.TrimSpace(name)); err == nil {
			return t.Month(), nil
		}
	}
	return 0, errBadParam{"month", name}
}

type errBadParam struct {
	param, value string
}

func (e errBadParam) Error() string {
	return "invalid " + e.param + ": " + e.value
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("server: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
