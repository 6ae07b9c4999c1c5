package server

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vehicle-insights/charts"
	"vehicle-insights/models"
	"vehicle-insights/utils"
)

const shutdownTimeout = 5 * time.Second

// Server exposes a Dashboard over HTTP.
type Server struct {
	dash    *Dashboard
	logger  *utils.Logger
	metrics *metrics
	router  chi.Router
}

// New builds the router. Metrics are registered on reg and served from /metrics.
func New(dash *Dashboard, logger *utils.Logger, reg *prometheus.Registry) *Server {
	s := &Server{
		dash:    dash,
		logger:  logger,
		metrics: newMetrics(reg),
	}
	s.metrics.listingsLoaded.Set(float64(dash.Len()))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/charts/{name}.png", s.handleChartPNG)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/preview", s.handlePreview)
		r.Get("/summary", s.handleSummary)
		r.Get("/charts/{name}", s.handleChartData)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Render(w, r, errNotFound("not found"))
	})

	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("[server] Dashboard listening on http://%s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("[server] Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, newIndexPage(s.dash)); err != nil {
		s.logger.Error("[server] Index template failed: %v", err)
		render.Render(w, r, errInternal(err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

type healthResponse struct {
	Status   string `json:"status"`
	Listings int    `json:"listings"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, healthResponse{Status: "ok", Listings: s.dash.Len()})
}

type previewResponse struct {
	Columns  []string         `json:"columns"`
	Count    int              `json:"count"`
	Listings []models.Listing `json:"listings"`
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	rows := s.dash.Preview()
	render.JSON(w, r, previewResponse{Columns: s.dash.Columns(), Count: len(rows), Listings: rows})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.dash.Summary())
}

type chartResponse struct {
	Chart string `json:"chart"`
	Title string `json:"title"`
	Data  any    `json:"data"`
}

func (s *Server) handleChartData(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	data, err := s.dash.ChartData(name)
	if errors.Is(err, ErrUnknownChart) {
		render.Render(w, r, errNotFound(err.Error()))
		return
	}
	if err != nil {
		render.Render(w, r, errInternal(err))
		return
	}
	s.metrics.chartRequests.WithLabelValues(name).Inc()
	render.JSON(w, r, chartResponse{Chart: name, Title: titleOf(name), Data: data})
}

func (s *Server) handleChartPNG(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var buf bytes.Buffer
	err := s.dash.RenderChart(name, &buf)
	switch {
	case errors.Is(err, ErrUnknownChart):
		render.Render(w, r, errNotFound(err.Error()))
		return
	case errors.Is(err, charts.ErrNoData):
		s.metrics.chartRequests.WithLabelValues(name).Inc()
		w.WriteHeader(http.StatusNoContent)
		return
	case err != nil:
		s.logger.Error("[server] Chart %s failed: %v", name, err)
		render.Render(w, r, errInternal(err))
		return
	}

	s.metrics.chartRequests.WithLabelValues(name).Inc()
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

// requestLogger logs each request at debug level.
func requestLogger(logger *utils.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("[server] %s %s -> %d (%d bytes, %v) id=%s",
				r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(), time.Since(start),
				middleware.GetReqID(r.Context()))
		})
	}
}
