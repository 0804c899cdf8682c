// Package server exposes the estimator, report export and formula predictors over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/potency/internal/config"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP front end. Create it with New.
type Server struct {
	cfg      *config.Config
	logger   *slog.Logger
	engine   *gin.Engine
	registry *prometheus.Registry
	metrics  *metrics
}

// New builds the router. The server owns a private Prometheus registry so several
// instances can coexist in one process.
func New(cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	reg := prometheus.NewRegistry()
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		engine:   gin.New(),
		registry: reg,
		metrics:  newMetrics(reg),
	}
	s.routes()

	return s
}

func (s *Server) routes() {
	r := s.engine
	r.Use(gin.Recovery(), requestID(), s.accessLog())

	r.GET("/health", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry})))

	v1 := r.Group("/v1", rateLimit(s.cfg.Server.RateLimit, s.cfg.Server.RateBurst), bodyLimit(s.cfg.Server.MaxBodyBytes))
	{
		v1.POST("/potency", s.handleEstimate)
		v1.POST("/potency/plot", s.handlePlot)
		v1.POST("/potency/export", s.handleExport)

		v1.POST("/predict/doe", s.handlePredictDOE)
		v1.POST("/predict/cytokine", s.handlePredictCytokine)
		v1.GET("/predict/stability", s.handlePredictStability)
	}
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Registry returns the metrics registry served on /metrics.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Run serves on the configured address until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return err
	}

	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadTimeout:       s.cfg.Server.ReadTimeout,
		ReadHeaderTimeout: s.cfg.Server.ReadTimeout,
		WriteTimeout:      s.cfg.Server.WriteTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", slog.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
