// Package metrics exposes search statistics to Prometheus. Collectors read
// Generator.Stats at scrape time, so the search loop is not touched.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Amr-9/SegwitHunter/pkg/generator"
)

const namespace = "segwithunter"

// StatsSource is anything that reports live search statistics.
type StatsSource interface {
	Stats() generator.Stats
}

// NewRegistry returns a registry with the search collectors registered.
func NewRegistry(src StatsSource) *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attempts_total",
			Help:      "Candidate addresses derived in the current search.",
		}, func() float64 { return float64(src.Stats().Attempts) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "hash_rate",
			Help:      "Average candidates per second since the search started.",
		}, func() float64 { return src.Stats().HashRate }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "elapsed_seconds",
			Help:      "Seconds since the search started.",
		}, func() float64 { return src.Stats().ElapsedSecs }),
	)
	return registry
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// Server serves /metrics for the lifetime of a search.
type Server struct {
	server   *http.Server
	listener net.Listener
	logger   *zap.Logger
}

// Listen binds addr and prepares the /metrics endpoint.
func Listen(addr string, registry *prometheus.Registry, logger *zap.Logger) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(registry))
	return &Server{
		server: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		listener: listener,
		logger:   logger,
	}, nil
}

// Addr returns the bound address.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Start serves in the background.
func (s *Server) Start() {
	s.logger.Info("metrics listening", zap.String("addr", s.Addr()))
	go func() {
		if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics server failed", zap.Error(err))
		}
	}()
}

// Stop shuts the server down, waiting at most two seconds for scrapes.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}
