package metrics

import (
	"context"
	"net/http"
	"time"
)

// MetricsServer serves /metrics on its own listener, separate from the API.
type MetricsServer struct {
	metrics *Metrics
	srv     *http.Server
}

// New creates the metrics for namespace and a server that will listen on addr.
func New(namespace, addr string) (*MetricsServer, error) {
	m := NewMetrics(namespace)

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	return &MetricsServer{
		metrics: m,
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Metrics returns the metrics served by this server.
func (s *MetricsServer) Metrics() *Metrics {
	return s.metrics
}

func (s *MetricsServer) ListenAndServe() error {
	return s.srv.ListenAndServe()
}

func (s *MetricsServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
