// Package metric exports server side counters in the Prometheus text format.
package metric

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"weavelab.xyz/nettest/protocol"
)

// Metrics is safe for concurrent use. A nil *Metrics discards everything so
// handlers can run without an exporter.
type Metrics struct {
	registry *prometheus.Registry

	accepted  prometheus.Counter
	active    prometheus.Gauge
	closed    *prometheus.CounterVec
	bytes     *prometheus.CounterVec
	opcodes   *prometheus.CounterVec
	requests  prometheus.Counter
	streamed  prometheus.Histogram
	integrity prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		accepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nettest_connections_accepted_total",
			Help: "Connections accepted by the listener.",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nettest_connections_active",
			Help: "Connections currently being handled.",
		}),
		closed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nettest_connections_closed_total",
			Help: "Connections closed, by outcome.",
		}, []string{"outcome"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nettest_bytes_total",
			Help: "Filler payload bytes moved, by direction.",
		}, []string{"direction"}),
		opcodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nettest_opcodes_received_total",
			Help: "Opcodes read from clients.",
		}, []string{"opcode"}),
		requests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nettest_stream_requests_total",
			Help: "Duration requests serviced by sender workers.",
		}),
		streamed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "nettest_stream_seconds",
			Help:    "Wall clock time spent streaming one duration request.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
		integrity: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nettest_integrity_matches_total",
			Help: "Chunks whose simulated MAC digest matched the magic byte.",
		}),
	}
	m.registry.MustRegister(m.accepted, m.active, m.closed, m.bytes, m.opcodes, m.requests, m.streamed, m.integrity)
	m.registry.MustRegister(newConnCollector())
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ConnOpened() {
	if m == nil {
		return
	}
	m.accepted.Inc()
	m.active.Inc()
}

// ConnClosed records the end of a connection; err is the handler's result.
func (m *Metrics) ConnClosed(err error) {
	if m == nil {
		return
	}
	m.active.Dec()
	outcome := "normal"
	if err != nil {
		outcome = "error"
	}
	m.closed.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Opcode(op protocol.Opcode) {
	if m == nil {
		return
	}
	m.opcodes.WithLabelValues(op.String()).Inc()
}

func (m *Metrics) BytesIn(n int) {
	if m == nil {
		return
	}
	m.bytes.WithLabelValues("rx").Add(float64(n))
}

func (m *Metrics) BytesOut(n int) {
	if m == nil {
		return
	}
	m.bytes.WithLabelValues("tx").Add(float64(n))
}

func (m *Metrics) Streamed(d time.Duration) {
	if m == nil {
		return
	}
	m.requests.Inc()
	m.streamed.Observe(d.Seconds())
}

func (m *Metrics) IntegrityMatch() {
	if m == nil {
		return
	}
	m.integrity.Inc()
}

// Serve exposes the registry on addr under /metrics until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
