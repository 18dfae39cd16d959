package metric

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"weavelab.xyz/nettest/session"
)

var (
	connBytesDesc = prometheus.NewDesc(
		"nettest_connection_bytes",
		"Filler bytes moved on a live connection.",
		[]string{"id", "remote", "direction"}, nil,
	)
	connPingsDesc = prometheus.NewDesc(
		"nettest_connection_pings",
		"Pings answered on a live connection.",
		[]string{"id", "remote"}, nil,
	)
)

// connCollector reports the live connection table at scrape time.
type connCollector struct{}

func newConnCollector() connCollector {
	return connCollector{}
}

func (c connCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- connBytesDesc
	ch <- connPingsDesc
}

func (c connCollector) Collect(ch chan<- prometheus.Metric) {
	for _, conn := range session.GetConns() {
		id := strconv.FormatUint(conn.ID, 10)
		ch <- prometheus.MustNewConstMetric(connBytesDesc, prometheus.GaugeValue, float64(conn.BytesIn()), id, conn.RemoteAddr, "rx")
		ch <- prometheus.MustNewConstMetric(connBytesDesc, prometheus.GaugeValue, float64(conn.BytesOut()), id, conn.RemoteAddr, "tx")
		ch <- prometheus.MustNewConstMetric(connPingsDesc, prometheus.GaugeValue, float64(conn.Pings()), id, conn.RemoteAddr)
	}
}
