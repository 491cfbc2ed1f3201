package stream

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/janus-labs/janus/internal/logging"
)

var (
	updatesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "janus",
		Subsystem: "stream",
		Name:      "bbo_updates_total",
		Help:      "BBO updates written to Redis, by product.",
	}, []string{"product"})

	parseFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "janus",
		Subsystem: "stream",
		Name:      "parse_failures_total",
		Help:      "Websocket messages that could not be decoded.",
	})

	reconnects = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "janus",
		Subsystem: "stream",
		Name:      "reconnects_total",
		Help:      "Websocket reconnect attempts.",
	})

	lastPrice = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "janus",
		Subsystem: "stream",
		Name:      "last_price",
		Help:      "Most recent top-of-book price, by product and side.",
	}, []string{"product", "side"})
)

// ServeMetrics exposes the Prometheus registry on addr. It runs in
// its own goroutine and logs instead of failing the stream if the
// listener cannot bind.
func ServeMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		logging.Get().Info().Str("addr", addr).Msg("serving metrics")
		if err := http.ListenAndServe(addr, mux); err != nil {
			logging.Get().Error().Err(err).Msg("metrics listener failed")
		}
	}()
}
