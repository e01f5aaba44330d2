// Package metrics exposes run counters over Prometheus. The exposition
// endpoint is optional; counters are always maintained so tests can
// inspect them directly.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Metrics struct {
	registry *prometheus.Registry

	TransactionsProcessed prometheus.Counter
	TransactionsFailed    prometheus.Counter
	RowsEmitted           *prometheus.CounterVec
	UnmatchedActions      prometheus.Counter
	DenomLookups          prometheus.Counter
	DenomCacheMisses      prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		TransactionsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chainledger_transactions_processed_total",
			Help: "Transactions read and classified during the run.",
		}),
		TransactionsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chainledger_transactions_failed_total",
			Help: "Transactions whose classification returned an error.",
		}),
		RowsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chainledger_rows_emitted_total",
			Help: "Ledger rows written, labeled by row type.",
		}, []string{"type"}),
		UnmatchedActions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chainledger_unmatched_actions_total",
			Help: "Discovered actions with no registered processor.",
		}),
		DenomLookups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chainledger_denom_lookups_total",
			Help: "External denomination lookups performed.",
		}),
		DenomCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chainledger_denom_cache_misses_total",
			Help: "Denomination resolutions not served from the cache.",
		}),
	}

	m.registry.MustRegister(
		m.TransactionsProcessed,
		m.TransactionsFailed,
		m.RowsEmitted,
		m.UnmatchedActions,
		m.DenomLookups,
		m.DenomCacheMisses,
	)
	return m
}

// Serve exposes /metrics on the given port in the background. Runs for
// the life of the process; errors are logged, not returned, since the
// endpoint is advisory.
func (m *Metrics) Serve(port int, l *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	go func() {
		addr := fmt.Sprintf(":%d", port)
		l.Sugar().Infow("Serving metrics", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			l.Sugar().Errorw("Metrics server exited", zap.Error(err))
		}
	}()
}
