// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "splitsmart"

// Settlement outcomes.
const (
	OutcomeCleared  = "cleared"
	OutcomePartial  = "partial"
	OutcomeOverpaid = "overpaid"
	OutcomeRejected = "rejected"
)

// Metrics holds every collector. A nil *Metrics is valid and records nothing.
type Metrics struct {
	ExpensesApplied     *prometheus.CounterVec
	Settlements         *prometheus.CounterVec
	ChainsCollapsed     prometheus.Counter
	RPCRequests         *prometheus.CounterVec
	RPCDuration         *prometheus.HistogramVec
	OutstandingBalances *prometheus.GaugeVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ExpensesApplied: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expenses_applied_total",
			Help:      "Expenses folded into a group ledger, by split type.",
		}, []string{"split_type"}),
		Settlements: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlements_total",
			Help:      "Settlement attempts, by outcome.",
		}, []string{"outcome"}),
		ChainsCollapsed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "debt_chains_collapsed_total",
			Help:      "Debt chains removed by simplification.",
		}),
		RPCRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls, by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency, by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		OutstandingBalances: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "outstanding_balances",
			Help:      "Debt records currently held by each group ledger.",
		}, []string{"group"}),
	}
}

// ExpenseApplied counts one expense of the given split type.
func (m *Metrics) ExpenseApplied(splitType string, collapsed int) {
	if m == nil {
		return
	}
	m.ExpensesApplied.WithLabelValues(splitType).Inc()
	m.ChainsCollapsed.Add(float64(collapsed))
}

// Settlement counts one settlement attempt.
func (m *Metrics) Settlement(outcome string) {
	if m == nil {
		return
	}
	m.Settlements.WithLabelValues(outcome).Inc()
}

// SetOutstanding records how many balances a group's ledger holds.
func (m *Metrics) SetOutstanding(groupID string, n int) {
	if m == nil {
		return
	}
	m.OutstandingBalances.WithLabelValues(groupID).Set(float64(n))
}

// ObserveRPC records one finished call.
func (m *Metrics) ObserveRPC(procedure, code string, seconds float64) {
	if m == nil {
		return
	}
	m.RPCRequests.WithLabelValues(procedure, code).Inc()
	m.RPCDuration.WithLabelValues(procedure).Observe(seconds)
}
