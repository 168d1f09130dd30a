package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Expense metrics
	BatchesAccepted  prometheus.Counter
	ExpensesAccepted prometheus.Counter
	ExpensesExcluded prometheus.Counter
	ExpenseAmount    prometheus.Histogram

	// Settlement metrics
	SettlementsApplied  *prometheus.CounterVec
	SettlementsRejected *prometheus.CounterVec
	SettlementAmount    prometheus.Histogram

	// Balance metrics
	BalanceSnapshotHits   prometheus.Counter
	BalanceSnapshotMisses prometheus.Counter

	// Parser metrics
	ParseRequests *prometheus.CounterVec
	ParseDuration prometheus.Histogram

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBErrors      *prometheus.CounterVec
	DBConnections prometheus.Gauge

	// Notification metrics
	NotificationsEmitted *prometheus.CounterVec

	// Authentication metrics
	AuthFailures *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		BatchesAccepted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "roomledger_batches_accepted_total",
			Help: "Total number of expense batches accepted",
		}),
		ExpensesAccepted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "roomledger_expenses_accepted_total",
			Help: "Total number of expenses accepted into the ledger",
		}),
		ExpensesExcluded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "roomledger_expenses_excluded_total",
			Help: "Total number of transactions excluded during normalization",
		}),
		ExpenseAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "roomledger_expense_amount",
			Help:    "Accepted expense amounts",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		}),

		SettlementsApplied: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roomledger_settlements_applied_total",
				Help: "Total settlements applied by kind",
			},
			[]string{"kind"},
		),
		SettlementsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roomledger_settlements_rejected_total",
				Help: "Total settlements rejected by reason",
			},
			[]string{"reason"},
		),
		SettlementAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "roomledger_settlement_amount",
			Help:    "Settlement amounts",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		}),

		BalanceSnapshotHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "roomledger_balance_snapshot_hits_total",
			Help: "Balance reads served from the snapshot cache",
		}),
		BalanceSnapshotMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "roomledger_balance_snapshot_misses_total",
			Help: "Balance reads recomputed from the ledger",
		}),

		ParseRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roomledger_parse_requests_total",
				Help: "Total parse requests by source and status",
			},
			[]string{"source", "status"},
		),
		ParseDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "roomledger_parse_duration_seconds",
			Help:    "Duration of parse requests",
			Buckets: prometheus.DefBuckets,
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roomledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "roomledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roomledger_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "roomledger_db_connections",
			Help: "Current number of database connections",
		}),

		NotificationsEmitted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roomledger_notifications_emitted_total",
				Help: "Total notifications emitted by type",
			},
			[]string{"type"},
		),

		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roomledger_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),
	}
}
