// Package metrics exposes Prometheus instrumentation for the HTTP surface
// and the shop's business operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forgeledger_http_requests_total",
			Help: "Total HTTP requests by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "forgeledger_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "forgeledger_http_requests_in_flight",
			Help: "HTTP requests currently being served.",
		},
	)
)

// Business metrics
var (
	CraftsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forgeledger_crafts_total",
			Help: "Completed craft operations per recipe.",
		},
		[]string{"recipe"},
	)

	ItemsProduced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forgeledger_items_produced_total",
			Help: "Crafted item units produced per recipe.",
		},
		[]string{"recipe"},
	)

	ContractsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "forgeledger_contracts_started_total",
			Help: "Contracts whose production plan was enqueued.",
		},
	)

	TransactionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forgeledger_transactions_recorded_total",
			Help: "Ledger transactions recorded by type.",
		},
		[]string{"type"},
	)
)
