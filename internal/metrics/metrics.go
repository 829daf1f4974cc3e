package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bakery"

var (
	SaleStockMirrored = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "salestock_transactions_mirrored_total",
		Help:      "Sale stock transactions written automatically on stock create/update.",
	}, []string{"transaction_type"})

	TokensIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_tokens_issued_total",
		Help:      "Token endpoint outcomes: created, reused or rejected.",
	}, []string{"outcome"})

	RecordsDeleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_deleted_total",
		Help:      "Records removed, by resource, including cascaded rows.",
	}, []string{"resource"})
)

// Token outcomes.
const (
	OutcomeCreated  = "created"
	OutcomeReused   = "reused"
	OutcomeRejected = "rejected"
)

// Deleted adds n to the deletion counter of resource. n <= 0 is ignored.
func Deleted(resource string, n int64) {
	if n > 0 {
		RecordsDeleted.WithLabelValues(resource).Add(float64(n))
	}
}
