package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// ReceiptsProcessedTotal counts receipt submissions by outcome.
	ReceiptsProcessedTotal *prometheus.CounterVec
	// ReceiptPoints records the distribution of computed point totals.
	ReceiptPoints prometheus.Histogram
	// ReceiptLookupsTotal counts point lookups by outcome.
	ReceiptLookupsTotal *prometheus.CounterVec
	// ReceiptIDCollisions counts identifier collisions retried during storage.
	ReceiptIDCollisions prometheus.Counter
)

// MustRegisterDomainMetrics initialises and registers receipt-domain
// Prometheus collectors. Safe to call more than once.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		ReceiptsProcessedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "receipts_processed_total",
			Help:      "Count of receipt submissions by outcome.",
		}, []string{"result"})
		ReceiptPoints = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "receipt_points",
			Help:      "Distribution of points awarded per processed receipt.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000},
		})
		ReceiptLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "receipt_lookups_total",
			Help:      "Count of point lookups by outcome.",
		}, []string{"result"})
		ReceiptIDCollisions = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "receipt_id_collisions_total",
			Help:      "Number of identifier collisions encountered while storing receipts.",
		})

		reg.MustRegister(ReceiptsProcessedTotal, ReceiptPoints, ReceiptLookupsTotal, ReceiptIDCollisions)
	})
}
