package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "storefront_client"

// invalidMethodLabel replaces the method label of calls rejected before
// sending, so caller input never becomes a label value.
const invalidMethodLabel = "invalid"

// Refresh outcomes.
const (
	refreshSucceeded = "success"
	refreshFailed    = "failure"
	refreshMissing   = "missing_credential"
	refreshReused    = "reused"
)

type metrics struct {
	Requests  *prometheus.CounterVec
	Refreshes *prometheus.CounterVec
}

// newMetrics registers the client's counters with reg. A nil reg gets a
// private registry so several clients can coexist in tests.
func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "requests_total",
			Help:      "Completed API calls by method and outcome.",
		}, []string{"method", "outcome"}),
		Refreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "credential_refreshes_total",
			Help:      "Credential recovery cycles by result.",
		}, []string{"result"}),
	}
}

func (m *metrics) request(method string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		if e, ok := AsError(err); ok {
			outcome = e.Kind.String()
		}
	}
	m.Requests.WithLabelValues(method, outcome).Inc()
}

func (m *metrics) refresh(result string) {
	m.Refreshes.WithLabelValues(result).Inc()
}
