// Package metrics defines the domain Prometheus metrics of the catalog API.
//
// Metrics register with the default registry at package init. HTTP request
// metrics come from echoprometheus and are wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// Results recorded on AuthAttemptsTotal.
const (
	AuthAuthenticated = "authenticated"
	AuthRejected      = "rejected"
	AuthChallenged    = "challenged"
	AuthThrottled     = "throttled"
	AuthError         = "error"
)

// AuthAttemptsTotal counts gate decisions.
// Labels:
//   - policy: "basic" or "bearer"
//   - result: authenticated, rejected (bad credentials), challenged (no or
//     malformed credentials), throttled, error (credential store fault)
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication decisions taken by the request gate.",
	},
	[]string{"policy", "result"},
)

// CatalogMutationsTotal counts product writes.
// Labels:
//   - operation: add, update, delete
//   - outcome: ok, not_found, conflict, invalid
var CatalogMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Total number of product catalog mutations, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// RegisterCatalogSize exposes the live product count through size, which is
// sampled on every scrape.
func RegisterCatalogSize(reg prometheus.Registerer, size func() int) error {
	return reg.Register(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "products",
			Help:      "Number of products currently held in the catalog.",
		},
		func() float64 { return float64(size()) },
	))
}

// UsersRegisteredTotal counts accounts created through the API.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of user accounts registered.",
	},
)
