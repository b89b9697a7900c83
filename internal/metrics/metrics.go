// Package metrics exposes Prometheus counters for command traffic.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Commands counts commands received, labelled by command name.
	// Unrecognized commands are labelled "unknown" to bound cardinality.
	Commands = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gastobot_commands_total",
		Help: "Commands received, by command name.",
	}, []string{"command"})

	// ParamRejections counts expense commands rejected with a
	// user-facing parameter error.
	ParamRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gastobot_parameter_rejections_total",
		Help: "Expense commands rejected with a user-facing parameter error.",
	})

	// ExpensesCreated counts expense records persisted.
	ExpensesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gastobot_expenses_created_total",
		Help: "Expense records persisted.",
	})
)

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
