package metrics

import "github.com/prometheus/client_golang/prometheus"

var dbErrors = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_errors_total",
		Help: "Database operation errors by repository and operation.",
	},
	[]string{"repo", "op"},
)

func init() {
	register(dbErrors)
}

func IncDBError(repo, op string) {
	dbErrors.WithLabelValues(norm(repo), norm(op)).Inc()
}
