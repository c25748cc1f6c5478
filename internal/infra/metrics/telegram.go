package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	tgSends = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_sends_total",
			Help: "Outgoing Telegram messages by result.",
		},
		[]string{"result"},
	)

	tgRateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_rate_limited_total",
			Help: "Updates dropped by the per-user rate limiter.",
		},
	)
)

func init() {
	register(tgSends, tgRateLimited)
}

func IncTelegramSend(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	tgSends.WithLabelValues(result).Inc()
}

func IncRateLimited() { tgRateLimited.Inc() }
