package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	flowTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flow_transitions_total",
			Help: "Successful conversation step transitions by flow and step.",
		},
		[]string{"flow", "step"},
	)

	flowRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flow_rejections_total",
			Help: "Inputs rejected in place by flow, step and reason code.",
		},
		[]string{"flow", "step", "reason"},
	)

	flowCancellations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flow_cancellations_total",
			Help: "Flows cancelled before completion.",
		},
		[]string{"flow"},
	)

	pricingFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pricing_fallback_total",
			Help: "Rate specs that failed to parse and priced to zero.",
		},
	)
)

func init() {
	register(flowTransitions, flowRejections, flowCancellations, pricingFallbacks)
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func FlowAdvanced(flow, step string) {
	flowTransitions.WithLabelValues(norm(flow), norm(step)).Inc()
}

func FlowRejected(flow, step, reason string) {
	flowRejections.WithLabelValues(norm(flow), norm(step), reason).Inc()
}

func FlowCancelled(flow string) {
	flowCancellations.WithLabelValues(norm(flow)).Inc()
}

// PricingFallback records a rate spec the engine could not parse.
func PricingFallback() { pricingFallbacks.Inc() }
