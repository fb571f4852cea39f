package metrics

import "github.com/prometheus/client_golang/prometheus"

// DispatchMetrics exposes counters for form submission side effects.
type DispatchMetrics struct {
	submissionsTotal *prometheus.CounterVec
	providerTotal    *prometheus.CounterVec
}

func NewDispatchMetrics(reg prometheus.Registerer) *DispatchMetrics {
	m := &DispatchMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "site",
			Subsystem: "dispatch",
			Name:      "submissions_total",
			Help:      "Total form submissions dispatched",
		}, []string{"form_type", "status"}),
		providerTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "site",
			Subsystem: "dispatch",
			Name:      "provider_calls_total",
			Help:      "Outbound provider calls by channel and outcome",
		}, []string{"channel", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.providerTotal)
	return m
}

func (m *DispatchMetrics) ObserveSubmission(formType, status string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(formType, status).Inc()
}

func (m *DispatchMetrics) ObserveProviderCall(channel, status string) {
	if m == nil {
		return
	}
	m.providerTotal.WithLabelValues(channel, status).Inc()
}
