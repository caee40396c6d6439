package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Chatbot holds the response service collectors
type Chatbot struct {
	responses     *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	leadsCaptured prometheus.Counter
	rejected      *prometheus.CounterVec
}

func NewChatbot(reg prometheus.Registerer) *Chatbot {
	m := &Chatbot{
		responses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatbot_responses_total",
				Help: "Answered turns by source tag.",
			},
			[]string{"source", "account"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chatbot_respond_duration_seconds",
				Help:    "Time to produce a response.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"source"},
		),
		leadsCaptured: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "chatbot_leads_captured_total",
				Help: "Turns that carried new lead signal.",
			},
		),
		rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatbot_requests_rejected_total",
				Help: "Requests refused before generation.",
			},
			[]string{"reason"},
		),
	}
	reg.MustRegister(m.responses, m.latency, m.leadsCaptured, m.rejected)
	return m
}

// ObserveResponse records one resolved turn. account is "demo" or "account".
func (m *Chatbot) ObserveResponse(source, account string, took time.Duration) {
	m.responses.WithLabelValues(source, account).Inc()
	m.latency.WithLabelValues(source).Observe(took.Seconds())
}

func (m *Chatbot) LeadCaptured() {
	m.leadsCaptured.Inc()
}

func (m *Chatbot) Rejected(reason string) {
	m.rejected.WithLabelValues(reason).Inc()
}
