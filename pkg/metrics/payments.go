package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PaymentMetrics records counters for the donation payment lifecycle.
type PaymentMetrics struct {
	ordersCreated *prometheus.CounterVec
	verifications *prometheus.CounterVec
	webhookEvents *prometheus.CounterVec
}

// NewPaymentMetrics registers the payment metrics on the provided registerer.
func NewPaymentMetrics(reg prometheus.Registerer) *PaymentMetrics {
	if reg == nil {
		return &PaymentMetrics{}
	}
	ordersCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "donation_orders_created_total",
		Help: "Donation orders opened with the payment processor.",
	}, []string{"currency"})
	verifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "donation_verifications_total",
		Help: "Browser payment verifications by outcome.",
	}, []string{"outcome"})
	webhookEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "donation_webhook_events_total",
		Help: "Processor webhook events by type and outcome.",
	}, []string{"event_type", "outcome"})
	reg.MustRegister(ordersCreated, verifications, webhookEvents)
	return &PaymentMetrics{
		ordersCreated: ordersCreated,
		verifications: verifications,
		webhookEvents: webhookEvents,
	}
}

// IncOrderCreated counts one created order.
func (m *PaymentMetrics) IncOrderCreated(currency string) {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.WithLabelValues(normalizeLabel(currency)).Inc()
}

// IncVerification counts one verification attempt with its outcome.
func (m *PaymentMetrics) IncVerification(outcome string) {
	if m == nil || m.verifications == nil {
		return
	}
	m.verifications.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncWebhookEvent counts one webhook event by type and outcome.
func (m *PaymentMetrics) IncWebhookEvent(eventType, outcome string) {
	if m == nil || m.webhookEvents == nil {
		return
	}
	m.webhookEvents.WithLabelValues(normalizeLabel(eventType), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
