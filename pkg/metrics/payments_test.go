package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestPaymentMetricsCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPaymentMetrics(reg)

	m.IncOrderCreated("INR")
	m.IncOrderCreated("INR")
	m.IncVerification("accepted")
	m.IncVerification("rejected")
	m.IncWebhookEvent("payment.captured", "settled")
	m.IncWebhookEvent("", "")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	byName := map[string]*dto.MetricFamily{}
	for _, fam := range families {
		byName[fam.GetName()] = fam
	}

	orders := byName["donation_orders_created_total"]
	if orders == nil || len(orders.Metric) != 1 {
		t.Fatalf("orders family missing: %v", byName)
	}
	if got := orders.Metric[0].GetCounter().GetValue(); got != 2 {
		t.Fatalf("expected 2 orders, got %v", got)
	}

	webhooks := byName["donation_webhook_events_total"]
	if webhooks == nil || len(webhooks.Metric) != 2 {
		t.Fatalf("webhook family unexpected: %v", webhooks)
	}
	for _, metric := range webhooks.Metric {
		for _, label := range metric.Label {
			if label.GetValue() == "" {
				t.Fatal("empty labels should normalize to unknown")
			}
		}
	}
}

func TestPaymentMetricsNilSafe(t *testing.T) {
	var m *PaymentMetrics
	m.IncOrderCreated("INR")
	m.IncVerification("accepted")
	m.IncWebhookEvent("payment.failed", "failed")

	empty := NewPaymentMetrics(nil)
	empty.IncOrderCreated("INR")
}
