package enums

// SettlementSource records which path drove an intent to settled.
type SettlementSource string

const (
	// SettlementSourceVerify marks settlement by browser-supplied signature
	// verification. Optimistic: the webhook remains the system of record.
	SettlementSourceVerify SettlementSource = "verify"
	// SettlementSourceWebhook marks settlement by an authenticated
	// payment.captured webhook event.
	SettlementSourceWebhook SettlementSource = "webhook"
)

// String implements fmt.Stringer.
func (s SettlementSource) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SettlementSource.
func (s SettlementSource) IsValid() bool {
	return s == SettlementSourceVerify || s == SettlementSourceWebhook
}
