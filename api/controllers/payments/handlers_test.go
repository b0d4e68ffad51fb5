package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/sevasetu/donations-backend/internal/donations"
	"github.com/sevasetu/donations-backend/pkg/enums"
	pkgerrors "github.com/sevasetu/donations-backend/pkg/errors"
)

type fakeService struct {
	createResult *donations.CreateOrderResult
	createErr    error
	createInput  *donations.CreateOrderInput
	verifyResult *donations.VerifyResult
	verifyErr    error
	verifyInput  *donations.VerifyInput
	statusResult *donations.PaymentSummary
	statusErr    error
}

func (f *fakeService) CreateOrder(ctx context.Context, input donations.CreateOrderInput) (*donations.CreateOrderResult, error) {
	f.createInput = &input
	return f.createResult, f.createErr
}

func (f *fakeService) VerifyPayment(ctx context.Context, input donations.VerifyInput) (*donations.VerifyResult, error) {
	f.verifyInput = &input
	return f.verifyResult, f.verifyErr
}

func (f *fakeService) PaymentStatus(ctx context.Context, paymentID string) (*donations.PaymentSummary, error) {
	return f.statusResult, f.statusErr
}

func TestCreateOrderHandlerSuccess(t *testing.T) {
	svc := &fakeService{
		createResult: &donations.CreateOrderResult{
			OrderID:     "order_1",
			AmountPaise: 50000,
			Currency:    enums.CurrencyINR,
			KeyID:       "rzp_test_key",
		},
	}
	handler := CreateOrder(svc, nil)

	body := `{"amount":500,"name":"Asha","email":"asha@example.com","phone":"9999999999"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data donations.CreateOrderResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.OrderID != "order_1" || envelope.Data.AmountPaise != 50000 {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
	if envelope.Data.KeyID != "rzp_test_key" {
		t.Fatal("public key id missing from response")
	}
	if !svc.createInput.Amount.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("amount not forwarded: %s", svc.createInput.Amount)
	}
}

func TestCreateOrderHandlerDecimalAmount(t *testing.T) {
	svc := &fakeService{createResult: &donations.CreateOrderResult{OrderID: "order_1"}}
	handler := CreateOrder(svc, nil)

	body := `{"amount":100.50,"name":"Asha","email":"asha@example.com","phone":"9999999999"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !svc.createInput.Amount.Equal(decimal.RequireFromString("100.50")) {
		t.Fatalf("fractional amount lost: %s", svc.createInput.Amount)
	}
}

func TestCreateOrderHandlerRejectsBadBody(t *testing.T) {
	svc := &fakeService{}
	handler := CreateOrder(svc, nil)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"amount":`},
		{name: "unknown field", body: `{"amount":500,"name":"A","email":"a@x.com","phone":"9","surprise":true}`},
		{name: "missing email", body: `{"amount":500,"name":"A","phone":"9"}`},
		{name: "bad donation type", body: `{"amount":500,"name":"A","email":"a@x.com","phone":"9","donation_type":"weekly"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/orders", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
	if svc.createInput != nil {
		t.Fatal("service must not be called for invalid bodies")
	}
}

func TestVerifyPaymentHandlerSuccess(t *testing.T) {
	svc := &fakeService{
		verifyResult: &donations.VerifyResult{OrderID: "order_1", PaymentID: "pay_1"},
	}
	handler := VerifyPayment(svc, nil)

	body := `{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"abc"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/verify", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.verifyInput.Signature != "abc" {
		t.Fatalf("signature not forwarded: %+v", svc.verifyInput)
	}
}

func TestVerifyPaymentHandlerRejectionPassesThrough(t *testing.T) {
	svc := &fakeService{
		verifyErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "payment verification failed"),
	}
	handler := VerifyPayment(svc, nil)

	body := `{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"forged"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/verify", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestVerifyPaymentHandlerMissingFields(t *testing.T) {
	svc := &fakeService{}
	handler := VerifyPayment(svc, nil)

	body := `{"razorpay_order_id":"order_1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/verify", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.verifyInput != nil {
		t.Fatal("service must not see incomplete confirmations")
	}
}

func TestPaymentStatusHandler(t *testing.T) {
	svc := &fakeService{
		statusResult: &donations.PaymentSummary{
			PaymentID: "pay_1",
			Status:    "captured",
			Amount:    decimal.NewFromInt(500),
		},
	}

	router := chi.NewRouter()
	router.Get("/api/v1/payments/{paymentID}", PaymentStatus(svc, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/pay_1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope struct {
		Data donations.PaymentSummary `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.PaymentID != "pay_1" || envelope.Data.Status != "captured" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestPaymentStatusHandlerNotFound(t *testing.T) {
	svc := &fakeService{
		statusErr: pkgerrors.New(pkgerrors.CodeNotFound, "payment not found"),
	}

	router := chi.NewRouter()
	router.Get("/api/v1/payments/{paymentID}", PaymentStatus(svc, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/pay_missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
