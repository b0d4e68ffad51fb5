package webhooks

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	razorpaywebhook "github.com/sevasetu/donations-backend/internal/webhooks/razorpay"
	pkgerrors "github.com/sevasetu/donations-backend/pkg/errors"
)

const testWebhookSecret = "whsec_test"

type fakeVerifier struct {
	secret string
}

func (f *fakeVerifier) VerifyWebhookSignature(body []byte, signature string) bool {
	if f.secret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(f.secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

type fakeGuard struct {
	mu      sync.Mutex
	seen    map[string]bool
	deleted []string
}

func newFakeGuard() *fakeGuard {
	return &fakeGuard{seen: map[string]bool{}}
}

func (f *fakeGuard) CheckAndMark(ctx context.Context, eventID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seen[eventID] {
		return true, nil
	}
	f.seen[eventID] = true
	return false, nil
}

func (f *fakeGuard) Delete(ctx context.Context, eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.seen, eventID)
	f.deleted = append(f.deleted, eventID)
	return nil
}

type fakeWebhookService struct {
	events    []*razorpaywebhook.Event
	handleErr error
}

func (f *fakeWebhookService) HandleEvent(ctx context.Context, event *razorpaywebhook.Event) error {
	if f.handleErr != nil {
		return f.handleErr
	}
	f.events = append(f.events, event)
	return nil
}

func signBody(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

const capturedBody = `{"entity":"event","event":"payment.captured","contains":["payment"],"payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1","amount":50000,"status":"captured"}}},"created_at":1756500000}`

func postWebhook(handler http.HandlerFunc, body, signature, eventID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/razorpay", strings.NewReader(body))
	if signature != "" {
		req.Header.Set("X-Razorpay-Signature", signature)
	}
	if eventID != "" {
		req.Header.Set("X-Razorpay-Event-Id", eventID)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRazorpayWebhookProcessesValidDelivery(t *testing.T) {
	svc := &fakeWebhookService{}
	handler := RazorpayWebhook(svc, &fakeVerifier{secret: testWebhookSecret}, newFakeGuard(), nil)

	rec := postWebhook(handler, capturedBody, signBody(testWebhookSecret, capturedBody), "evt_1")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(svc.events) != 1 {
		t.Fatalf("expected one event handled, got %d", len(svc.events))
	}
	if svc.events[0].ID != "evt_1" || svc.events[0].Type != "payment.captured" {
		t.Fatalf("event not parsed: %+v", svc.events[0])
	}
}

func TestRazorpayWebhookReplaySkipsHandler(t *testing.T) {
	svc := &fakeWebhookService{}
	handler := RazorpayWebhook(svc, &fakeVerifier{secret: testWebhookSecret}, newFakeGuard(), nil)
	signature := signBody(testWebhookSecret, capturedBody)

	if rec := postWebhook(handler, capturedBody, signature, "evt_1"); rec.Code != http.StatusOK {
		t.Fatalf("first delivery: %d", rec.Code)
	}
	if rec := postWebhook(handler, capturedBody, signature, "evt_1"); rec.Code != http.StatusOK {
		t.Fatalf("replay should still be acknowledged: %d", rec.Code)
	}
	if len(svc.events) != 1 {
		t.Fatalf("replayed delivery must not reach the handler, got %d calls", len(svc.events))
	}
}

func TestRazorpayWebhookRejectsBadSignature(t *testing.T) {
	svc := &fakeWebhookService{}
	handler := RazorpayWebhook(svc, &fakeVerifier{secret: testWebhookSecret}, newFakeGuard(), nil)

	signature := signBody(testWebhookSecret, capturedBody)
	mutated := []byte(signature)
	if mutated[0] == 'a' {
		mutated[0] = 'b'
	} else {
		mutated[0] = 'a'
	}

	rec := postWebhook(handler, capturedBody, string(mutated), "evt_1")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if len(svc.events) != 0 {
		t.Fatal("unverified payload must not reach the handler")
	}
}

func TestRazorpayWebhookRejectsMissingSignature(t *testing.T) {
	handler := RazorpayWebhook(&fakeWebhookService{}, &fakeVerifier{secret: testWebhookSecret}, newFakeGuard(), nil)

	rec := postWebhook(handler, capturedBody, "", "evt_1")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRazorpayWebhookFailsClosedWithoutSecret(t *testing.T) {
	handler := RazorpayWebhook(&fakeWebhookService{}, &fakeVerifier{secret: ""}, newFakeGuard(), nil)

	// Even a correctly computed signature cannot pass with no secret set.
	rec := postWebhook(handler, capturedBody, signBody(testWebhookSecret, capturedBody), "evt_1")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRazorpayWebhookHandlerErrorReleasesGuard(t *testing.T) {
	svc := &fakeWebhookService{
		handleErr: pkgerrors.New(pkgerrors.CodeDependency, "database down"),
	}
	guard := newFakeGuard()
	handler := RazorpayWebhook(svc, &fakeVerifier{secret: testWebhookSecret}, guard, nil)

	rec := postWebhook(handler, capturedBody, signBody(testWebhookSecret, capturedBody), "evt_1")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if len(guard.deleted) != 1 || guard.deleted[0] != "evt_1" {
		t.Fatal("failed processing must release the idempotency marker for retry")
	}
}

func TestRazorpayWebhookWithoutEventIDStillProcesses(t *testing.T) {
	svc := &fakeWebhookService{}
	guard := newFakeGuard()
	handler := RazorpayWebhook(svc, &fakeVerifier{secret: testWebhookSecret}, guard, nil)

	rec := postWebhook(handler, capturedBody, signBody(testWebhookSecret, capturedBody), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(svc.events) != 1 {
		t.Fatal("delivery without event id should still be handled")
	}
	if len(guard.seen) != 0 {
		t.Fatal("guard must not be consulted without an event id")
	}
}
