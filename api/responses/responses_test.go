package responses

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/sevasetu/donations-backend/pkg/errors"
	"github.com/sevasetu/donations-backend/pkg/types"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) types.ErrorEnvelope {
	t.Helper()
	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return envelope
}

func TestWriteSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"order_id": "order_1"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data["order_id"] != "order_1" {
		t.Fatalf("unexpected data %+v", envelope.Data)
	}
}

func TestWriteErrorMapsCodeToStatus(t *testing.T) {
	tests := []struct {
		code   pkgerrors.Code
		status int
	}{
		{code: pkgerrors.CodeValidation, status: http.StatusBadRequest},
		{code: pkgerrors.CodeUnauthorized, status: http.StatusUnauthorized},
		{code: pkgerrors.CodeNotFound, status: http.StatusNotFound},
		{code: pkgerrors.CodeStateConflict, status: http.StatusUnprocessableEntity},
		{code: pkgerrors.CodeRateLimit, status: http.StatusTooManyRequests},
		{code: pkgerrors.CodeDependency, status: http.StatusServiceUnavailable},
	}

	for _, tc := range tests {
		t.Run(string(tc.code), func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(context.Background(), nil, rec, pkgerrors.New(tc.code, "boom"))
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
		})
	}
}

func TestWriteErrorHidesInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, pkgerrors.New(pkgerrors.CodeInternal, "connection string leaked"))

	envelope := decodeError(t, rec)
	if envelope.Error.Message == "connection string leaked" {
		t.Fatal("internal error message must not reach the client")
	}
	if envelope.Error.Message != "internal server error" {
		t.Fatalf("expected public message, got %q", envelope.Error.Message)
	}
}

func TestWriteErrorExposesValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "donor details incomplete").
		WithDetails(map[string]string{"email": "is required"})
	WriteError(context.Background(), nil, rec, err)

	envelope := decodeError(t, rec)
	if envelope.Error.Message != "donor details incomplete" {
		t.Fatalf("client-safe message should pass through, got %q", envelope.Error.Message)
	}
	details, ok := envelope.Error.Details.(map[string]any)
	if !ok || details["email"] != "is required" {
		t.Fatalf("details missing: %+v", envelope.Error.Details)
	}
}

func TestWriteErrorDebugGating(t *testing.T) {
	Configure(false)
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, pkgerrors.New(pkgerrors.CodeInternal, "secret detail"))
	if envelope := decodeError(t, rec); envelope.Error.Debug != "" {
		t.Fatal("debug text must be empty outside development")
	}

	Configure(true)
	defer Configure(false)
	rec = httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, pkgerrors.New(pkgerrors.CodeInternal, "secret detail"))
	if envelope := decodeError(t, rec); envelope.Error.Debug == "" {
		t.Fatal("development responses should carry debug text")
	}
}

func TestWriteErrorWrapsUntypedErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, context.DeadlineExceeded)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("untyped errors should map to 500, got %d", rec.Code)
	}
}
