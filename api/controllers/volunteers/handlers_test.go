package volunteers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	internal "github.com/sevasetu/donations-backend/internal/volunteers"
	"github.com/sevasetu/donations-backend/pkg/db/models"
	pkgerrors "github.com/sevasetu/donations-backend/pkg/errors"
)

type fakeService struct {
	registered  *internal.RegisterInput
	registerErr error
	listResp    []models.Volunteer
}

func (f *fakeService) Register(ctx context.Context, input internal.RegisterInput) (*models.Volunteer, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	f.registered = &input
	return &models.Volunteer{Name: input.Name, Email: input.Email, Phone: input.Phone}, nil
}

func (f *fakeService) List(ctx context.Context) ([]models.Volunteer, error) {
	return f.listResp, nil
}

func TestRegisterHandlerSuccess(t *testing.T) {
	svc := &fakeService{}
	handler := Register(svc, nil)

	body := `{"name":"Asha","email":"asha@example.com","phone":"9999999999","interests":["teaching"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/volunteers", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.registered == nil || svc.registered.Email != "asha@example.com" {
		t.Fatalf("input not forwarded: %+v", svc.registered)
	}
}

func TestRegisterHandlerValidation(t *testing.T) {
	svc := &fakeService{}
	handler := Register(svc, nil)

	body := `{"name":"Asha","email":"not-an-email","phone":"9999999999"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/volunteers", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.registered != nil {
		t.Fatal("service must not be called for invalid bodies")
	}
}

func TestRegisterHandlerDuplicateEmail(t *testing.T) {
	svc := &fakeService{
		registerErr: pkgerrors.New(pkgerrors.CodeConflict, "volunteer already registered with this email"),
	}
	handler := Register(svc, nil)

	body := `{"name":"Asha","email":"asha@example.com","phone":"9999999999"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/volunteers", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestListHandler(t *testing.T) {
	svc := &fakeService{
		listResp: []models.Volunteer{{Name: "Asha"}, {Name: "Ravi"}},
	}
	handler := List(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/volunteers", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope struct {
		Data []models.Volunteer `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(envelope.Data) != 2 {
		t.Fatalf("expected 2 volunteers, got %d", len(envelope.Data))
	}
}
