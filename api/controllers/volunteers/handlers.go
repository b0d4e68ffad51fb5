package volunteers

import (
	"net/http"

	"github.com/sevasetu/donations-backend/api/responses"
	"github.com/sevasetu/donations-backend/api/validators"
	"github.com/sevasetu/donations-backend/internal/volunteers"
	"github.com/sevasetu/donations-backend/pkg/logger"
)

type registerRequest struct {
	Name      string   `json:"name" validate:"required,max=200"`
	Email     string   `json:"email" validate:"required,email"`
	Phone     string   `json:"phone" validate:"required,max=20"`
	Interests []string `json:"interests" validate:"omitempty,dive,max=100"`
}

// Register records a volunteer signup.
func Register(svc volunteers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req registerRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		volunteer, err := svc.Register(ctx, volunteers.RegisterInput{
			Name:      req.Name,
			Email:     req.Email,
			Phone:     req.Phone,
			Interests: req.Interests,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, volunteer)
	}
}

// List returns all registered volunteers, newest first.
func List(svc volunteers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		out, err := svc.List(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, out)
	}
}
