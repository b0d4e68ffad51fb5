package volunteers

import (
	"context"
	"strings"
	"time"

	"github.com/sevasetu/donations-backend/pkg/db"
	"github.com/sevasetu/donations-backend/pkg/db/models"
	pkgerrors "github.com/sevasetu/donations-backend/pkg/errors"
	"github.com/sevasetu/donations-backend/pkg/logger"
)

// RegisterInput is a volunteer signup request.
type RegisterInput struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Interests []string `json:"interests"`
}

// Service manages volunteer registrations.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*models.Volunteer, error)
	List(ctx context.Context) ([]models.Volunteer, error)
}

// ServiceParams groups dependencies for the volunteer service.
type ServiceParams struct {
	Repo   Repository
	Logger *logger.Logger
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService wires a volunteer service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "volunteer repo required")
	}
	return &service{repo: params.Repo, logg: params.Logger}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*models.Volunteer, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	phone := strings.TrimSpace(input.Phone)

	missing := map[string]string{}
	if name == "" {
		missing["name"] = "is required"
	}
	if email == "" {
		missing["email"] = "is required"
	}
	if phone == "" {
		missing["phone"] = "is required"
	}
	if len(missing) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "volunteer details incomplete").WithDetails(missing)
	}

	volunteer := &models.Volunteer{
		Name:         name,
		Email:        email,
		Phone:        phone,
		RegisteredAt: time.Now().UTC(),
	}
	if joined := joinInterests(input.Interests); joined != "" {
		volunteer.Interests = &joined
	}

	if err := s.repo.Create(ctx, volunteer); err != nil {
		if db.IsUniqueViolation(err, "idx_volunteers_email") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "volunteer already registered with this email")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "register volunteer")
	}

	if s.logg != nil {
		s.logg.Info(ctx, "volunteer registered")
	}
	return volunteer, nil
}

func (s *service) List(ctx context.Context) ([]models.Volunteer, error) {
	volunteers, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list volunteers")
	}
	return volunteers, nil
}

func joinInterests(interests []string) string {
	cleaned := make([]string, 0, len(interests))
	for _, interest := range interests {
		if trimmed := strings.TrimSpace(interest); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return strings.Join(cleaned, ", ")
}
