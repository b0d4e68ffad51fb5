package donations

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sevasetu/donations-backend/pkg/config"
	"github.com/sevasetu/donations-backend/pkg/db/models"
	"github.com/sevasetu/donations-backend/pkg/enums"
	pkgerrors "github.com/sevasetu/donations-backend/pkg/errors"
	"github.com/sevasetu/donations-backend/pkg/logger"
	"github.com/sevasetu/donations-backend/pkg/metrics"
	"github.com/sevasetu/donations-backend/pkg/razorpay"
)

// Gateway is the processor surface the donation service depends on.
type Gateway interface {
	CreateOrder(ctx context.Context, params razorpay.OrderCreateParams) (*razorpay.Order, error)
	FetchPayment(ctx context.Context, paymentID string) (*razorpay.Payment, error)
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
	KeyID() string
	NewReceipt(phone string) string
}

// Service drives the donation intent lifecycle: order creation, browser
// verification, and fetch-through payment status.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error)
	VerifyPayment(ctx context.Context, input VerifyInput) (*VerifyResult, error)
	PaymentStatus(ctx context.Context, paymentID string) (*PaymentSummary, error)
}

// ServiceParams groups dependencies for the donation service.
type ServiceParams struct {
	Repo    Repository
	Gateway Gateway
	Logger  *logger.Logger
	Metrics *metrics.PaymentMetrics
	Config  config.DonationsConfig
}

type service struct {
	repo    Repository
	gateway Gateway
	logg    *logger.Logger
	metrics *metrics.PaymentMetrics
	minimum decimal.Decimal
	currency enums.Currency
}

// NewService wires a donation service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "donation repo required")
	}
	if params.Gateway == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payment gateway required")
	}
	currency, err := enums.ParseCurrency(params.Config.Currency)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "donation currency")
	}
	minimum := params.Config.MinimumAmount
	if minimum <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "minimum donation amount must be positive")
	}
	return &service{
		repo:     params.Repo,
		gateway:  params.Gateway,
		logg:     params.Logger,
		metrics:  params.Metrics,
		minimum:  decimal.NewFromInt(int64(minimum)),
		currency: currency,
	}, nil
}

func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error) {
	donor, err := normalizeDonor(input.Donor)
	if err != nil {
		return nil, err
	}

	if input.Amount.LessThan(s.minimum) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "donation amount below minimum").
			WithDetails(map[string]string{
				"amount":  input.Amount.String(),
				"minimum": s.minimum.String(),
			})
	}

	amountPaise := MajorToMinor(input.Amount)
	receipt := s.gateway.NewReceipt(donor.Phone)

	order, err := s.gateway.CreateOrder(ctx, razorpay.OrderCreateParams{
		AmountPaise: amountPaise,
		Currency:    s.currency.String(),
		Receipt:     receipt,
		Notes: map[string]any{
			"donor_name":    donor.Name,
			"donor_email":   donor.Email,
			"donor_phone":   donor.Phone,
			"donation_type": donor.DonationType.String(),
		},
	})
	if err != nil {
		return nil, err
	}

	intent := &models.DonationIntent{
		OrderID:      order.ID,
		Receipt:      receipt,
		AmountPaise:  amountPaise,
		Currency:     s.currency,
		DonorName:    donor.Name,
		DonorEmail:   donor.Email,
		DonorPhone:   donor.Phone,
		DonationType: donor.DonationType,
		IsDedicated:  donor.IsDedicated,
		Status:       enums.IntentStatusCreated,
	}
	if donor.IsDedicated && donor.DedicationMessage != "" {
		msg := donor.DedicationMessage
		intent.DedicationMessage = &msg
	}

	if err := s.repo.Create(ctx, intent); err != nil {
		// The processor order exists but the local record does not. Surface a
		// retryable failure; the webhook path reconciles if the donor pays.
		if s.logg != nil {
			s.logg.Error(s.logg.WithOrderID(ctx, order.ID), "donation intent persist failed", err)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record donation intent")
	}

	s.metrics.IncOrderCreated(s.currency.String())
	if s.logg != nil {
		s.logg.Info(s.logg.WithOrderID(ctx, order.ID), "donation order created")
	}

	return &CreateOrderResult{
		OrderID:     order.ID,
		AmountPaise: amountPaise,
		Currency:    s.currency,
		KeyID:       s.gateway.KeyID(),
	}, nil
}

func (s *service) VerifyPayment(ctx context.Context, input VerifyInput) (*VerifyResult, error) {
	if strings.TrimSpace(input.OrderID) == "" ||
		strings.TrimSpace(input.PaymentID) == "" ||
		strings.TrimSpace(input.Signature) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id, payment id and signature are required")
	}

	intent, err := s.repo.FindByOrderID(ctx, input.OrderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load donation intent")
	}
	if intent == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "donation intent not found")
	}

	if !s.gateway.VerifyPaymentSignature(input.OrderID, input.PaymentID, input.Signature) {
		s.metrics.IncVerification("rejected")
		if s.logg != nil {
			// Log the payment id for fraud review; never the signature.
			logCtx := s.logg.WithOrderID(ctx, input.OrderID)
			logCtx = s.logg.WithPaymentID(logCtx, input.PaymentID)
			s.logg.Warn(logCtx, "payment verification rejected")
		}
		// A forged confirmation must not transition the intent; the webhook
		// path stays authoritative.
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "payment verification failed")
	}

	applied, err := s.repo.MarkSettled(ctx, input.OrderID, input.PaymentID, enums.SettlementSourceVerify)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "settle donation intent")
	}
	if !applied {
		// Replay of an already-terminal intent. Settled replays are
		// acknowledged without a second credit; failed intents cannot settle.
		current, findErr := s.repo.FindByOrderID(ctx, input.OrderID)
		if findErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, findErr, "reload donation intent")
		}
		if current != nil && current.Status == enums.IntentStatusFailed {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "donation already recorded as failed")
		}
	}

	s.metrics.IncVerification("accepted")
	if s.logg != nil {
		logCtx := s.logg.WithOrderID(ctx, input.OrderID)
		logCtx = s.logg.WithPaymentID(logCtx, input.PaymentID)
		s.logg.Info(logCtx, "donation payment verified")
	}

	return &VerifyResult{
		OrderID:        input.OrderID,
		PaymentID:      input.PaymentID,
		AlreadySettled: !applied,
	}, nil
}

func (s *service) PaymentStatus(ctx context.Context, paymentID string) (*PaymentSummary, error) {
	if strings.TrimSpace(paymentID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment id is required")
	}

	payment, err := s.gateway.FetchPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	return &PaymentSummary{
		PaymentID: payment.ID,
		OrderID:   payment.OrderID,
		Status:    payment.Status,
		Amount:    MinorToMajor(payment.AmountPaise),
		Currency:  payment.Currency,
		Method:    payment.Method,
		Captured:  payment.Captured,
		CreatedAt: payment.CreatedAt,
	}, nil
}

func normalizeDonor(donor DonorDetails) (DonorDetails, error) {
	donor.Name = strings.TrimSpace(donor.Name)
	donor.Email = strings.TrimSpace(donor.Email)
	donor.Phone = strings.TrimSpace(donor.Phone)
	donor.DedicationMessage = strings.TrimSpace(donor.DedicationMessage)

	missing := map[string]string{}
	if donor.Name == "" {
		missing["name"] = "is required"
	}
	if donor.Email == "" {
		missing["email"] = "is required"
	}
	if donor.Phone == "" {
		missing["phone"] = "is required"
	}
	if len(missing) > 0 {
		return donor, pkgerrors.New(pkgerrors.CodeValidation, "donor details incomplete").WithDetails(missing)
	}

	if donor.DonationType == "" {
		donor.DonationType = enums.DonationTypeOnetime
	}
	if !donor.DonationType.IsValid() {
		return donor, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid donation type %q", donor.DonationType))
	}
	return donor, nil
}
