package razorpaywebhook

import (
	"context"
	"time"

	"github.com/sevasetu/donations-backend/internal/donations"
	"github.com/sevasetu/donations-backend/pkg/db/models"
	"github.com/sevasetu/donations-backend/pkg/enums"
	pkgerrors "github.com/sevasetu/donations-backend/pkg/errors"
	"github.com/sevasetu/donations-backend/pkg/logger"
	"github.com/sevasetu/donations-backend/pkg/metrics"
)

// ServiceParams groups dependencies for the webhook service.
type ServiceParams struct {
	Intents donations.Repository
	Events  Repository
	Logger  *logger.Logger
	Metrics *metrics.PaymentMetrics
}

// Service applies processor notifications to donation intents. Webhook
// deliveries are the system of record; they settle or fail intents the
// browser confirmation never reached.
type Service struct {
	intents donations.Repository
	events  Repository
	logg    *logger.Logger
	metrics *metrics.PaymentMetrics
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Intents == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "donation repo required")
	}
	if params.Events == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "webhook event repo required")
	}
	return &Service{
		intents: params.Intents,
		events:  params.Events,
		logg:    params.Logger,
		metrics: params.Metrics,
	}, nil
}

// HandleEvent records the delivery and dispatches by event type. A returned
// error means processing genuinely failed and the delivery should be retried;
// unknown event types and unknown orders are acknowledged.
func (s *Service) HandleEvent(ctx context.Context, event *Event) error {
	if event == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "webhook event required")
	}

	if err := s.record(ctx, event); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record webhook event")
	}

	switch event.Type {
	case EventPaymentCaptured:
		return s.handleCaptured(ctx, event)
	case EventPaymentFailed:
		return s.handleFailed(ctx, event)
	default:
		s.metrics.IncWebhookEvent(event.Type, "ignored")
		return nil
	}
}

func (s *Service) handleCaptured(ctx context.Context, event *Event) error {
	payment := event.Payload.Payment.Entity
	if payment.ID == "" || payment.OrderID == "" {
		s.metrics.IncWebhookEvent(event.Type, "malformed")
		return pkgerrors.New(pkgerrors.CodeValidation, "captured event missing payment or order id")
	}

	applied, err := s.intents.MarkSettled(ctx, payment.OrderID, payment.ID, enums.SettlementSourceWebhook)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "settle donation intent")
	}
	if !applied {
		// Already terminal, or an order this system never issued. Either way
		// the delivery is acknowledged so the processor stops retrying.
		s.metrics.IncWebhookEvent(event.Type, "replayed")
		if s.logg != nil {
			s.logg.Warn(s.logContext(ctx, payment), "captured event did not transition intent")
		}
		return nil
	}

	s.metrics.IncWebhookEvent(event.Type, "applied")
	if s.logg != nil {
		s.logg.Info(s.logContext(ctx, payment), "donation settled via webhook")
	}
	return nil
}

func (s *Service) handleFailed(ctx context.Context, event *Event) error {
	payment := event.Payload.Payment.Entity
	if payment.OrderID == "" {
		s.metrics.IncWebhookEvent(event.Type, "malformed")
		return pkgerrors.New(pkgerrors.CodeValidation, "failed event missing order id")
	}

	var paymentID *string
	if payment.ID != "" {
		paymentID = &payment.ID
	}
	var reason *string
	if payment.ErrorDescription != "" {
		reason = &payment.ErrorDescription
	} else if payment.ErrorCode != "" {
		reason = &payment.ErrorCode
	}

	applied, err := s.intents.MarkFailed(ctx, payment.OrderID, paymentID, reason)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fail donation intent")
	}
	if !applied {
		// A failed event after a settle is expected with retried payments on
		// the same order; the settled state wins.
		s.metrics.IncWebhookEvent(event.Type, "replayed")
		if s.logg != nil {
			s.logg.Warn(s.logContext(ctx, payment), "failed event did not transition intent")
		}
		return nil
	}

	s.metrics.IncWebhookEvent(event.Type, "applied")
	if s.logg != nil {
		s.logg.Info(s.logContext(ctx, payment), "donation marked failed via webhook")
	}
	return nil
}

func (s *Service) record(ctx context.Context, event *Event) error {
	row := &models.WebhookEvent{
		EventType:  event.Type,
		Payload:    event.Raw,
		ReceivedAt: time.Now().UTC(),
	}
	if event.ID != "" {
		id := event.ID
		row.EventID = &id
	}
	if payment := event.Payload.Payment.Entity; payment.ID != "" {
		id := payment.ID
		row.PaymentID = &id
	}
	if payment := event.Payload.Payment.Entity; payment.OrderID != "" {
		id := payment.OrderID
		row.OrderID = &id
	}
	return s.events.Record(ctx, row)
}

func (s *Service) logContext(ctx context.Context, payment PaymentEntity) context.Context {
	out := s.logg.WithOrderID(ctx, payment.OrderID)
	if payment.ID != "" {
		out = s.logg.WithPaymentID(out, payment.ID)
	}
	return out
}
