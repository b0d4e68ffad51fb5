package payments

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/sevasetu/donations-backend/api/responses"
	"github.com/sevasetu/donations-backend/api/validators"
	"github.com/sevasetu/donations-backend/internal/donations"
	"github.com/sevasetu/donations-backend/pkg/enums"
	pkgerrors "github.com/sevasetu/donations-backend/pkg/errors"
	"github.com/sevasetu/donations-backend/pkg/logger"
)

type createOrderRequest struct {
	Amount            decimal.Decimal `json:"amount" validate:"required"`
	Name              string          `json:"name" validate:"required,max=200"`
	Email             string          `json:"email" validate:"required,email"`
	Phone             string          `json:"phone" validate:"required,max=20"`
	DonationType      string          `json:"donation_type" validate:"omitempty,oneof=onetime monthly"`
	IsDedicated       bool            `json:"is_dedicated"`
	DedicationMessage string          `json:"dedication_message" validate:"omitempty,max=500"`
}

type verifyRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

// CreateOrder opens a processor order and records the pending intent.
func CreateOrder(svc donations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req createOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.CreateOrder(ctx, donations.CreateOrderInput{
			Amount: req.Amount,
			Donor: donations.DonorDetails{
				Name:              req.Name,
				Email:             req.Email,
				Phone:             req.Phone,
				DonationType:      enums.DonationType(req.DonationType),
				IsDedicated:       req.IsDedicated,
				DedicationMessage: req.DedicationMessage,
			},
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// VerifyPayment checks the checkout confirmation signature and settles the
// intent optimistically. The webhook remains the system of record.
func VerifyPayment(svc donations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req verifyRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.VerifyPayment(ctx, donations.VerifyInput{
			OrderID:   req.RazorpayOrderID,
			PaymentID: req.RazorpayPaymentID,
			Signature: req.RazorpaySignature,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// PaymentStatus fetches one payment through the processor.
func PaymentStatus(svc donations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		paymentID := strings.TrimSpace(chi.URLParam(r, "paymentID"))
		if paymentID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "payment id is required"))
			return
		}

		summary, err := svc.PaymentStatus(ctx, paymentID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}
