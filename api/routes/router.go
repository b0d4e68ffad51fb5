package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sevasetu/donations-backend/api/controllers"
	paymentcontrollers "github.com/sevasetu/donations-backend/api/controllers/payments"
	volunteercontrollers "github.com/sevasetu/donations-backend/api/controllers/volunteers"
	webhookcontrollers "github.com/sevasetu/donations-backend/api/controllers/webhooks"
	"github.com/sevasetu/donations-backend/api/middleware"
	"github.com/sevasetu/donations-backend/internal/donations"
	"github.com/sevasetu/donations-backend/internal/volunteers"
	razorpaywebhook "github.com/sevasetu/donations-backend/internal/webhooks/razorpay"
	"github.com/sevasetu/donations-backend/pkg/config"
	"github.com/sevasetu/donations-backend/pkg/logger"
	"github.com/sevasetu/donations-backend/pkg/redis"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type webhookVerifier interface {
	VerifyWebhookSignature(body []byte, signature string) bool
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP pinger,
	redisClient *redis.Client,
	donationService donations.Service,
	volunteerService volunteers.Service,
	webhookService *razorpaywebhook.Service,
	webhookGuard *razorpaywebhook.IdempotencyGuard,
	verifier webhookVerifier,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.AllowedOrigins...),
	)

	orderPolicy := middleware.NewRateLimitPolicy(
		"orders",
		cfg.RateLimit.OrderWindow,
		cfg.RateLimit.OrderIPLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, redisClient, logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/webhooks", func(r chi.Router) {
		r.Post("/razorpay", webhookcontrollers.RazorpayWebhook(webhookService, verifier, webhookGuard, logg))
	})

	r.Route("/api/v1/payments", func(r chi.Router) {
		r.With(middleware.RateLimit(orderPolicy, redisClient, logg)).
			Post("/orders", paymentcontrollers.CreateOrder(donationService, logg))
		r.Post("/verify", paymentcontrollers.VerifyPayment(donationService, logg))
		r.Get("/{paymentID}", paymentcontrollers.PaymentStatus(donationService, logg))
	})

	r.Route("/api/v1/volunteers", func(r chi.Router) {
		r.Post("/", volunteercontrollers.Register(volunteerService, logg))
		r.Get("/", volunteercontrollers.List(volunteerService, logg))
	})

	return r
}
