package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ammabio/amma-backend/api/controllers"
	"github.com/ammabio/amma-backend/api/middleware"
	"github.com/ammabio/amma-backend/internal/auth"
	"github.com/ammabio/amma-backend/internal/documents"
	"github.com/ammabio/amma-backend/internal/memberships"
	"github.com/ammabio/amma-backend/internal/payments"
	"github.com/ammabio/amma-backend/internal/products"
	"github.com/ammabio/amma-backend/internal/quotations"
	"github.com/ammabio/amma-backend/internal/registrations"
	"github.com/ammabio/amma-backend/pkg/auth/session"
	"github.com/ammabio/amma-backend/pkg/config"
	"github.com/ammabio/amma-backend/pkg/db"
	"github.com/ammabio/amma-backend/pkg/logger"
	"github.com/ammabio/amma-backend/pkg/metrics"
	"github.com/ammabio/amma-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessions session.AccessSessionChecker,
	httpMetrics *metrics.HTTPMetrics,
	authService auth.Service,
	registrationService registrations.Service,
	membershipService memberships.Service,
	documentService documents.Service,
	paymentService payments.Service,
	productService products.Service,
	quotationService quotations.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/registration", controllers.AuthRegistration(registrationService, logg))
		r.Post("/logout", controllers.AuthLogout(authService, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(authService, logg))
		r.With(middleware.Auth(cfg.JWT, sessions, logg)).Post("/change-password", controllers.AuthChangePassword(authService, logg))
	})

	// Product catalog is readable without an account.
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(productService, logg))
		r.Route("/{productId}", func(r chi.Router) {
			r.Get("/", controllers.ProductDetail(productService, logg))
			r.Get("/registrations", controllers.ProductRegistrations(productService, logg))
			r.Get("/documents", controllers.ProductDocuments(productService, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", controllers.ProfileGet(registrationService, logg))
			r.Put("/", controllers.ProfileUpdate(registrationService, logg))
		})

		r.Route("/memberships", func(r chi.Router) {
			r.Post("/", controllers.MembershipCreate(membershipService, logg))
			r.Get("/", controllers.MembershipList(membershipService, logg))
			r.Route("/{membershipId}", func(r chi.Router) {
				r.Get("/", controllers.MembershipDetail(membershipService, logg))
				r.Put("/", controllers.MembershipUpdate(membershipService, logg))
			})
		})

		r.Route("/membership-documents", func(r chi.Router) {
			r.Post("/", controllers.MembershipDocumentUpload(documentService, logg))
			r.Get("/by-membership/{membershipId}", controllers.MembershipDocumentsByMembership(documentService, logg))
			r.Route("/{documentId}", func(r chi.Router) {
				r.Get("/", controllers.MembershipDocumentDetail(documentService, logg))
				r.Put("/", controllers.MembershipDocumentUpdate(documentService, logg))
				r.Delete("/", controllers.MembershipDocumentDelete(documentService, logg))
			})
		})

		r.Route("/membership-payments", func(r chi.Router) {
			r.Post("/", controllers.MembershipPaymentCreate(paymentService, logg))
			r.Get("/by-membership/{membershipId}", controllers.MembershipPaymentsByMembership(paymentService, logg))
			r.Route("/{paymentId}", func(r chi.Router) {
				r.Get("/", controllers.MembershipPaymentDetail(paymentService, logg))
				r.Put("/", controllers.MembershipPaymentUpdate(paymentService, logg))
			})
		})

		r.Route("/quotations", func(r chi.Router) {
			r.Post("/", controllers.QuotationCreate(quotationService, logg))
			r.Get("/", controllers.QuotationList(quotationService, logg))
			r.Get("/by-membership/{membershipId}", controllers.QuotationsByMembership(quotationService, logg))
			r.Route("/{quotationId}", func(r chi.Router) {
				r.Get("/", controllers.QuotationDetail(quotationService, logg))
				r.Put("/", controllers.QuotationUpdate(quotationService, logg))
			})
		})
	})

	return r
}
