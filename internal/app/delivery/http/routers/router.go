package routers

import (
	"net/http"

	"claimsbridge-service/internal/app/config"
	"claimsbridge-service/internal/app/delivery/http/middlewares"
	"claimsbridge-service/internal/app/services/core/claims"
	"claimsbridge-service/internal/app/services/core/compliance"
	"claimsbridge-service/internal/app/services/core/eligibility"
	"claimsbridge-service/internal/app/services/core/priorauth"
	"claimsbridge-service/internal/app/services/core/remittance"
	"claimsbridge-service/internal/app/services/core/transactions"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	eligibilityController *eligibility.EligibilityController,
	claimController *claims.ClaimController,
	remittanceController *remittance.RemittanceController,
	priorAuthController *priorauth.PriorAuthController,
	complianceController *compliance.ComplianceController,
	transactionController *transactions.TransactionController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID", "X-Partner-Key"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.RateLimit())
	router.Use(middlewares.BodyLimit)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Route(internalConfig.App.EndpointPrefix, func(r chi.Router) {
		r.Use(middlewares.PartnerKeyAuth)

		r.Route("/eligibility", func(r chi.Router) {
			attachEligibilityRoutes(r, eligibilityController)
		})

		r.Route("/claims", func(r chi.Router) {
			attachClaimRoutes(r, claimController)
		})

		r.Route("/remittances", func(r chi.Router) {
			attachRemittanceRoutes(r, remittanceController)
		})

		r.Route("/prior-auths", func(r chi.Router) {
			attachPriorAuthRoutes(r, priorAuthController)
		})

		r.Route("/compliance", func(r chi.Router) {
			attachComplianceRoutes(r, complianceController)
		})

		r.Route("/transactions", func(r chi.Router) {
			attachTransactionRoutes(r, transactionController)
		})
	})
}
