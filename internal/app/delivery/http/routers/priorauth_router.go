package routers

import (
	"claimsbridge-service/internal/app/services/core/priorauth"

	"github.com/go-chi/chi/v5"
)

func attachPriorAuthRoutes(router chi.Router, priorAuthController *priorauth.PriorAuthController) {
	router.Post("/", priorAuthController.DecodeRequest)
	router.Post("/responses", priorAuthController.DecodeResponse)
	router.Post("/decisions", priorAuthController.RecordDecision)
	router.Post("/analyze", priorAuthController.Analyze)
}
