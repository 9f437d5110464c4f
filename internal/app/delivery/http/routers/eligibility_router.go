package routers

import (
	"claimsbridge-service/internal/app/services/core/eligibility"

	"github.com/go-chi/chi/v5"
)

func attachEligibilityRoutes(router chi.Router, eligibilityController *eligibility.EligibilityController) {
	router.Post("/inquiries", eligibilityController.DecodeInquiry)
	router.Post("/responses", eligibilityController.DecodeResponse)
	router.Post("/responses/encode", eligibilityController.EncodeResponse)
}
