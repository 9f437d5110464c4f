package routers

import (
	"claimsbridge-service/internal/app/services/core/compliance"

	"github.com/go-chi/chi/v5"
)

func attachComplianceRoutes(router chi.Router, complianceController *compliance.ComplianceController) {
	router.Post("/evaluate", complianceController.Evaluate)
	router.Post("/evaluate-batch", complianceController.EvaluateBatch)
}
