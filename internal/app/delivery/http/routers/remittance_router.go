package routers

import (
	"claimsbridge-service/internal/app/services/core/remittance"

	"github.com/go-chi/chi/v5"
)

func attachRemittanceRoutes(router chi.Router, remittanceController *remittance.RemittanceController) {
	router.Post("/", remittanceController.DecodeRemittance)
}
