package routers

import (
	"claimsbridge-service/internal/app/services/core/claims"

	"github.com/go-chi/chi/v5"
)

func attachClaimRoutes(router chi.Router, claimController *claims.ClaimController) {
	router.Post("/", claimController.DecodeClaim)
}
