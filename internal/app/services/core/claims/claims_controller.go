package claims

import (
	"context"
	"io"
	"net/http"
	"time"

	"claimsbridge-service/internal/pkg/constvars"
	"claimsbridge-service/internal/pkg/exceptions"
	"claimsbridge-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type ClaimController struct {
	Log          *zap.Logger
	ClaimUsecase ClaimUsecase
}

func NewClaimController(logger *zap.Logger, claimUsecase ClaimUsecase) *ClaimController {
	return &ClaimController{
		Log:          logger,
		ClaimUsecase: claimUsecase,
	}
}

// DecodeClaim accepts a raw 837 interchange and returns the canonical claim,
// the FHIR Claim, and the compliance evaluation.
func (ctrl *ClaimController) DecodeClaim(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrEDIDecode(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.ClaimUsecase.DecodeClaim(ctx, raw)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DecodeClaimSuccessMessage, result)
}
