package remittance

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

type RemittanceController struct {
	Log               *zap.Logger
	RemittanceUsecase RemittanceUsecase
}

func NewRemittanceController(logger *zap.Logger, remittanceUsecase RemittanceUsecase) *RemittanceController {
	return &RemittanceController{
		Log:               logger,
		RemittanceUsecase: remittanceUsecase,
	}
}

// DecodeRemittance accepts a raw 835 interchange and returns one
// ExplanationOfBenefit per claim payment, plus the compliance evaluation.
func (ctrl *RemittanceController) DecodeRemittance(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrEDIDecode(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.RemittanceUsecase.DecodeRemittance(ctx, raw)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DecodeRemittanceSuccessMessage, result)
}
