package eligibility

import (
	"context"
	"io"
	"net/http"
	"time"

	"claimsbridge-service/internal/app/models"
	"claimsbridge-service/internal/pkg/constvars"
	"claimsbridge-service/internal/pkg/exceptions"
	"claimsbridge-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type EligibilityController struct {
	Log                *zap.Logger
	EligibilityUsecase EligibilityUsecase
}

func NewEligibilityController(logger *zap.Logger, eligibilityUsecase EligibilityUsecase) *EligibilityController {
	return &EligibilityController{
		Log:                logger,
		EligibilityUsecase: eligibilityUsecase,
	}
}

// DecodeInquiry accepts a raw 270 interchange and returns the canonical
// record, the FHIR bundle, and the compliance evaluation.
func (ctrl *EligibilityController) DecodeInquiry(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrEDIDecode(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.EligibilityUsecase.DecodeInquiry(ctx, raw)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DecodeEligibilitySuccessMessage, result)
}

// DecodeResponse accepts a raw 271 interchange.
func (ctrl *EligibilityController) DecodeResponse(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrEDIDecode(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.EligibilityUsecase.DecodeResponse(ctx, raw)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DecodeEligibilitySuccessMessage, result)
}

// EncodeResponse accepts a canonical eligibility record and returns the
// encoded 271 interchange.
func (ctrl *EligibilityController) EncodeResponse(w http.ResponseWriter, r *http.Request) {
	canonical := new(models.CanonicalEligibility)
	if err := json.NewDecoder(r.Body).Decode(canonical); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.EligibilityUsecase.EncodeResponse(ctx, canonical)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.EncodeEligibilitySuccessMessage, result)
}
