package priorauth

import (
	"context"
	"io"
	"net/http"
	"time"

	"claimsbridge-service/internal/pkg/constvars"
	"claimsbridge-service/internal/pkg/dto/requests"
	"claimsbridge-service/internal/pkg/exceptions"
	"claimsbridge-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type PriorAuthController struct {
	Log              *zap.Logger
	PriorAuthUsecase PriorAuthUsecase
}

func NewPriorAuthController(logger *zap.Logger, priorAuthUsecase PriorAuthUsecase) *PriorAuthController {
	return &PriorAuthController{
		Log:              logger,
		PriorAuthUsecase: priorAuthUsecase,
	}
}

// DecodeRequest accepts a raw 278 request interchange and returns the
// canonical record, the FHIR bundle, the decision timeline, and the
// compliance evaluation.
func (ctrl *PriorAuthController) DecodeRequest(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrEDIDecode(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.PriorAuthUsecase.DecodeRequest(ctx, raw)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DecodePriorAuthSuccessMessage, result)
}

// DecodeResponse accepts a raw 278 response interchange.
func (ctrl *PriorAuthController) DecodeResponse(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrEDIDecode(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.PriorAuthUsecase.DecodeResponse(ctx, raw)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DecodePriorAuthSuccessMessage, result)
}

// RecordDecision accepts a FHIR ClaimResponse carrying a review decision and
// returns the encoded outbound 278 response.
func (ctrl *PriorAuthController) RecordDecision(w http.ResponseWriter, r *http.Request) {
	request := new(requests.PriorAuthDecisionRequest)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.PriorAuthUsecase.RecordDecision(ctx, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RecordDecisionSuccessMessage, result)
}

// Analyze accepts a raw 278 QRE inquiry and returns the structural analysis
// report without persisting anything.
func (ctrl *PriorAuthController) Analyze(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrEDIDecode(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	report, err := ctrl.PriorAuthUsecase.Analyze(ctx, raw)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AnalyzePriorAuthSuccessMessage, report)
}
