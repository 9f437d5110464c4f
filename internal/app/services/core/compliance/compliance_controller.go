package compliance

import (
	"context"
	"net/http"
	"time"

	"claimsbridge-service/internal/pkg/constvars"
	"claimsbridge-service/internal/pkg/dto/requests"
	"claimsbridge-service/internal/pkg/exceptions"
	"claimsbridge-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ComplianceController struct {
	Log               *zap.Logger
	ComplianceUsecase ComplianceUsecase
}

func NewComplianceController(logger *zap.Logger, complianceUsecase ComplianceUsecase) *ComplianceController {
	return &ComplianceController{
		Log:               logger,
		ComplianceUsecase: complianceUsecase,
	}
}

// Evaluate validates a single FHIR resource against the CMS-0057-F rule set.
func (ctrl *ComplianceController) Evaluate(w http.ResponseWriter, r *http.Request) {
	request := new(requests.EvaluateComplianceRequest)
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

	result, err := ctrl.ComplianceUsecase.Evaluate(ctx, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.EvaluateComplianceSuccessMessage, result)
}

// EvaluateBatch validates a set of FHIR resources and reports the union of
// profiles and USCDI classes the batch covers.
func (ctrl *ComplianceController) EvaluateBatch(w http.ResponseWriter, r *http.Request) {
	request := new(requests.EvaluateBatchRequest)
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

	result, err := ctrl.ComplianceUsecase.EvaluateBatch(ctx, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.EvaluateBatchSuccessMessage, result)
}
