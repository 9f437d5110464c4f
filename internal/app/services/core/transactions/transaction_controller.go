package transactions

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"claimsbridge-service/internal/pkg/constvars"
	"claimsbridge-service/internal/pkg/exceptions"
	"claimsbridge-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const defaultRecentLimit = 50

type TransactionController struct {
	Log                *zap.Logger
	TransactionUsecase TransactionUsecase
}

func NewTransactionController(logger *zap.Logger, transactionUsecase TransactionUsecase) *TransactionController {
	return &TransactionController{
		Log:                logger,
		TransactionUsecase: transactionUsecase,
	}
}

// FindByRequestID returns every transaction log recorded under one request id.
func (ctrl *TransactionController) FindByRequestID(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, constvars.URLParamRequestID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	logs, err := ctrl.TransactionUsecase.FindByRequestID(ctx, requestID)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetTransactionLogsSuccessMessage, logs)
}

// FindRecent returns the most recent transaction logs, newest first. The
// limit query parameter caps the result set.
func (ctrl *TransactionController) FindRecent(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultRecentLimit)
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.ParseInt(rawLimit, 10, 64)
		if err != nil || parsed <= 0 {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
			return
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	logs, err := ctrl.TransactionUsecase.FindRecent(ctx, limit)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetTransactionLogsSuccessMessage, logs)
}

// DownloadRaw streams the archived interchange exactly as the trading
// partner sent it.
func (ctrl *TransactionController) DownloadRaw(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, constvars.URLParamRequestID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	raw, err := ctrl.TransactionUsecase.GetRawTransaction(ctx, requestID)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationEDIX12)
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

// PresignRawURL returns a short-lived download link for the archived
// interchange.
func (ctrl *TransactionController) PresignRawURL(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, constvars.URLParamRequestID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	url, err := ctrl.TransactionUsecase.GetRawTransactionURL(ctx, requestID)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PresignRawURLSuccessMessage, map[string]string{"url": url})
}
