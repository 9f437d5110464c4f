package routers

import (
	"claimsbridge-service/internal/app/services/core/transactions"

	"github.com/go-chi/chi/v5"
)

func attachTransactionRoutes(router chi.Router, transactionController *transactions.TransactionController) {
	router.Get("/", transactionController.FindRecent)
	router.Get("/{requestID}", transactionController.FindByRequestID)
	router.Get("/{requestID}/raw", transactionController.DownloadRaw)
	router.Get("/{requestID}/raw-url", transactionController.PresignRawURL)
}
