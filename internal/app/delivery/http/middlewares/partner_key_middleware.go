package middlewares

import (
	"context"
	"net/http"

	"claimsbridge-service/internal/pkg/constvars"
	"claimsbridge-service/internal/pkg/exceptions"
	"claimsbridge-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// PartnerKeyAuth authenticates trading partners by API key. The resolved
// partner id ends up in the request context and on every transaction log.
func (m *Middlewares) PartnerKeyAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get(constvars.HeaderPartnerKey)
		if apiKey == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidPartnerKey(nil))
			return
		}

		partnerID, ok := m.InternalConfig.App.PartnerAPIKeys[apiKey]
		if !ok {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidPartnerKey(nil))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_PARTNER_ID_KEY, partnerID)

		m.Log.Info("partner key authentication successful",
			zap.String("partner_id", partnerID),
			zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			zap.String(constvars.LoggingMethodKey, r.Method),
			zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
		)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
