package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"claimsbridge-service/internal/app/config"
	"claimsbridge-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestPartnerKeyAuth(t *testing.T) {
	logger := zap.NewNop()

	testAPIKey := "test-partner-api-key-12345"
	internalConfig := &config.InternalConfig{
		App: config.App{
			PartnerAPIKeys: map[string]string{
				testAPIKey: "acme-health",
			},
		},
	}

	middlewares := NewMiddlewares(logger, internalConfig)

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		partnerID, ok := r.Context().Value(constvars.CONTEXT_PARTNER_ID_KEY).(string)
		assert.True(t, ok, "partner id should be set in context")
		assert.Equal(t, "acme-health", partnerID)

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	})

	t.Run("Valid partner key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/eligibility/inquiries", nil)
		req.Header.Set(constvars.HeaderPartnerKey, testAPIKey)

		rr := httptest.NewRecorder()
		middlewares.PartnerKeyAuth(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "success", rr.Body.String())
	})

	t.Run("Missing partner key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/eligibility/inquiries", nil)

		rr := httptest.NewRecorder()
		middlewares.PartnerKeyAuth(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Unknown partner key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/eligibility/inquiries", nil)
		req.Header.Set(constvars.HeaderPartnerKey, "wrong-key")

		rr := httptest.NewRecorder()
		middlewares.PartnerKeyAuth(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
