package middlewares

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"claimsbridge-service/internal/app/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestBodyLimit(t *testing.T) {
	internalConfig := &config.InternalConfig{
		App: config.App{
			RequestBodyLimitInMegabyte: 1,
		},
	}
	middlewares := NewMiddlewares(zap.NewNop(), internalConfig)

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Body within limit", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/claims", strings.NewReader("ISA*00*"))

		rr := httptest.NewRecorder()
		middlewares.BodyLimit(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Body over limit", func(t *testing.T) {
		oversized := strings.Repeat("A", 1024*1024+1)
		req := httptest.NewRequest("POST", "/api/v1/claims", strings.NewReader(oversized))

		rr := httptest.NewRecorder()
		middlewares.BodyLimit(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	})
}
