package compliance

import (
	"context"
	"testing"

	"claimsbridge-service/internal/pkg/constvars"
	"claimsbridge-service/internal/pkg/dto/requests"
	"claimsbridge-service/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBindResource(t *testing.T) {
	t.Run("Patient", func(t *testing.T) {
		raw := []byte(`{"resourceType":"Patient","id":"pat-1","gender":"female"}`)

		resource, err := bindResource(constvars.ResourcePatient, raw)
		require.NoError(t, err)

		patient, ok := resource.(fhir_dto.Patient)
		require.True(t, ok)
		assert.Equal(t, "pat-1", patient.ID)
		assert.Equal(t, "female", patient.Gender)
	})

	t.Run("ServiceRequest", func(t *testing.T) {
		raw, err := json.Marshal(completeServiceRequest())
		require.NoError(t, err)

		resource, err := bindResource(constvars.ResourceServiceRequest, raw)
		require.NoError(t, err)

		sr, ok := resource.(fhir_dto.ServiceRequest)
		require.True(t, ok)
		assert.Equal(t, "sr-1", sr.ID)
	})

	t.Run("UnknownResourceType", func(t *testing.T) {
		_, err := bindResource("Observation", []byte(`{}`))
		assert.Error(t, err)
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		_, err := bindResource(constvars.ResourcePatient, []byte(`{"id":`))
		assert.Error(t, err)
	})
}

func TestComplianceUsecaseEvaluate(t *testing.T) {
	uc := NewComplianceUsecase(zap.NewNop())

	t.Run("CompliantServiceRequest", func(t *testing.T) {
		raw, err := json.Marshal(completeServiceRequest())
		require.NoError(t, err)

		result, err := uc.Evaluate(context.Background(), &requests.EvaluateComplianceRequest{
			ResourceType: constvars.ResourceServiceRequest,
			Resource:     raw,
		})
		require.NoError(t, err)

		assert.True(t, result.Compliant)
		assert.Equal(t, 100, result.Score)
	})

	t.Run("UnknownResourceType", func(t *testing.T) {
		_, err := uc.Evaluate(context.Background(), &requests.EvaluateComplianceRequest{
			ResourceType: "Observation",
			Resource:     json.RawMessage(`{}`),
		})
		assert.Error(t, err)
	})

	t.Run("Batch", func(t *testing.T) {
		raw, err := json.Marshal(completeServiceRequest())
		require.NoError(t, err)

		batch, err := uc.EvaluateBatch(context.Background(), &requests.EvaluateBatchRequest{
			Resources: []requests.EvaluateComplianceRequest{
				{ResourceType: constvars.ResourceServiceRequest, Resource: raw},
				{ResourceType: constvars.ResourceServiceRequest, Resource: raw},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, 2, batch.CompliantCount)
		assert.Zero(t, batch.NonCompliantCount)
	})
}
