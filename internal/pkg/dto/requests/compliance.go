package requests

import "github.com/goccy/go-json"

// EvaluateComplianceRequest carries one FHIR resource for rule evaluation.
// Resource stays raw until the usecase binds it to the typed DTO named by
// ResourceType.
type EvaluateComplianceRequest struct {
	ResourceType string          `json:"resource_type" validate:"required"`
	Resource     json.RawMessage `json:"resource" validate:"required"`
}

type EvaluateBatchRequest struct {
	Resources []EvaluateComplianceRequest `json:"resources" validate:"required,min=1,dive"`
}
