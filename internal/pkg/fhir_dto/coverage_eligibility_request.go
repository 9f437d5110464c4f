package fhir_dto

type CoverageEligibilityRequest struct {
	ID           string                           `json:"id,omitempty"`
	ResourceType string                           `json:"resourceType,omitempty"`
	Meta         *Meta                            `json:"meta,omitempty"`
	Identifier   []Identifier                     `json:"identifier,omitempty"`
	Status       string                           `json:"status,omitempty"`
	Purpose      []string                         `json:"purpose,omitempty"`
	Patient      Reference                        `json:"patient,omitempty"`
	Created      string                           `json:"created,omitempty"`
	Provider     *Reference                       `json:"provider,omitempty"`
	Insurer      Reference                        `json:"insurer,omitempty"`
	ServicedDate string                           `json:"servicedDate,omitempty"`
	Insurance    []EligibilityRequestInsurance    `json:"insurance,omitempty"`
	Item         []CoverageEligibilityRequestItem `json:"item,omitempty"`
}

type EligibilityRequestInsurance struct {
	Focal    bool      `json:"focal,omitempty"`
	Coverage Reference `json:"coverage"`
}

type CoverageEligibilityRequestItem struct {
	Category         *CodeableConcept `json:"category,omitempty"`
	ProductOrService *CodeableConcept `json:"productOrService,omitempty"`
	Provider         *Reference       `json:"provider,omitempty"`
}
