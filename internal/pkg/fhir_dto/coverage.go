package fhir_dto

type Coverage struct {
	ID           string          `json:"id,omitempty"`
	ResourceType string          `json:"resourceType,omitempty"`
	Meta         *Meta           `json:"meta,omitempty"`
	Identifier   []Identifier    `json:"identifier,omitempty"`
	Status       string          `json:"status,omitempty"`
	Type         *CodeableConcept `json:"type,omitempty"`
	SubscriberId string          `json:"subscriberId,omitempty"`
	Beneficiary  Reference       `json:"beneficiary,omitempty"`
	Relationship *CodeableConcept `json:"relationship,omitempty"`
	Period       *Period         `json:"period,omitempty"`
	Payor        []Reference     `json:"payor,omitempty"`
	Class        []CoverageClass `json:"class,omitempty"`
}

type CoverageClass struct {
	Type  CodeableConcept `json:"type"`
	Value string          `json:"value"`
	Name  string          `json:"name,omitempty"`
}
