package fhir_dto

type ServiceRequest struct {
	ID               string            `json:"id,omitempty"`
	ResourceType     string            `json:"resourceType,omitempty"`
	Meta             *Meta             `json:"meta,omitempty"`
	Identifier       []Identifier      `json:"identifier,omitempty"`
	Status           string            `json:"status,omitempty"`
	Intent           string            `json:"intent,omitempty"`
	Category         []CodeableConcept `json:"category,omitempty"`
	Priority         string            `json:"priority,omitempty"`
	Code             *CodeableConcept  `json:"code,omitempty"`
	QuantityQuantity *Quantity         `json:"quantityQuantity,omitempty"`
	Subject          Reference         `json:"subject,omitempty"`
	OccurrencePeriod *Period           `json:"occurrencePeriod,omitempty"`
	AuthoredOn       string            `json:"authoredOn,omitempty"`
	Requester        *Reference        `json:"requester,omitempty"`
	Performer        []Reference       `json:"performer,omitempty"`
	LocationCode     []CodeableConcept `json:"locationCode,omitempty"`
	ReasonCode       []CodeableConcept `json:"reasonCode,omitempty"`
	Insurance        []Reference       `json:"insurance,omitempty"`
	SupportingInfo   []Reference       `json:"supportingInfo,omitempty"`
}
