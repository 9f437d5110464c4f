package fhir_dto

type CoverageEligibilityResponse struct {
	ID           string                                 `json:"id,omitempty"`
	ResourceType string                                 `json:"resourceType,omitempty"`
	Meta         *Meta                                  `json:"meta,omitempty"`
	Identifier   []Identifier                           `json:"identifier,omitempty"`
	Status       string                                 `json:"status,omitempty"`
	Purpose      []string                               `json:"purpose,omitempty"`
	Patient      Reference                              `json:"patient,omitempty"`
	Created      string                                 `json:"created,omitempty"`
	Request      *Reference                             `json:"request,omitempty"`
	Outcome      string                                 `json:"outcome,omitempty"`
	Disposition  string                                 `json:"disposition,omitempty"`
	Insurer      Reference                              `json:"insurer,omitempty"`
	Insurance    []CoverageEligibilityResponseInsurance `json:"insurance,omitempty"`
}

type CoverageEligibilityResponseInsurance struct {
	Coverage Reference                         `json:"coverage"`
	Inforce  *bool                             `json:"inforce,omitempty"`
	Item     []CoverageEligibilityResponseItem `json:"item,omitempty"`
}

type CoverageEligibilityResponseItem struct {
	Category         *CodeableConcept     `json:"category,omitempty"`
	ProductOrService *CodeableConcept     `json:"productOrService,omitempty"`
	Name             string               `json:"name,omitempty"`
	Description      string               `json:"description,omitempty"`
	Excluded         *bool                `json:"excluded,omitempty"`
	Network          *CodeableConcept     `json:"network,omitempty"`
	Unit             *CodeableConcept     `json:"unit,omitempty"`
	Benefit          []EligibilityBenefit `json:"benefit,omitempty"`
}

type EligibilityBenefit struct {
	Type          CodeableConcept `json:"type"`
	AllowedMoney  *Money          `json:"allowedMoney,omitempty"`
	UsedMoney     *Money          `json:"usedMoney,omitempty"`
	AllowedString string          `json:"allowedString,omitempty"`
}
