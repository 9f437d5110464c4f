package fhir_dto

type Claim struct {
	ID             string                `json:"id,omitempty"`
	ResourceType   string                `json:"resourceType,omitempty"`
	Meta           *Meta                 `json:"meta,omitempty"`
	Identifier     []Identifier          `json:"identifier,omitempty"`
	Status         string                `json:"status,omitempty"`
	Type           *CodeableConcept      `json:"type,omitempty"`
	Use            string                `json:"use,omitempty"`
	Patient        Reference             `json:"patient,omitempty"`
	BillablePeriod *Period               `json:"billablePeriod,omitempty"`
	Created        string                `json:"created,omitempty"`
	Insurer        *Reference            `json:"insurer,omitempty"`
	Provider       Reference             `json:"provider,omitempty"`
	Priority       *CodeableConcept      `json:"priority,omitempty"`
	SupportingInfo []ClaimSupportingInfo `json:"supportingInfo,omitempty"`
	Diagnosis      []ClaimDiagnosis      `json:"diagnosis,omitempty"`
	Insurance      []ClaimInsurance      `json:"insurance,omitempty"`
	Item           []ClaimItem           `json:"item,omitempty"`
	Total          *Money                `json:"total,omitempty"`
}

type ClaimSupportingInfo struct {
	Sequence    int              `json:"sequence"`
	Category    CodeableConcept  `json:"category"`
	Code        *CodeableConcept `json:"code,omitempty"`
	ValueString string           `json:"valueString,omitempty"`
	TimingDate  string           `json:"timingDate,omitempty"`
}

type ClaimDiagnosis struct {
	Sequence                 int               `json:"sequence"`
	DiagnosisCodeableConcept CodeableConcept   `json:"diagnosisCodeableConcept"`
	Type                     []CodeableConcept `json:"type,omitempty"`
}

type ClaimInsurance struct {
	Sequence int       `json:"sequence"`
	Focal    bool      `json:"focal"`
	Coverage Reference `json:"coverage"`
}

type ClaimItem struct {
	Sequence                int               `json:"sequence"`
	DiagnosisSequence       []int             `json:"diagnosisSequence,omitempty"`
	ProductOrService        CodeableConcept   `json:"productOrService"`
	Modifier                []CodeableConcept `json:"modifier,omitempty"`
	ServicedDate            string            `json:"servicedDate,omitempty"`
	LocationCodeableConcept *CodeableConcept  `json:"locationCodeableConcept,omitempty"`
	Quantity                *Quantity         `json:"quantity,omitempty"`
	UnitPrice               *Money            `json:"unitPrice,omitempty"`
	Net                     *Money            `json:"net,omitempty"`
}
