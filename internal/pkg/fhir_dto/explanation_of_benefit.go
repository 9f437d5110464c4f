package fhir_dto

type ExplanationOfBenefit struct {
	ID             string           `json:"id,omitempty"`
	ResourceType   string           `json:"resourceType,omitempty"`
	Meta           *Meta            `json:"meta,omitempty"`
	Identifier     []Identifier     `json:"identifier,omitempty"`
	Status         string           `json:"status,omitempty"`
	Type           *CodeableConcept `json:"type,omitempty"`
	Use            string           `json:"use,omitempty"`
	Patient        Reference        `json:"patient,omitempty"`
	BillablePeriod *Period          `json:"billablePeriod,omitempty"`
	Created        string           `json:"created,omitempty"`
	Insurer        Reference        `json:"insurer,omitempty"`
	Provider       Reference        `json:"provider,omitempty"`
	Outcome        string           `json:"outcome,omitempty"`
	Disposition    string           `json:"disposition,omitempty"`
	Claim          *Reference       `json:"claim,omitempty"`
	Item           []EOBItem        `json:"item,omitempty"`
	Total          []EOBTotal       `json:"total,omitempty"`
	Payment        *EOBPayment      `json:"payment,omitempty"`
}

type EOBItem struct {
	Sequence         int             `json:"sequence"`
	ProductOrService CodeableConcept `json:"productOrService"`
	ServicedDate     string          `json:"servicedDate,omitempty"`
	Quantity         *Quantity       `json:"quantity,omitempty"`
	Adjudication     []Adjudication  `json:"adjudication,omitempty"`
}

type EOBTotal struct {
	Category CodeableConcept `json:"category"`
	Amount   Money           `json:"amount"`
}

type EOBPayment struct {
	Type   *CodeableConcept `json:"type,omitempty"`
	Amount *Money           `json:"amount,omitempty"`
	Date   string           `json:"date,omitempty"`
}
