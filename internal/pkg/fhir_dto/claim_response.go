package fhir_dto

type ClaimResponse struct {
	ID            string              `json:"id,omitempty"`
	ResourceType  string              `json:"resourceType,omitempty"`
	Meta          *Meta               `json:"meta,omitempty"`
	Identifier    []Identifier        `json:"identifier,omitempty"`
	Status        string              `json:"status,omitempty"`
	Type          *CodeableConcept    `json:"type,omitempty"`
	Use           string              `json:"use,omitempty"`
	Patient       Reference           `json:"patient,omitempty"`
	Created       string              `json:"created,omitempty"`
	Insurer       Reference           `json:"insurer,omitempty"`
	Requestor     *Reference          `json:"requestor,omitempty"`
	Request       *Reference          `json:"request,omitempty"`
	Outcome       string              `json:"outcome,omitempty"`
	Disposition   string              `json:"disposition,omitempty"`
	PreAuthRef    string              `json:"preAuthRef,omitempty"`
	PreAuthPeriod *Period             `json:"preAuthPeriod,omitempty"`
	Item          []ClaimResponseItem `json:"item,omitempty"`
	Extension     []Extension         `json:"extension,omitempty"`
}

type ClaimResponseItem struct {
	ItemSequence int            `json:"itemSequence"`
	Adjudication []Adjudication `json:"adjudication,omitempty"`
}
