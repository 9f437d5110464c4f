package models

import "claimsbridge-service/internal/pkg/x12"

// Diagnosis is one HI composite entry on an 837.
type Diagnosis struct {
	Qualifier string `json:"qualifier"`
	Code      string `json:"code"`
}

// ServiceLine is one LX/SV1 professional service line.
type ServiceLine struct {
	LineNumber        int      `json:"line_number"`
	ProcedureCode     string   `json:"procedure_code"`
	Modifiers         []string `json:"modifiers,omitempty"`
	ChargeAmount      float64  `json:"charge_amount"`
	Units             float64  `json:"units,omitempty"`
	PlaceOfService    string   `json:"place_of_service,omitempty"`
	DiagnosisPointers []int    `json:"diagnosis_pointers,omitempty"`
	ServiceDate       string   `json:"service_date,omitempty"`
}

// CanonicalClaim is the normalized 837 record.
type CanonicalClaim struct {
	Envelope        x12.Envelope  `json:"envelope"`
	ClaimID         string        `json:"claim_id"`
	PatientControl  string        `json:"patient_control,omitempty"`
	TotalCharge     float64       `json:"total_charge,omitempty"`
	PlaceOfService  string        `json:"place_of_service,omitempty"`
	Frequency       string        `json:"frequency,omitempty"`
	Subscriber      Party         `json:"subscriber"`
	Patient         *Party        `json:"patient,omitempty"`
	BillingProvider Party         `json:"billing_provider"`
	Payer           Party         `json:"payer"`
	StatementFrom   string        `json:"statement_from,omitempty"`
	StatementTo     string        `json:"statement_to,omitempty"`
	Diagnoses       []Diagnosis   `json:"diagnoses,omitempty"`
	ServiceLines    []ServiceLine `json:"service_lines"`
}
