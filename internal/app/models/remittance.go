package models

import "claimsbridge-service/internal/pkg/x12"

// Adjustment is one CAS entry: group code, reason code, amount.
type Adjustment struct {
	GroupCode  string  `json:"group_code"`
	ReasonCode string  `json:"reason_code"`
	Amount     float64 `json:"amount"`
}

// RemitServiceLine is one SVC payment line.
type RemitServiceLine struct {
	ProcedureCode string       `json:"procedure_code"`
	ChargedAmount float64      `json:"charged_amount"`
	PaidAmount    float64      `json:"paid_amount"`
	Units         float64      `json:"units,omitempty"`
	ServiceDate   string       `json:"service_date,omitempty"`
	Adjustments   []Adjustment `json:"adjustments,omitempty"`
}

// RemitClaim is one CLP claim payment loop within an 835. A remittance fans
// out into one ExplanationOfBenefit per claim, never one per file.
type RemitClaim struct {
	ClaimID         string             `json:"claim_id"`
	StatusCode      string             `json:"status_code"`
	ChargedAmount   float64            `json:"charged_amount"`
	PaidAmount      float64            `json:"paid_amount"`
	PatientAmount   float64            `json:"patient_amount,omitempty"`
	PayerControlNum string             `json:"payer_control_num,omitempty"`
	AllowedAmount   float64            `json:"allowed_amount,omitempty"`
	Patient         Party              `json:"patient"`
	Adjustments     []Adjustment       `json:"adjustments,omitempty"`
	ServiceLines    []RemitServiceLine `json:"service_lines,omitempty"`
}

// CanonicalRemittance is the normalized 835 record.
type CanonicalRemittance struct {
	Envelope      x12.Envelope `json:"envelope"`
	CheckNumber   string       `json:"check_number,omitempty"`
	PaymentAmount float64      `json:"payment_amount"`
	PaymentMethod string       `json:"payment_method,omitempty"`
	PaymentDate   string       `json:"payment_date,omitempty"`
	Payer         Party        `json:"payer"`
	Payee         Party        `json:"payee"`
	Claims        []RemitClaim `json:"claims"`
}
