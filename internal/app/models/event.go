package models

// TransactionEvent is the message published after a transaction is decoded,
// consumed by downstream workflow services.
type TransactionEvent struct {
	RequestID                string   `json:"request_id"`
	PartnerID                string   `json:"partner_id,omitempty"`
	TransactionSet           string   `json:"transaction_set"`
	Direction                string   `json:"direction"`
	InterchangeControlNumber string   `json:"interchange_control_number"`
	TraceNumber              string   `json:"trace_number,omitempty"`
	ResourceTypes            []string `json:"resource_types,omitempty"`
	Compliant                *bool    `json:"compliant,omitempty"`
	RawObjectName            string   `json:"raw_object_name,omitempty"`
	FailedCount              int      `json:"failed_count"`
}
