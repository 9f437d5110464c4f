// Package sla implements the CMS-0057-F decision-timeline arithmetic for
// prior authorization requests. Pure date math, no business-day rounding.
package sla

import "time"

type RequestType string

const (
	RequestTypeUrgent    RequestType = "urgent"
	RequestTypeExpedited RequestType = "expedited"
	RequestTypeStandard  RequestType = "standard"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusDecided Status = "decided"
	StatusOverdue Status = "overdue"
)

// Timeline tracks the decision deadline for one prior-authorization request.
// Values are immutable; RecordDecision returns a derived copy.
type Timeline struct {
	RequestType     RequestType `json:"request_type"`
	LifeThreatening bool        `json:"life_threatening"`
	ReceivedAt      time.Time   `json:"received_at"`
	SLAHours        int         `json:"sla_hours"`
	DueAt           time.Time   `json:"due_at"`
	DecidedAt       *time.Time  `json:"decided_at,omitempty"`
	Status          Status      `json:"status"`
	SLACompliant    bool        `json:"sla_compliant"`
}

// Hours is the closed deadline table. A life-threatening request gets 24h
// whatever its review class; urgent requests get 72h, expedited reviews 48h,
// standard requests 7 days.
func Hours(requestType RequestType, lifeThreatening bool) int {
	if lifeThreatening {
		return 24
	}
	switch requestType {
	case RequestTypeUrgent:
		return 72
	case RequestTypeExpedited:
		return 48
	default:
		return 168
	}
}

// StartTimeline fixes the deadline at request receipt: dueAt is exactly
// receivedAt + slaHours.
func StartTimeline(requestType RequestType, lifeThreatening bool, receivedAt time.Time) Timeline {
	hours := Hours(requestType, lifeThreatening)
	return Timeline{
		RequestType:     requestType,
		LifeThreatening: lifeThreatening,
		ReceivedAt:      receivedAt,
		SLAHours:        hours,
		DueAt:           receivedAt.Add(time.Duration(hours) * time.Hour),
		Status:          StatusPending,
	}
}

// RecordDecision marks the timeline decided or overdue. A decision exactly at
// the deadline is compliant. Calling it again recomputes from the same
// immutable receivedAt/dueAt.
func RecordDecision(timeline Timeline, decidedAt time.Time) Timeline {
	decided := decidedAt
	timeline.DecidedAt = &decided
	if !decidedAt.After(timeline.DueAt) {
		timeline.Status = StatusDecided
		timeline.SLACompliant = true
	} else {
		timeline.Status = StatusOverdue
		timeline.SLACompliant = false
	}
	return timeline
}
