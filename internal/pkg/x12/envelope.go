package x12

import (
	"claimsbridge-service/internal/pkg/constvars"
	"claimsbridge-service/internal/pkg/exceptions"
	"fmt"
	"strings"
	"time"
)

// Envelope carries interchange/group/transaction control metadata. Control
// numbers are echoed onto the matching response envelope.
type Envelope struct {
	SenderID                    string
	ReceiverID                  string
	InterchangeControlNumber    string
	GroupControlNumber          string
	TransactionSetControlNumber string
	TransactionSetID            string
	ImplementationGuide         string
	FunctionalIDCode            string
	Delimiters                  Delimiters
}

// ParseEnvelope extracts the control metadata from an already-decoded segment
// stream.
func ParseEnvelope(segments []Segment, delims Delimiters) (Envelope, error) {
	env := Envelope{Delimiters: delims}
	for _, seg := range segments {
		switch seg.ID {
		case constvars.SegmentISA:
			env.SenderID = strings.TrimSpace(seg.Element(6))
			env.ReceiverID = strings.TrimSpace(seg.Element(8))
			env.InterchangeControlNumber = seg.Element(13)
		case constvars.SegmentGS:
			env.FunctionalIDCode = seg.Element(1)
			env.GroupControlNumber = seg.Element(6)
		case constvars.SegmentST:
			env.TransactionSetID = seg.Element(1)
			env.TransactionSetControlNumber = seg.Element(2)
			env.ImplementationGuide = seg.Element(3)
		}
	}
	if env.InterchangeControlNumber == "" {
		return env, exceptions.NewDecodeError(0, "ISA segment missing interchange control number")
	}
	if env.TransactionSetID == "" {
		return env, exceptions.NewDecodeError(0, "ST segment missing transaction set identifier")
	}
	return env, nil
}

// WrapTransaction encloses a transaction body in ISA/GS/ST ... SE/GE/IEA
// envelope segments, echoing the control numbers of env. The SE segment count
// includes ST and SE themselves.
func WrapTransaction(env Envelope, body []Segment, now time.Time) []Segment {
	date6 := now.Format("060102")
	date8 := now.Format("20060102")
	hhmm := now.Format("1504")

	segments := make([]Segment, 0, len(body)+6)
	segments = append(segments, BuildSegment(constvars.SegmentISA,
		"00", strings.Repeat(" ", 10),
		"00", strings.Repeat(" ", 10),
		"ZZ", padRight(env.SenderID, 15),
		"ZZ", padRight(env.ReceiverID, 15),
		date6, hhmm,
		string(env.Delimiters.Repetition),
		"00501",
		padLeft(env.InterchangeControlNumber, 9),
		"0", "P",
		string(env.Delimiters.Component),
	))
	segments = append(segments, BuildSegment(constvars.SegmentGS,
		env.FunctionalIDCode,
		strings.TrimSpace(env.SenderID),
		strings.TrimSpace(env.ReceiverID),
		date8, hhmm,
		env.GroupControlNumber,
		"X",
		env.ImplementationGuide,
	))
	segments = append(segments, BuildSegment(constvars.SegmentST,
		env.TransactionSetID,
		env.TransactionSetControlNumber,
		env.ImplementationGuide,
	))
	segments = append(segments, body...)
	segments = append(segments, BuildSegment(constvars.SegmentSE,
		fmt.Sprintf("%d", len(body)+2),
		env.TransactionSetControlNumber,
	))
	segments = append(segments, BuildSegment(constvars.SegmentGE, "1", env.GroupControlNumber))
	segments = append(segments, BuildSegment(constvars.SegmentIEA, "1", padLeft(env.InterchangeControlNumber, 9)))
	return segments
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s[len(s)-width:]
	}
	return strings.Repeat("0", width-len(s)) + s
}
