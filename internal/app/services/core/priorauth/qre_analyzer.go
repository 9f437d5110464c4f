package priorauth

import (
	"fmt"
	"strings"

	"claimsbridge-service/internal/pkg/constvars"
	"claimsbridge-service/internal/pkg/x12"
)

// QRE analysis checks a 278 X215 inquiry against the Availity QRE (Query and
// Response for Eligibility) requirements: envelope sanity, minimal data
// segments, and the query-method convention (authorization number or member
// demographics).

type QRESeverity string

const (
	QREError   QRESeverity = "ERROR"
	QREWarning QRESeverity = "WARNING"
	QREInfo    QRESeverity = "INFO"
)

// Query methods a QRE inquiry can use.
const (
	QueryByAuthorizationNumber = "ByAuthorizationNumber"
	QueryByMemberDemographics  = "ByMemberDemographics"
	QueryMethodUnknown         = "Unknown"
)

// QREFinding is one analyzer check result.
type QREFinding struct {
	Severity QRESeverity       `json:"severity"`
	Code     string            `json:"code"`
	Message  string            `json:"message"`
	Segment  string            `json:"segment,omitempty"`
	Context  map[string]string `json:"context,omitempty"`
}

// QREReport is the complete analysis of one inquiry.
type QREReport struct {
	TR3Version    string       `json:"tr3_version"`
	Valid         bool         `json:"is_valid"`
	ErrorCount    int          `json:"error_count"`
	WarningCount  int          `json:"warning_count"`
	InfoCount     int          `json:"info_count"`
	QueryMethod   string       `json:"query_method,omitempty"`
	SegmentsFound []string     `json:"segments_found"`
	Findings      []QREFinding `json:"results"`
}

// QREConfig tunes the analyzer. The zero value disables everything; use
// DefaultQREConfig for the standard QRE profile.
type QREConfig struct {
	TR3Version           string
	ValidateEnvelopes    bool
	MinimalDataPrinciple bool
	RequiredSegments     []string
	FailOnWarnings       bool
}

func DefaultQREConfig() QREConfig {
	return QREConfig{
		TR3Version:           constvars.ImplementationGuideQre,
		ValidateEnvelopes:    true,
		MinimalDataPrinciple: true,
		RequiredSegments: []string{
			constvars.SegmentST,
			constvars.SegmentBHT,
			constvars.SegmentHL,
			constvars.SegmentNM1,
			constvars.SegmentSE,
		},
	}
}

// AnalyzeQRE inspects a raw 278 inquiry. Unlike Decode, the analyzer never
// fails on malformed input: every problem becomes a finding so an operator
// sees the whole picture in one pass.
func AnalyzeQRE(raw string, cfg QREConfig) QREReport {
	report := QREReport{TR3Version: cfg.TR3Version}

	delims := x12.DefaultDelimiters()
	if parsed, err := x12.ReadDelimiters(raw); err == nil {
		delims = parsed
	}

	segments := tokenizeLeniently(raw, delims)
	for _, seg := range segments {
		report.SegmentsFound = append(report.SegmentsFound, seg.ID)
	}

	if cfg.ValidateEnvelopes {
		report.Findings = append(report.Findings, envelopeFindings(segments)...)
	}
	report.Findings = append(report.Findings, requiredSegmentFindings(segments, cfg.RequiredSegments)...)
	if cfg.MinimalDataPrinciple {
		report.Findings = append(report.Findings, minimalDataFindings(segments)...)
	}
	method, finding := detectQueryMethod(segments)
	report.QueryMethod = method
	report.Findings = append(report.Findings, finding)

	for _, f := range report.Findings {
		switch f.Severity {
		case QREError:
			report.ErrorCount++
		case QREWarning:
			report.WarningCount++
		case QREInfo:
			report.InfoCount++
		}
	}
	report.Valid = report.ErrorCount == 0
	if cfg.FailOnWarnings {
		report.Valid = report.Valid && report.WarningCount == 0
	}
	return report
}

// tokenizeLeniently splits raw text into segments without the strict envelope
// checks Decode applies; the analyzer reports on whatever arrives.
func tokenizeLeniently(raw string, delims x12.Delimiters) []x12.Segment {
	var segments []x12.Segment
	for _, chunk := range strings.Split(raw, string(delims.Segment)) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		parts := strings.Split(chunk, string(delims.Element))
		segments = append(segments, x12.Segment{ID: parts[0], Elements: parts[1:]})
	}
	return segments
}

func envelopeFindings(segments []x12.Segment) []QREFinding {
	var findings []QREFinding
	count := func(id string) int {
		n := 0
		for _, seg := range segments {
			if seg.ID == id {
				n++
			}
		}
		return n
	}

	switch isaCount := count(constvars.SegmentISA); {
	case isaCount == 0:
		findings = append(findings, QREFinding{
			Severity: QREError, Code: "ENV001",
			Message: "Missing ISA segment (Interchange Control Header)",
			Segment: constvars.SegmentISA,
		})
	case isaCount > 1:
		findings = append(findings, QREFinding{
			Severity: QREWarning, Code: "ENV002",
			Message: fmt.Sprintf("Multiple ISA segments found (%d)", isaCount),
			Segment: constvars.SegmentISA,
		})
	}

	if count(constvars.SegmentGS) == 0 {
		findings = append(findings, QREFinding{
			Severity: QREError, Code: "ENV003",
			Message: "Missing GS segment (Functional Group Header)",
			Segment: constvars.SegmentGS,
		})
	}

	var st *x12.Segment
	for i := range segments {
		if segments[i].ID == constvars.SegmentST {
			st = &segments[i]
			break
		}
	}
	if st == nil {
		findings = append(findings, QREFinding{
			Severity: QREError, Code: "ENV004",
			Message: "Missing ST segment (Transaction Set Header)",
			Segment: constvars.SegmentST,
		})
		return findings
	}
	if code := st.Element(1); code != constvars.TransactionSet278 {
		findings = append(findings, QREFinding{
			Severity: QREError, Code: "ENV005",
			Message: fmt.Sprintf("Invalid transaction code: expected '278', found '%s'", code),
			Segment: constvars.SegmentST,
		})
	}
	if guide := st.Element(3); guide != "" && !strings.HasSuffix(guide, "X215") {
		findings = append(findings, QREFinding{
			Severity: QREWarning, Code: "ENV006",
			Message: fmt.Sprintf("Implementation guide version '%s' may not be 005010X215", guide),
			Segment: constvars.SegmentST,
			Context: map[string]string{"version": guide},
		})
	}
	return findings
}

func requiredSegmentFindings(segments []x12.Segment, required []string) []QREFinding {
	present := map[string]bool{}
	for _, seg := range segments {
		present[seg.ID] = true
	}
	var findings []QREFinding
	for _, id := range required {
		if !present[id] {
			findings = append(findings, QREFinding{
				Severity: QREError, Code: "QRE001",
				Message: "Missing required segment: " + id,
				Segment: id,
			})
		}
	}
	return findings
}

func minimalDataFindings(segments []x12.Segment) []QREFinding {
	var findings []QREFinding

	var bht, um, hcr *x12.Segment
	for i := range segments {
		switch segments[i].ID {
		case constvars.SegmentBHT:
			if bht == nil {
				bht = &segments[i]
			}
		case constvars.SegmentUM:
			if um == nil {
				um = &segments[i]
			}
		case constvars.SegmentHCR:
			if hcr == nil {
				hcr = &segments[i]
			}
		}
	}

	if bht != nil && bht.Element(1) != "0007" {
		findings = append(findings, QREFinding{
			Severity: QREWarning, Code: "QRE002",
			Message: fmt.Sprintf("BHT01 should be '0007' for inquiry, found '%s'", bht.Element(1)),
			Segment: constvars.SegmentBHT,
			Context: map[string]string{"bht01": bht.Element(1)},
		})
	}
	if um == nil {
		findings = append(findings, QREFinding{
			Severity: QREWarning, Code: "QRE003",
			Message: "UM segment (Health Care Services Review Information) is recommended for QRE",
			Segment: constvars.SegmentUM,
		})
	}
	if hcr != nil {
		switch hcr.Element(1) {
		case constvars.ReviewInquiry, constvars.ReviewApproved, constvars.ReviewModified,
			constvars.ReviewDenied, constvars.ReviewPended:
		default:
			findings = append(findings, QREFinding{
				Severity: QREInfo, Code: "QRE004",
				Message: fmt.Sprintf("HCR01 action code is '%s' (I1=Inquiry is recommended)", hcr.Element(1)),
				Segment: constvars.SegmentHCR,
				Context: map[string]string{"hcr01": hcr.Element(1)},
			})
		}
	}
	return findings
}

// detectQueryMethod decides how the inquiry identifies the review: an
// authorization number (REF*D9) wins over member demographics (NM1*IL + DMG).
func detectQueryMethod(segments []x12.Segment) (string, QREFinding) {
	var hasAuthRef, hasMemberID, hasDemographics bool
	for _, seg := range segments {
		switch seg.ID {
		case constvars.SegmentREF:
			if seg.Element(1) == "D9" {
				hasAuthRef = true
			}
		case constvars.SegmentNM1:
			if seg.Element(1) == constvars.EntitySubscriber {
				hasMemberID = true
			}
		case constvars.SegmentDMG:
			hasDemographics = true
		}
	}

	switch {
	case hasAuthRef:
		return QueryByAuthorizationNumber, QREFinding{
			Severity: QREInfo, Code: "QRE005",
			Message: "Query method: Authorization Number (REF*D9 segment found)",
			Segment: constvars.SegmentREF,
		}
	case hasMemberID && hasDemographics:
		return QueryByMemberDemographics, QREFinding{
			Severity: QREInfo, Code: "QRE006",
			Message: "Query method: Member Demographics (NM1*IL and DMG segments found)",
			Segment: constvars.SegmentNM1,
		}
	default:
		return QueryMethodUnknown, QREFinding{
			Severity: QREWarning, Code: "QRE007",
			Message: "Cannot determine query method (need REF*D9 OR (NM1*IL + DMG))",
			Segment: constvars.SegmentREF,
		}
	}
}
