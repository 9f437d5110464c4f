// Package compliance checks FHIR resources produced by the transaction
// mappers against the CMS-0057-F required-element, profile-declaration and
// response-timeline rules. Violations are data, never exceptions: a
// non-compliant resource is a normal, fully-formed output plus a report.
package compliance

import (
	"fmt"
	"sort"

	"claimsbridge-service/internal/pkg/constvars"
	"claimsbridge-service/internal/pkg/exceptions"
	"claimsbridge-service/internal/pkg/fhir_dto"
	"claimsbridge-service/internal/pkg/sla"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one rule violation or note.
type Issue struct {
	Severity     Severity `json:"severity"`
	Code         string   `json:"code"`
	Message      string   `json:"message"`
	Path         string   `json:"path,omitempty"`
	ResourceType string   `json:"resource_type,omitempty"`
	ResourceID   string   `json:"resource_id,omitempty"`
}

// Summary is the per-resource report appendix.
type Summary struct {
	ResourceType    string   `json:"resource_type"`
	RequiredPresent int      `json:"required_present"`
	RequiredTotal   int      `json:"required_total"`
	Profiles        []string `json:"profiles,omitempty"`
	USCDIClasses    []string `json:"uscdi_classes,omitempty"`
	TimelineVerdict string   `json:"timeline_verdict,omitempty"`
}

// Result is the outcome of validating one resource. Compliant is true iff no
// issue carries error severity; warnings never affect it.
type Result struct {
	Compliant bool    `json:"compliant"`
	Score     int     `json:"score"`
	Issues    []Issue `json:"issues,omitempty"`
	Warnings  []Issue `json:"warnings,omitempty"`
	Summary   Summary `json:"summary"`
}

// BatchResult aggregates per-resource results plus the union of profiles and
// USCDI classes the batch touched.
type BatchResult struct {
	Results           []Result `json:"results"`
	CompliantCount    int      `json:"compliant_count"`
	NonCompliantCount int      `json:"non_compliant_count"`
	Issues            []Issue  `json:"issues,omitempty"`
	Profiles          []string `json:"profiles,omitempty"`
	USCDIClasses      []string `json:"uscdi_classes,omitempty"`
}

// rule is one check: predicate returns true when the resource passes. Rules
// run independently so a single resource accumulates every violation.
type rule struct {
	code     string
	severity Severity
	path     string
	message  string
	pass     func() bool
}

// Evaluate validates one FHIR resource against the rule list for its type.
// Resource types outside the closed transaction set yield an error.
func Evaluate(resource interface{}) (Result, error) {
	switch res := resource.(type) {
	case fhir_dto.Patient:
		return evaluate(constvars.ResourcePatient, res.ID, res.Meta, patientRules(res)), nil
	case *fhir_dto.Patient:
		return Evaluate(*res)
	case fhir_dto.Coverage:
		return evaluate(constvars.ResourceCoverage, res.ID, res.Meta, coverageRules(res)), nil
	case *fhir_dto.Coverage:
		return Evaluate(*res)
	case fhir_dto.CoverageEligibilityRequest:
		return evaluate(constvars.ResourceCoverageEligibilityRequest, res.ID, res.Meta, eligibilityRequestRules(res)), nil
	case *fhir_dto.CoverageEligibilityRequest:
		return Evaluate(*res)
	case fhir_dto.CoverageEligibilityResponse:
		return evaluate(constvars.ResourceCoverageEligibilityResponse, res.ID, res.Meta, eligibilityResponseRules(res)), nil
	case *fhir_dto.CoverageEligibilityResponse:
		return Evaluate(*res)
	case fhir_dto.Claim:
		return evaluate(constvars.ResourceClaim, res.ID, res.Meta, claimRules(res)), nil
	case *fhir_dto.Claim:
		return Evaluate(*res)
	case fhir_dto.ClaimResponse:
		return evaluate(constvars.ResourceClaimResponse, res.ID, res.Meta, claimResponseRules(res)), nil
	case *fhir_dto.ClaimResponse:
		return Evaluate(*res)
	case fhir_dto.ServiceRequest:
		return evaluate(constvars.ResourceServiceRequest, res.ID, res.Meta, serviceRequestRules(res)), nil
	case *fhir_dto.ServiceRequest:
		return Evaluate(*res)
	case fhir_dto.ExplanationOfBenefit:
		return evaluate(constvars.ResourceExplanationOfBenefit, res.ID, res.Meta, explanationOfBenefitRules(res)), nil
	case *fhir_dto.ExplanationOfBenefit:
		return Evaluate(*res)
	default:
		return Result{}, exceptions.ErrUnknownResourceType(fmt.Sprintf("%T", resource))
	}
}

// EvaluateWithTimeline additionally judges the decision timeline attached to
// a prior-authorization resource. An overdue decision is an error issue.
func EvaluateWithTimeline(resource interface{}, timeline sla.Timeline) (Result, error) {
	result, err := Evaluate(resource)
	if err != nil {
		return Result{}, err
	}
	result.Summary.TimelineVerdict = string(timeline.Status)
	if timeline.Status == sla.StatusOverdue {
		result.Issues = append(result.Issues, Issue{
			Severity:     SeverityError,
			Code:         "TIMELINE_OVERDUE",
			Message:      fmt.Sprintf("decision recorded after the %dh deadline", timeline.SLAHours),
			Path:         "meta",
			ResourceType: result.Summary.ResourceType,
		})
		result.Compliant = false
		result.Score = score(len(result.Issues), len(result.Warnings))
	}
	return result, nil
}

// EvaluateBatch validates every resource and aggregates a report: issues
// tagged with their origin, compliant counts, and the union of USCDI classes
// and profiles touched.
func EvaluateBatch(resources []interface{}) (BatchResult, error) {
	batch := BatchResult{}
	profiles := map[string]bool{}
	classes := map[string]bool{}

	for _, resource := range resources {
		result, err := Evaluate(resource)
		if err != nil {
			return BatchResult{}, err
		}
		batch.Results = append(batch.Results, result)
		if result.Compliant {
			batch.CompliantCount++
		} else {
			batch.NonCompliantCount++
		}
		batch.Issues = append(batch.Issues, result.Issues...)
		batch.Issues = append(batch.Issues, result.Warnings...)
		for _, profile := range result.Summary.Profiles {
			profiles[profile] = true
		}
		for _, class := range result.Summary.USCDIClasses {
			classes[class] = true
		}
	}

	batch.Profiles = sortedKeys(profiles)
	batch.USCDIClasses = sortedKeys(classes)
	return batch, nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// score applies the fixed weighting: 10 points per error, 3 per warning,
// floored at zero.
func score(errors, warnings int) int {
	s := 100 - 10*errors - 3*warnings
	if s < 0 {
		return 0
	}
	return s
}

func evaluate(resourceType, resourceID string, meta *fhir_dto.Meta, rules []rule) Result {
	rules = append(rules, profileRule(resourceType, meta))

	result := Result{
		Summary: Summary{
			ResourceType: resourceType,
			USCDIClasses: constvars.ResourceUSCDIClasses[resourceType],
		},
	}
	if meta != nil {
		result.Summary.Profiles = meta.Profile
	}

	for _, r := range rules {
		passed := r.pass()
		if r.severity == SeverityError {
			result.Summary.RequiredTotal++
			if passed {
				result.Summary.RequiredPresent++
			}
		}
		if passed {
			continue
		}
		issue := Issue{
			Severity:     r.severity,
			Code:         r.code,
			Message:      r.message,
			Path:         r.path,
			ResourceType: resourceType,
			ResourceID:   resourceID,
		}
		if r.severity == SeverityError {
			result.Issues = append(result.Issues, issue)
		} else {
			result.Warnings = append(result.Warnings, issue)
		}
	}

	result.Compliant = len(result.Issues) == 0
	result.Score = score(len(result.Issues), len(result.Warnings))
	return result
}

// profileRule: a missing meta.profile declaration is an error for resource
// types with a mandated Da Vinci/US Core profile and a warning otherwise.
func profileRule(resourceType string, meta *fhir_dto.Meta) rule {
	severity := SeverityWarning
	if constvars.MandatedProfileResources[resourceType] {
		severity = SeverityError
	}
	return rule{
		code:     "PROFILE_MISSING",
		severity: severity,
		path:     "meta.profile",
		message:  "resource declares no implementation guide profile",
		pass:     func() bool { return meta != nil && len(meta.Profile) > 0 },
	}
}
