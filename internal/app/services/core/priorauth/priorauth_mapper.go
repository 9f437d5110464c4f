package priorauth

import (
	"strings"
	"time"

	"claimsbridge-service/internal/app/models"
	"claimsbridge-service/internal/pkg/codetables"
	"claimsbridge-service/internal/pkg/constvars"
	"claimsbridge-service/internal/pkg/exceptions"
	"claimsbridge-service/internal/pkg/fhir_dto"
	"claimsbridge-service/internal/pkg/sla"
	"claimsbridge-service/internal/pkg/utils"
	"claimsbridge-service/internal/pkg/x12"
)

const (
	serviceTypeCodeSystem = "https://x12.org/codes/service-type-codes"
	diagnosisCodeSystem   = "http://hl7.org/fhir/sid/icd-10-cm"
	claimTypeSystem       = "http://terminology.hl7.org/CodeSystem/claim-type"

	// Stamped on pended responses that need supporting documentation.
	additionalInfoExtensionURL = "http://hl7.org/fhir/us/davinci-pas/StructureDefinition/extension-infoRequested"

	// Days a requester has to supply additional information on a pended
	// review before the request lapses.
	additionalInfoDays = 14
)

// nowFunc stamps outgoing envelopes; swapped in tests.
var nowFunc = time.Now

// Decode278Request normalizes a raw 278 health care services review request
// (BHT06 = 11).
func Decode278Request(raw string) (*models.CanonicalPriorAuth, error) {
	return decode278(raw, constvars.TransactionTypeRequest)
}

// Decode278Response normalizes a raw 278 review response (BHT06 = 13),
// including its HCR decision loop.
func Decode278Response(raw string) (*models.CanonicalPriorAuth, error) {
	return decode278(raw, constvars.TransactionTypeResponse)
}

func decode278(raw, wantType string) (*models.CanonicalPriorAuth, error) {
	segments, delims, err := x12.Decode(raw)
	if err != nil {
		return nil, err
	}
	env, err := x12.ParseEnvelope(segments, delims)
	if err != nil {
		return nil, err
	}
	if env.TransactionSetID != constvars.TransactionSet278 {
		return nil, exceptions.NewDirectionError(constvars.TransactionSet278, env.TransactionSetID)
	}

	canonical := &models.CanonicalPriorAuth{Envelope: env}
	comp := string(delims.Component)

	for i, seg := range segments {
		switch seg.ID {
		case constvars.SegmentBHT:
			canonical.TransactionType = seg.Element(2)
		case constvars.SegmentTRN:
			canonical.TraceNumber = seg.Element(2)
		case constvars.SegmentNM1:
			party := parseReviewParty(segments, i)
			switch party.EntityCode {
			case constvars.EntityUtilizationMgmt:
				canonical.UMO = party
			case constvars.EntityProvider:
				canonical.Requester = party
			case constvars.EntitySubscriber:
				canonical.Subscriber = party
			case constvars.EntityDependent:
				dependent := party
				canonical.Dependent = &dependent
			case constvars.EntityServiceProvider, constvars.EntityFacility:
				provider := party
				canonical.ServiceProvider = &provider
			}
		case constvars.SegmentUM:
			canonical.Review = models.ReviewInfo{
				RequestCategory:   seg.Element(1),
				CertificationType: seg.Element(2),
				ServiceTypeCode:   seg.Element(3),
				LevelOfService:    seg.Element(6),
				LifeThreatening:   seg.Element(6) == "1",
			}
		case constvars.SegmentHCR:
			canonical.Outcome = &models.ReviewOutcome{
				StatusCode:             seg.Element(1),
				AuthorizationNumber:    seg.Element(2),
				ReviewReason:           seg.Element(3),
				AdditionalInfoRequired: seg.Element(1) == constvars.ReviewPended,
			}
		case constvars.SegmentHI:
			for _, el := range seg.Elements {
				parts := strings.Split(el, comp)
				if len(parts) < 2 || parts[1] == "" {
					continue
				}
				canonical.Diagnoses = append(canonical.Diagnoses, models.Diagnosis{
					Qualifier: parts[0],
					Code:      parts[1],
				})
			}
		case constvars.SegmentDTP:
			switch seg.Element(1) {
			case "472", "AAH":
				canonical.ServiceDate = utils.NormalizeDate(seg.Element(3))
			case "106":
				if canonical.Outcome != nil {
					canonical.Outcome.AdditionalInfoDeadline = utils.NormalizeDate(seg.Element(3))
				}
			}
		}
	}

	if canonical.TransactionType != wantType {
		return nil, exceptions.NewDirectionError(wantType, canonical.TransactionType)
	}
	if canonical.Subscriber.MemberID == "" {
		return nil, exceptions.NewMappingError("subscriber.memberId", "278 subscriber loop missing member identifier")
	}
	if wantType == constvars.TransactionTypeRequest && canonical.Requester.NPI == "" {
		return nil, exceptions.NewMappingError("requester.npi", "278 request missing requester NPI")
	}
	if wantType == constvars.TransactionTypeResponse && canonical.Outcome == nil {
		return nil, exceptions.NewMappingError("outcome.statusCode", "278 response missing HCR decision segment")
	}
	return canonical, nil
}

func parseReviewParty(segments []x12.Segment, anchor int) models.Party {
	seg := segments[anchor]
	party := models.Party{
		EntityCode:  seg.Element(1),
		LastName:    seg.Element(3),
		FirstName:   seg.Element(4),
		MiddleName:  seg.Element(5),
		IDQualifier: seg.Element(8),
	}
	if seg.Element(2) == "2" {
		party.OrgName = seg.Element(3)
		party.LastName = ""
	}
	switch party.IDQualifier {
	case "XX":
		party.NPI = seg.Element(9)
	default:
		party.MemberID = seg.Element(9)
	}
	if idx := x12.FindForward(segments, anchor, constvars.SegmentDMG, constvars.SegmentNM1, constvars.SegmentHL); idx >= 0 {
		dmg := segments[idx]
		if dmg.Element(1) == "D8" {
			party.BirthDate = utils.NormalizeDate(dmg.Element(2))
		}
		party.Gender = dmg.Element(3)
	}
	return party
}

// Priority derives the FHIR request priority from the UM level of service.
// Only "U" (urgent) and "E" (elective) carry priority semantics; every other
// level of service code is a normal request.
func Priority(review models.ReviewInfo) string {
	switch review.LevelOfService {
	case "U":
		return "urgent"
	case "E":
		return "routine"
	default:
		return "normal"
	}
}

// RequestType folds the review information onto the SLA request classes: an
// urgent level of service triggers the expedited review clock, everything
// else runs on the standard 7-day clock.
func RequestType(review models.ReviewInfo) sla.RequestType {
	if review.LevelOfService == "U" {
		return sla.RequestTypeUrgent
	}
	return sla.RequestTypeStandard
}

// StartTimeline opens the decision clock for a decoded request.
func StartTimeline(canonical *models.CanonicalPriorAuth, receivedAt time.Time) sla.Timeline {
	return sla.StartTimeline(RequestType(canonical.Review), canonical.Review.LifeThreatening, receivedAt)
}

// PriorAuthBundle is the FHIR projection of one 278 request: the ordering
// ServiceRequest plus the preauthorization Claim that carries it.
type PriorAuthBundle struct {
	ServiceRequest fhir_dto.ServiceRequest `json:"serviceRequest"`
	Claim          fhir_dto.Claim          `json:"claim"`
}

// ToFhir projects a canonical 278 request onto a ServiceRequest and a
// preauthorization Claim.
func ToFhir(canonical *models.CanonicalPriorAuth) (*PriorAuthBundle, error) {
	if canonical.TransactionType != constvars.TransactionTypeRequest {
		return nil, exceptions.NewDirectionError(constvars.TransactionTypeRequest, canonical.TransactionType)
	}
	if canonical.Subscriber.MemberID == "" {
		return nil, exceptions.NewMappingError("subscriber.memberId", "cannot build ServiceRequest without a member identifier")
	}
	if canonical.Requester.NPI == "" {
		return nil, exceptions.NewMappingError("requester.npi", "cannot build ServiceRequest without a requester NPI")
	}

	patientRef := fhir_dto.Reference{Reference: "Patient/" + canonical.Subscriber.MemberID}
	requesterRef := fhir_dto.Reference{
		Identifier: &fhir_dto.Identifier{System: "http://hl7.org/fhir/sid/us-npi", Value: canonical.Requester.NPI},
		Display:    requesterDisplay(canonical.Requester),
	}

	serviceRequest := fhir_dto.ServiceRequest{
		ID:           utils.GenerateResourceID("servicerequest", canonical.TraceNumber),
		ResourceType: constvars.ResourceServiceRequest,
		Meta:         fhir_dto.MetaForResource(constvars.ResourceServiceRequest),
		Status:       "active",
		Intent:       "order",
		Priority:     Priority(canonical.Review),
		Subject:      patientRef,
		Requester:    &requesterRef,
		Identifier:   []fhir_dto.Identifier{{Use: "official", Value: canonical.TraceNumber}},
	}
	if canonical.Review.ServiceTypeCode != "" {
		serviceRequest.Code = &fhir_dto.CodeableConcept{
			Coding: []fhir_dto.Coding{{
				System:  serviceTypeCodeSystem,
				Code:    canonical.Review.ServiceTypeCode,
				Display: codetables.Describe(codetables.ServiceType, canonical.Review.ServiceTypeCode),
			}},
		}
	}
	if canonical.ServiceDate != "" {
		serviceRequest.OccurrencePeriod = &fhir_dto.Period{Start: canonical.ServiceDate}
	}
	for _, diag := range canonical.Diagnoses {
		serviceRequest.ReasonCode = append(serviceRequest.ReasonCode, fhir_dto.CodeableConcept{
			Coding: []fhir_dto.Coding{{System: diagnosisCodeSystem, Code: diag.Code}},
		})
	}

	claim := fhir_dto.Claim{
		ID:           utils.GenerateResourceID("priorauth-claim", canonical.TraceNumber),
		ResourceType: constvars.ResourceClaim,
		Meta:         fhir_dto.MetaForResource(constvars.ResourceClaim),
		Status:       "active",
		Use:          "preauthorization",
		Type:         &fhir_dto.CodeableConcept{Coding: []fhir_dto.Coding{{System: claimTypeSystem, Code: claimType(canonical.Review)}}},
		Patient:      patientRef,
		Provider:     requesterRef,
		Priority: &fhir_dto.CodeableConcept{
			Coding: []fhir_dto.Coding{{
				System: "http://terminology.hl7.org/CodeSystem/processpriority",
				Code:   processPriority(canonical.Review),
			}},
		},
		Insurance: []fhir_dto.ClaimInsurance{{
			Sequence: 1,
			Focal:    true,
			Coverage: fhir_dto.Reference{Reference: "Coverage/" + utils.GenerateResourceID("coverage", canonical.Subscriber.MemberID)},
		}},
	}
	for i, diag := range canonical.Diagnoses {
		claim.Diagnosis = append(claim.Diagnosis, fhir_dto.ClaimDiagnosis{
			Sequence: i + 1,
			DiagnosisCodeableConcept: fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{{System: diagnosisCodeSystem, Code: diag.Code}},
			},
		})
	}
	if canonical.Review.ServiceTypeCode != "" {
		claim.Item = []fhir_dto.ClaimItem{{
			Sequence:         1,
			ProductOrService: *serviceRequest.Code,
			ServicedDate:     canonical.ServiceDate,
		}}
	}

	return &PriorAuthBundle{ServiceRequest: serviceRequest, Claim: claim}, nil
}

// claimType: admission reviews are institutional, everything else is
// professional.
func claimType(review models.ReviewInfo) string {
	if review.RequestCategory == "AR" {
		return "institutional"
	}
	return "professional"
}

func processPriority(review models.ReviewInfo) string {
	if Priority(review) == "urgent" {
		return "stat"
	}
	return "normal"
}

// outcome codes keyed by X12 HCR action code, and the reverse.
var statusToOutcome = map[string]string{
	constvars.ReviewApproved: "complete",
	constvars.ReviewModified: "partial",
	constvars.ReviewDenied:   "error",
	constvars.ReviewPended:   "queued",
}

var outcomeToStatus = map[string]string{
	"complete": constvars.ReviewApproved,
	"partial":  constvars.ReviewModified,
	"error":    constvars.ReviewDenied,
	"queued":   constvars.ReviewPended,
}

// ToFhirResponse projects a canonical 278 response onto a ClaimResponse.
func ToFhirResponse(canonical *models.CanonicalPriorAuth) (*fhir_dto.ClaimResponse, error) {
	if canonical.TransactionType != constvars.TransactionTypeResponse {
		return nil, exceptions.NewDirectionError(constvars.TransactionTypeResponse, canonical.TransactionType)
	}
	if canonical.Outcome == nil {
		return nil, exceptions.NewMappingError("outcome.statusCode", "cannot build ClaimResponse without a review decision")
	}

	outcome, ok := statusToOutcome[canonical.Outcome.StatusCode]
	if !ok {
		outcome = "error"
	}

	response := &fhir_dto.ClaimResponse{
		ID:           utils.GenerateResourceID("claimresponse", canonical.TraceNumber),
		ResourceType: constvars.ResourceClaimResponse,
		Meta:         fhir_dto.MetaForResource(constvars.ResourceClaimResponse),
		Status:       "active",
		Use:          "preauthorization",
		Type:         &fhir_dto.CodeableConcept{Coding: []fhir_dto.Coding{{System: claimTypeSystem, Code: claimType(canonical.Review)}}},
		Patient:      fhir_dto.Reference{Reference: "Patient/" + canonical.Subscriber.MemberID},
		Insurer:      fhir_dto.Reference{Display: canonical.UMO.OrgName},
		Outcome:      outcome,
		Disposition:  codetables.Describe(codetables.ReviewDecision, canonical.Outcome.StatusCode),
		PreAuthRef:   canonical.Outcome.AuthorizationNumber,
	}
	if canonical.Outcome.CertificationEffective != "" {
		response.PreAuthPeriod = &fhir_dto.Period{
			Start: canonical.Outcome.CertificationEffective,
			End:   canonical.Outcome.CertificationExpiration,
		}
	}
	if canonical.Outcome.AdditionalInfoRequired {
		required := true
		response.Extension = append(response.Extension, fhir_dto.Extension{
			Url:          additionalInfoExtensionURL,
			ValueBoolean: &required,
			ValueDate:    canonical.Outcome.AdditionalInfoDeadline,
		})
	}
	return response, nil
}

// FromFhirResponse folds a ClaimResponse back onto a review outcome. Queued
// responses pend the request and set the additional-information deadline
// counted from the decision date.
func FromFhirResponse(response *fhir_dto.ClaimResponse) (*models.ReviewOutcome, error) {
	status, ok := outcomeToStatus[response.Outcome]
	if !ok {
		return nil, exceptions.NewMappingError("outcome", "unrecognized ClaimResponse outcome "+response.Outcome)
	}
	outcome := &models.ReviewOutcome{
		StatusCode:          status,
		AuthorizationNumber: response.PreAuthRef,
		ReviewReason:        response.Disposition,
	}
	if status == constvars.ReviewPended {
		outcome.AdditionalInfoRequired = true
		outcome.AdditionalInfoDeadline = additionalInfoDeadline(response.Created)
	}
	if response.PreAuthPeriod != nil {
		outcome.CertificationEffective = response.PreAuthPeriod.Start
		outcome.CertificationExpiration = response.PreAuthPeriod.End
	}
	return outcome, nil
}

func additionalInfoDeadline(created string) string {
	base := nowFunc().UTC()
	if parsed, err := time.Parse("2006-01-02", created); err == nil {
		base = parsed
	}
	return base.AddDate(0, 0, additionalInfoDays).Format("2006-01-02")
}

// Encode278Response renders a canonical review decision as a raw 278
// response, echoing the request's control numbers. Inputs whose transaction
// type is not the response direction are rejected rather than mis-mapped.
func Encode278Response(canonical *models.CanonicalPriorAuth) (string, error) {
	if canonical.TransactionType != constvars.TransactionTypeResponse {
		return "", exceptions.NewDirectionError(constvars.TransactionTypeResponse, canonical.TransactionType)
	}
	if canonical.Outcome == nil {
		return "", exceptions.NewMappingError("outcome.statusCode", "cannot encode 278 response without a review decision")
	}
	if canonical.Subscriber.MemberID == "" {
		return "", exceptions.NewMappingError("subscriber.memberId", "cannot encode 278 response without a member identifier")
	}

	env := canonical.Envelope
	env.TransactionSetID = constvars.TransactionSet278
	env.FunctionalIDCode = "HI"
	if env.ImplementationGuide == "" {
		env.ImplementationGuide = constvars.ImplementationGuide278
	}
	if env.Delimiters.Segment == 0 {
		env.Delimiters = x12.DefaultDelimiters()
	}

	now := nowFunc()
	body := []x12.Segment{
		x12.BuildSegment(constvars.SegmentBHT, "0007", constvars.TransactionTypeResponse,
			canonical.TraceNumber, now.Format("20060102"), now.Format("1504")),
		x12.BuildSegment(constvars.SegmentHL, "1", "", "20", "1"),
		x12.BuildSegment(constvars.SegmentNM1, constvars.EntityUtilizationMgmt, "2", canonical.UMO.OrgName, "", "", "", "", "PI", canonical.UMO.MemberID),
		x12.BuildSegment(constvars.SegmentHL, "2", "1", "21", "1"),
		x12.BuildSegment(constvars.SegmentNM1, constvars.EntityProvider, "2", requesterDisplay(canonical.Requester), "", "", "", "", "XX", canonical.Requester.NPI),
		x12.BuildSegment(constvars.SegmentHL, "3", "2", "22", "0"),
		x12.BuildSegment(constvars.SegmentTRN, "2", canonical.TraceNumber, ""),
		x12.BuildSegment(constvars.SegmentNM1, constvars.EntitySubscriber, "1",
			canonical.Subscriber.LastName, canonical.Subscriber.FirstName, "", "", "",
			constvars.EntityPatientIdentifier, canonical.Subscriber.MemberID),
		x12.BuildSegment(constvars.SegmentUM,
			canonical.Review.RequestCategory, canonical.Review.CertificationType,
			canonical.Review.ServiceTypeCode, "", "", canonical.Review.LevelOfService),
		x12.BuildSegment(constvars.SegmentHCR,
			canonical.Outcome.StatusCode, canonical.Outcome.AuthorizationNumber, canonical.Outcome.ReviewReason),
	}
	if canonical.Outcome.AdditionalInfoDeadline != "" {
		body = append(body, x12.BuildSegment(constvars.SegmentDTP, "106", "D8",
			strings.ReplaceAll(canonical.Outcome.AdditionalInfoDeadline, "-", "")))
	}
	if canonical.ServiceDate != "" {
		body = append(body, x12.BuildSegment(constvars.SegmentDTP, "472", "D8",
			strings.ReplaceAll(canonical.ServiceDate, "-", "")))
	}

	wrapped := x12.WrapTransaction(env, body, now)
	return x12.Encode(wrapped, env.Delimiters), nil
}

func requesterDisplay(party models.Party) string {
	if party.OrgName != "" {
		return party.OrgName
	}
	return party.LastName
}
