package eligibility

import (
	"claimsbridge-service/internal/app/models"
	"claimsbridge-service/internal/pkg/codetables"
	"claimsbridge-service/internal/pkg/constvars"
	"claimsbridge-service/internal/pkg/exceptions"
	"claimsbridge-service/internal/pkg/fhir_dto"
	"claimsbridge-service/internal/pkg/utils"
	"claimsbridge-service/internal/pkg/x12"
	"time"
)

// nowFunc stamps outgoing envelopes; swapped in tests.
var nowFunc = time.Now

const serviceTypeCodeSystem = "https://x12.org/codes/service-type-codes"

// DefaultServiceTypeCode is assumed when a 270 carries no EQ segments:
// benefit plan coverage as a whole.
const DefaultServiceTypeCode = "30"

// Decode270 normalizes a raw 270 eligibility inquiry into its canonical
// record.
func Decode270(raw string) (*models.CanonicalEligibility, error) {
	segments, delims, err := x12.Decode(raw)
	if err != nil {
		return nil, err
	}
	env, err := x12.ParseEnvelope(segments, delims)
	if err != nil {
		return nil, err
	}
	if env.TransactionSetID != constvars.TransactionSet270 {
		return nil, exceptions.NewDirectionError(constvars.TransactionSet270, env.TransactionSetID)
	}

	canonical := &models.CanonicalEligibility{Envelope: env}
	decodeEligibilityLoops(segments, canonical)

	if canonical.Subscriber.MemberID == "" {
		return nil, exceptions.NewMappingError("subscriber.memberId", "270 subscriber loop missing member identifier")
	}
	return canonical, nil
}

// Decode271 normalizes a raw 271 eligibility response, including its EB
// benefit information entries.
func Decode271(raw string) (*models.CanonicalEligibility, error) {
	segments, delims, err := x12.Decode(raw)
	if err != nil {
		return nil, err
	}
	env, err := x12.ParseEnvelope(segments, delims)
	if err != nil {
		return nil, err
	}
	if env.TransactionSetID != constvars.TransactionSet271 {
		return nil, exceptions.NewDirectionError(constvars.TransactionSet271, env.TransactionSetID)
	}

	canonical := &models.CanonicalEligibility{Envelope: env}
	decodeEligibilityLoops(segments, canonical)

	for _, seg := range segments {
		if seg.ID != constvars.SegmentEB {
			continue
		}
		canonical.Benefits = append(canonical.Benefits, models.BenefitInfo{
			InfoCode:        seg.Element(1),
			CoverageLevel:   seg.Element(2),
			ServiceTypeCode: seg.Element(3),
			PlanDescription: seg.Element(5),
			TimePeriod:      seg.Element(6),
			Amount:          utils.ParseAmount(seg.Element(7)),
			InNetwork:       seg.Element(12) == "Y",
		})
	}

	if canonical.Subscriber.MemberID == "" {
		return nil, exceptions.NewMappingError("subscriber.memberId", "271 subscriber loop missing member identifier")
	}
	return canonical, nil
}

// decodeEligibilityLoops walks the HL hierarchy and fills the canonical
// parties. Demographics are associated with the nearest preceding NM1 within
// the bounded lookahead window, not with a full loop grammar.
func decodeEligibilityLoops(segments []x12.Segment, canonical *models.CanonicalEligibility) {
	for i, seg := range segments {
		switch seg.ID {
		case constvars.SegmentTRN:
			canonical.TraceNumber = seg.Element(2)
		case constvars.SegmentNM1:
			party := parseParty(segments, i)
			switch party.EntityCode {
			case constvars.EntitySubscriber:
				canonical.Subscriber = party
			case constvars.EntityDependent:
				dependent := party
				canonical.Dependent = &dependent
			case constvars.EntityPayer:
				canonical.Payer = party
			case constvars.EntityProvider, constvars.EntityOrganization:
				canonical.Provider = party
			}
		case constvars.SegmentDTP:
			if seg.Element(1) == "291" {
				canonical.EligibilityDate = utils.NormalizeDate(seg.Element(3))
			}
		case constvars.SegmentEQ:
			if code := seg.Element(1); code != "" {
				canonical.ServiceTypeCodes = append(canonical.ServiceTypeCodes, code)
			}
		}
	}
}

// parseParty reads one NM1 segment plus the DMG demographics of the same
// loop, found within the fixed forward window.
func parseParty(segments []x12.Segment, anchor int) models.Party {
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

// EligibilityBundle is the FHIR projection of one eligibility inquiry.
type EligibilityBundle struct {
	Patient  fhir_dto.Patient                    `json:"patient"`
	Coverage fhir_dto.Coverage                   `json:"coverage"`
	Request  fhir_dto.CoverageEligibilityRequest `json:"request"`
}

// ToFhir projects the canonical 270 onto Patient + Coverage +
// CoverageEligibilityRequest. When a dependent loop is present the
// dependent's demographics populate the Patient while the subscriber's member
// id remains the Patient id and identifier.
func ToFhir(canonical *models.CanonicalEligibility) (*EligibilityBundle, error) {
	if canonical.Subscriber.MemberID == "" {
		return nil, exceptions.NewMappingError("subscriber.memberId", "cannot build Patient without a member identifier")
	}

	demographics := canonical.Subscriber
	if canonical.Dependent != nil {
		demographics = *canonical.Dependent
	}

	patient := fhir_dto.Patient{
		ID:           canonical.Subscriber.MemberID,
		ResourceType: constvars.ResourcePatient,
		Meta:         fhir_dto.MetaForResource(constvars.ResourcePatient),
		Active:       true,
		Gender:       codetables.Describe(codetables.Gender, demographics.Gender),
		BirthDate:    demographics.BirthDate,
		Name: []fhir_dto.HumanName{{
			Family: demographics.LastName,
			Given:  givenNames(demographics),
		}},
		Identifier: []fhir_dto.Identifier{{
			Use:   "official",
			Value: canonical.Subscriber.MemberID,
		}},
	}
	if !codetables.Known(codetables.Gender, demographics.Gender) {
		patient.Gender = "unknown"
	}

	coverage := fhir_dto.Coverage{
		ID:           utils.GenerateResourceID("coverage", canonical.Subscriber.MemberID),
		ResourceType: constvars.ResourceCoverage,
		Meta:         fhir_dto.MetaForResource(constvars.ResourceCoverage),
		Status:       "active",
		SubscriberId: canonical.Subscriber.MemberID,
		Beneficiary:  fhir_dto.Reference{Reference: "Patient/" + patient.ID},
		Payor:        []fhir_dto.Reference{payerReference(canonical.Payer)},
	}

	request := fhir_dto.CoverageEligibilityRequest{
		ID:           utils.GenerateResourceID("eligibility", canonical.TraceNumber),
		ResourceType: constvars.ResourceCoverageEligibilityRequest,
		Meta:         fhir_dto.MetaForResource(constvars.ResourceCoverageEligibilityRequest),
		Status:       "active",
		Purpose:      []string{"benefits"},
		Patient:      fhir_dto.Reference{Reference: "Patient/" + patient.ID},
		Created:      canonical.EligibilityDate,
		Insurer:      payerReference(canonical.Payer),
		ServicedDate: canonical.EligibilityDate,
		Insurance: []fhir_dto.EligibilityRequestInsurance{{
			Focal:    true,
			Coverage: fhir_dto.Reference{Reference: "Coverage/" + coverage.ID},
		}},
		Item: eligibilityItems(canonical.ServiceTypeCodes),
	}
	if canonical.Provider.NPI != "" {
		request.Provider = &fhir_dto.Reference{
			Identifier: &fhir_dto.Identifier{System: "http://hl7.org/fhir/sid/us-npi", Value: canonical.Provider.NPI},
			Display:    providerDisplay(canonical.Provider),
		}
	}

	return &EligibilityBundle{Patient: patient, Coverage: coverage, Request: request}, nil
}

// eligibilityItems maps EQ service type codes onto request items, defaulting
// to plan-level coverage when the inquiry listed none.
func eligibilityItems(codes []string) []fhir_dto.CoverageEligibilityRequestItem {
	if len(codes) == 0 {
		codes = []string{DefaultServiceTypeCode}
	}
	items := make([]fhir_dto.CoverageEligibilityRequestItem, 0, len(codes))
	for _, code := range codes {
		items = append(items, fhir_dto.CoverageEligibilityRequestItem{
			Category: &fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{{
					System:  serviceTypeCodeSystem,
					Code:    code,
					Display: codetables.Describe(codetables.ServiceType, code),
				}},
			},
		})
	}
	return items
}

// ToFhirResponse projects a canonical 271 onto a CoverageEligibilityResponse.
func ToFhirResponse(canonical *models.CanonicalEligibility) (*fhir_dto.CoverageEligibilityResponse, error) {
	if canonical.Subscriber.MemberID == "" {
		return nil, exceptions.NewMappingError("subscriber.memberId", "cannot build response without a member identifier")
	}

	inforce := hasActiveCoverage(canonical.Benefits)
	insurance := fhir_dto.CoverageEligibilityResponseInsurance{
		Coverage: fhir_dto.Reference{Reference: "Coverage/" + utils.GenerateResourceID("coverage", canonical.Subscriber.MemberID)},
		Inforce:  &inforce,
	}
	for _, benefit := range canonical.Benefits {
		item := fhir_dto.CoverageEligibilityResponseItem{
			Name:        codetables.Describe(codetables.EligibilityInfo, benefit.InfoCode),
			Description: benefit.PlanDescription,
		}
		if benefit.ServiceTypeCode != "" {
			item.Category = &fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{{
					System:  serviceTypeCodeSystem,
					Code:    benefit.ServiceTypeCode,
					Display: codetables.Describe(codetables.ServiceType, benefit.ServiceTypeCode),
				}},
			}
		}
		if benefit.InfoCode == "I" || benefit.InfoCode == "6" {
			excluded := true
			item.Excluded = &excluded
		}
		if benefit.Amount != 0 {
			item.Benefit = []fhir_dto.EligibilityBenefit{{
				Type:         fhir_dto.CodeableConcept{Text: codetables.Describe(codetables.EligibilityInfo, benefit.InfoCode)},
				AllowedMoney: &fhir_dto.Money{Value: benefit.Amount, Currency: "USD"},
			}}
		}
		insurance.Item = append(insurance.Item, item)
	}

	response := &fhir_dto.CoverageEligibilityResponse{
		ID:           utils.GenerateResourceID("eligibility-response", canonical.TraceNumber),
		ResourceType: constvars.ResourceCoverageEligibilityResponse,
		Meta:         fhir_dto.MetaForResource(constvars.ResourceCoverageEligibilityResponse),
		Status:       "active",
		Purpose:      []string{"benefits"},
		Patient:      fhir_dto.Reference{Reference: "Patient/" + canonical.Subscriber.MemberID},
		Created:      canonical.EligibilityDate,
		Outcome:      "complete",
		Insurer:      payerReference(canonical.Payer),
		Insurance:    []fhir_dto.CoverageEligibilityResponseInsurance{insurance},
	}
	return response, nil
}

// Encode271 renders a canonical eligibility record (with benefit entries) as
// a raw 271, echoing the request's control numbers.
func Encode271(canonical *models.CanonicalEligibility) (string, error) {
	if canonical.Subscriber.MemberID == "" {
		return "", exceptions.NewMappingError("subscriber.memberId", "cannot encode 271 without a member identifier")
	}

	env := canonical.Envelope
	env.TransactionSetID = constvars.TransactionSet271
	env.FunctionalIDCode = "HB"
	if env.ImplementationGuide == "" {
		env.ImplementationGuide = constvars.ImplementationGuide270
	}
	if env.Delimiters.Segment == 0 {
		env.Delimiters = x12.DefaultDelimiters()
	}

	body := []x12.Segment{
		x12.BuildSegment(constvars.SegmentBHT, "0022", constvars.PurposeResponse, canonical.TraceNumber, "", ""),
		x12.BuildSegment(constvars.SegmentHL, "1", "", "20", "1"),
		x12.BuildSegment(constvars.SegmentNM1, constvars.EntityPayer, "2", canonical.Payer.OrgName, "", "", "", "", "PI", canonical.Payer.MemberID),
		x12.BuildSegment(constvars.SegmentHL, "2", "1", "21", "1"),
		x12.BuildSegment(constvars.SegmentNM1, constvars.EntityProvider, "2", canonical.Provider.OrgName, "", "", "", "", "XX", canonical.Provider.NPI),
		x12.BuildSegment(constvars.SegmentHL, "3", "2", "22", "0"),
		x12.BuildSegment(constvars.SegmentTRN, "2", canonical.TraceNumber, ""),
		x12.BuildSegment(constvars.SegmentNM1, constvars.EntitySubscriber, "1",
			canonical.Subscriber.LastName, canonical.Subscriber.FirstName, "", "", "",
			constvars.EntityPatientIdentifier, canonical.Subscriber.MemberID),
	}
	for _, benefit := range canonical.Benefits {
		eb := x12.BuildSegment(constvars.SegmentEB,
			benefit.InfoCode, benefit.CoverageLevel, benefit.ServiceTypeCode, "",
			benefit.PlanDescription, benefit.TimePeriod)
		if benefit.Amount != 0 {
			eb.Elements = append(eb.Elements, utils.FormatAmount(benefit.Amount))
		}
		body = append(body, eb)
	}

	wrapped := x12.WrapTransaction(env, body, nowFunc())
	return x12.Encode(wrapped, env.Delimiters), nil
}

func hasActiveCoverage(benefits []models.BenefitInfo) bool {
	for _, benefit := range benefits {
		if benefit.InfoCode == "1" {
			return true
		}
	}
	return false
}

func givenNames(party models.Party) []string {
	var given []string
	if party.FirstName != "" {
		given = append(given, party.FirstName)
	}
	if party.MiddleName != "" {
		given = append(given, party.MiddleName)
	}
	return given
}

func payerReference(payer models.Party) fhir_dto.Reference {
	ref := fhir_dto.Reference{Display: payer.OrgName}
	if payer.MemberID != "" {
		ref.Identifier = &fhir_dto.Identifier{Value: payer.MemberID}
	}
	return ref
}

func providerDisplay(provider models.Party) string {
	if provider.OrgName != "" {
		return provider.OrgName
	}
	return provider.LastName
}
