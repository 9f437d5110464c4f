package claims

import (
	"strconv"
	"strings"

	"claimsbridge-service/internal/app/models"
	"claimsbridge-service/internal/pkg/codetables"
	"claimsbridge-service/internal/pkg/constvars"
	"claimsbridge-service/internal/pkg/exceptions"
	"claimsbridge-service/internal/pkg/fhir_dto"
	"claimsbridge-service/internal/pkg/utils"
	"claimsbridge-service/internal/pkg/x12"
)

const (
	procedureCodeSystem      = "http://www.ama-assn.org/go/cpt"
	diagnosisCodeSystemICD10 = "http://hl7.org/fhir/sid/icd-10-cm"
	placeOfServiceSystem     = "https://www.cms.gov/Medicare/Coding/place-of-service-codes"
)

// Decode837 normalizes a raw 837 professional claim into its canonical
// record. One transaction carries one claim in this system; batched ST loops
// are split upstream.
func Decode837(raw string) (*models.CanonicalClaim, error) {
	segments, delims, err := x12.Decode(raw)
	if err != nil {
		return nil, err
	}
	env, err := x12.ParseEnvelope(segments, delims)
	if err != nil {
		return nil, err
	}
	if env.TransactionSetID != constvars.TransactionSet837 {
		return nil, exceptions.NewDirectionError(constvars.TransactionSet837, env.TransactionSetID)
	}

	canonical := &models.CanonicalClaim{Envelope: env}
	comp := string(delims.Component)

	var currentLine *models.ServiceLine
	flushLine := func() {
		if currentLine != nil {
			canonical.ServiceLines = append(canonical.ServiceLines, *currentLine)
			currentLine = nil
		}
	}

	for i, seg := range segments {
		switch seg.ID {
		case constvars.SegmentNM1:
			party := parseClaimParty(segments, i)
			switch party.EntityCode {
			case constvars.EntitySubscriber:
				canonical.Subscriber = party
			case constvars.EntityDependent:
				patient := party
				canonical.Patient = &patient
			case constvars.EntityOrganization:
				canonical.BillingProvider = party
			case constvars.EntityPayer:
				canonical.Payer = party
			}
		case constvars.SegmentCLM:
			canonical.ClaimID = seg.Element(1)
			canonical.PatientControl = seg.Element(1)
			canonical.TotalCharge = utils.ParseAmount(seg.Element(2))
			if facility := seg.Element(5); facility != "" {
				parts := strings.Split(facility, comp)
				canonical.PlaceOfService = parts[0]
				if len(parts) > 2 {
					canonical.Frequency = parts[2]
				}
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
		case constvars.SegmentLX:
			flushLine()
			num, _ := strconv.Atoi(seg.Element(1))
			currentLine = &models.ServiceLine{LineNumber: num}
		case constvars.SegmentSV1:
			if currentLine == nil {
				currentLine = &models.ServiceLine{LineNumber: len(canonical.ServiceLines) + 1}
			}
			parts := strings.Split(seg.Element(1), comp)
			if len(parts) > 1 {
				currentLine.ProcedureCode = parts[1]
			}
			for _, mod := range parts[2:] {
				if mod != "" {
					currentLine.Modifiers = append(currentLine.Modifiers, mod)
				}
			}
			currentLine.ChargeAmount = utils.ParseAmount(seg.Element(2))
			currentLine.Units = utils.ParseAmount(seg.Element(4))
			currentLine.PlaceOfService = seg.Element(5)
			for _, ptr := range strings.Split(seg.Element(7), comp) {
				if ptr == "" {
					continue
				}
				if n, err := strconv.Atoi(ptr); err == nil {
					currentLine.DiagnosisPointers = append(currentLine.DiagnosisPointers, n)
				}
			}
		case constvars.SegmentDTP:
			switch seg.Element(1) {
			case "434":
				from, to := utils.SplitDateRange(seg.Element(3))
				canonical.StatementFrom = from
				canonical.StatementTo = to
			case "472":
				date := utils.NormalizeDate(seg.Element(3))
				if currentLine != nil {
					currentLine.ServiceDate = date
				}
			}
		}
	}
	flushLine()

	if canonical.ClaimID == "" {
		return nil, exceptions.NewMappingError("claim.id", "837 missing CLM claim-level segment")
	}
	if canonical.Subscriber.MemberID == "" {
		return nil, exceptions.NewMappingError("subscriber.memberId", "837 subscriber loop missing member identifier")
	}
	if len(canonical.ServiceLines) == 0 {
		return nil, exceptions.NewMappingError("claim.serviceLines", "837 carries no SV1 service lines")
	}
	return canonical, nil
}

func parseClaimParty(segments []x12.Segment, anchor int) models.Party {
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

// ToFhir projects the canonical 837 onto a FHIR Claim. Claim.total is
// recomputed as the sum of the submitted line charges, independent of the
// header total the partner supplied.
func ToFhir(canonical *models.CanonicalClaim) (*fhir_dto.Claim, error) {
	if canonical.Subscriber.MemberID == "" {
		return nil, exceptions.NewMappingError("subscriber.memberId", "cannot build Claim without a member identifier")
	}

	claim := &fhir_dto.Claim{
		ID:           utils.GenerateResourceID("claim", canonical.ClaimID),
		ResourceType: constvars.ResourceClaim,
		Meta:         fhir_dto.MetaForResource(constvars.ResourceClaim),
		Status:       "active",
		Use:          "claim",
		Type: &fhir_dto.CodeableConcept{
			Coding: []fhir_dto.Coding{{
				System: "http://terminology.hl7.org/CodeSystem/claim-type",
				Code:   "professional",
			}},
		},
		Patient: fhir_dto.Reference{Reference: "Patient/" + canonical.Subscriber.MemberID},
		Provider: fhir_dto.Reference{
			Identifier: &fhir_dto.Identifier{System: "http://hl7.org/fhir/sid/us-npi", Value: canonical.BillingProvider.NPI},
			Display:    canonical.BillingProvider.OrgName,
		},
		Identifier: []fhir_dto.Identifier{{
			Use:   "official",
			Value: canonical.ClaimID,
		}},
	}
	if canonical.StatementFrom != "" {
		claim.BillablePeriod = &fhir_dto.Period{Start: canonical.StatementFrom, End: canonical.StatementTo}
	}
	if canonical.Payer.OrgName != "" || canonical.Payer.MemberID != "" {
		insurer := payerReference(canonical.Payer)
		claim.Insurer = &insurer
		claim.Insurance = []fhir_dto.ClaimInsurance{{
			Sequence: 1,
			Focal:    true,
			Coverage: fhir_dto.Reference{Reference: "Coverage/" + utils.GenerateResourceID("coverage", canonical.Subscriber.MemberID)},
		}}
	}

	for i, diag := range canonical.Diagnoses {
		claim.Diagnosis = append(claim.Diagnosis, fhir_dto.ClaimDiagnosis{
			Sequence: i + 1,
			DiagnosisCodeableConcept: fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{{System: diagnosisCodeSystemICD10, Code: diag.Code}},
			},
		})
	}

	var total float64
	for i, line := range canonical.ServiceLines {
		item := fhir_dto.ClaimItem{
			Sequence: i + 1,
			ProductOrService: fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{{System: procedureCodeSystem, Code: line.ProcedureCode}},
			},
			ServicedDate: line.ServiceDate,
			Net:          &fhir_dto.Money{Value: line.ChargeAmount, Currency: "USD"},
		}
		for _, mod := range line.Modifiers {
			item.Modifier = append(item.Modifier, fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{{System: procedureCodeSystem, Code: mod}},
			})
		}
		if line.Units > 0 {
			item.Quantity = &fhir_dto.Quantity{Value: line.Units}
		}
		pos := line.PlaceOfService
		if pos == "" {
			pos = canonical.PlaceOfService
		}
		if pos != "" {
			item.LocationCodeableConcept = &fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{{
					System:  placeOfServiceSystem,
					Code:    pos,
					Display: codetables.Describe(codetables.PlaceOfService, pos),
				}},
			}
		}
		// X12 diagnosis pointers become 1-based FHIR diagnosis sequences;
		// pointers outside the diagnosis list are dropped.
		for _, ptr := range line.DiagnosisPointers {
			if ptr >= 1 && ptr <= len(canonical.Diagnoses) {
				item.DiagnosisSequence = append(item.DiagnosisSequence, ptr)
			}
		}
		total += line.ChargeAmount
		claim.Item = append(claim.Item, item)
	}
	claim.Total = &fhir_dto.Money{Value: total, Currency: "USD"}

	return claim, nil
}

func payerReference(payer models.Party) fhir_dto.Reference {
	ref := fhir_dto.Reference{Display: payer.OrgName}
	if payer.MemberID != "" {
		ref.Identifier = &fhir_dto.Identifier{Value: payer.MemberID}
	}
	return ref
}
