package remittance

import (
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
	adjudicationSystem  = "http://terminology.hl7.org/CodeSystem/adjudication"
	adjustmentSystem    = "https://x12.org/codes/claim-adjustment-reason-codes"
	procedureCodeSystem = "http://www.ama-assn.org/go/cpt"
)

// Decode835 normalizes a raw 835 remittance advice into its canonical record:
// one payment header plus one entry per CLP claim payment loop.
func Decode835(raw string) (*models.CanonicalRemittance, error) {
	segments, delims, err := x12.Decode(raw)
	if err != nil {
		return nil, err
	}
	env, err := x12.ParseEnvelope(segments, delims)
	if err != nil {
		return nil, err
	}
	if env.TransactionSetID != constvars.TransactionSet835 {
		return nil, exceptions.NewDirectionError(constvars.TransactionSet835, env.TransactionSetID)
	}

	canonical := &models.CanonicalRemittance{Envelope: env}
	comp := string(delims.Component)

	var claim *models.RemitClaim
	var line *models.RemitServiceLine
	flushLine := func() {
		if claim != nil && line != nil {
			claim.ServiceLines = append(claim.ServiceLines, *line)
		}
		line = nil
	}
	flushClaim := func() {
		flushLine()
		if claim != nil {
			canonical.Claims = append(canonical.Claims, *claim)
		}
		claim = nil
	}

	for _, seg := range segments {
		switch seg.ID {
		case constvars.SegmentBPR:
			canonical.PaymentAmount = utils.ParseAmount(seg.Element(2))
			canonical.PaymentMethod = seg.Element(4)
			canonical.PaymentDate = utils.NormalizeDate(seg.Element(16))
		case constvars.SegmentTRN:
			canonical.CheckNumber = seg.Element(2)
		case constvars.SegmentN1:
			switch seg.Element(1) {
			case constvars.EntityPayer:
				canonical.Payer = models.Party{EntityCode: seg.Element(1), OrgName: seg.Element(2)}
			case "PE":
				canonical.Payee = models.Party{
					EntityCode:  seg.Element(1),
					OrgName:     seg.Element(2),
					IDQualifier: seg.Element(3),
					NPI:         seg.Element(4),
				}
			}
		case constvars.SegmentCLP:
			flushClaim()
			claim = &models.RemitClaim{
				ClaimID:         seg.Element(1),
				StatusCode:      seg.Element(2),
				ChargedAmount:   utils.ParseAmount(seg.Element(3)),
				PaidAmount:      utils.ParseAmount(seg.Element(4)),
				PatientAmount:   utils.ParseAmount(seg.Element(5)),
				PayerControlNum: seg.Element(7),
			}
		case constvars.SegmentNM1:
			if claim != nil && seg.Element(1) == constvars.EntityDependent {
				claim.Patient = models.Party{
					EntityCode: seg.Element(1),
					LastName:   seg.Element(3),
					FirstName:  seg.Element(4),
					MemberID:   seg.Element(9),
				}
			}
		case constvars.SegmentAMT:
			if claim != nil && seg.Element(1) == "AU" {
				claim.AllowedAmount = utils.ParseAmount(seg.Element(2))
			}
		case constvars.SegmentSVC:
			if claim == nil {
				continue
			}
			flushLine()
			parts := strings.Split(seg.Element(1), comp)
			line = &models.RemitServiceLine{
				ChargedAmount: utils.ParseAmount(seg.Element(2)),
				PaidAmount:    utils.ParseAmount(seg.Element(3)),
				Units:         utils.ParseAmount(seg.Element(5)),
			}
			if len(parts) > 1 {
				line.ProcedureCode = parts[1]
			}
		case constvars.SegmentDTP:
			if line != nil && seg.Element(1) == "472" {
				line.ServiceDate = utils.NormalizeDate(seg.Element(3))
			}
		case constvars.SegmentCAS:
			if claim == nil {
				continue
			}
			adjustments := parseAdjustments(seg)
			if line != nil {
				line.Adjustments = append(line.Adjustments, adjustments...)
			} else {
				claim.Adjustments = append(claim.Adjustments, adjustments...)
			}
		}
	}
	flushClaim()

	if len(canonical.Claims) == 0 {
		return nil, exceptions.NewMappingError("remittance.claims", "835 carries no CLP claim payment loops")
	}
	return canonical, nil
}

// parseAdjustments reads a CAS segment; the group code applies to every
// reason/amount pair that follows (CAS repeats in triplets after CAS02/03).
func parseAdjustments(seg x12.Segment) []models.Adjustment {
	group := seg.Element(1)
	var adjustments []models.Adjustment
	for i := 2; seg.Element(i) != ""; i += 3 {
		adjustments = append(adjustments, models.Adjustment{
			GroupCode:  group,
			ReasonCode: seg.Element(i),
			Amount:     utils.ParseAmount(seg.Element(i + 1)),
		})
	}
	return adjustments
}

// ToFhir fans the remittance out into one ExplanationOfBenefit per claim
// payment loop, never one per file.
func ToFhir(canonical *models.CanonicalRemittance) ([]fhir_dto.ExplanationOfBenefit, error) {
	if len(canonical.Claims) == 0 {
		return nil, exceptions.NewMappingError("remittance.claims", "cannot build ExplanationOfBenefit without claim payment loops")
	}

	eobs := make([]fhir_dto.ExplanationOfBenefit, 0, len(canonical.Claims))
	for _, claim := range canonical.Claims {
		eob := fhir_dto.ExplanationOfBenefit{
			ID:           utils.GenerateResourceID("eob", claim.ClaimID),
			ResourceType: constvars.ResourceExplanationOfBenefit,
			Meta:         fhir_dto.MetaForResource(constvars.ResourceExplanationOfBenefit),
			Status:       "active",
			Use:          "claim",
			Outcome:      "complete",
			Insurer:      fhir_dto.Reference{Display: canonical.Payer.OrgName},
			Provider: fhir_dto.Reference{
				Identifier: &fhir_dto.Identifier{System: "http://hl7.org/fhir/sid/us-npi", Value: canonical.Payee.NPI},
				Display:    canonical.Payee.OrgName,
			},
			Claim: &fhir_dto.Reference{
				Identifier: &fhir_dto.Identifier{Value: claim.ClaimID},
			},
			Identifier: []fhir_dto.Identifier{{Use: "official", Value: claim.ClaimID}},
			Total: []fhir_dto.EOBTotal{
				{Category: adjudicationCategory("submitted"), Amount: fhir_dto.Money{Value: claim.ChargedAmount, Currency: "USD"}},
				{Category: adjudicationCategory("benefit"), Amount: fhir_dto.Money{Value: claim.PaidAmount, Currency: "USD"}},
			},
			Payment: &fhir_dto.EOBPayment{
				Amount: &fhir_dto.Money{Value: claim.PaidAmount, Currency: "USD"},
				Date:   canonical.PaymentDate,
			},
		}
		if claim.Patient.MemberID != "" {
			eob.Patient = fhir_dto.Reference{Reference: "Patient/" + claim.Patient.MemberID}
		}

		for i, svcLine := range claim.ServiceLines {
			item := fhir_dto.EOBItem{
				Sequence: i + 1,
				ProductOrService: fhir_dto.CodeableConcept{
					Coding: []fhir_dto.Coding{{System: procedureCodeSystem, Code: svcLine.ProcedureCode}},
				},
				ServicedDate: svcLine.ServiceDate,
				Adjudication: lineAdjudication(svcLine),
			}
			eob.Item = append(eob.Item, item)
		}
		// Claim-level adjustments land on the first line; a remittance with no
		// SVC detail still yields one item carrying the claim amounts.
		if len(claim.Adjustments) > 0 || len(eob.Item) == 0 {
			if len(eob.Item) == 0 {
				eob.Item = append(eob.Item, fhir_dto.EOBItem{
					Sequence:     1,
					Adjudication: amountAdjudication(claim.ChargedAmount, claim.PaidAmount, claim.AllowedAmount),
				})
			}
			for _, adj := range claim.Adjustments {
				eob.Item[0].Adjudication = append(eob.Item[0].Adjudication, adjustmentAdjudication(adj))
			}
		}
		eobs = append(eobs, eob)
	}
	return eobs, nil
}

// lineAdjudication builds the adjudication array for one payment line:
// submitted always, benefit/eligible when present, one entry per adjustment.
func lineAdjudication(line models.RemitServiceLine) []fhir_dto.Adjudication {
	adjudication := amountAdjudication(line.ChargedAmount, line.PaidAmount, 0)
	for _, adj := range line.Adjustments {
		adjudication = append(adjudication, adjustmentAdjudication(adj))
	}
	return adjudication
}

func amountAdjudication(charged, paid, allowed float64) []fhir_dto.Adjudication {
	adjudication := []fhir_dto.Adjudication{{
		Category: adjudicationCategory("submitted"),
		Amount:   &fhir_dto.Money{Value: charged, Currency: "USD"},
	}}
	if paid > 0 {
		adjudication = append(adjudication, fhir_dto.Adjudication{
			Category: adjudicationCategory("benefit"),
			Amount:   &fhir_dto.Money{Value: paid, Currency: "USD"},
		})
	}
	if allowed > 0 {
		adjudication = append(adjudication, fhir_dto.Adjudication{
			Category: adjudicationCategory("eligible"),
			Amount:   &fhir_dto.Money{Value: allowed, Currency: "USD"},
		})
	}
	return adjudication
}

// adjustmentAdjudication maps a CAS entry onto an adjudication category: CO
// becomes contractual, PR splits on the reason code (1 deductible,
// 2 coinsurance, 3 copay), everything else is a generic adjustment.
func adjustmentAdjudication(adj models.Adjustment) fhir_dto.Adjudication {
	category := "adjustment"
	switch adj.GroupCode {
	case "CO":
		category = "contractual"
	case "PR":
		switch adj.ReasonCode {
		case "1":
			category = "deductible"
		case "2":
			category = "coinsurance"
		case "3":
			category = "copay"
		}
	}
	return fhir_dto.Adjudication{
		Category: adjudicationCategory(category),
		Reason: &fhir_dto.CodeableConcept{
			Coding: []fhir_dto.Coding{{
				System:  adjustmentSystem,
				Code:    adj.ReasonCode,
				Display: codetables.Describe(codetables.AdjustmentReason, adj.ReasonCode),
			}},
		},
		Amount: &fhir_dto.Money{Value: adj.Amount, Currency: "USD"},
	}
}

func adjudicationCategory(code string) fhir_dto.CodeableConcept {
	return fhir_dto.CodeableConcept{
		Coding: []fhir_dto.Coding{{System: adjudicationSystem, Code: code}},
	}
}
