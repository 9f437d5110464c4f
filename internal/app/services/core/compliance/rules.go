package compliance

import "claimsbridge-service/internal/pkg/fhir_dto"

// Rule lists are ordered and closed; each predicate checks one element.
// Required-element rules carry error severity, recommended-but-absent rules
// carry warning severity.

func patientRules(res fhir_dto.Patient) []rule {
	return []rule{
		{"PATIENT_ID_MISSING", SeverityError, "id", "Patient has no id", func() bool { return res.ID != "" }},
		{"PATIENT_IDENTIFIER_MISSING", SeverityError, "identifier", "Patient has no member identifier", func() bool { return len(res.Identifier) > 0 }},
		{"PATIENT_NAME_MISSING", SeverityError, "name", "Patient has no name", func() bool { return len(res.Name) > 0 }},
		{"PATIENT_GENDER_MISSING", SeverityWarning, "gender", "Patient has no administrative gender", func() bool { return res.Gender != "" }},
		{"PATIENT_BIRTHDATE_MISSING", SeverityWarning, "birthDate", "Patient has no birth date", func() bool { return res.BirthDate != "" }},
	}
}

func coverageRules(res fhir_dto.Coverage) []rule {
	return []rule{
		{"COVERAGE_STATUS_MISSING", SeverityError, "status", "Coverage has no status", func() bool { return res.Status != "" }},
		{"COVERAGE_BENEFICIARY_MISSING", SeverityError, "beneficiary", "Coverage has no beneficiary reference", func() bool { return res.Beneficiary.Reference != "" }},
		{"COVERAGE_PAYOR_MISSING", SeverityError, "payor", "Coverage has no payor", func() bool { return len(res.Payor) > 0 }},
		{"COVERAGE_SUBSCRIBER_ID_MISSING", SeverityWarning, "subscriberId", "Coverage has no subscriber id", func() bool { return res.SubscriberId != "" }},
	}
}

func eligibilityRequestRules(res fhir_dto.CoverageEligibilityRequest) []rule {
	return []rule{
		{"ELIGREQ_STATUS_MISSING", SeverityError, "status", "CoverageEligibilityRequest has no status", func() bool { return res.Status != "" }},
		{"ELIGREQ_PURPOSE_MISSING", SeverityError, "purpose", "CoverageEligibilityRequest has no purpose", func() bool { return len(res.Purpose) > 0 }},
		{"ELIGREQ_PATIENT_MISSING", SeverityError, "patient", "CoverageEligibilityRequest has no patient reference", func() bool { return res.Patient.Reference != "" }},
		{"ELIGREQ_INSURER_MISSING", SeverityError, "insurer", "CoverageEligibilityRequest has no insurer", func() bool { return res.Insurer.Reference != "" || res.Insurer.Display != "" || res.Insurer.Identifier != nil }},
		{"ELIGREQ_ITEM_MISSING", SeverityWarning, "item", "CoverageEligibilityRequest lists no benefit categories", func() bool { return len(res.Item) > 0 }},
		{"ELIGREQ_INSURANCE_MISSING", SeverityWarning, "insurance", "CoverageEligibilityRequest has no insurance reference", func() bool { return len(res.Insurance) > 0 }},
	}
}

func eligibilityResponseRules(res fhir_dto.CoverageEligibilityResponse) []rule {
	return []rule{
		{"ELIGRES_STATUS_MISSING", SeverityError, "status", "CoverageEligibilityResponse has no status", func() bool { return res.Status != "" }},
		{"ELIGRES_PURPOSE_MISSING", SeverityError, "purpose", "CoverageEligibilityResponse has no purpose", func() bool { return len(res.Purpose) > 0 }},
		{"ELIGRES_PATIENT_MISSING", SeverityError, "patient", "CoverageEligibilityResponse has no patient reference", func() bool { return res.Patient.Reference != "" }},
		{"ELIGRES_OUTCOME_MISSING", SeverityError, "outcome", "CoverageEligibilityResponse has no outcome", func() bool { return res.Outcome != "" }},
		{"ELIGRES_INSURANCE_MISSING", SeverityWarning, "insurance", "CoverageEligibilityResponse carries no insurance detail", func() bool { return len(res.Insurance) > 0 }},
	}
}

func claimRules(res fhir_dto.Claim) []rule {
	return []rule{
		{"CLAIM_STATUS_MISSING", SeverityError, "status", "Claim has no status", func() bool { return res.Status != "" }},
		{"CLAIM_TYPE_MISSING", SeverityError, "type", "Claim has no type", func() bool { return res.Type != nil && len(res.Type.Coding) > 0 }},
		{"CLAIM_USE_MISSING", SeverityError, "use", "Claim has no use", func() bool { return res.Use != "" }},
		{"CLAIM_PATIENT_MISSING", SeverityError, "patient", "Claim has no patient reference", func() bool { return res.Patient.Reference != "" }},
		{"CLAIM_PROVIDER_MISSING", SeverityError, "provider", "Claim has no provider", func() bool { return res.Provider.Reference != "" || res.Provider.Identifier != nil }},
		{"CLAIM_ITEM_MISSING", SeverityError, "item", "Claim has no service items", func() bool { return len(res.Item) > 0 }},
		{"CLAIM_DIAGNOSIS_MISSING", SeverityWarning, "diagnosis", "Claim carries no diagnosis", func() bool { return len(res.Diagnosis) > 0 }},
		{"CLAIM_INSURANCE_MISSING", SeverityWarning, "insurance", "Claim has no insurance reference", func() bool { return len(res.Insurance) > 0 }},
		{"CLAIM_TOTAL_MISSING", SeverityWarning, "total", "Claim has no total", func() bool { return res.Total != nil }},
	}
}

func claimResponseRules(res fhir_dto.ClaimResponse) []rule {
	return []rule{
		{"CLAIMRES_STATUS_MISSING", SeverityError, "status", "ClaimResponse has no status", func() bool { return res.Status != "" }},
		{"CLAIMRES_USE_MISSING", SeverityError, "use", "ClaimResponse has no use", func() bool { return res.Use != "" }},
		{"CLAIMRES_PATIENT_MISSING", SeverityError, "patient", "ClaimResponse has no patient reference", func() bool { return res.Patient.Reference != "" }},
		{"CLAIMRES_OUTCOME_MISSING", SeverityError, "outcome", "ClaimResponse has no outcome", func() bool { return res.Outcome != "" }},
		{"CLAIMRES_INSURER_MISSING", SeverityError, "insurer", "ClaimResponse has no insurer", func() bool { return res.Insurer.Reference != "" || res.Insurer.Display != "" || res.Insurer.Identifier != nil }},
		{"CLAIMRES_PREAUTH_REF_MISSING", SeverityWarning, "preAuthRef", "preauthorization ClaimResponse has no authorization number", func() bool { return res.Use != "preauthorization" || res.Outcome != "complete" || res.PreAuthRef != "" }},
		{"CLAIMRES_DISPOSITION_MISSING", SeverityWarning, "disposition", "ClaimResponse has no disposition", func() bool { return res.Disposition != "" }},
	}
}

func serviceRequestRules(res fhir_dto.ServiceRequest) []rule {
	return []rule{
		{"SR_STATUS_MISSING", SeverityError, "status", "ServiceRequest has no status", func() bool { return res.Status != "" }},
		{"SR_INTENT_MISSING", SeverityError, "intent", "ServiceRequest has no intent", func() bool { return res.Intent != "" }},
		{"SR_CODE_MISSING", SeverityError, "code", "ServiceRequest has no service code", func() bool { return res.Code != nil && len(res.Code.Coding) > 0 }},
		{"SR_SUBJECT_MISSING", SeverityError, "subject", "ServiceRequest has no subject", func() bool { return res.Subject.Reference != "" }},
		{"SR_REQUESTER_MISSING", SeverityError, "requester", "ServiceRequest has no requester", func() bool { return res.Requester != nil && (res.Requester.Reference != "" || res.Requester.Identifier != nil) }},
		{"SR_INSURANCE_MISSING", SeverityWarning, "insurance", "ServiceRequest has no insurance reference", func() bool { return len(res.Insurance) > 0 }},
		{"SR_OCCURRENCE_MISSING", SeverityWarning, "occurrencePeriod", "ServiceRequest has no occurrence period", func() bool { return res.OccurrencePeriod != nil }},
	}
}

func explanationOfBenefitRules(res fhir_dto.ExplanationOfBenefit) []rule {
	return []rule{
		{"EOB_STATUS_MISSING", SeverityError, "status", "ExplanationOfBenefit has no status", func() bool { return res.Status != "" }},
		{"EOB_USE_MISSING", SeverityError, "use", "ExplanationOfBenefit has no use", func() bool { return res.Use != "" }},
		{"EOB_PATIENT_MISSING", SeverityError, "patient", "ExplanationOfBenefit has no patient reference", func() bool { return res.Patient.Reference != "" }},
		{"EOB_INSURER_MISSING", SeverityError, "insurer", "ExplanationOfBenefit has no insurer", func() bool { return res.Insurer.Reference != "" || res.Insurer.Display != "" }},
		{"EOB_PROVIDER_MISSING", SeverityError, "provider", "ExplanationOfBenefit has no provider", func() bool { return res.Provider.Reference != "" || res.Provider.Identifier != nil }},
		{"EOB_OUTCOME_MISSING", SeverityError, "outcome", "ExplanationOfBenefit has no outcome", func() bool { return res.Outcome != "" }},
		{"EOB_ITEM_MISSING", SeverityWarning, "item", "ExplanationOfBenefit carries no adjudicated items", func() bool { return len(res.Item) > 0 }},
		{"EOB_TOTAL_MISSING", SeverityWarning, "total", "ExplanationOfBenefit carries no totals", func() bool { return len(res.Total) > 0 }},
	}
}
