package constvars

const (
	ResourcePatient                     = "Patient"
	ResourceCoverage                    = "Coverage"
	ResourceCoverageEligibilityRequest  = "CoverageEligibilityRequest"
	ResourceCoverageEligibilityResponse = "CoverageEligibilityResponse"
	ResourceClaim                       = "Claim"
	ResourceClaimResponse               = "ClaimResponse"
	ResourceServiceRequest              = "ServiceRequest"
	ResourceExplanationOfBenefit        = "ExplanationOfBenefit"
)

// Da Vinci / US Core profile URLs referenced by CMS-0057-F.
const (
	ProfileUSCorePatient      = "http://hl7.org/fhir/us/core/StructureDefinition/us-core-patient"
	ProfileHRexCoverage       = "http://hl7.org/fhir/us/davinci-hrex/StructureDefinition/hrex-coverage"
	ProfilePASClaim           = "http://hl7.org/fhir/us/davinci-pas/StructureDefinition/profile-claim"
	ProfilePASClaimResponse   = "http://hl7.org/fhir/us/davinci-pas/StructureDefinition/profile-claimresponse"
	ProfilePASServiceRequest  = "http://hl7.org/fhir/us/davinci-pas/StructureDefinition/profile-servicerequest"
	ProfileC4BBEOB            = "http://hl7.org/fhir/us/carin-bb/StructureDefinition/C4BB-ExplanationOfBenefit"
	ProfilePDexPriorAuth      = "http://hl7.org/fhir/us/davinci-pdex/StructureDefinition/pdex-priorauthorization"
	ProfileBaseEligibilityReq = "http://hl7.org/fhir/StructureDefinition/CoverageEligibilityRequest"
	ProfileBaseEligibilityRes = "http://hl7.org/fhir/StructureDefinition/CoverageEligibilityResponse"
)

// ResourceProfiles is the static resource-type-keyed profile table stamped
// into meta.profile by every mapper. Not inferred at runtime.
var ResourceProfiles = map[string][]string{
	ResourcePatient:                     {ProfileUSCorePatient},
	ResourceCoverage:                    {ProfileHRexCoverage},
	ResourceClaim:                       {ProfilePASClaim},
	ResourceClaimResponse:               {ProfilePASClaimResponse},
	ResourceServiceRequest:              {ProfilePASServiceRequest},
	ResourceExplanationOfBenefit:        {ProfileC4BBEOB, ProfilePDexPriorAuth},
	ResourceCoverageEligibilityRequest:  {ProfileBaseEligibilityReq},
	ResourceCoverageEligibilityResponse: {ProfileBaseEligibilityRes},
}

// MandatedProfileResources lists the resource types whose profile declaration
// is required by the implementation guides. A missing declaration is an error
// for these types and a warning for everything else.
var MandatedProfileResources = map[string]bool{
	ResourcePatient:              true,
	ResourceClaim:                true,
	ResourceClaimResponse:        true,
	ResourceServiceRequest:       true,
	ResourceExplanationOfBenefit: true,
	ResourceCoverage:             true,
}

// ResourceUSCDIClasses maps resource types to the USCDI data classes they
// surface, used in batch compliance reporting.
var ResourceUSCDIClasses = map[string][]string{
	ResourcePatient:                     {"Patient Demographics"},
	ResourceCoverage:                    {"Health Insurance Information"},
	ResourceCoverageEligibilityRequest:  {"Health Insurance Information"},
	ResourceCoverageEligibilityResponse: {"Health Insurance Information"},
	ResourceClaim:                       {"Health Insurance Information", "Procedures"},
	ResourceClaimResponse:               {"Health Insurance Information"},
	ResourceServiceRequest:              {"Orders"},
	ResourceExplanationOfBenefit:        {"Health Insurance Information", "Explanation of Benefit"},
}
