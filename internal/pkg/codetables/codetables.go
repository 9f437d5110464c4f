// Package codetables holds the closed X12 code dictionaries shared by every
// transaction mapper. Lookups never fail: unknown codes fall back to
// "<TableName> <code>" because trading partners routinely send payer-specific
// extension codes.
package codetables

import "fmt"

type Table string

const (
	ServiceType       Table = "Service Type"
	EligibilityInfo   Table = "Eligibility Information"
	Gender            Table = "Gender"
	PlaceOfService    Table = "Place of Service"
	AdjustmentGroup   Table = "Adjustment Group"
	AdjustmentReason  Table = "Adjustment Reason"
	LevelOfService    Table = "Level of Service"
	ReviewDecision    Table = "Review Decision"
	RequestCategory   Table = "Request Category"
	CertificationType Table = "Certification Type"
)

// serviceTypeCodes: X12 EQ01 / EB03 service type codes (subset in active use;
// the fallback covers the rest).
var serviceTypeCodes = map[string]string{
	"1":  "Medical Care",
	"2":  "Surgical",
	"4":  "Diagnostic X-Ray",
	"5":  "Diagnostic Lab",
	"6":  "Radiation Therapy",
	"12": "Durable Medical Equipment Purchase",
	"13": "Ambulatory Service Center Facility",
	"30": "Health Benefit Plan Coverage",
	"33": "Chiropractic",
	"35": "Dental Care",
	"47": "Hospital",
	"48": "Hospital - Inpatient",
	"50": "Hospital - Outpatient",
	"86": "Emergency Services",
	"88": "Pharmacy",
	"98": "Professional (Physician) Visit - Office",
	"AL": "Vision (Optometry)",
	"MH": "Mental Health",
	"UC": "Urgent Care",
}

// eligibilityInfoCodes: X12 EB01 eligibility/benefit information codes.
var eligibilityInfoCodes = map[string]string{
	"1": "Active Coverage",
	"2": "Active - Full Risk Capitation",
	"3": "Active - Services Capitated",
	"4": "Active - Services Capitated to Primary Care Physician",
	"5": "Active - Pending Investigation",
	"6": "Inactive",
	"7": "Inactive - Pending Eligibility Update",
	"8": "Inactive - Pending Investigation",
	"A": "Co-Insurance",
	"B": "Co-Payment",
	"C": "Deductible",
	"D": "Benefit Description",
	"F": "Limitations",
	"G": "Out of Pocket (Stop Loss)",
	"I": "Non-Covered",
	"N": "Services Restricted to Following Provider",
	"R": "Other or Additional Payor",
}

// genderCodes: X12 DMG03 → FHIR administrative-gender.
var genderCodes = map[string]string{
	"M": "male",
	"F": "female",
	"U": "unknown",
}

// placeOfServiceCodes: CMS place of service (CLM05-1 / SV105).
var placeOfServiceCodes = map[string]string{
	"11": "Office",
	"12": "Home",
	"21": "Inpatient Hospital",
	"22": "On Campus - Outpatient Hospital",
	"23": "Emergency Room - Hospital",
	"24": "Ambulatory Surgical Center",
	"31": "Skilled Nursing Facility",
	"41": "Ambulance - Land",
	"49": "Independent Clinic",
	"81": "Independent Laboratory",
}

// adjustmentGroupCodes: CAS01 claim adjustment group codes.
var adjustmentGroupCodes = map[string]string{
	"CO": "Contractual Obligations",
	"CR": "Correction and Reversals",
	"OA": "Other Adjustments",
	"PI": "Payor Initiated Reductions",
	"PR": "Patient Responsibility",
}

// adjustmentReasonCodes: CARC claim adjustment reason codes (subset).
var adjustmentReasonCodes = map[string]string{
	"1":   "Deductible Amount",
	"2":   "Coinsurance Amount",
	"3":   "Co-payment Amount",
	"45":  "Charge exceeds fee schedule/maximum allowable",
	"96":  "Non-covered charge(s)",
	"97":  "Benefit included in payment/allowance for another service",
	"119": "Benefit maximum for this time period has been reached",
	"204": "Service not covered under the patient's current benefit plan",
}

// levelOfServiceCodes: UM06 level of service codes.
var levelOfServiceCodes = map[string]string{
	"U": "Urgent",
	"E": "Elective",
	"1": "Emergency",
	"2": "Urgent",
	"3": "Elective",
}

// reviewDecisionCodes: HCR01 health care services review decision codes.
var reviewDecisionCodes = map[string]string{
	"A1": "Certified in total",
	"A2": "Certified - partial",
	"A3": "Not certified",
	"A4": "Pended",
	"A6": "Modified",
	"C":  "Cancelled",
	"I1": "Inquiry",
}

// requestCategoryCodes: UM01 request category codes.
var requestCategoryCodes = map[string]string{
	"HS": "Health Services Review",
	"SC": "Specialty Care Review",
	"AR": "Admission Review",
}

// certificationTypeCodes: UM02 certification type codes.
var certificationTypeCodes = map[string]string{
	"I": "Initial",
	"R": "Renewal",
	"S": "Revised",
	"4": "Extension",
}

var tables = map[Table]map[string]string{
	ServiceType:       serviceTypeCodes,
	EligibilityInfo:   eligibilityInfoCodes,
	Gender:            genderCodes,
	PlaceOfService:    placeOfServiceCodes,
	AdjustmentGroup:   adjustmentGroupCodes,
	AdjustmentReason:  adjustmentReasonCodes,
	LevelOfService:    levelOfServiceCodes,
	ReviewDecision:    reviewDecisionCodes,
	RequestCategory:   requestCategoryCodes,
	CertificationType: certificationTypeCodes,
}

// Describe resolves a code against a table. Unknown codes (and unknown
// tables) return the deterministic fallback "<TableName> <code>" so a lookup
// can never fail mid-transaction.
func Describe(table Table, code string) string {
	if entries, ok := tables[table]; ok {
		if desc, ok := entries[code]; ok {
			return desc
		}
	}
	return fmt.Sprintf("%s %s", table, code)
}

// Known reports whether a code is part of the closed table. Mappers use it to
// distinguish standard codes from payer-specific extensions.
func Known(table Table, code string) bool {
	entries, ok := tables[table]
	if !ok {
		return false
	}
	_, ok = entries[code]
	return ok
}
