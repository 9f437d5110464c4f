package constvars

// X12 005010 transaction set identifiers.
const (
	TransactionSet270 = "270"
	TransactionSet271 = "271"
	TransactionSet276 = "276"
	TransactionSet277 = "277"
	TransactionSet278 = "278"
	TransactionSet835 = "835"
	TransactionSet837 = "837"
)

// Envelope segment tags.
const (
	SegmentISA = "ISA"
	SegmentGS  = "GS"
	SegmentST  = "ST"
	SegmentSE  = "SE"
	SegmentGE  = "GE"
	SegmentIEA = "IEA"
	SegmentBHT = "BHT"
	SegmentHL  = "HL"
	SegmentNM1 = "NM1"
	SegmentN1  = "N1"
	SegmentDMG = "DMG"
	SegmentDTP = "DTP"
	SegmentEQ  = "EQ"
	SegmentEB  = "EB"
	SegmentREF = "REF"
	SegmentTRN = "TRN"
	SegmentUM  = "UM"
	SegmentHCR = "HCR"
	SegmentHI  = "HI"
	SegmentCLM = "CLM"
	SegmentLX  = "LX"
	SegmentCLP = "CLP"
	SegmentCAS = "CAS"
	SegmentSV1 = "SV1"
	SegmentSV2 = "SV2"
	SegmentSVC = "SVC"
	SegmentBPR = "BPR"
	SegmentAMT = "AMT"
	SegmentPRV = "PRV"
)

// NM1 entity identifier codes.
const (
	EntitySubscriber        = "IL"
	EntityDependent         = "QC"
	EntityPayer             = "PR"
	EntityProvider          = "1P"
	EntityOrganization      = "85" // billing provider
	EntityUtilizationMgmt   = "X3"
	EntityServiceProvider   = "SJ"
	EntityFacility          = "FA"
	EntityPatientIdentifier = "MI" // NM108 member id qualifier
)

// 278 transaction type codes (BHT06).
const (
	TransactionTypeRequest  = "11"
	TransactionTypeResponse = "13"
)

// 270/271 transaction set purpose codes (BHT02).
const (
	PurposeInquiry  = "13"
	PurposeResponse = "11"
)

// 278 HCR action codes.
const (
	ReviewApproved = "A1"
	ReviewModified = "A2"
	ReviewDenied   = "A3"
	ReviewPended   = "A4"
	ReviewInquiry  = "I1"
)

// Default delimiters used when encoding responses for partners that did not
// supply an interchange of their own.
const (
	DefaultElementSeparator   = "*"
	DefaultSegmentTerminator  = "~"
	DefaultComponentSeparator = ":"
	DefaultRepetitionSep      = "^"
)

const (
	ImplementationGuide270 = "005010X279A1"
	ImplementationGuide278 = "005010X217"
	ImplementationGuideQre = "005010X215"
	ImplementationGuide835 = "005010X221A1"
	ImplementationGuide837 = "005010X222A1"
)
