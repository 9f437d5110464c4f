package priorauth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleQREInquiry() string {
	return testISA +
		`GS*HI*PROVIDERID*UMOID*20240201*0900*123*X*005010X215~` +
		`ST*278*0001*005010X215~` +
		`BHT*0007*13*TRACE278*20240201*0900~` +
		`HL*1**20*1~` +
		`NM1*X3*2*ACME UMO*****PI*UMO01~` +
		`HL*2*1*21*1~` +
		`NM1*1P*2*GOOD CLINIC*****XX*1234567890~` +
		`HL*3*2*22*0~` +
		`NM1*IL*1*DOE*JANE****MI*MBR00042~` +
		`DMG*D8*19850615*F~` +
		`UM*HS*I*3~` +
		`HCR*I1~` +
		`SE*12*0001~` +
		`GE*1*123~` +
		`IEA*1*000000123~`
}

func findingCodes(report QREReport) []string {
	codes := make([]string, 0, len(report.Findings))
	for _, f := range report.Findings {
		codes = append(codes, f.Code)
	}
	return codes
}

func TestAnalyzeQRE(t *testing.T) {
	t.Run("WellFormedDemographicsInquiry", func(t *testing.T) {
		report := AnalyzeQRE(sampleQREInquiry(), DefaultQREConfig())

		assert.True(t, report.Valid)
		assert.Zero(t, report.ErrorCount)
		assert.Equal(t, QueryByMemberDemographics, report.QueryMethod)
		assert.Contains(t, findingCodes(report), "QRE006")
		assert.Contains(t, report.SegmentsFound, "UM")
	})

	t.Run("AuthorizationNumberWinsOverDemographics", func(t *testing.T) {
		raw := strings.Replace(sampleQREInquiry(), `UM*HS*I*3~`, `UM*HS*I*3~REF*D9*AUTH0001~`, 1)
		report := AnalyzeQRE(raw, DefaultQREConfig())

		assert.Equal(t, QueryByAuthorizationNumber, report.QueryMethod)
		assert.Contains(t, findingCodes(report), "QRE005")
	})

	t.Run("UnknownQueryMethod", func(t *testing.T) {
		raw := strings.Replace(sampleQREInquiry(), `DMG*D8*19850615*F~`, "", 1)
		report := AnalyzeQRE(raw, DefaultQREConfig())

		assert.Equal(t, QueryMethodUnknown, report.QueryMethod)
		assert.Contains(t, findingCodes(report), "QRE007")
		assert.True(t, report.Valid, "query method is a warning, not an error")
		assert.Positive(t, report.WarningCount)
	})

	t.Run("MissingEnvelopes", func(t *testing.T) {
		report := AnalyzeQRE(`ST*278*0001*005010X215~BHT*0007*13*T1*20240201*0900~SE*3*0001~`, DefaultQREConfig())

		assert.False(t, report.Valid)
		codes := findingCodes(report)
		assert.Contains(t, codes, "ENV001")
		assert.Contains(t, codes, "ENV003")
	})

	t.Run("WrongTransactionCode", func(t *testing.T) {
		raw := strings.Replace(sampleQREInquiry(), `ST*278*0001*005010X215~`, `ST*270*0001*005010X279A1~`, 1)
		report := AnalyzeQRE(raw, DefaultQREConfig())

		assert.False(t, report.Valid)
		codes := findingCodes(report)
		assert.Contains(t, codes, "ENV005")
		assert.Contains(t, codes, "ENV006")
	})

	t.Run("WrongHierarchyCodeWarns", func(t *testing.T) {
		raw := strings.Replace(sampleQREInquiry(), `BHT*0007*13*TRACE278*20240201*0900~`, `BHT*0022*13*TRACE278*20240201*0900~`, 1)
		report := AnalyzeQRE(raw, DefaultQREConfig())

		assert.True(t, report.Valid)
		assert.Contains(t, findingCodes(report), "QRE002")
	})

	t.Run("MissingUMRecommended", func(t *testing.T) {
		raw := strings.Replace(sampleQREInquiry(), `UM*HS*I*3~`, "", 1)
		report := AnalyzeQRE(raw, DefaultQREConfig())

		assert.Contains(t, findingCodes(report), "QRE003")
	})

	t.Run("NonStandardActionCodeIsInfo", func(t *testing.T) {
		raw := strings.Replace(sampleQREInquiry(), `HCR*I1~`, `HCR*XX~`, 1)
		report := AnalyzeQRE(raw, DefaultQREConfig())

		assert.Contains(t, findingCodes(report), "QRE004")
		assert.True(t, report.Valid)
	})

	t.Run("FailOnWarnings", func(t *testing.T) {
		cfg := DefaultQREConfig()
		cfg.FailOnWarnings = true

		raw := strings.Replace(sampleQREInquiry(), `DMG*D8*19850615*F~`, "", 1)
		report := AnalyzeQRE(raw, cfg)
		assert.False(t, report.Valid)
	})

	t.Run("MissingRequiredSegments", func(t *testing.T) {
		report := AnalyzeQRE(`ISA*00~GS*HI~ST*278*0001*005010X215~`, DefaultQREConfig())

		assert.False(t, report.Valid)
		var qre001 int
		for _, f := range report.Findings {
			if f.Code == "QRE001" {
				qre001++
			}
		}
		assert.Equal(t, 4, qre001) // BHT, HL, NM1 and SE are absent
	})
}
