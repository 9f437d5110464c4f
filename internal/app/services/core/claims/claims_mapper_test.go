package claims

import (
	"strings"
	"testing"

	"claimsbridge-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testISA = `ISA*00*          *00*          *ZZ*SUBMITTERID    *ZZ*RECEIVERID     *240110*1200*^*00501*000000042*0*P*:~`

func sample837() string {
	return testISA +
		`GS*HC*SUBMITTERID*RECEIVERID*20240110*1200*42*X*005010X222A1~` +
		`ST*837*0001*005010X222A1~` +
		`BHT*0019*00*REF837*20240110*1200*CH~` +
		`NM1*85*2*GOOD CLINIC*****XX*1234567890~` +
		`NM1*IL*1*DOE*JANE****MI*MBR00042~` +
		`DMG*D8*19850615*F~` +
		`NM1*PR*2*ACME HEALTH*****PI*PAYER01~` +
		`CLM*PCN1001****11:B:1~` +
		`DTP*434*RD8*20240105-20240106~` +
		`HI*ABK:J10*ABF:R05~` +
		`LX*1~` +
		`SV1*HC:99213:25*300*UN*1*11**1:2~` +
		`DTP*472*D8*20240105~` +
		`LX*2~` +
		`SV1*HC:87070*150*UN*1***2~` +
		`DTP*472*D8*20240105~` +
		`SE*16*0001~` +
		`GE*1*42~` +
		`IEA*1*000000042~`
}

func TestDecode837(t *testing.T) {
	t.Run("TwoLineProfessionalClaim", func(t *testing.T) {
		canonical, err := Decode837(sample837())
		require.NoError(t, err)

		assert.Equal(t, "PCN1001", canonical.ClaimID)
		assert.Equal(t, "MBR00042", canonical.Subscriber.MemberID)
		assert.Equal(t, "1234567890", canonical.BillingProvider.NPI)
		assert.Equal(t, "ACME HEALTH", canonical.Payer.OrgName)
		assert.Equal(t, "11", canonical.PlaceOfService)
		assert.Equal(t, "1", canonical.Frequency)
		assert.Equal(t, "2024-01-05", canonical.StatementFrom)
		assert.Equal(t, "2024-01-06", canonical.StatementTo)

		require.Len(t, canonical.Diagnoses, 2)
		assert.Equal(t, "ABK", canonical.Diagnoses[0].Qualifier)
		assert.Equal(t, "J10", canonical.Diagnoses[0].Code)
		assert.Equal(t, "R05", canonical.Diagnoses[1].Code)

		require.Len(t, canonical.ServiceLines, 2)
		first := canonical.ServiceLines[0]
		assert.Equal(t, 1, first.LineNumber)
		assert.Equal(t, "99213", first.ProcedureCode)
		assert.Equal(t, []string{"25"}, first.Modifiers)
		assert.Equal(t, 300.0, first.ChargeAmount)
		assert.Equal(t, "11", first.PlaceOfService)
		assert.Equal(t, []int{1, 2}, first.DiagnosisPointers)
		assert.Equal(t, "2024-01-05", first.ServiceDate)

		second := canonical.ServiceLines[1]
		assert.Equal(t, "87070", second.ProcedureCode)
		assert.Empty(t, second.Modifiers)
		assert.Equal(t, []int{2}, second.DiagnosisPointers)
	})

	t.Run("WrongTransactionSet", func(t *testing.T) {
		raw := strings.Replace(sample837(), `ST*837*0001*005010X222A1~`, `ST*835*0001*005010X221A1~`, 1)
		_, err := Decode837(raw)
		var dirErr *exceptions.DirectionError
		require.ErrorAs(t, err, &dirErr)
		assert.Equal(t, "837", dirErr.Expected)
	})

	t.Run("MissingServiceLines", func(t *testing.T) {
		raw := sample837()
		for _, seg := range []string{
			`LX*1~`, `SV1*HC:99213:25*300*UN*1*11**1:2~`,
			`LX*2~`, `SV1*HC:87070*150*UN*1***2~`,
		} {
			raw = strings.Replace(raw, seg, "", 1)
		}
		_, err := Decode837(raw)
		var mapErr *exceptions.MappingError
		require.ErrorAs(t, err, &mapErr)
		assert.Equal(t, "claim.serviceLines", mapErr.Field)
	})

	t.Run("MissingMemberID", func(t *testing.T) {
		raw := strings.Replace(sample837(), `NM1*IL*1*DOE*JANE****MI*MBR00042~`, `NM1*IL*1*DOE*JANE~`, 1)
		_, err := Decode837(raw)
		var mapErr *exceptions.MappingError
		require.ErrorAs(t, err, &mapErr)
		assert.Equal(t, "subscriber.memberId", mapErr.Field)
	})
}

func TestToFhir(t *testing.T) {
	t.Run("TotalRecomputedFromLines", func(t *testing.T) {
		canonical, err := Decode837(sample837())
		require.NoError(t, err)

		claim, err := ToFhir(canonical)
		require.NoError(t, err)

		// Header total is absent in the input; total is the sum of lines.
		require.NotNil(t, claim.Total)
		assert.Equal(t, 450.0, claim.Total.Value)

		require.Len(t, claim.Item, 2)
		assert.Equal(t, 1, claim.Item[0].Sequence)
		assert.Equal(t, 2, claim.Item[1].Sequence)
		assert.Equal(t, "99213", claim.Item[0].ProductOrService.Coding[0].Code)
		assert.Equal(t, []int{1, 2}, claim.Item[0].DiagnosisSequence)
		assert.Equal(t, []int{2}, claim.Item[1].DiagnosisSequence)
		assert.Equal(t, 300.0, claim.Item[0].Net.Value)

		require.Len(t, claim.Diagnosis, 2)
		assert.Equal(t, 1, claim.Diagnosis[0].Sequence)
		assert.Equal(t, "J10", claim.Diagnosis[0].DiagnosisCodeableConcept.Coding[0].Code)

		require.NotNil(t, claim.Meta)
		assert.NotEmpty(t, claim.Meta.Profile)
		assert.Equal(t, "Patient/MBR00042", claim.Patient.Reference)
		require.NotNil(t, claim.BillablePeriod)
		assert.Equal(t, "2024-01-05", claim.BillablePeriod.Start)
	})

	t.Run("HeaderTotalIgnored", func(t *testing.T) {
		raw := strings.Replace(sample837(), `CLM*PCN1001****11:B:1~`, `CLM*PCN1001*9999***11:B:1~`, 1)
		canonical, err := Decode837(raw)
		require.NoError(t, err)

		claim, err := ToFhir(canonical)
		require.NoError(t, err)
		assert.Equal(t, 450.0, claim.Total.Value)
	})

	t.Run("OutOfRangePointerDropped", func(t *testing.T) {
		canonical, err := Decode837(sample837())
		require.NoError(t, err)
		canonical.ServiceLines[1].DiagnosisPointers = []int{9}

		claim, err := ToFhir(canonical)
		require.NoError(t, err)
		assert.Empty(t, claim.Item[1].DiagnosisSequence)
	})
}
