package remittance

import (
	"strings"
	"testing"

	"claimsbridge-service/internal/pkg/exceptions"
	"claimsbridge-service/internal/pkg/fhir_dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testISA = `ISA*00*          *00*          *ZZ*PAYERID        *ZZ*PROVIDERID     *240120*0900*^*00501*000000077*0*P*:~`

func sample835() string {
	return testISA +
		`GS*HP*PAYERID*PROVIDERID*20240120*0900*77*X*005010X221A1~` +
		`ST*835*0001~` +
		`BPR*I*250*C*ACH*CCP***********20240120~` +
		`TRN*1*CHK100234*1PAYER~` +
		`N1*PR*ACME HEALTH~` +
		`N1*PE*GOOD CLINIC*XX*1234567890~` +
		`CLP*PCN1001*1*300*250*25*12*PAYERICN77~` +
		`NM1*QC*1*DOE*JANE****MI*MBR00042~` +
		`AMT*AU*275~` +
		`SVC*HC:99213*300*250~` +
		`DTP*472*D8*20240105~` +
		`CAS*CO*45*25~` +
		`SE*12*0001~` +
		`GE*1*77~` +
		`IEA*1*000000077~`
}

func TestDecode835(t *testing.T) {
	t.Run("SingleClaimPayment", func(t *testing.T) {
		canonical, err := Decode835(sample835())
		require.NoError(t, err)

		assert.Equal(t, 250.0, canonical.PaymentAmount)
		assert.Equal(t, "ACH", canonical.PaymentMethod)
		assert.Equal(t, "2024-01-20", canonical.PaymentDate)
		assert.Equal(t, "CHK100234", canonical.CheckNumber)
		assert.Equal(t, "ACME HEALTH", canonical.Payer.OrgName)
		assert.Equal(t, "1234567890", canonical.Payee.NPI)

		require.Len(t, canonical.Claims, 1)
		claim := canonical.Claims[0]
		assert.Equal(t, "PCN1001", claim.ClaimID)
		assert.Equal(t, "1", claim.StatusCode)
		assert.Equal(t, 300.0, claim.ChargedAmount)
		assert.Equal(t, 250.0, claim.PaidAmount)
		assert.Equal(t, 25.0, claim.PatientAmount)
		assert.Equal(t, "PAYERICN77", claim.PayerControlNum)
		assert.Equal(t, 275.0, claim.AllowedAmount)
		assert.Equal(t, "MBR00042", claim.Patient.MemberID)

		require.Len(t, claim.ServiceLines, 1)
		line := claim.ServiceLines[0]
		assert.Equal(t, "99213", line.ProcedureCode)
		assert.Equal(t, "2024-01-05", line.ServiceDate)
		require.Len(t, line.Adjustments, 1)
		assert.Equal(t, "CO", line.Adjustments[0].GroupCode)
		assert.Equal(t, "45", line.Adjustments[0].ReasonCode)
		assert.Equal(t, 25.0, line.Adjustments[0].Amount)
	})

	t.Run("RepeatedCASTriplets", func(t *testing.T) {
		raw := strings.Replace(sample835(), `CAS*CO*45*25~`, `CAS*PR*1*10**2*15~`, 1)
		canonical, err := Decode835(raw)
		require.NoError(t, err)

		adjustments := canonical.Claims[0].ServiceLines[0].Adjustments
		require.Len(t, adjustments, 2)
		assert.Equal(t, "1", adjustments[0].ReasonCode)
		assert.Equal(t, 10.0, adjustments[0].Amount)
		assert.Equal(t, "2", adjustments[1].ReasonCode)
		assert.Equal(t, 15.0, adjustments[1].Amount)
	})

	t.Run("WrongTransactionSet", func(t *testing.T) {
		raw := strings.Replace(sample835(), `ST*835*0001~`, `ST*837*0001~`, 1)
		_, err := Decode835(raw)
		var dirErr *exceptions.DirectionError
		require.ErrorAs(t, err, &dirErr)
		assert.Equal(t, "835", dirErr.Expected)
	})

	t.Run("NoClaimLoops", func(t *testing.T) {
		raw := sample835()
		for _, seg := range []string{
			`CLP*PCN1001*1*300*250*25*12*PAYERICN77~`,
			`NM1*QC*1*DOE*JANE****MI*MBR00042~`,
			`AMT*AU*275~`,
			`SVC*HC:99213*300*250~`,
			`DTP*472*D8*20240105~`,
			`CAS*CO*45*25~`,
		} {
			raw = strings.Replace(raw, seg, "", 1)
		}
		_, err := Decode835(raw)
		var mapErr *exceptions.MappingError
		require.ErrorAs(t, err, &mapErr)
		assert.Equal(t, "remittance.claims", mapErr.Field)
	})
}

func TestToFhir(t *testing.T) {
	t.Run("OneEOBPerClaimWithContractualAdjustment", func(t *testing.T) {
		canonical, err := Decode835(sample835())
		require.NoError(t, err)

		eobs, err := ToFhir(canonical)
		require.NoError(t, err)
		require.Len(t, eobs, 1)

		eob := eobs[0]
		assert.Equal(t, "Patient/MBR00042", eob.Patient.Reference)
		require.NotNil(t, eob.Meta)
		assert.NotEmpty(t, eob.Meta.Profile)
		require.NotNil(t, eob.Payment)
		assert.Equal(t, 250.0, eob.Payment.Amount.Value)

		require.Len(t, eob.Item, 1)
		adjudication := eob.Item[0].Adjudication
		assert.Equal(t, "submitted", adjudication[0].Category.Coding[0].Code)
		assert.Equal(t, 300.0, adjudication[0].Amount.Value)

		contractual := findAdjudication(adjudication, "contractual")
		require.NotNil(t, contractual)
		assert.Equal(t, 25.0, contractual.Amount.Value)
		assert.Equal(t, "45", contractual.Reason.Coding[0].Code)
	})

	t.Run("TwoClaimsTwoEOBs", func(t *testing.T) {
		raw := strings.Replace(sample835(),
			`SE*12*0001~`,
			`CLP*PCN1002*1*100*80*20*12*PAYERICN78~`+
				`NM1*QC*1*ROE*RICHARD****MI*MBR00077~`+
				`SE*14*0001~`, 1)
		canonical, err := Decode835(raw)
		require.NoError(t, err)
		require.Len(t, canonical.Claims, 2)

		eobs, err := ToFhir(canonical)
		require.NoError(t, err)
		require.Len(t, eobs, 2)
		assert.Equal(t, "Patient/MBR00077", eobs[1].Patient.Reference)
	})

	t.Run("PatientResponsibilityCategories", func(t *testing.T) {
		raw := strings.Replace(sample835(), `CAS*CO*45*25~`, `CAS*PR*1*10**2*8**3*7~`, 1)
		canonical, err := Decode835(raw)
		require.NoError(t, err)

		eobs, err := ToFhir(canonical)
		require.NoError(t, err)
		adjudication := eobs[0].Item[0].Adjudication

		for category, amount := range map[string]float64{
			"deductible":  10.0,
			"coinsurance": 8.0,
			"copay":       7.0,
		} {
			entry := findAdjudication(adjudication, category)
			require.NotNil(t, entry, category)
			assert.Equal(t, amount, entry.Amount.Value)
		}
	})

	t.Run("ClaimLevelAdjustmentWithoutLines", func(t *testing.T) {
		raw := sample835()
		for _, seg := range []string{`SVC*HC:99213*300*250~`, `DTP*472*D8*20240105~`} {
			raw = strings.Replace(raw, seg, "", 1)
		}
		canonical, err := Decode835(raw)
		require.NoError(t, err)
		require.Len(t, canonical.Claims[0].Adjustments, 1)

		eobs, err := ToFhir(canonical)
		require.NoError(t, err)
		require.Len(t, eobs[0].Item, 1)

		contractual := findAdjudication(eobs[0].Item[0].Adjudication, "contractual")
		require.NotNil(t, contractual)
		assert.Equal(t, 25.0, contractual.Amount.Value)
		eligible := findAdjudication(eobs[0].Item[0].Adjudication, "eligible")
		require.NotNil(t, eligible)
		assert.Equal(t, 275.0, eligible.Amount.Value)
	})
}

func findAdjudication(entries []fhir_dto.Adjudication, category string) *fhir_dto.Adjudication {
	for i := range entries {
		if entries[i].Category.Coding[0].Code == category {
			return &entries[i]
		}
	}
	return nil
}
