package eligibility

import (
	"strings"
	"testing"

	"claimsbridge-service/internal/pkg/exceptions"
	"claimsbridge-service/internal/pkg/x12"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testISA = `ISA*00*          *00*          *ZZ*SUBMITTERID    *ZZ*RECEIVERID     *240101*1200*^*00501*000000001*0*P*:~`

func sample270() string {
	return testISA +
		`GS*HS*SUBMITTERID*RECEIVERID*20240101*1200*1*X*005010X279A1~` +
		`ST*270*0001*005010X279A1~` +
		`BHT*0022*13*TRACE123*20240101*1200~` +
		`HL*1**20*1~` +
		`NM1*PR*2*ACME HEALTH*****PI*PAYER01~` +
		`HL*2*1*21*1~` +
		`NM1*1P*2*GOOD CLINIC*****XX*1234567890~` +
		`HL*3*2*22*0~` +
		`TRN*1*TRACE123*9EMEDNYBAT~` +
		`NM1*IL*1*DOE*JANE****MI*MBR00042~` +
		`DMG*D8*19850615*F~` +
		`DTP*291*D8*20240215~` +
		`SE*12*0001~` +
		`GE*1*1~` +
		`IEA*1*000000001~`
}

func sample270WithDependent() string {
	return testISA +
		`GS*HS*SUBMITTERID*RECEIVERID*20240101*1200*1*X*005010X279A1~` +
		`ST*270*0001*005010X279A1~` +
		`BHT*0022*13*TRACE124*20240101*1200~` +
		`HL*1**20*1~` +
		`NM1*PR*2*ACME HEALTH*****PI*PAYER01~` +
		`HL*2*1*21*1~` +
		`NM1*1P*2*GOOD CLINIC*****XX*1234567890~` +
		`HL*3*2*22*1~` +
		`TRN*1*TRACE124*9EMEDNYBAT~` +
		`NM1*IL*1*DOE*JOHN****MI*MBR00099~` +
		`DMG*D8*19600101*M~` +
		`HL*4*3*23*0~` +
		`NM1*QC*1*DOE*JIMMY~` +
		`DMG*D8*20150320*M~` +
		`EQ*98~` +
		`EQ*88~` +
		`SE*16*0001~` +
		`GE*1*1~` +
		`IEA*1*000000001~`
}

func sample271() string {
	return testISA +
		`GS*HB*RECEIVERID*SUBMITTERID*20240101*1300*1*X*005010X279A1~` +
		`ST*271*0001*005010X279A1~` +
		`BHT*0022*11*TRACE123*20240101*1300~` +
		`HL*1**20*1~` +
		`NM1*PR*2*ACME HEALTH*****PI*PAYER01~` +
		`HL*2*1*21*1~` +
		`NM1*1P*2*GOOD CLINIC*****XX*1234567890~` +
		`HL*3*2*22*0~` +
		`TRN*2*TRACE123*9EMEDNYBAT~` +
		`NM1*IL*1*DOE*JANE****MI*MBR00042~` +
		`DMG*D8*19850615*F~` +
		`EB*1**30**GOLD PPO~` +
		`EB*C**30***23*500~` +
		`SE*13*0001~` +
		`GE*1*1~` +
		`IEA*1*000000001~`
}

func TestDecode270(t *testing.T) {
	t.Run("SubscriberOnlyInquiry", func(t *testing.T) {
		canonical, err := Decode270(sample270())
		require.NoError(t, err)

		assert.Equal(t, "TRACE123", canonical.TraceNumber)
		assert.Equal(t, "MBR00042", canonical.Subscriber.MemberID)
		assert.Equal(t, "DOE", canonical.Subscriber.LastName)
		assert.Equal(t, "JANE", canonical.Subscriber.FirstName)
		assert.Equal(t, "1985-06-15", canonical.Subscriber.BirthDate)
		assert.Equal(t, "F", canonical.Subscriber.Gender)
		assert.Nil(t, canonical.Dependent)
		assert.Equal(t, "1234567890", canonical.Provider.NPI)
		assert.Equal(t, "ACME HEALTH", canonical.Payer.OrgName)
		assert.Equal(t, "2024-02-15", canonical.EligibilityDate)
		assert.Empty(t, canonical.ServiceTypeCodes)
		assert.Equal(t, "000000001", canonical.Envelope.InterchangeControlNumber)
	})

	t.Run("DependentInquiry", func(t *testing.T) {
		canonical, err := Decode270(sample270WithDependent())
		require.NoError(t, err)

		assert.Equal(t, "MBR00099", canonical.Subscriber.MemberID)
		require.NotNil(t, canonical.Dependent)
		assert.Equal(t, "JIMMY", canonical.Dependent.FirstName)
		assert.Equal(t, "2015-03-20", canonical.Dependent.BirthDate)
		assert.Equal(t, []string{"98", "88"}, canonical.ServiceTypeCodes)
	})

	t.Run("WrongTransactionSet", func(t *testing.T) {
		_, err := Decode270(sample271())
		require.Error(t, err)
		var dirErr *exceptions.DirectionError
		require.ErrorAs(t, err, &dirErr)
		assert.Equal(t, "270", dirErr.Expected)
		assert.Equal(t, "271", dirErr.Got)
	})

	t.Run("MissingMemberID", func(t *testing.T) {
		raw := strings.Replace(sample270(), `NM1*IL*1*DOE*JANE****MI*MBR00042~`, `NM1*IL*1*DOE*JANE~`, 1)
		_, err := Decode270(raw)
		require.Error(t, err)
		var mapErr *exceptions.MappingError
		require.ErrorAs(t, err, &mapErr)
		assert.Equal(t, "subscriber.memberId", mapErr.Field)
	})
}

func TestDecode271(t *testing.T) {
	canonical, err := Decode271(sample271())
	require.NoError(t, err)

	require.Len(t, canonical.Benefits, 2)
	assert.Equal(t, "1", canonical.Benefits[0].InfoCode)
	assert.Equal(t, "30", canonical.Benefits[0].ServiceTypeCode)
	assert.Equal(t, "GOLD PPO", canonical.Benefits[0].PlanDescription)
	assert.Equal(t, "C", canonical.Benefits[1].InfoCode)
	assert.Equal(t, 500.0, canonical.Benefits[1].Amount)
}

func TestToFhir(t *testing.T) {
	t.Run("SubscriberDemographicsDefaultItem", func(t *testing.T) {
		canonical, err := Decode270(sample270())
		require.NoError(t, err)

		bundle, err := ToFhir(canonical)
		require.NoError(t, err)

		assert.Equal(t, "MBR00042", bundle.Patient.ID)
		assert.Equal(t, "1985-06-15", bundle.Patient.BirthDate)
		assert.Equal(t, "female", bundle.Patient.Gender)
		require.NotNil(t, bundle.Patient.Meta)
		assert.NotEmpty(t, bundle.Patient.Meta.Profile)

		assert.Equal(t, "MBR00042", bundle.Coverage.SubscriberId)
		assert.Equal(t, "Patient/MBR00042", bundle.Coverage.Beneficiary.Reference)

		require.Len(t, bundle.Request.Item, 1)
		require.NotNil(t, bundle.Request.Item[0].Category)
		assert.Equal(t, "30", bundle.Request.Item[0].Category.Coding[0].Code)
		assert.Equal(t, "Health Benefit Plan Coverage", bundle.Request.Item[0].Category.Coding[0].Display)
		assert.Equal(t, []string{"benefits"}, bundle.Request.Purpose)
	})

	t.Run("DependentDemographicsKeepSubscriberID", func(t *testing.T) {
		canonical, err := Decode270(sample270WithDependent())
		require.NoError(t, err)

		bundle, err := ToFhir(canonical)
		require.NoError(t, err)

		// Patient id stays on the subscriber's member id even when the
		// dependent's demographics populate the resource.
		assert.Equal(t, "MBR00099", bundle.Patient.ID)
		assert.Equal(t, "2015-03-20", bundle.Patient.BirthDate)
		assert.Equal(t, "male", bundle.Patient.Gender)
		require.NotEmpty(t, bundle.Patient.Name)
		assert.Equal(t, []string{"JIMMY"}, bundle.Patient.Name[0].Given)

		require.Len(t, bundle.Request.Item, 2)
		assert.Equal(t, "98", bundle.Request.Item[0].Category.Coding[0].Code)
	})

	t.Run("UnknownGenderCode", func(t *testing.T) {
		canonical, err := Decode270(sample270())
		require.NoError(t, err)
		canonical.Subscriber.Gender = "X"

		bundle, err := ToFhir(canonical)
		require.NoError(t, err)
		assert.Equal(t, "unknown", bundle.Patient.Gender)
	})
}

func TestToFhirResponse(t *testing.T) {
	canonical, err := Decode271(sample271())
	require.NoError(t, err)

	response, err := ToFhirResponse(canonical)
	require.NoError(t, err)

	assert.Equal(t, "complete", response.Outcome)
	require.Len(t, response.Insurance, 1)
	require.NotNil(t, response.Insurance[0].Inforce)
	assert.True(t, *response.Insurance[0].Inforce)
	require.Len(t, response.Insurance[0].Item, 2)
	assert.Equal(t, "Active Coverage", response.Insurance[0].Item[0].Name)
	require.Len(t, response.Insurance[0].Item[1].Benefit, 1)
	assert.Equal(t, 500.0, response.Insurance[0].Item[1].Benefit[0].AllowedMoney.Value)
}

func TestEncode271(t *testing.T) {
	canonical, err := Decode271(sample271())
	require.NoError(t, err)

	raw, err := Encode271(canonical)
	require.NoError(t, err)

	segments, delims, err := x12.Decode(raw)
	require.NoError(t, err)
	env, err := x12.ParseEnvelope(segments, delims)
	require.NoError(t, err)

	// Control numbers echo the inbound interchange.
	assert.Equal(t, "271", env.TransactionSetID)
	assert.Equal(t, "000000001", env.InterchangeControlNumber)
	assert.Equal(t, "1", env.GroupControlNumber)
	assert.Equal(t, "HB", env.FunctionalIDCode)
	assert.Contains(t, raw, "MBR00042")
	assert.Contains(t, raw, "GOLD PPO")

	// BHT02 of a 271 is the response purpose code.
	assert.Contains(t, raw, "BHT*0022*11*TRACE123")

	// The encoded response decodes back through the 271 path.
	decoded, err := Decode271(raw)
	require.NoError(t, err)
	assert.Equal(t, canonical.TraceNumber, decoded.TraceNumber)
	assert.Equal(t, canonical.Subscriber.MemberID, decoded.Subscriber.MemberID)
	assert.Len(t, decoded.Benefits, len(canonical.Benefits))
}
