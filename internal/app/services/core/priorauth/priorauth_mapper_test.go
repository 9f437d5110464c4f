package priorauth

import (
	"strings"
	"testing"
	"time"

	"claimsbridge-service/internal/app/models"
	"claimsbridge-service/internal/pkg/constvars"
	"claimsbridge-service/internal/pkg/exceptions"
	"claimsbridge-service/internal/pkg/fhir_dto"
	"claimsbridge-service/internal/pkg/sla"
	"claimsbridge-service/internal/pkg/x12"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testISA = `ISA*00*          *00*          *ZZ*PROVIDERID     *ZZ*UMOID          *240201*0900*^*00501*000000123*0*P*:~`

func sample278Request() string {
	return testISA +
		`GS*HI*PROVIDERID*UMOID*20240201*0900*123*X*005010X217~` +
		`ST*278*0001*005010X217~` +
		`BHT*0007*11*TRACE278*20240201*0900~` +
		`HL*1**20*1~` +
		`NM1*X3*2*ACME UMO*****PI*UMO01~` +
		`HL*2*1*21*1~` +
		`NM1*1P*2*GOOD CLINIC*****XX*1234567890~` +
		`HL*3*2*22*0~` +
		`TRN*1*TRACE278*9EMEDNYBAT~` +
		`NM1*IL*1*DOE*JANE****MI*MBR00042~` +
		`DMG*D8*19850615*F~` +
		`UM*HS*I*3***U~` +
		`DTP*472*D8*20240210~` +
		`HI*ABK:J10~` +
		`SE*14*0001~` +
		`GE*1*123~` +
		`IEA*1*000000123~`
}

func sample278Response() string {
	raw := strings.Replace(sample278Request(),
		`BHT*0007*11*TRACE278*20240201*0900~`,
		`BHT*0007*13*TRACE278*20240202*1500~`, 1)
	return strings.Replace(raw,
		`HI*ABK:J10~`,
		`HI*ABK:J10~HCR*A1*AUTH0001~`, 1)
}

func TestDecode278Request(t *testing.T) {
	t.Run("UrgentOfficeVisitReview", func(t *testing.T) {
		canonical, err := Decode278Request(sample278Request())
		require.NoError(t, err)

		assert.Equal(t, "11", canonical.TransactionType)
		assert.Equal(t, "TRACE278", canonical.TraceNumber)
		assert.Equal(t, "ACME UMO", canonical.UMO.OrgName)
		assert.Equal(t, "1234567890", canonical.Requester.NPI)
		assert.Equal(t, "MBR00042", canonical.Subscriber.MemberID)
		assert.Equal(t, "HS", canonical.Review.RequestCategory)
		assert.Equal(t, "I", canonical.Review.CertificationType)
		assert.Equal(t, "3", canonical.Review.ServiceTypeCode)
		assert.Equal(t, "U", canonical.Review.LevelOfService)
		assert.False(t, canonical.Review.LifeThreatening)
		assert.Equal(t, "2024-02-10", canonical.ServiceDate)
		require.Len(t, canonical.Diagnoses, 1)
		assert.Equal(t, "J10", canonical.Diagnoses[0].Code)
		assert.Nil(t, canonical.Outcome)
	})

	t.Run("ResponseRejected", func(t *testing.T) {
		_, err := Decode278Request(sample278Response())
		var dirErr *exceptions.DirectionError
		require.ErrorAs(t, err, &dirErr)
		assert.Equal(t, "11", dirErr.Expected)
		assert.Equal(t, "13", dirErr.Got)
	})

	t.Run("MissingRequesterNPI", func(t *testing.T) {
		raw := strings.Replace(sample278Request(),
			`NM1*1P*2*GOOD CLINIC*****XX*1234567890~`,
			`NM1*1P*2*GOOD CLINIC~`, 1)
		_, err := Decode278Request(raw)
		var mapErr *exceptions.MappingError
		require.ErrorAs(t, err, &mapErr)
		assert.Equal(t, "requester.npi", mapErr.Field)
	})
}

func TestDecode278Response(t *testing.T) {
	t.Run("ApprovedDecision", func(t *testing.T) {
		canonical, err := Decode278Response(sample278Response())
		require.NoError(t, err)

		assert.Equal(t, "13", canonical.TransactionType)
		require.NotNil(t, canonical.Outcome)
		assert.Equal(t, "A1", canonical.Outcome.StatusCode)
		assert.Equal(t, "AUTH0001", canonical.Outcome.AuthorizationNumber)
		assert.False(t, canonical.Outcome.AdditionalInfoRequired)
	})

	t.Run("PendedDecisionRequiresInfo", func(t *testing.T) {
		raw := strings.Replace(sample278Response(), `HCR*A1*AUTH0001~`, `HCR*A4**41~DTP*106*D8*20240216~`, 1)
		canonical, err := Decode278Response(raw)
		require.NoError(t, err)

		assert.Equal(t, "A4", canonical.Outcome.StatusCode)
		assert.True(t, canonical.Outcome.AdditionalInfoRequired)
		assert.Equal(t, "2024-02-16", canonical.Outcome.AdditionalInfoDeadline)
	})

	t.Run("MissingDecisionSegment", func(t *testing.T) {
		raw := strings.Replace(sample278Response(), `HCR*A1*AUTH0001~`, "", 1)
		_, err := Decode278Response(raw)
		var mapErr *exceptions.MappingError
		require.ErrorAs(t, err, &mapErr)
		assert.Equal(t, "outcome.statusCode", mapErr.Field)
	})
}

func TestToFhir(t *testing.T) {
	t.Run("UrgentProfessionalRequest", func(t *testing.T) {
		canonical, err := Decode278Request(sample278Request())
		require.NoError(t, err)

		bundle, err := ToFhir(canonical)
		require.NoError(t, err)

		sr := bundle.ServiceRequest
		assert.Equal(t, "active", sr.Status)
		assert.Equal(t, "order", sr.Intent)
		assert.Equal(t, "urgent", sr.Priority)
		assert.Equal(t, "Patient/MBR00042", sr.Subject.Reference)
		require.NotNil(t, sr.Requester)
		assert.Equal(t, "1234567890", sr.Requester.Identifier.Value)
		require.NotNil(t, sr.Code)
		assert.Equal(t, "3", sr.Code.Coding[0].Code)
		require.NotNil(t, sr.Meta)
		assert.NotEmpty(t, sr.Meta.Profile)

		claim := bundle.Claim
		assert.Equal(t, "preauthorization", claim.Use)
		assert.Equal(t, "professional", claim.Type.Coding[0].Code)
		assert.Equal(t, "stat", claim.Priority.Coding[0].Code)
		require.Len(t, claim.Diagnosis, 1)
	})

	t.Run("AdmissionReviewIsInstitutional", func(t *testing.T) {
		canonical, err := Decode278Request(strings.Replace(sample278Request(), `UM*HS*I*3***U~`, `UM*AR*I*48***E~`, 1))
		require.NoError(t, err)

		bundle, err := ToFhir(canonical)
		require.NoError(t, err)
		assert.Equal(t, "institutional", bundle.Claim.Type.Coding[0].Code)
		assert.Equal(t, "routine", bundle.ServiceRequest.Priority)
		assert.Equal(t, "normal", bundle.Claim.Priority.Coding[0].Code)
	})

	t.Run("ResponseRejected", func(t *testing.T) {
		canonical, err := Decode278Response(sample278Response())
		require.NoError(t, err)

		_, err = ToFhir(canonical)
		var dirErr *exceptions.DirectionError
		require.ErrorAs(t, err, &dirErr)
	})
}

func TestToFhirResponse(t *testing.T) {
	t.Run("ApprovedOutcome", func(t *testing.T) {
		canonical, err := Decode278Response(sample278Response())
		require.NoError(t, err)

		response, err := ToFhirResponse(canonical)
		require.NoError(t, err)

		assert.Equal(t, "complete", response.Outcome)
		assert.Equal(t, "AUTH0001", response.PreAuthRef)
		assert.Equal(t, "preauthorization", response.Use)
		assert.Equal(t, "Certified in total", response.Disposition)
		assert.Empty(t, response.Extension)
	})

	t.Run("PendedOutcomeCarriesExtension", func(t *testing.T) {
		raw := strings.Replace(sample278Response(), `HCR*A1*AUTH0001~`, `HCR*A4**41~DTP*106*D8*20240216~`, 1)
		canonical, err := Decode278Response(raw)
		require.NoError(t, err)

		response, err := ToFhirResponse(canonical)
		require.NoError(t, err)

		assert.Equal(t, "queued", response.Outcome)
		require.Len(t, response.Extension, 1)
		require.NotNil(t, response.Extension[0].ValueBoolean)
		assert.True(t, *response.Extension[0].ValueBoolean)
		assert.Equal(t, "2024-02-16", response.Extension[0].ValueDate)
	})
}

func TestFromFhirResponse(t *testing.T) {
	t.Run("QueuedOutcomePendsWithDeadline", func(t *testing.T) {
		outcome, err := FromFhirResponse(&fhir_dto.ClaimResponse{
			Outcome: "queued",
			Created: "2024-02-01",
		})
		require.NoError(t, err)

		assert.Equal(t, "A4", outcome.StatusCode)
		assert.True(t, outcome.AdditionalInfoRequired)
		assert.Equal(t, "2024-02-15", outcome.AdditionalInfoDeadline)
	})

	t.Run("OutcomeTable", func(t *testing.T) {
		for outcome, status := range map[string]string{
			"complete": "A1",
			"partial":  "A2",
			"error":    "A3",
			"queued":   "A4",
		} {
			decoded, err := FromFhirResponse(&fhir_dto.ClaimResponse{Outcome: outcome, Created: "2024-02-01"})
			require.NoError(t, err, outcome)
			assert.Equal(t, status, decoded.StatusCode)
		}
	})

	t.Run("UnknownOutcome", func(t *testing.T) {
		_, err := FromFhirResponse(&fhir_dto.ClaimResponse{Outcome: "draft"})
		var mapErr *exceptions.MappingError
		require.ErrorAs(t, err, &mapErr)
	})
}

func TestEncode278Response(t *testing.T) {
	t.Run("ControlNumbersRoundTrip", func(t *testing.T) {
		request, err := Decode278Request(sample278Request())
		require.NoError(t, err)

		response := *request
		response.TransactionType = constvars.TransactionTypeResponse
		response.Outcome = &models.ReviewOutcome{StatusCode: "A1", AuthorizationNumber: "AUTH0001"}

		raw, err := Encode278Response(&response)
		require.NoError(t, err)

		segments, delims, err := x12.Decode(raw)
		require.NoError(t, err)
		env, err := x12.ParseEnvelope(segments, delims)
		require.NoError(t, err)

		assert.Equal(t, request.Envelope.InterchangeControlNumber, env.InterchangeControlNumber)
		assert.Equal(t, request.Envelope.GroupControlNumber, env.GroupControlNumber)
		assert.Equal(t, request.Envelope.TransactionSetControlNumber, env.TransactionSetControlNumber)
		assert.Contains(t, raw, "HCR*A1*AUTH0001")
		assert.Contains(t, raw, "TRN*2*TRACE278")

		decoded, err := Decode278Response(raw)
		require.NoError(t, err)
		assert.Equal(t, "AUTH0001", decoded.Outcome.AuthorizationNumber)
	})

	t.Run("RequestDirectionRejected", func(t *testing.T) {
		request, err := Decode278Request(sample278Request())
		require.NoError(t, err)

		_, err = Encode278Response(request)
		var dirErr *exceptions.DirectionError
		require.ErrorAs(t, err, &dirErr)
		assert.Equal(t, "13", dirErr.Expected)
		assert.Equal(t, "11", dirErr.Got)
	})
}

func TestPriority(t *testing.T) {
	cases := []struct {
		levelOfService string
		priority       string
		requestType    sla.RequestType
	}{
		{"U", "urgent", sla.RequestTypeUrgent},
		{"E", "routine", sla.RequestTypeStandard},
		{"1", "normal", sla.RequestTypeStandard},
		{"2", "normal", sla.RequestTypeStandard},
		{"3", "normal", sla.RequestTypeStandard},
		{"", "normal", sla.RequestTypeStandard},
	}
	for _, tc := range cases {
		t.Run("LevelOfService"+tc.levelOfService, func(t *testing.T) {
			review := models.ReviewInfo{LevelOfService: tc.levelOfService}
			assert.Equal(t, tc.priority, Priority(review))
			assert.Equal(t, tc.requestType, RequestType(review))
		})
	}
}

func TestStartTimeline(t *testing.T) {
	received := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

	t.Run("UrgentLevelOfService", func(t *testing.T) {
		canonical, err := Decode278Request(sample278Request())
		require.NoError(t, err)

		timeline := StartTimeline(canonical, received)
		assert.Equal(t, sla.RequestTypeUrgent, timeline.RequestType)
		assert.Equal(t, 72, timeline.SLAHours)
	})

	t.Run("EmergencyIsLifeThreatening", func(t *testing.T) {
		canonical, err := Decode278Request(strings.Replace(sample278Request(), `UM*HS*I*3***U~`, `UM*HS*I*3***1~`, 1))
		require.NoError(t, err)
		assert.True(t, canonical.Review.LifeThreatening)

		timeline := StartTimeline(canonical, received)
		assert.Equal(t, 24, timeline.SLAHours)
		assert.Equal(t, received.Add(24*time.Hour), timeline.DueAt)
	})

	t.Run("ElectiveIsStandard", func(t *testing.T) {
		canonical, err := Decode278Request(strings.Replace(sample278Request(), `UM*HS*I*3***U~`, `UM*HS*I*3***E~`, 1))
		require.NoError(t, err)

		timeline := StartTimeline(canonical, received)
		assert.Equal(t, sla.RequestTypeStandard, timeline.RequestType)
		assert.Equal(t, 168, timeline.SLAHours)
	})
}
