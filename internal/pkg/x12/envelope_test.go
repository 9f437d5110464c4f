package x12

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvelope(t *testing.T) {
	segments, delims, err := Decode(sampleInterchange())
	require.NoError(t, err)

	env, err := ParseEnvelope(segments, delims)
	require.NoError(t, err)
	assert.Equal(t, "SUBMITTERID", env.SenderID)
	assert.Equal(t, "RECEIVERID", env.ReceiverID)
	assert.Equal(t, "000000001", env.InterchangeControlNumber)
	assert.Equal(t, "1", env.GroupControlNumber)
	assert.Equal(t, "0001", env.TransactionSetControlNumber)
	assert.Equal(t, "270", env.TransactionSetID)
	assert.Equal(t, "005010X279A1", env.ImplementationGuide)
}

func TestWrapTransaction(t *testing.T) {
	env := Envelope{
		SenderID:                    "PAYER",
		ReceiverID:                  "SUBMITTERID",
		InterchangeControlNumber:    "000000001",
		GroupControlNumber:          "1",
		TransactionSetControlNumber: "0001",
		TransactionSetID:            "271",
		ImplementationGuide:         "005010X279A1",
		FunctionalIDCode:            "HB",
		Delimiters:                  DefaultDelimiters(),
	}
	body := []Segment{
		BuildSegment("BHT", "0022", "11", "REF1", "20240101", "1200"),
		BuildSegment("NM1", "IL", "1", "DOE", "JOHN"),
	}

	wrapped := WrapTransaction(env, body, time.Date(2024, 1, 2, 15, 4, 0, 0, time.UTC))
	require.Len(t, wrapped, len(body)+6)

	assert.Equal(t, "ISA", wrapped[0].ID)
	assert.Equal(t, "000000001", wrapped[0].Element(13))
	assert.Equal(t, "ST", wrapped[2].ID)
	assert.Equal(t, "271", wrapped[2].Element(1))
	assert.Equal(t, "0001", wrapped[2].Element(2))

	se := wrapped[len(wrapped)-3]
	assert.Equal(t, "SE", se.ID)
	assert.Equal(t, "4", se.Element(1))
	assert.Equal(t, "0001", se.Element(2))
	assert.Equal(t, "IEA", wrapped[len(wrapped)-1].ID)
	assert.Equal(t, "000000001", wrapped[len(wrapped)-1].Element(2))

	// Control numbers on the response envelope echo the request's exactly.
	decodedEnv, err := ParseEnvelope(wrapped, env.Delimiters)
	require.NoError(t, err)
	assert.Equal(t, env.InterchangeControlNumber, decodedEnv.InterchangeControlNumber)
	assert.Equal(t, env.TransactionSetControlNumber, decodedEnv.TransactionSetControlNumber)
}

func TestLookaheadWindow(t *testing.T) {
	segments := []Segment{
		BuildSegment("NM1", "IL", "1"),
		BuildSegment("DMG", "D8", "19850615"),
		BuildSegment("DTP", "291", "D8", "20240101"),
		BuildSegment("NM1", "PR", "2"),
		BuildSegment("REF", "D9", "AUTH1"),
	}

	t.Run("Forward Finds Within Loop", func(t *testing.T) {
		assert.Equal(t, 1, FindForward(segments, 0, "DMG", "NM1", "HL"))
	})

	t.Run("Forward Stops At New Anchor", func(t *testing.T) {
		assert.Equal(t, -1, FindForward(segments, 0, "REF", "NM1", "HL"))
	})

	t.Run("Forward Bounded By Window", func(t *testing.T) {
		long := make([]Segment, 0, 14)
		long = append(long, BuildSegment("NM1", "IL", "1"))
		for i := 0; i < 12; i++ {
			long = append(long, BuildSegment("DTP", "291", "D8", "20240101"))
		}
		long = append(long, BuildSegment("DMG", "D8", "19850615"))
		assert.Equal(t, -1, FindForward(long, 0, "DMG"))
	})

	t.Run("Backward Finds Anchor", func(t *testing.T) {
		assert.Equal(t, 0, FindBackward(segments, 2, "NM1"))
	})

	t.Run("Collect Loop Body", func(t *testing.T) {
		loop := CollectLoop(segments, 0, "NM1", "HL")
		require.Len(t, loop, 2)
		assert.Equal(t, "DMG", loop[0].ID)
	})
}
