package x12

import (
	"claimsbridge-service/internal/pkg/exceptions"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleISA = "ISA*00*          *00*          *ZZ*SUBMITTERID    *ZZ*RECEIVERID     *240101*1200*^*00501*000000001*0*P*:~"

func sampleInterchange() string {
	return sampleISA +
		"GS*HS*SUBMITTERID*RECEIVERID*20240101*1200*1*X*005010X279A1~" +
		"ST*270*0001*005010X279A1~" +
		"BHT*0022*13*REF47517*20240101*1200~" +
		"NM1*IL*1*DOE*JOHN****MI*MEMBER123~" +
		"SE*4*0001~" +
		"GE*1*1~" +
		"IEA*1*000000001~"
}

func TestReadDelimiters(t *testing.T) {
	t.Run("Standard Delimiters", func(t *testing.T) {
		delims, err := ReadDelimiters(sampleISA)
		require.NoError(t, err)
		assert.Equal(t, byte('*'), delims.Element)
		assert.Equal(t, byte('~'), delims.Segment)
		assert.Equal(t, byte(':'), delims.Component)
		assert.Equal(t, byte('^'), delims.Repetition)
	})

	t.Run("Partner Specific Delimiters", func(t *testing.T) {
		raw := strings.ReplaceAll(sampleISA, "*", "|")
		raw = strings.ReplaceAll(raw, "~", ">")
		raw = strings.ReplaceAll(raw, ":", "!")
		delims, err := ReadDelimiters(raw)
		require.NoError(t, err)
		assert.Equal(t, byte('|'), delims.Element)
		assert.Equal(t, byte('>'), delims.Segment)
		assert.Equal(t, byte('!'), delims.Component)
	})

	t.Run("Missing ISA", func(t *testing.T) {
		_, err := ReadDelimiters("GS*HS~")
		var decodeErr *exceptions.DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, 0, decodeErr.Offset)
	})

	t.Run("Truncated ISA", func(t *testing.T) {
		_, err := ReadDelimiters("ISA*00*          *00~")
		var decodeErr *exceptions.DecodeError
		require.ErrorAs(t, err, &decodeErr)
	})
}

func TestDecode(t *testing.T) {
	t.Run("Full Interchange", func(t *testing.T) {
		segments, delims, err := Decode(sampleInterchange())
		require.NoError(t, err)
		assert.Equal(t, byte('~'), delims.Segment)
		require.Len(t, segments, 8)
		assert.Equal(t, "ISA", segments[0].ID)
		assert.Equal(t, "NM1", segments[4].ID)
		assert.Equal(t, "MEMBER123", segments[4].Element(9))
		assert.Equal(t, "IEA", segments[7].ID)
	})

	t.Run("Trailing Newlines Tolerated", func(t *testing.T) {
		segments, _, err := Decode(sampleInterchange() + "\r\n")
		require.NoError(t, err)
		assert.Len(t, segments, 8)
	})

	t.Run("Unterminated Final Segment", func(t *testing.T) {
		raw := strings.TrimSuffix(sampleInterchange(), "~")
		_, _, err := Decode(raw)
		var decodeErr *exceptions.DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, len(raw), decodeErr.Offset)
	})

	t.Run("Missing GS", func(t *testing.T) {
		raw := sampleISA + "ST*270*0001~SE*2*0001~IEA*1*000000001~"
		_, _, err := Decode(raw)
		var decodeErr *exceptions.DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Contains(t, decodeErr.Reason, "GS")
	})

	t.Run("Missing ST", func(t *testing.T) {
		raw := sampleISA + "GS*HS*S*R*20240101*1200*1*X*005010X279A1~GE*1*1~IEA*1*000000001~"
		_, _, err := Decode(raw)
		var decodeErr *exceptions.DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Contains(t, decodeErr.Reason, "ST")
	})
}

func TestEncode(t *testing.T) {
	t.Run("Round Trip", func(t *testing.T) {
		segments, delims, err := Decode(sampleInterchange())
		require.NoError(t, err)
		assert.Equal(t, sampleInterchange(), Encode(segments, delims))
	})

	t.Run("Custom Delimiters", func(t *testing.T) {
		segments := []Segment{BuildSegment("ST", "278", "0001")}
		encoded := Encode(segments, Delimiters{Element: '|', Segment: '>'})
		assert.Equal(t, "ST|278|0001>", encoded)
	})
}

func TestSegmentElement(t *testing.T) {
	seg := BuildSegment("NM1", "IL", "1", "DOE")
	assert.Equal(t, "IL", seg.Element(1))
	assert.Equal(t, "DOE", seg.Element(3))
	assert.Equal(t, "", seg.Element(4))
	assert.Equal(t, "", seg.Element(0))
}
