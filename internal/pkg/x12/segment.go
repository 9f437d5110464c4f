package x12

import (
	"claimsbridge-service/internal/pkg/constvars"
	"claimsbridge-service/internal/pkg/exceptions"
	"strings"
)

// Segment is one X12 segment: a tag plus its ordered elements. Segments are
// never mutated after decode.
type Segment struct {
	ID       string
	Elements []string
}

// Element returns the 1-based element value, or "" when the element is absent.
// X12 implementation guides number elements from 1 (e.g. NM103).
func (s Segment) Element(idx int) string {
	if idx < 1 || idx > len(s.Elements) {
		return ""
	}
	return s.Elements[idx-1]
}

// Delimiters carries the separators of one interchange. They are read
// positionally from the ISA header, never hard-coded, so the decoder works
// across trading partners.
type Delimiters struct {
	Element    byte
	Segment    byte
	Component  byte
	Repetition byte
}

func DefaultDelimiters() Delimiters {
	return Delimiters{
		Element:    constvars.DefaultElementSeparator[0],
		Segment:    constvars.DefaultSegmentTerminator[0],
		Component:  constvars.DefaultComponentSeparator[0],
		Repetition: constvars.DefaultRepetitionSep[0],
	}
}

// ISA is fixed width: "ISA" + 16 elements. The element separator is the byte
// at offset 3, the component separator is ISA16 at offset 104, and the
// segment terminator is the byte immediately following ISA16 at offset 105.
const (
	isaElementSeparatorOffset   = 3
	isaRepetitionOffset         = 82
	isaComponentSeparatorOffset = 104
	isaSegmentTerminatorOffset  = 105
	isaMinimumLength            = 106
)

// ReadDelimiters extracts the interchange delimiters from the fixed ISA
// offsets.
func ReadDelimiters(raw string) (Delimiters, error) {
	if !strings.HasPrefix(raw, constvars.SegmentISA) {
		return Delimiters{}, exceptions.NewDecodeError(0, "interchange does not start with ISA segment")
	}
	if len(raw) < isaMinimumLength {
		return Delimiters{}, exceptions.NewDecodeError(len(raw), "ISA segment truncated before delimiter positions")
	}
	return Delimiters{
		Element:    raw[isaElementSeparatorOffset],
		Segment:    raw[isaSegmentTerminatorOffset],
		Component:  raw[isaComponentSeparatorOffset],
		Repetition: raw[isaRepetitionOffset],
	}, nil
}

// Decode tokenizes one raw interchange into its ordered segments. Malformed
// input (unterminated segment, missing ISA/GS/ST) yields a DecodeError naming
// the offending byte offset; no partial recovery is attempted.
func Decode(raw string) ([]Segment, Delimiters, error) {
	trimmed := strings.TrimRight(raw, "\r\n ")
	delims, err := ReadDelimiters(trimmed)
	if err != nil {
		return nil, Delimiters{}, err
	}

	if trimmed[len(trimmed)-1] != delims.Segment {
		return nil, delims, exceptions.NewDecodeError(len(trimmed), "unterminated final segment")
	}

	var segments []Segment
	offset := 0
	sawGS, sawST := false, false
	for offset < len(trimmed) {
		end := strings.IndexByte(trimmed[offset:], delims.Segment)
		if end < 0 {
			return nil, delims, exceptions.NewDecodeError(offset, "unterminated segment")
		}
		chunk := strings.Trim(trimmed[offset:offset+end], "\r\n ")
		if chunk != "" {
			parts := strings.Split(chunk, string(delims.Element))
			id := parts[0]
			if id == "" {
				return nil, delims, exceptions.NewDecodeError(offset, "segment with empty identifier")
			}
			segments = append(segments, Segment{ID: id, Elements: parts[1:]})
			switch id {
			case constvars.SegmentGS:
				sawGS = true
			case constvars.SegmentST:
				sawST = true
			}
		}
		offset += end + 1
	}

	if !sawGS {
		return nil, delims, exceptions.NewDecodeError(0, "missing mandatory GS segment")
	}
	if !sawST {
		return nil, delims, exceptions.NewDecodeError(0, "missing mandatory ST segment")
	}
	return segments, delims, nil
}

// Encode assembles segments back into delimited text, each segment closed by
// the segment terminator.
func Encode(segments []Segment, delims Delimiters) string {
	var sb strings.Builder
	for _, seg := range segments {
		sb.WriteString(seg.ID)
		for _, el := range seg.Elements {
			sb.WriteByte(delims.Element)
			sb.WriteString(el)
		}
		sb.WriteByte(delims.Segment)
	}
	return sb.String()
}

// BuildSegment is a convenience constructor used by the encoders.
func BuildSegment(id string, elements ...string) Segment {
	return Segment{ID: id, Elements: elements}
}
