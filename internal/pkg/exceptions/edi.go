package exceptions

import "fmt"

// DecodeError reports malformed EDI input. Offset is the byte offset of the
// offending segment within the raw interchange.
type DecodeError struct {
	Offset int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("edi decode failed at offset %d: %s", e.Offset, e.Reason)
}

func NewDecodeError(offset int, reason string) *DecodeError {
	return &DecodeError{Offset: offset, Reason: reason}
}

// MappingError reports a structurally required identity field missing from a
// transaction on decode or encode. Descriptive fields fall back to defaults
// instead.
type MappingError struct {
	Field  string
	Reason string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("mapping failed for field %q: %s", e.Field, e.Reason)
}

func NewMappingError(field, reason string) *MappingError {
	return &MappingError{Field: field, Reason: reason}
}

// DirectionError reports a transaction whose type code does not match the
// requested decode/encode direction (11=request, 13=response).
type DirectionError struct {
	Expected string
	Got      string
}

func (e *DirectionError) Error() string {
	return fmt.Sprintf("wrong transaction direction: expected type %s, got %s", e.Expected, e.Got)
}

func NewDirectionError(expected, got string) *DirectionError {
	return &DirectionError{Expected: expected, Got: got}
}
