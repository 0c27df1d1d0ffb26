// internal/codec/errors.go
package codec

import "fmt"

// InvalidEnumValueError is returned when a register holds a value outside
// the enum's defined codes. The value is never coerced to a default member.
type InvalidEnumValueError struct {
	Enum string
	Raw  uint16
}

func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("codec: invalid %s value %d", e.Enum, e.Raw)
}

// OutOfRangeError is returned by write-side validation. No write is attempted.
type OutOfRangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("codec: %s %v out of range [%v, %v]", e.Field, e.Value, e.Min, e.Max)
}
