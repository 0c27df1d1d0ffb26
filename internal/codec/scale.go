// internal/codec/scale.go
package codec

import "math"

// Scale is the fixed divisor a register value is stored with.
type Scale uint16

const (
	// ScaleHundredths covers O2 average/raw, heater voltage and calibration percent.
	ScaleHundredths Scale = 100
	// ScaleThousandths covers asymmetry.
	ScaleThousandths Scale = 1000
	// ScaleTenths covers TD average/raw, TP, T1, T2, T4, T5 and ppO2 real/raw.
	ScaleTenths Scale = 10
)

// Decode converts a raw register value to engineering units.
func (s Scale) Decode(raw uint16) float64 {
	return float64(raw) / float64(s)
}

// Max is the largest engineering value the register can carry.
func (s Scale) Max() float64 {
	return float64(math.MaxUint16) / float64(s)
}

// Encode converts an engineering value to a raw register value, rounding to
// the register's quantization. Values outside [0, Max] are rejected.
func (s Scale) Encode(field string, v float64) (uint16, error) {
	return s.encodeIn(field, v, 0, s.Max())
}

func (s Scale) encodeIn(field string, v, min, max float64) (uint16, error) {
	if math.IsNaN(v) || v < min || v > max {
		return 0, &OutOfRangeError{Field: field, Value: v, Min: min, Max: max}
	}
	return uint16(math.Round(v * float64(s))), nil
}

// Calibration target and device address bounds (inclusive).
const (
	CalibrationPercentMin = 0.0
	CalibrationPercentMax = 100.0

	AddressMin = 1
	AddressMax = 247
)

// EncodeCalibrationPercent validates v against [0, 100] and encodes it.
func EncodeCalibrationPercent(v float64) (uint16, error) {
	return ScaleHundredths.encodeIn("calibration percent", v, CalibrationPercentMin, CalibrationPercentMax)
}

// EncodeAddress validates a Modbus slave address against [1, 247].
func EncodeAddress(addr int) (uint16, error) {
	if addr < AddressMin || addr > AddressMax {
		return 0, &OutOfRangeError{
			Field: "address",
			Value: float64(addr),
			Min:   AddressMin,
			Max:   AddressMax,
		}
	}
	return uint16(addr), nil
}

// DecodeTemperature recovers a signed 16-bit two's-complement value.
func DecodeTemperature(raw uint16) int {
	return int(int16(raw))
}

// EncodeTemperature is the inverse of DecodeTemperature.
func EncodeTemperature(v int) (uint16, error) {
	if v < math.MinInt16 || v > math.MaxInt16 {
		return 0, &OutOfRangeError{
			Field: "temperature",
			Value: float64(v),
			Min:   math.MinInt16,
			Max:   math.MaxInt16,
		}
	}
	return uint16(int16(v)), nil
}
