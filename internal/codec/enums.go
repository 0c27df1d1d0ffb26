// internal/codec/enums.go
package codec

import (
	"fmt"
	"strings"
)

// Device modes. Each type maps bijectively onto raw codes [0, N).

type SystemStatus uint16

const (
	StatusIdle SystemStatus = iota
	StatusStartUp
	StatusOperating
	StatusShutDown
	StatusStandby
)

type SensorState uint16

const (
	SensorOff SensorState = iota
	SensorOn
	SensorStandby
)

type HeaterOption uint16

const (
	Heater4V0 HeaterOption = iota
	Heater4V2
	Heater4V35
	Heater4V55
)

type CalibrationStatus uint16

const (
	CalibrationIdle CalibrationStatus = iota
	CalibrationInProgress
	CalibrationCompleted
)

type CalibrationControl uint16

const (
	CalibrationDefault CalibrationControl = iota
	CalibrationActivate
	CalibrationReset
)

type Parity uint16

const (
	ParityNone Parity = iota
	ParityOdd
	ParityEven
)

type BaudRate uint16

const (
	Baud2400 BaudRate = iota
	Baud4800
	Baud9600
	Baud19200
	Baud38400
	Baud57600
	Baud115200
)

type StopBits uint16

const (
	StopBits1 StopBits = iota
	StopBits2
)

// Apply is the value set written to the save-and-apply registers.
type Apply uint16

const (
	ApplyIdle Apply = iota
	ApplyNow
)

// ---- names (index == raw code) ----

var (
	systemStatusNames       = []string{"Idle", "StartUp", "Operating", "ShutDown", "Standby"}
	sensorStateNames        = []string{"Off", "On", "Standby"}
	heaterOptionNames       = []string{"4.0V", "4.2V", "4.35V", "4.55V"}
	calibrationStatusNames  = []string{"Idle", "InProgress", "Completed"}
	calibrationControlNames = []string{"Default", "Activate", "Reset"}
	parityNames             = []string{"None", "Odd", "Even"}
	baudRateNames           = []string{"2400", "4800", "9600", "19200", "38400", "57600", "115200"}
	stopBitsNames           = []string{"1", "2"}
	applyNames              = []string{"Idle", "Apply"}
)

var (
	heaterVolts = []float64{4.0, 4.2, 4.35, 4.55}
	baudBPS     = []int{2400, 4800, 9600, 19200, 38400, 57600, 115200}
)

func enumName(names []string, v uint16) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("invalid(%d)", v)
}

func decodeEnum[E ~uint16](enum string, names []string, raw uint16) (E, error) {
	if int(raw) >= len(names) {
		return 0, &InvalidEnumValueError{Enum: enum, Raw: raw}
	}
	return E(raw), nil
}

func parseEnum[E ~uint16](enum string, names []string, s string) (E, error) {
	for i, n := range names {
		if strings.EqualFold(n, s) {
			return E(i), nil
		}
	}
	return 0, fmt.Errorf("codec: unknown %s %q", enum, s)
}

func (v SystemStatus) String() string       { return enumName(systemStatusNames, uint16(v)) }
func (v SensorState) String() string        { return enumName(sensorStateNames, uint16(v)) }
func (v HeaterOption) String() string       { return enumName(heaterOptionNames, uint16(v)) }
func (v CalibrationStatus) String() string  { return enumName(calibrationStatusNames, uint16(v)) }
func (v CalibrationControl) String() string { return enumName(calibrationControlNames, uint16(v)) }
func (v Parity) String() string             { return enumName(parityNames, uint16(v)) }
func (v BaudRate) String() string           { return enumName(baudRateNames, uint16(v)) }
func (v StopBits) String() string           { return enumName(stopBitsNames, uint16(v)) }
func (v Apply) String() string              { return enumName(applyNames, uint16(v)) }

// Encoding is the identity on the underlying code.

func (v SystemStatus) Raw() uint16       { return uint16(v) }
func (v SensorState) Raw() uint16        { return uint16(v) }
func (v HeaterOption) Raw() uint16       { return uint16(v) }
func (v CalibrationStatus) Raw() uint16  { return uint16(v) }
func (v CalibrationControl) Raw() uint16 { return uint16(v) }
func (v Parity) Raw() uint16             { return uint16(v) }
func (v BaudRate) Raw() uint16           { return uint16(v) }
func (v StopBits) Raw() uint16           { return uint16(v) }
func (v Apply) Raw() uint16              { return uint16(v) }

func DecodeSystemStatus(raw uint16) (SystemStatus, error) {
	return decodeEnum[SystemStatus]("system status", systemStatusNames, raw)
}

func DecodeSensorState(raw uint16) (SensorState, error) {
	return decodeEnum[SensorState]("sensor state", sensorStateNames, raw)
}

func DecodeHeaterOption(raw uint16) (HeaterOption, error) {
	return decodeEnum[HeaterOption]("heater option", heaterOptionNames, raw)
}

func DecodeCalibrationStatus(raw uint16) (CalibrationStatus, error) {
	return decodeEnum[CalibrationStatus]("calibration status", calibrationStatusNames, raw)
}

func DecodeCalibrationControl(raw uint16) (CalibrationControl, error) {
	return decodeEnum[CalibrationControl]("calibration control", calibrationControlNames, raw)
}

func DecodeParity(raw uint16) (Parity, error) {
	return decodeEnum[Parity]("parity", parityNames, raw)
}

func DecodeBaudRate(raw uint16) (BaudRate, error) {
	return decodeEnum[BaudRate]("baud rate", baudRateNames, raw)
}

func DecodeStopBits(raw uint16) (StopBits, error) {
	return decodeEnum[StopBits]("stop bits", stopBitsNames, raw)
}

func DecodeApply(raw uint16) (Apply, error) {
	return decodeEnum[Apply]("apply", applyNames, raw)
}

// Valid reports whether the value is one of the defined codes. Callers that
// build enum values by conversion check this before writing.
func (v SensorState) Valid() bool        { return int(v) < len(sensorStateNames) }
func (v HeaterOption) Valid() bool       { return int(v) < len(heaterOptionNames) }
func (v CalibrationControl) Valid() bool { return int(v) < len(calibrationControlNames) }
func (v Parity) Valid() bool             { return int(v) < len(parityNames) }
func (v BaudRate) Valid() bool           { return int(v) < len(baudRateNames) }
func (v StopBits) Valid() bool           { return int(v) < len(stopBitsNames) }

// Volts is the nominal heater voltage of the option.
func (v HeaterOption) Volts() float64 {
	if !v.Valid() {
		return 0
	}
	return heaterVolts[v]
}

// BitsPerSecond is the line rate of the option.
func (v BaudRate) BitsPerSecond() int {
	if !v.Valid() {
		return 0
	}
	return baudBPS[v]
}

// Letter is the single-character parity form used by serial configs.
func (v Parity) Letter() string {
	switch v {
	case ParityOdd:
		return "O"
	case ParityEven:
		return "E"
	default:
		return "N"
	}
}

// Count is the number of stop bits.
func (v StopBits) Count() int {
	return int(v) + 1
}

// ParseHeaterOption accepts "4.2", "4.2V" or "4.20".
func ParseHeaterOption(s string) (HeaterOption, error) {
	s = strings.TrimSuffix(strings.TrimSpace(strings.ToUpper(s)), "V")
	var volts float64
	if _, err := fmt.Sscanf(s, "%g", &volts); err == nil {
		for i, hv := range heaterVolts {
			if volts == hv {
				return HeaterOption(i), nil
			}
		}
	}
	return 0, fmt.Errorf("codec: unknown heater option %q", s)
}

func ParseSensorState(s string) (SensorState, error) {
	return parseEnum[SensorState]("sensor state", sensorStateNames, s)
}

func ParseParity(s string) (Parity, error) {
	return parseEnum[Parity]("parity", parityNames, s)
}

// BaudRateFor maps a line rate to its register code.
func BaudRateFor(bps int) (BaudRate, error) {
	for i, r := range baudBPS {
		if r == bps {
			return BaudRate(i), nil
		}
	}
	return 0, fmt.Errorf("codec: unsupported baud rate %d", bps)
}
