// internal/codec/warnings.go
package codec

import "strings"

// Warning is one flag of the WARNINGS register. The value is the bit index.
type Warning uint8

const (
	PumpError Warning = iota
	HeaterVoltageError
	AsymmetryWarning
	O2LowWarning
	PressureSensorWarning
	PressureSensorError

	warningCount = int(PressureSensorError) + 1
)

var warningNames = [warningCount]string{
	"Pump Error",
	"Heater Voltage Error",
	"Asymmetry Warning",
	"O2 Low Warning",
	"Pressure Sensor Warning",
	"Pressure Sensor Error",
}

func (w Warning) String() string {
	if int(w) < warningCount {
		return warningNames[w]
	}
	return "Unknown Warning"
}

// AllWarnings lists the flags in bit order.
func AllWarnings() []Warning {
	out := make([]Warning, warningCount)
	for i := range out {
		out[i] = Warning(i)
	}
	return out
}

// WarningSet holds the six flags packed in bits 0..5.
// Bits 6..15 of the register are ignored.
type WarningSet [warningCount]bool

// DecodeWarnings tests bits 0..5 of raw; bit 0 is Pump Error.
func DecodeWarnings(raw uint16) WarningSet {
	var ws WarningSet
	for i := 0; i < warningCount; i++ {
		ws[i] = (raw>>uint(i))&1 == 1
	}
	return ws
}

// Encode packs the set back into register bits.
func (ws WarningSet) Encode() uint16 {
	var raw uint16
	for i, set := range ws {
		if set {
			raw |= 1 << uint(i)
		}
	}
	return raw
}

// Has reports whether flag w is raised.
func (ws WarningSet) Has(w Warning) bool {
	return int(w) < warningCount && ws[w]
}

// Any reports whether at least one flag is raised.
func (ws WarningSet) Any() bool {
	for _, set := range ws {
		if set {
			return true
		}
	}
	return false
}

// Map returns the flags keyed by their display name.
func (ws WarningSet) Map() map[string]bool {
	m := make(map[string]bool, warningCount)
	for i, set := range ws {
		m[warningNames[i]] = set
	}
	return m
}

// Active returns the raised flags in bit order.
func (ws WarningSet) Active() []Warning {
	var out []Warning
	for i, set := range ws {
		if set {
			out = append(out, Warning(i))
		}
	}
	return out
}

func (ws WarningSet) String() string {
	active := ws.Active()
	if len(active) == 0 {
		return "none"
	}
	names := make([]string, len(active))
	for i, w := range active {
		names[i] = w.String()
	}
	return strings.Join(names, ", ")
}
