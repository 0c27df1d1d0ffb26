// internal/status/constants.go
package status

// ---- HEALTH CODES ----

// HealthUnknown represents an unknown or boot state.
const HealthUnknown uint16 = 0

// HealthOK represents a healthy device.
const HealthOK uint16 = 1

// HealthError represents a device error state.
const HealthError uint16 = 2

// HealthWarning means the device answers but raises warning flags.
const HealthWarning uint16 = 3

// ---- ERROR CODES ----

// ErrorCodeGeneric is used when an error carries no code of its own.
const ErrorCodeGeneric uint16 = 1

// ErrorCodeNoResponse is used for transport silence.
const ErrorCodeNoResponse uint16 = 0xFFFF

// SecondsInErrorMax caps SecondsInError; the counter never wraps.
const SecondsInErrorMax uint16 = 65535

func HealthName(h uint16) string {
	switch h {
	case HealthUnknown:
		return "unknown"
	case HealthOK:
		return "ok"
	case HealthError:
		return "error"
	case HealthWarning:
		return "warning"
	default:
		return "invalid"
	}
}
