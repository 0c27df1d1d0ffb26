// internal/status/snapshot.go
package status

import (
	"errors"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/oxy-lc/internal/device"
	"github.com/tamzrod/oxy-lc/internal/transport"
)

// Snapshot is the current health of one device.
// It contains no memory of the past beyond current state.
type Snapshot struct {
	Health         uint16
	LastErrorCode  uint16
	SecondsInError uint16
}

// Tracker folds poll outcomes into a Snapshot.
// Observe and Tick report whether the snapshot changed.
type Tracker struct {
	snap Snapshot
}

func NewTracker() *Tracker {
	return &Tracker{snap: Snapshot{Health: HealthUnknown}}
}

func (t *Tracker) Snapshot() Snapshot { return t.snap }

// Observe records one poll outcome.
func (t *Tracker) Observe(tel device.Telemetry, err error) bool {
	prev := t.snap

	if err != nil {
		t.snap.Health = HealthError
		t.snap.LastErrorCode = ErrorCode(err)
		// seconds_in_error increments on Tick only
		return t.snap != prev
	}

	// Recovery / OK
	if tel.Warnings.Any() {
		t.snap.Health = HealthWarning
	} else {
		t.snap.Health = HealthOK
	}
	t.snap.LastErrorCode = 0
	t.snap.SecondsInError = 0
	return t.snap != prev
}

// Tick advances SecondsInError by one while the device is in error.
func (t *Tracker) Tick() bool {
	if t.snap.Health != HealthError {
		return false
	}
	if t.snap.SecondsInError >= SecondsInErrorMax {
		return false
	}
	t.snap.SecondsInError++
	return true
}

// ErrorCode extracts a best-effort uint16 code from an error.
// Modbus exceptions yield their exception code; silence yields
// ErrorCodeNoResponse; anything else ErrorCodeGeneric.
func ErrorCode(err error) uint16 {
	if err == nil {
		return 0
	}

	var mbErr *modbus.ModbusError
	if errors.As(err, &mbErr) {
		return uint16(mbErr.ExceptionCode)
	}
	if errors.Is(err, transport.ErrNoResponse) {
		return ErrorCodeNoResponse
	}

	type coder interface{ Code() uint16 }
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}

	return ErrorCodeGeneric
}
