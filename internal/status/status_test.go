// internal/status/status_test.go
package status

import (
	"errors"
	"fmt"
	"testing"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/oxy-lc/internal/codec"
	"github.com/tamzrod/oxy-lc/internal/device"
	"github.com/tamzrod/oxy-lc/internal/transport"
)

func TestTracker_ErrorThenRecovery(t *testing.T) {
	tr := NewTracker()

	if tr.Snapshot().Health != HealthUnknown {
		t.Fatalf("expected unknown on start")
	}

	if !tr.Observe(device.Telemetry{}, errors.New("boom")) {
		t.Fatalf("error should change snapshot")
	}
	if got := tr.Snapshot(); got.Health != HealthError || got.LastErrorCode != ErrorCodeGeneric {
		t.Fatalf("unexpected snapshot %+v", got)
	}

	tr.Tick()
	tr.Tick()
	if got := tr.Snapshot().SecondsInError; got != 2 {
		t.Fatalf("seconds_in_error=%d want=2", got)
	}

	if tr.Observe(device.Telemetry{}, errors.New("boom")) {
		t.Fatalf("same error should not change snapshot")
	}

	if !tr.Observe(device.Telemetry{}, nil) {
		t.Fatalf("recovery should change snapshot")
	}
	if got := tr.Snapshot(); got != (Snapshot{Health: HealthOK}) {
		t.Fatalf("seconds_in_error not reset: %+v", got)
	}
	if tr.Tick() {
		t.Fatalf("tick must not advance while healthy")
	}
}

func TestTracker_Warnings(t *testing.T) {
	tr := NewTracker()
	tel := device.Telemetry{Warnings: codec.DecodeWarnings(1 << uint(codec.PumpError))}

	tr.Observe(tel, nil)
	if tr.Snapshot().Health != HealthWarning {
		t.Fatalf("health=%s want warning", HealthName(tr.Snapshot().Health))
	}
}

func TestTracker_SecondsInErrorDoesNotWrap(t *testing.T) {
	tr := NewTracker()
	tr.Observe(device.Telemetry{}, errors.New("boom"))
	tr.snap.SecondsInError = SecondsInErrorMax

	if tr.Tick() {
		t.Fatalf("tick at max must not change snapshot")
	}
	if tr.Snapshot().SecondsInError != SecondsInErrorMax {
		t.Fatalf("seconds_in_error wrapped")
	}
}

func TestErrorCode(t *testing.T) {
	if ErrorCode(nil) != 0 {
		t.Fatalf("nil error must be 0")
	}
	exc := fmt.Errorf("wrapped: %w", &modbus.ModbusError{FunctionCode: 0x84, ExceptionCode: 2})
	if got := ErrorCode(exc); got != 2 {
		t.Fatalf("exception code=%d want=2", got)
	}
	silent := fmt.Errorf("read: %w", transport.ErrNoResponse)
	if got := ErrorCode(silent); got != ErrorCodeNoResponse {
		t.Fatalf("no-response code=%d want=%d", got, ErrorCodeNoResponse)
	}
}
