// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/oxy-lc/internal/device"
)

// PollResult is a snapshot produced by one poll cycle.
type PollResult struct {
	At        time.Time
	Telemetry device.Telemetry
	Err       error // non-nil means the poll cycle failed
}
