// internal/poller/poller.go
package poller

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/oxy-lc/internal/device"
)

// Reader abstracts the device operation the poller needs.
type Reader interface {
	ReadTelemetry() (device.Telemetry, error)
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	Interval time.Duration
}

// Poller is a dumb, clock-driven reader.
type Poller struct {
	cfg    Config
	reader Reader
	now    func() time.Time
}

// New creates a poller with immutable config.
func New(cfg Config, reader Reader) (*Poller, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if reader == nil {
		return nil, errors.New("poller: reader required")
	}
	return &Poller{cfg: cfg, reader: reader, now: time.Now}, nil
}

// PollOnce performs exactly one poll cycle.
// All-or-nothing: any failure aborts the cycle.
func (p *Poller) PollOnce() PollResult {
	res := PollResult{At: p.now()}

	t, err := p.reader.ReadTelemetry()
	if err != nil {
		res.Err = err
		logrus.WithError(err).Debug("poll failed")
		return res
	}

	// Commit only if all reads succeeded
	res.Telemetry = t
	return res
}
