// internal/device/device.go
package device

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tamzrod/oxy-lc/internal/codec"
	"github.com/tamzrod/oxy-lc/internal/register"
	"github.com/tamzrod/oxy-lc/internal/transport"
)

// DefaultSettleDelay is how long the device needs after HEATER_VOLTAGE_SAVE
// before it answers again.
const DefaultSettleDelay = 2 * time.Second

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the wall-clock SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Device is the typed facade over one oxygen sensor.
// It owns its transport exclusively and performs no retries.
// Calls must not overlap; Device does no locking of its own.
type Device struct {
	tr     transport.Transport
	settle time.Duration
	sleep  SleepFunc
	log    *logrus.Entry
}

// Option configures a Device.
type Option func(*Device)

// WithSettleDelay overrides DefaultSettleDelay.
func WithSettleDelay(d time.Duration) Option {
	return func(dev *Device) { dev.settle = d }
}

// WithSleep replaces the wall-clock wait, mainly for tests.
func WithSleep(fn SleepFunc) Option {
	return func(dev *Device) {
		if fn != nil {
			dev.sleep = fn
		}
	}
}

// WithLogger sets the log entry used for device events.
func WithLogger(l *logrus.Entry) Option {
	return func(dev *Device) {
		if l != nil {
			dev.log = l
		}
	}
}

// New wraps tr. tr must not be shared with another Device.
func New(tr transport.Transport, opts ...Option) *Device {
	d := &Device{
		tr:     tr,
		settle: DefaultSettleDelay,
		sleep:  Sleep,
		log:    logrus.WithField("component", "device"),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// ---- raw access ----

// ReadRaw issues one read at the register's address and function code.
func (d *Device) ReadRaw(name register.Name) (uint16, error) {
	desc, err := register.Lookup(name)
	if err != nil {
		return 0, err
	}
	raw, err := d.tr.ReadRegister(desc.Address, uint8(desc.ReadFC))
	if err != nil {
		return 0, errors.Wrapf(err, "device: read %s", name)
	}
	return raw, nil
}

// WriteRaw issues one FC 6 write. Input registers are rejected before any I/O.
func (d *Device) WriteRaw(name register.Name, value uint16) error {
	desc, err := register.Lookup(name)
	if err != nil {
		return err
	}
	if !desc.Writable() {
		return errors.Errorf("device: %s is a read-only %s register", name, desc.Class)
	}
	if err := d.tr.WriteRegister(desc.Address, value); err != nil {
		return errors.Wrapf(err, "device: write %s", name)
	}
	return nil
}

func (d *Device) readScaled(name register.Name, s codec.Scale) (float64, error) {
	raw, err := d.ReadRaw(name)
	if err != nil {
		return 0, err
	}
	return s.Decode(raw), nil
}

func (d *Device) readInt(name register.Name) (int, error) {
	raw, err := d.ReadRaw(name)
	if err != nil {
		return 0, err
	}
	return int(raw), nil
}

func decodeWith[T any](d *Device, name register.Name, decode func(uint16) (T, error)) (T, error) {
	var zero T
	raw, err := d.ReadRaw(name)
	if err != nil {
		return zero, err
	}
	v, err := decode(raw)
	if err != nil {
		return zero, errors.Wrapf(err, "device: decode %s", name)
	}
	return v, nil
}

// writeEnum validates an enum value before it reaches the wire.
func (d *Device) writeEnum(name register.Name, valid bool, enum string, raw uint16) error {
	if !valid {
		return &codec.InvalidEnumValueError{Enum: enum, Raw: raw}
	}
	return d.WriteRaw(name, raw)
}
