// internal/calibration/calibration.go
package calibration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/oxy-lc/internal/codec"
	"github.com/tamzrod/oxy-lc/internal/device"
)

// ErrNotOperating is returned when the device is not in Operating status.
// No register is written in that case.
var ErrNotOperating = errors.New("calibration: device not operating")

const (
	DefaultTimeout  = 5
	DefaultInterval = time.Second
)

// Device is what the state machine needs from the facade.
type Device interface {
	Status() (codec.SystemStatus, error)
	SetCalibrationPercent(v float64) error
	SetCalibrationControl(c codec.CalibrationControl) error
	CalibrationStatus() (codec.CalibrationStatus, error)
}

var _ Device = (*device.Device)(nil)

// PollErrorPolicy decides what a transport error during polling means.
type PollErrorPolicy uint8

const (
	// PollErrorAbort stops polling, resets control and returns the error.
	PollErrorAbort PollErrorPolicy = iota
	// PollErrorContinue counts the failed poll as not completed.
	PollErrorContinue
)

func (p PollErrorPolicy) String() string {
	switch p {
	case PollErrorAbort:
		return "abort"
	case PollErrorContinue:
		return "continue"
	default:
		return fmt.Sprintf("policy(%d)", uint8(p))
	}
}

// ParsePollErrorPolicy accepts "abort" or "continue"; empty means abort.
func ParsePollErrorPolicy(s string) (PollErrorPolicy, error) {
	switch s {
	case "", "abort":
		return PollErrorAbort, nil
	case "continue":
		return PollErrorContinue, nil
	default:
		return 0, fmt.Errorf("calibration: unknown poll error policy %q", s)
	}
}

// Config bounds one calibration session.
type Config struct {
	Timeout     int           // poll iterations
	Interval    time.Duration // wait before each poll
	OnPollError PollErrorPolicy
	Sleep       device.SleepFunc
	Log         *logrus.Entry
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.Sleep == nil {
		c.Sleep = device.Sleep
	}
	if c.Log == nil {
		c.Log = logrus.WithField("component", "calibration")
	}
	return c
}

// DefaultConfig is five one-second polls, aborting on poll errors.
func DefaultConfig() Config {
	return Config{Timeout: DefaultTimeout, Interval: DefaultInterval}
}

// State is the position of a session in the sequence.
type State uint8

const (
	StateIdle State = iota
	StateActivated
	StatePolling
	StateCompleted
	StateTimedOut
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActivated:
		return "activated"
	case StatePolling:
		return "polling"
	case StateCompleted:
		return "completed"
	case StateTimedOut:
		return "timed-out"
	case StateAborted:
		return "aborted"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Session is the ephemeral state of one Run. It is not persisted.
type Session struct {
	Target  *float64
	Timeout int
	Polls   int
	State   State
}

// Calibrator runs calibration sessions against one device.
// Sessions must not overlap on the same device.
type Calibrator struct {
	dev Device
	cfg Config
}

func New(dev Device, cfg Config) *Calibrator {
	return &Calibrator{dev: dev, cfg: cfg.withDefaults()}
}

// Run calibrates to target (nil keeps the stored calibration percent).
//
// The boolean is the outcome: true when CalibrationStatus reached Completed
// within cfg.Timeout polls, false on timeout. A timeout is not an error.
// Errors are precondition, validation, transport or cancellation failures.
// Once Activate has been written, Reset is always written on the way out.
func (c *Calibrator) Run(ctx context.Context, target *float64) (bool, error) {
	s, err := c.run(ctx, target)
	return s.State == StateCompleted, err
}

// RunSession is Run returning the final session state.
func (c *Calibrator) RunSession(ctx context.Context, target *float64) (Session, error) {
	return c.run(ctx, target)
}

func (c *Calibrator) run(ctx context.Context, target *float64) (s Session, err error) {
	s = Session{Target: target, Timeout: c.cfg.Timeout, State: StateIdle}
	log := c.cfg.Log

	status, err := c.dev.Status()
	if err != nil {
		return s, err
	}
	if status != codec.StatusOperating {
		log.WithField("status", status.String()).Warn("calibration refused, sensor must be operating")
		return s, fmt.Errorf("%w (status %s)", ErrNotOperating, status)
	}

	if target != nil {
		if err := c.dev.SetCalibrationPercent(*target); err != nil {
			return s, err
		}
	}

	if err := c.dev.SetCalibrationControl(codec.CalibrationActivate); err != nil {
		return s, err
	}
	s.State = StateActivated
	log.Debug("calibration activated")

	defer func() {
		if rerr := c.dev.SetCalibrationControl(codec.CalibrationReset); rerr != nil {
			log.WithError(rerr).Error("calibration reset failed")
			if err == nil {
				err = rerr
			}
		}
	}()

	s.State = StatePolling
	for s.Polls < c.cfg.Timeout {
		if werr := c.cfg.Sleep(ctx, c.cfg.Interval); werr != nil {
			s.State = StateAborted
			return s, werr
		}
		s.Polls++

		cs, perr := c.dev.CalibrationStatus()
		if perr != nil {
			if c.cfg.OnPollError == PollErrorContinue {
				log.WithError(perr).WithField("poll", s.Polls).Debug("calibration poll failed, continuing")
				continue
			}
			s.State = StateAborted
			return s, perr
		}

		log.WithFields(logrus.Fields{
			"poll":   s.Polls,
			"status": cs.String(),
		}).Debug("calibration poll")

		if cs == codec.CalibrationCompleted {
			s.State = StateCompleted
			log.WithField("polls", s.Polls).Info("calibration completed")
			return s, nil
		}
	}

	s.State = StateTimedOut
	log.WithField("polls", s.Polls).Warn("calibration timeout")
	return s, nil
}

// Calibrate runs one session with cfg.
func Calibrate(ctx context.Context, dev Device, target *float64, cfg Config) (bool, error) {
	return New(dev, cfg).Run(ctx, target)
}
