// internal/config/validate.go
package config

import (
	"errors"
	"fmt"

	"github.com/tamzrod/oxy-lc/internal/calibration"
	"github.com/tamzrod/oxy-lc/internal/codec"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil")
	}

	// ------------------------------------------------------------
	// SERIAL LINE
	// ------------------------------------------------------------

	d := cfg.Device
	if d.Port == "" {
		return errors.New("device.port is required")
	}
	if d.SlaveID < codec.AddressMin || d.SlaveID > codec.AddressMax {
		return fmt.Errorf("device.slave_id %d out of range [%d, %d]", d.SlaveID, codec.AddressMin, codec.AddressMax)
	}
	if _, err := codec.BaudRateFor(d.BaudRate); err != nil {
		return fmt.Errorf("device.baud_rate: %w", err)
	}
	if d.DataBits != 7 && d.DataBits != 8 {
		return fmt.Errorf("device.data_bits must be 7 or 8, got %d", d.DataBits)
	}
	switch d.Parity {
	case "N", "E", "O":
	default:
		return fmt.Errorf("device.parity must be N, E or O, got %q", d.Parity)
	}
	if d.StopBits != 1 && d.StopBits != 2 {
		return fmt.Errorf("device.stop_bits must be 1 or 2, got %d", d.StopBits)
	}
	if d.TimeoutMs <= 0 {
		return fmt.Errorf("device.timeout_ms must be > 0, got %d", d.TimeoutMs)
	}

	// ------------------------------------------------------------
	// TIMINGS
	// ------------------------------------------------------------

	if s := cfg.Heater.SettleMs; s != nil && *s < 0 {
		return fmt.Errorf("heater.settle_ms must be >= 0, got %d", *s)
	}
	if cfg.Calibration.Timeout <= 0 {
		return fmt.Errorf("calibration.timeout must be > 0, got %d", cfg.Calibration.Timeout)
	}
	if cfg.Calibration.IntervalMs <= 0 {
		return fmt.Errorf("calibration.interval_ms must be > 0, got %d", cfg.Calibration.IntervalMs)
	}
	if _, err := calibration.ParsePollErrorPolicy(cfg.Calibration.OnPollError); err != nil {
		return fmt.Errorf("calibration.on_poll_error: %w", err)
	}
	if cfg.Monitor.IntervalMs <= 0 {
		return fmt.Errorf("monitor.interval_ms must be > 0, got %d", cfg.Monitor.IntervalMs)
	}

	return nil
}
