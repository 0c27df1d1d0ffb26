// internal/config/normalize.go
package config

import "strings"

// Defaults.
const (
	DefaultSlaveID            = 1
	DefaultBaudRate           = 9600
	DefaultDataBits           = 8
	DefaultParity             = "N"
	DefaultStopBits           = 1
	DefaultTimeoutMs          = 1000
	DefaultHeaterSettleMs     = 2000
	DefaultCalibrationTimeout = 5
	DefaultCalibrationMs      = 1000
	DefaultMonitorMs          = 2000
	DefaultLogLevel           = "info"
)

// Normalize fills zero fields with defaults.
// It is allowed to mutate configuration.
// It MUST be called before Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	d := &cfg.Device
	if d.SlaveID == 0 {
		d.SlaveID = DefaultSlaveID
	}
	if d.BaudRate == 0 {
		d.BaudRate = DefaultBaudRate
	}
	if d.DataBits == 0 {
		d.DataBits = DefaultDataBits
	}
	d.Parity = strings.ToUpper(strings.TrimSpace(d.Parity))
	if d.Parity == "" {
		d.Parity = DefaultParity
	}
	if d.StopBits == 0 {
		d.StopBits = DefaultStopBits
	}
	if d.TimeoutMs == 0 {
		d.TimeoutMs = DefaultTimeoutMs
	}

	if cfg.Heater.SettleMs == nil {
		settle := DefaultHeaterSettleMs
		cfg.Heater.SettleMs = &settle
	}

	c := &cfg.Calibration
	if c.Timeout == 0 {
		c.Timeout = DefaultCalibrationTimeout
	}
	if c.IntervalMs == 0 {
		c.IntervalMs = DefaultCalibrationMs
	}
	c.OnPollError = strings.ToLower(strings.TrimSpace(c.OnPollError))
	if c.OnPollError == "" {
		c.OnPollError = "abort"
	}

	if cfg.Monitor.IntervalMs == 0 {
		cfg.Monitor.IntervalMs = DefaultMonitorMs
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}
