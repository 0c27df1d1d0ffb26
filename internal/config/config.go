// internal/config/config.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Device      DeviceConfig      `yaml:"device"`
	Heater      HeaterConfig      `yaml:"heater"`
	Calibration CalibrationConfig `yaml:"calibration"`
	Monitor     MonitorConfig     `yaml:"monitor"`
	Log         LogConfig         `yaml:"log"`
}

// ---- DEVICE (serial line) ----

type DeviceConfig struct {
	Port      string `yaml:"port"`
	SlaveID   uint8  `yaml:"slave_id"`
	BaudRate  int    `yaml:"baud_rate"`
	DataBits  int    `yaml:"data_bits"`
	Parity    string `yaml:"parity"` // N, E, O
	StopBits  int    `yaml:"stop_bits"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

func (d DeviceConfig) Timeout() time.Duration {
	return time.Duration(d.TimeoutMs) * time.Millisecond
}

// ---- HEATER ----

type HeaterConfig struct {
	SettleMs *int `yaml:"settle_ms"` // nil = default, 0 = no wait
}

func (h HeaterConfig) Settle() time.Duration {
	if h.SettleMs == nil {
		return DefaultHeaterSettleMs * time.Millisecond
	}
	return time.Duration(*h.SettleMs) * time.Millisecond
}

// ---- CALIBRATION ----

type CalibrationConfig struct {
	Timeout     int    `yaml:"timeout"` // poll iterations
	IntervalMs  int    `yaml:"interval_ms"`
	OnPollError string `yaml:"on_poll_error"` // abort, continue
}

func (c CalibrationConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

// ---- MONITOR ----

type MonitorConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

func (m MonitorConfig) Interval() time.Duration {
	return time.Duration(m.IntervalMs) * time.Millisecond
}

// ---- LOG ----

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a YAML file. Missing fields stay zero until Normalize.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(b)
}

// Parse decodes YAML bytes. Unknown keys are rejected; an empty document
// yields a zero Config.
func Parse(b []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return &cfg, nil
}
