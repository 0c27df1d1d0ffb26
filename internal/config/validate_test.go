// internal/config/validate_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

// helper to build a normalized config quickly
func valid() *Config {
	cfg := &Config{Device: DeviceConfig{Port: "/dev/ttyUSB0"}}
	Normalize(cfg)
	return cfg
}

// ---- tests ----

func TestNormalize_Defaults(t *testing.T) {
	cfg := valid()

	if cfg.Device.SlaveID != 1 || cfg.Device.BaudRate != 9600 || cfg.Device.Parity != "N" {
		t.Fatalf("unexpected device defaults: %+v", cfg.Device)
	}
	if cfg.Calibration.Timeout != 5 || cfg.Calibration.IntervalMs != 1000 {
		t.Fatalf("unexpected calibration defaults: %+v", cfg.Calibration)
	}
	if cfg.Calibration.OnPollError != "abort" {
		t.Fatalf("on_poll_error default=%q want abort", cfg.Calibration.OnPollError)
	}
	if cfg.Heater.SettleMs == nil || *cfg.Heater.SettleMs != 2000 {
		t.Fatalf("settle default=%v want 2000", cfg.Heater.SettleMs)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_PortRequired(t *testing.T) {
	cfg := valid()
	cfg.Device.Port = ""

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected port error, got nil")
	}
}

func TestValidate_SlaveIDRange(t *testing.T) {
	for _, id := range []uint8{0, 248, 255} {
		cfg := valid()
		cfg.Device.SlaveID = id
		if err := Validate(cfg); err == nil {
			t.Fatalf("slave_id=%d: expected error, got nil", id)
		}
	}
	for _, id := range []uint8{1, 247} {
		cfg := valid()
		cfg.Device.SlaveID = id
		if err := Validate(cfg); err != nil {
			t.Fatalf("slave_id=%d: unexpected error: %v", id, err)
		}
	}
}

func TestValidate_SerialSettings(t *testing.T) {
	mutations := map[string]func(*Config){
		"baud":      func(c *Config) { c.Device.BaudRate = 1200 },
		"data bits": func(c *Config) { c.Device.DataBits = 9 },
		"parity":    func(c *Config) { c.Device.Parity = "X" },
		"stop bits": func(c *Config) { c.Device.StopBits = 3 },
		"timeout":   func(c *Config) { c.Device.TimeoutMs = -1 },
		"policy":    func(c *Config) { c.Calibration.OnPollError = "retry" },
		"cal iters": func(c *Config) { c.Calibration.Timeout = -2 },
		"monitor":   func(c *Config) { c.Monitor.IntervalMs = -1 },
	}
	for name, mutate := range mutations {
		cfg := valid()
		mutate(cfg)
		if err := Validate(cfg); err == nil {
			t.Fatalf("%s: expected error, got nil", name)
		}
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	cfg := valid()
	before := *cfg
	_ = Validate(cfg)
	if *cfg != before {
		t.Fatalf("Validate mutated config")
	}
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "oxylc.yaml")
	doc := []byte(`
device:
  port: /dev/ttyUSB1
  slave_id: 12
  parity: e
calibration:
  timeout: 8
  on_poll_error: Continue
monitor:
  interval_ms: 500
`)
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	Normalize(cfg)
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate err=%v", err)
	}

	if cfg.Device.Port != "/dev/ttyUSB1" || cfg.Device.SlaveID != 12 || cfg.Device.Parity != "E" {
		t.Fatalf("unexpected device: %+v", cfg.Device)
	}
	if cfg.Calibration.Timeout != 8 || cfg.Calibration.OnPollError != "continue" {
		t.Fatalf("unexpected calibration: %+v", cfg.Calibration)
	}
	if cfg.Monitor.Interval().Milliseconds() != 500 {
		t.Fatalf("monitor interval=%v", cfg.Monitor.Interval())
	}
}

func TestNormalize_ZeroSettleIsKept(t *testing.T) {
	cfg, err := Parse([]byte("device:\n  port: /dev/ttyUSB0\nheater:\n  settle_ms: 0\n"))
	if err != nil {
		t.Fatalf("Parse err=%v", err)
	}
	Normalize(cfg)
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate err=%v", err)
	}
	if cfg.Heater.Settle() != 0 {
		t.Fatalf("settle=%v want 0", cfg.Heater.Settle())
	}

	neg := -5
	cfg.Heater.SettleMs = &neg
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected negative settle error, got nil")
	}
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	if _, err := Parse([]byte("device:\n  prot: /dev/ttyUSB0\n")); err == nil {
		t.Fatalf("expected unknown field error, got nil")
	}
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Device.Port != "" {
		t.Fatalf("expected zero config")
	}
}
