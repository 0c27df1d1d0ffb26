// internal/device/snapshot.go
package device

import (
	"context"
	"time"

	"github.com/tamzrod/oxy-lc/internal/codec"
)

// Telemetry is one pass over the live input registers.
// Values are recomputed on every read; nothing is cached.
type Telemetry struct {
	At time.Time

	Status   codec.SystemStatus
	Warnings codec.WarningSet

	O2Average     float64 // %
	O2Raw         float64 // %
	Asymmetry     float64
	HeaterVoltage float64 // V

	TDAverage float64 // ms
	TDRaw     float64 // ms
	TP        float64 // ms
	T1        float64 // ms
	T2        float64 // ms
	T4        float64 // ms
	T5        float64 // ms

	PPO2Real float64
	PPO2Raw  float64

	Pressure          int // mbar
	PressureSensTempC int

	CalibrationStatus codec.CalibrationStatus
}

// ReadTelemetry performs one read per live register.
// All-or-nothing: the first failure aborts the pass.
func (d *Device) ReadTelemetry() (Telemetry, error) {
	t := Telemetry{At: time.Now()}
	var err error

	if t.Status, err = d.Status(); err != nil {
		return Telemetry{}, err
	}
	if t.Warnings, err = d.Warnings(); err != nil {
		return Telemetry{}, err
	}

	scaled := []struct {
		dst  *float64
		read func() (float64, error)
	}{
		{&t.O2Average, d.O2Average},
		{&t.O2Raw, d.O2Raw},
		{&t.Asymmetry, d.Asymmetry},
		{&t.HeaterVoltage, d.HeaterVoltage},
		{&t.TDAverage, d.TDAverage},
		{&t.TDRaw, d.TDRaw},
		{&t.TP, d.TP},
		{&t.T1, d.T1},
		{&t.T2, d.T2},
		{&t.T4, d.T4},
		{&t.T5, d.T5},
		{&t.PPO2Real, d.PPO2Real},
		{&t.PPO2Raw, d.PPO2Raw},
	}
	for _, s := range scaled {
		if *s.dst, err = s.read(); err != nil {
			return Telemetry{}, err
		}
	}

	if t.Pressure, err = d.Pressure(); err != nil {
		return Telemetry{}, err
	}
	if t.PressureSensTempC, err = d.PressureSensorTemperature(); err != nil {
		return Telemetry{}, err
	}
	if t.CalibrationStatus, err = d.CalibrationStatus(); err != nil {
		return Telemetry{}, err
	}

	return t, nil
}

// Identity is the factory information of the instrument.
type Identity struct {
	YearOfManufacture int
	DayOfManufacture  int
	SerialNumber      int
	SoftwareRevision  int
}

func (d *Device) ReadIdentity() (Identity, error) {
	var (
		id  Identity
		err error
	)
	if id.YearOfManufacture, err = d.YearOfManufacture(); err != nil {
		return Identity{}, err
	}
	if id.DayOfManufacture, err = d.DayOfManufacture(); err != nil {
		return Identity{}, err
	}
	if id.SerialNumber, err = d.SerialNumber(); err != nil {
		return Identity{}, err
	}
	if id.SoftwareRevision, err = d.SoftwareRevision(); err != nil {
		return Identity{}, err
	}
	return id, nil
}

// WaitForOperating polls the system status every interval while the device
// is starting up. It returns the first status that is not StartUp.
func (d *Device) WaitForOperating(ctx context.Context, interval time.Duration) (codec.SystemStatus, error) {
	for {
		s, err := d.Status()
		if err != nil {
			return 0, err
		}
		if s != codec.StatusStartUp {
			return s, nil
		}
		d.log.WithField("status", s.String()).Debug("waiting for device start-up")
		if err := d.sleep(ctx, interval); err != nil {
			return s, err
		}
	}
}
