// internal/device/accessors.go
package device

import (
	"context"

	"github.com/pkg/errors"

	"github.com/tamzrod/oxy-lc/internal/codec"
	"github.com/tamzrod/oxy-lc/internal/register"
	"github.com/tamzrod/oxy-lc/internal/transport"
)

// ---- live readings (input registers, FC 4) ----

// O2Average is the averaged O2 reading in percent.
func (d *Device) O2Average() (float64, error) {
	return d.readScaled(register.O2Average, codec.ScaleHundredths)
}

// O2Raw is the unaveraged O2 reading in percent.
func (d *Device) O2Raw() (float64, error) {
	return d.readScaled(register.O2Raw, codec.ScaleHundredths)
}

func (d *Device) Asymmetry() (float64, error) {
	return d.readScaled(register.Asymmetry, codec.ScaleThousandths)
}

func (d *Device) Status() (codec.SystemStatus, error) {
	return decodeWith(d, register.SystemStatus, codec.DecodeSystemStatus)
}

func (d *Device) Warnings() (codec.WarningSet, error) {
	raw, err := d.ReadRaw(register.Warnings)
	if err != nil {
		return codec.WarningSet{}, err
	}
	return codec.DecodeWarnings(raw), nil
}

// HeaterVoltage is the measured heater voltage in volts. It does not
// touch the heater option register; see ApplyHeaterVoltage.
func (d *Device) HeaterVoltage() (float64, error) {
	return d.readScaled(register.HeaterVoltage, codec.ScaleHundredths)
}

// Durations in milliseconds.

func (d *Device) TDAverage() (float64, error) {
	return d.readScaled(register.TDAverage, codec.ScaleTenths)
}

func (d *Device) TDRaw() (float64, error) {
	return d.readScaled(register.TDRaw, codec.ScaleTenths)
}

func (d *Device) TP() (float64, error) {
	return d.readScaled(register.TP, codec.ScaleTenths)
}

func (d *Device) T1() (float64, error) {
	return d.readScaled(register.T1, codec.ScaleTenths)
}

func (d *Device) T2() (float64, error) {
	return d.readScaled(register.T2, codec.ScaleTenths)
}

func (d *Device) T4() (float64, error) {
	return d.readScaled(register.T4, codec.ScaleTenths)
}

func (d *Device) T5() (float64, error) {
	return d.readScaled(register.T5, codec.ScaleTenths)
}

func (d *Device) PPO2Real() (float64, error) {
	return d.readScaled(register.PPO2Real, codec.ScaleTenths)
}

func (d *Device) PPO2Raw() (float64, error) {
	return d.readScaled(register.PPO2Raw, codec.ScaleTenths)
}

// Pressure in mbar.
func (d *Device) Pressure() (int, error) { return d.readInt(register.Pressure) }

// PressureSensorTemperature in °C, signed.
func (d *Device) PressureSensorTemperature() (int, error) {
	raw, err := d.ReadRaw(register.PressureSensTemp)
	if err != nil {
		return 0, err
	}
	return codec.DecodeTemperature(raw), nil
}

func (d *Device) CalibrationStatus() (codec.CalibrationStatus, error) {
	return decodeWith(d, register.CalibrationStatus, codec.DecodeCalibrationStatus)
}

func (d *Device) YearOfManufacture() (int, error) { return d.readInt(register.YOM) }
func (d *Device) DayOfManufacture() (int, error)  { return d.readInt(register.DOM) }
func (d *Device) SerialNumber() (int, error)      { return d.readInt(register.SerialNo) }
func (d *Device) SoftwareRevision() (int, error)  { return d.readInt(register.SoftwareRev) }

// ---- settings (holding registers, FC 3 / FC 6) ----

func (d *Device) SensorState() (codec.SensorState, error) {
	return decodeWith(d, register.SensorState, codec.DecodeSensorState)
}

func (d *Device) SetSensorState(s codec.SensorState) error {
	return d.writeEnum(register.SensorState, s.Valid(), "sensor state", s.Raw())
}

// ClearErrorFlags resets latched warning/error flags on the device.
func (d *Device) ClearErrorFlags() error {
	return d.WriteRaw(register.ClearFlags, 1)
}

// ClearFlags reads CLEAR_FLAGS back; the firmware returns it to 0 once done.
func (d *Device) ClearFlags() (uint16, error) {
	return d.ReadRaw(register.ClearFlags)
}

// ShutdownDelay is passed through untouched; the firmware defines its unit.
func (d *Device) ShutdownDelay() (uint16, error) {
	return d.ReadRaw(register.ShutdownDelay)
}

func (d *Device) SetShutdownDelay(v uint16) error {
	return d.WriteRaw(register.ShutdownDelay, v)
}

func (d *Device) CalibrationControl() (codec.CalibrationControl, error) {
	return decodeWith(d, register.CalibrationControl, codec.DecodeCalibrationControl)
}

func (d *Device) SetCalibrationControl(c codec.CalibrationControl) error {
	return d.writeEnum(register.CalibrationControl, c.Valid(), "calibration control", c.Raw())
}

// CalibrationPercent is the stored calibration gas percentage.
func (d *Device) CalibrationPercent() (float64, error) {
	return d.readScaled(register.CalibrationPercent, codec.ScaleHundredths)
}

// SetCalibrationPercent writes a target in [0, 100]. Out-of-range values
// return *codec.OutOfRangeError with no write.
func (d *Device) SetCalibrationPercent(v float64) error {
	raw, err := codec.EncodeCalibrationPercent(v)
	if err != nil {
		return err
	}
	return d.WriteRaw(register.CalibrationPercent, raw)
}

func (d *Device) Address() (int, error) { return d.readInt(register.Address) }

// SetAddress writes a new slave address in [1, 247]. It takes effect after
// ApplyRS485Setup.
func (d *Device) SetAddress(addr int) error {
	raw, err := codec.EncodeAddress(addr)
	if err != nil {
		return err
	}
	return d.WriteRaw(register.Address, raw)
}

func (d *Device) Baud() (codec.BaudRate, error) {
	return decodeWith(d, register.Baud, codec.DecodeBaudRate)
}

func (d *Device) SetBaud(b codec.BaudRate) error {
	return d.writeEnum(register.Baud, b.Valid(), "baud rate", b.Raw())
}

func (d *Device) Parity() (codec.Parity, error) {
	return decodeWith(d, register.Parity, codec.DecodeParity)
}

func (d *Device) SetParity(p codec.Parity) error {
	return d.writeEnum(register.Parity, p.Valid(), "parity", p.Raw())
}

func (d *Device) StopBits() (codec.StopBits, error) {
	return decodeWith(d, register.StopBits, codec.DecodeStopBits)
}

func (d *Device) SetStopBits(s codec.StopBits) error {
	return d.writeEnum(register.StopBits, s.Valid(), "stop bits", s.Raw())
}

// ApplyRS485Setup commits address, baud, parity and stop bits.
func (d *Device) ApplyRS485Setup() error {
	return d.WriteRaw(register.RS485SetupSave, codec.ApplyNow.Raw())
}

// RS485SetupSave reads the serial setup apply register.
func (d *Device) RS485SetupSave() (codec.Apply, error) {
	return decodeWith(d, register.RS485SetupSave, codec.DecodeApply)
}

func (d *Device) HeaterVoltageSave() (codec.Apply, error) {
	return decodeWith(d, register.HeaterVoltageSave, codec.DecodeApply)
}

// HeaterOption reads the configured heater option (holding register).
func (d *Device) HeaterOption() (codec.HeaterOption, error) {
	return decodeWith(d, register.HeaterOption, codec.DecodeHeaterOption)
}

// SetHeaterOption writes the heater option only. The device keeps running
// the previous voltage until SaveHeaterVoltage.
func (d *Device) SetHeaterOption(opt codec.HeaterOption) error {
	return d.writeEnum(register.HeaterOption, opt.Valid(), "heater option", opt.Raw())
}

// SaveHeaterVoltage applies the stored heater option and switches the
// sensor on. Two writes:
//
//	HEATER_VOLTAGE_SAVE := Apply   (device may not answer)
//	SENSOR_STATE        := On
//
// The device restarts its communication stack on apply, so a no-response
// on the save write counts as success after the settle delay.
func (d *Device) SaveHeaterVoltage(ctx context.Context) error {
	err := d.WriteRaw(register.HeaterVoltageSave, codec.ApplyNow.Raw())
	switch {
	case err == nil:
	case errors.Is(err, transport.ErrNoResponse):
		d.log.Info("heater save not acknowledged, waiting for device to settle")
		if err := d.sleep(ctx, d.settle); err != nil {
			return err
		}
	default:
		return err
	}

	return d.SetSensorState(codec.SensorOn)
}

// ApplyHeaterVoltage is SetHeaterOption followed by SaveHeaterVoltage.
func (d *Device) ApplyHeaterVoltage(ctx context.Context, opt codec.HeaterOption) error {
	if err := d.SetHeaterOption(opt); err != nil {
		return err
	}
	d.log.WithField("option", opt.String()).Debug("heater option written")
	return d.SaveHeaterVoltage(ctx)
}
