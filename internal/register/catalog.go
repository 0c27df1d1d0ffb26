// internal/register/catalog.go
package register

// Name is the symbolic register identifier.
type Name string

// Register catalog, fixed by the device firmware.
// Addresses are sent on the wire exactly as listed.

// ---- INPUT REGISTERS (FC 4) ----

const (
	O2Average         Name = "O2_AVERAGE"
	O2Raw             Name = "O2_RAW"
	Asymmetry         Name = "ASYMMETRY"
	SystemStatus      Name = "SYSTEM_STATUS"
	Warnings          Name = "WARNINGS"
	HeaterVoltage     Name = "HEATER_VOLTAGE"
	TDAverage         Name = "TD_AVERAGE"
	TDRaw             Name = "TD_RAW"
	TP                Name = "TP"
	T1                Name = "T1"
	T2                Name = "T2"
	T4                Name = "T4"
	T5                Name = "T5"
	PPO2Real          Name = "PPO2_REAL"
	PPO2Raw           Name = "PPO2_RAW"
	Pressure          Name = "PRESSURE"
	PressureSensTemp  Name = "PRESSURE_SENS_TEMP"
	CalibrationStatus Name = "CALIBRATION_STATUS"
	YOM               Name = "YOM"
	DOM               Name = "DOM"
	SerialNo          Name = "SERIAL_NO"
	SoftwareRev       Name = "SOFTWARE_REV"
)

// ---- HOLDING REGISTERS (FC 3 read / FC 6 write) ----

const (
	SensorState        Name = "SENSOR_STATE"
	ClearFlags         Name = "CLEAR_FLAGS"
	ShutdownDelay      Name = "SHUTDOWN_DELAY"
	CalibrationControl Name = "CALIBRATION_CONTROL"
	CalibrationPercent Name = "CALIBRATION_PERCENT"
	Address            Name = "ADDRESS"
	Baud               Name = "BAUD"
	Parity             Name = "PARITY"
	StopBits           Name = "STOPBITS"
	RS485SetupSave     Name = "RS485_SETUP_SAVE"

	// The firmware documents this one as HEATER_VOLTAGE too; the name is
	// made distinct from the input register of the same label.
	HeaterOption      Name = "HEATER_VOLTAGE_OPTION"
	HeaterVoltageSave Name = "HEATER_VOLTAGE_SAVE"
)

const (
	inputBase   uint16 = 30001
	holdingBase uint16 = 40001
)

var inputOrder = []Name{
	O2Average, O2Raw, Asymmetry, SystemStatus, Warnings, HeaterVoltage,
	TDAverage, TDRaw, TP, T1, T2, T4, T5, PPO2Real, PPO2Raw,
	Pressure, PressureSensTemp, CalibrationStatus, YOM, DOM, SerialNo, SoftwareRev,
}

var holdingOrder = []Name{
	SensorState, ClearFlags, ShutdownDelay, CalibrationControl, CalibrationPercent,
	Address, Baud, Parity, StopBits, RS485SetupSave, HeaterOption, HeaterVoltageSave,
}

var (
	catalog = buildCatalog()
	byName  = indexCatalog(catalog)
)

func buildCatalog() []Descriptor {
	out := make([]Descriptor, 0, len(inputOrder)+len(holdingOrder))
	for i, n := range inputOrder {
		out = append(out, Descriptor{
			Name:    n,
			Address: inputBase + uint16(i),
			Class:   ClassInput,
			ReadFC:  FCReadInput,
		})
	}
	for i, n := range holdingOrder {
		out = append(out, Descriptor{
			Name:    n,
			Address: holdingBase + uint16(i),
			Class:   ClassHolding,
			ReadFC:  FCReadHolding,
		})
	}
	return out
}

func indexCatalog(ds []Descriptor) map[Name]Descriptor {
	m := make(map[Name]Descriptor, len(ds))
	for _, d := range ds {
		m[d.Name] = d
	}
	return m
}
