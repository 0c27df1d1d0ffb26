// cmd/oxylc/read.go
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tamzrod/oxy-lc/internal/config"
	"github.com/tamzrod/oxy-lc/internal/device"
)

func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "info",
		Short:   "Print identity and one telemetry pass",
		GroupID: gRead,
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withDevice(func(_ *config.Config, dev *device.Device) error {
				id, err := dev.ReadIdentity()
				if err != nil {
					return fmt.Errorf("failed to read identity: %w", err)
				}
				tel, err := dev.ReadTelemetry()
				if err != nil {
					return fmt.Errorf("failed to read telemetry: %w", err)
				}
				printIdentity(os.Stdout, id)
				printTelemetry(os.Stdout, tel)
				return nil
			})
		},
	}
}

func printIdentity(w io.Writer, id device.Identity) {
	fmt.Fprintf(w, "Serial number:      %d\n", id.SerialNumber)
	fmt.Fprintf(w, "Software revision:  %d\n", id.SoftwareRevision)
	fmt.Fprintf(w, "Manufactured:       %d day %d\n", id.YearOfManufacture, id.DayOfManufacture)
}

func printTelemetry(w io.Writer, t device.Telemetry) {
	fmt.Fprintf(w, "Status:             %s\n", t.Status)
	fmt.Fprintf(w, "Warnings:           %s\n", t.Warnings)
	fmt.Fprintf(w, "O2 average:         %.2f %%\n", t.O2Average)
	fmt.Fprintf(w, "O2 raw:             %.2f %%\n", t.O2Raw)
	fmt.Fprintf(w, "Asymmetry:          %.3f\n", t.Asymmetry)
	fmt.Fprintf(w, "Heater voltage:     %.2f V\n", t.HeaterVoltage)
	fmt.Fprintf(w, "TD average / raw:   %.1f / %.1f ms\n", t.TDAverage, t.TDRaw)
	fmt.Fprintf(w, "TP T1 T2 T4 T5:     %.1f %.1f %.1f %.1f %.1f ms\n", t.TP, t.T1, t.T2, t.T4, t.T5)
	fmt.Fprintf(w, "ppO2 real / raw:    %.1f / %.1f\n", t.PPO2Real, t.PPO2Raw)
	fmt.Fprintf(w, "Pressure:           %d mbar (%d °C)\n", t.Pressure, t.PressureSensTempC)
	fmt.Fprintf(w, "Calibration:        %s\n", t.CalibrationStatus)
}
