// cmd/oxylc/write.go
package main

import (
	"fmt"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tamzrod/oxy-lc/internal/calibration"
	"github.com/tamzrod/oxy-lc/internal/codec"
	"github.com/tamzrod/oxy-lc/internal/config"
	"github.com/tamzrod/oxy-lc/internal/device"
)

func NewCalibrateCommand() *cobra.Command {
	var percent float64

	cmd := &cobra.Command{
		Use:     "calibrate",
		Aliases: []string{"cali"},
		Short:   "Run the calibration sequence",
		Long: `Run the calibration sequence.

The sensor must be operating. With --percent the calibration gas
percentage is written first; otherwise the stored value is used.
Calibration control is always reset afterwards.`,
		GroupID: gWrite,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var target *float64
			if cmd.Flags().Changed("percent") {
				target = &percent
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return withDevice(func(cfg *config.Config, dev *device.Device) error {
				ccfg, err := calibrationConfig(cfg)
				if err != nil {
					return err
				}
				ok, err := calibration.New(dev, ccfg).Run(ctx, target)
				if err != nil {
					return fmt.Errorf("calibration failed: %w", err)
				}
				if !ok {
					fmt.Println("Calibration timed out.")
					return nil
				}
				fmt.Println("Calibration completed.")
				return nil
			})
		},
	}

	cmd.Flags().Float64VarP(&percent, "percent", "p", 0, "calibration gas percentage (0-100)")

	return cmd
}

func calibrationConfig(cfg *config.Config) (calibration.Config, error) {
	policy, err := calibration.ParsePollErrorPolicy(cfg.Calibration.OnPollError)
	if err != nil {
		return calibration.Config{}, err
	}
	return calibration.Config{
		Timeout:     cfg.Calibration.Timeout,
		Interval:    cfg.Calibration.Interval(),
		OnPollError: policy,
		Log:         logrus.WithField("component", "calibration"),
	}, nil
}

func NewHeaterCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "heater <4.0|4.2|4.35|4.55>",
		Short:     "Apply a heater voltage option and switch the sensor on",
		GroupID:   gWrite,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"4.0", "4.2", "4.35", "4.55"},
		RunE: func(cmd *cobra.Command, args []string) error {
			opt, err := codec.ParseHeaterOption(args[0])
			if err != nil {
				return err
			}
			return withDevice(func(_ *config.Config, dev *device.Device) error {
				if err := dev.ApplyHeaterVoltage(cmd.Context(), opt); err != nil {
					return fmt.Errorf("failed to apply heater voltage: %w", err)
				}
				fmt.Printf("Heater voltage set to %s.\n", opt)
				return nil
			})
		},
	}
}

func NewSensorCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "sensor <off|on|standby>",
		Short:     "Set the sensor state",
		GroupID:   gWrite,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"off", "on", "standby"},
		RunE: func(_ *cobra.Command, args []string) error {
			st, err := codec.ParseSensorState(args[0])
			if err != nil {
				return err
			}
			return withDevice(func(_ *config.Config, dev *device.Device) error {
				if err := dev.SetSensorState(st); err != nil {
					return fmt.Errorf("failed to set sensor state: %w", err)
				}
				fmt.Printf("Sensor state set to %s.\n", st)
				return nil
			})
		},
	}
}

func NewClearFlagsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "clear-flags",
		Short:   "Clear latched warning and error flags",
		GroupID: gWrite,
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withDevice(func(_ *config.Config, dev *device.Device) error {
				if err := dev.ClearErrorFlags(); err != nil {
					return fmt.Errorf("failed to clear flags: %w", err)
				}
				fmt.Println("Flags cleared.")
				return nil
			})
		},
	}
}

func NewSetAddressCommand() *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:     "set-address <1..247>",
		Short:   "Change the Modbus slave address",
		GroupID: gWrite,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			addr, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid address %q: %w", args[0], err)
			}
			return withDevice(func(_ *config.Config, dev *device.Device) error {
				if err := dev.SetAddress(addr); err != nil {
					return fmt.Errorf("failed to set address: %w", err)
				}
				if apply {
					if err := dev.ApplyRS485Setup(); err != nil {
						return fmt.Errorf("failed to apply serial setup: %w", err)
					}
					fmt.Printf("Address set to %d and applied. Update device.slave_id in the config.\n", addr)
					return nil
				}
				fmt.Printf("Address set to %d. It takes effect after the serial setup is applied.\n", addr)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "also write RS485_SETUP_SAVE")

	return cmd
}
