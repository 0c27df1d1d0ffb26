// cmd/oxylc/main.go
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tamzrod/oxy-lc/internal/config"
	"github.com/tamzrod/oxy-lc/internal/device"
	"github.com/tamzrod/oxy-lc/internal/transport/modbus"
)

var (
	logLevel   = ""
	configPath = "/etc/oxylc.yaml"
)

var (
	gRead         = "Read:"
	gWrite        = "Write:"
	commandGroups = []string{gRead, gWrite}
)

func setupLogger(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	return nil
}

// loadConfig reads, normalizes and validates the config file, then applies
// the log level (flag wins over file).
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	config.Normalize(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	if err := setupLogger(level); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openDevice connects the serial line described by cfg.
// The returned close func releases the port.
func openDevice(cfg *config.Config) (*device.Device, func(), error) {
	d := cfg.Device
	cl, err := modbus.New(modbus.Config{
		Port:     d.Port,
		SlaveID:  d.SlaveID,
		BaudRate: d.BaudRate,
		DataBits: d.DataBits,
		Parity:   d.Parity,
		StopBits: d.StopBits,
		Timeout:  d.Timeout(),
	})
	if err != nil {
		return nil, nil, err
	}

	logrus.WithFields(logrus.Fields{
		"port":  d.Port,
		"slave": d.SlaveID,
		"baud":  d.BaudRate,
	}).Debug("serial line open")

	dev := device.New(cl,
		device.WithSettleDelay(cfg.Heater.Settle()),
		device.WithLogger(logrus.WithFields(logrus.Fields{
			"component": "device",
			"slave":     d.SlaveID,
		})),
	)
	closeFn := func() {
		if err := cl.Close(); err != nil {
			logrus.WithError(err).Warn("serial close failed")
		}
	}
	return dev, closeFn, nil
}

// withDevice runs fn against a freshly opened device.
func withDevice(fn func(cfg *config.Config, dev *device.Device) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dev, closeFn, err := openDevice(cfg)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(cfg, dev)
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "oxylc",
		Short: "oxylc talks to an OXY-LC oxygen sensor over Modbus RTU",
		Long: `oxylc talks to an OXY-LC oxygen sensor over Modbus RTU.

It reads live measurements, applies heater and serial settings and
calibrates the sensor against a single calibration gas percentage.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if logLevel == "" {
				return setupLogger(config.DefaultLogLevel)
			}
			return setupLogger(logLevel)
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "", "log level (trace, debug, info, warn, error); overrides log.level")
	globalFlags.StringVarP(&configPath, "config", "c", configPath, "config file path")

	for _, g := range commandGroups {
		cmd.AddGroup(&cobra.Group{ID: g, Title: g})
	}

	cmd.AddCommand(
		NewMonitorCommand(),
		NewInfoCommand(),
		NewCalibrateCommand(),
		NewHeaterCommand(),
		NewSensorCommand(),
		NewClearFlagsCommand(),
		NewSetAddressCommand(),
	)

	return cmd
}
