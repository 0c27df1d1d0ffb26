// cmd/oxylc/monitor.go
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tamzrod/oxy-lc/internal/config"
	"github.com/tamzrod/oxy-lc/internal/device"
	"github.com/tamzrod/oxy-lc/internal/poller"
	"github.com/tamzrod/oxy-lc/internal/status"
)

func NewMonitorCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "monitor",
		Short:   "Poll telemetry until interrupted and track device health",
		GroupID: gRead,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return withDevice(func(cfg *config.Config, dev *device.Device) error {
				p, err := poller.New(poller.Config{Interval: cfg.Monitor.Interval()}, dev)
				if err != nil {
					return err
				}
				return monitor(ctx, p, logrus.WithField("port", cfg.Device.Port))
			})
		},
	}
}

// healthTick is the period of the seconds_in_error counter.
var healthTick = time.Second

// monitor owns the poll channel and the health tracker.
// seconds_in_error advances on the healthTick ticker only.
// It returns only after the poller goroutine has exited, so the caller
// may close the transport right away.
func monitor(ctx context.Context, p *poller.Poller, log *logrus.Entry) error {
	out := make(chan poller.PollResult)
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Run(ctx, out)
	}()
	defer func() { <-done }()

	tr := status.NewTracker()
	secTicker := time.NewTicker(healthTick)
	defer secTicker.Stop()

	log.Info("monitor started")
	for {
		select {
		case <-ctx.Done():
			log.Info("monitor stopped")
			return nil

		case res := <-out:
			changed := tr.Observe(res.Telemetry, res.Err)
			snap := tr.Snapshot()
			if res.Err != nil {
				if changed {
					log.WithError(res.Err).WithField("code", snap.LastErrorCode).Warn("device poll failed")
				}
				continue
			}
			if changed {
				log.WithField("health", status.HealthName(snap.Health)).Info("device health changed")
			}
			log.WithFields(logrus.Fields{
				"status":   res.Telemetry.Status.String(),
				"o2":       res.Telemetry.O2Average,
				"heater":   res.Telemetry.HeaterVoltage,
				"pressure": res.Telemetry.Pressure,
				"warnings": res.Telemetry.Warnings.String(),
			}).Info("telemetry")

		case <-secTicker.C:
			if tr.Tick() {
				snap := tr.Snapshot()
				if snap.SecondsInError%60 == 0 {
					log.WithField("seconds", snap.SecondsInError).Warn("device still in error")
				}
			}
		}
	}
}
