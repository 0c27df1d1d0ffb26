// internal/calibration/calibration_test.go
package calibration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/oxy-lc/internal/codec"
	"github.com/tamzrod/oxy-lc/internal/device"
	"github.com/tamzrod/oxy-lc/internal/transport/transporttest"
)

const (
	addrSystemStatus uint16 = 30004
	addrCalStatus    uint16 = 30018
	addrCalControl   uint16 = 40004
	addrCalPercent   uint16 = 40005
)

type fakeClock struct {
	waits []time.Duration
}

func (c *fakeClock) sleep(ctx context.Context, d time.Duration) error {
	c.waits = append(c.waits, d)
	return ctx.Err()
}

func setup(t *testing.T, timeout int) (*Calibrator, *transporttest.Fake, *fakeClock) {
	t.Helper()
	fake := transporttest.New()
	fake.Set(addrSystemStatus, uint16(codec.StatusOperating))
	clk := &fakeClock{}
	cal := New(device.New(fake), Config{
		Timeout:  timeout,
		Interval: time.Second,
		Sleep:    clk.sleep,
	})
	return cal, fake, clk
}

func ptr(v float64) *float64 { return &v }

func TestRun_CompletesAfterPolling(t *testing.T) {
	cal, fake, clk := setup(t, 5)
	fake.Queue(addrCalStatus,
		uint16(codec.CalibrationInProgress),
		uint16(codec.CalibrationInProgress),
		uint16(codec.CalibrationCompleted),
	)

	ok, err := cal.Run(context.Background(), ptr(20.7))
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, 3, fake.ReadsOf(addrCalStatus))
	assert.Equal(t, []time.Duration{time.Second, time.Second, time.Second}, clk.waits)
	assert.Equal(t, []uint16{2070}, fake.WritesTo(addrCalPercent))
	assert.Equal(t, []uint16{
		uint16(codec.CalibrationActivate),
		uint16(codec.CalibrationReset),
	}, fake.WritesTo(addrCalControl))

	last, err := fake.LastWrite()
	require.NoError(t, err)
	assert.Equal(t, transporttest.Write{Addr: addrCalControl, Value: uint16(codec.CalibrationReset)}, last)
}

func TestRun_TimeoutStillResets(t *testing.T) {
	cal, fake, _ := setup(t, 3)
	fake.Set(addrCalStatus, uint16(codec.CalibrationInProgress))

	s, err := cal.RunSession(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, StateTimedOut, s.State)
	assert.Equal(t, 3, s.Polls)

	assert.Equal(t, 3, fake.ReadsOf(addrCalStatus))
	assert.Empty(t, fake.WritesTo(addrCalPercent), "no target supplied")

	last, err := fake.LastWrite()
	require.NoError(t, err)
	assert.Equal(t, transporttest.Write{Addr: addrCalControl, Value: uint16(codec.CalibrationReset)}, last)

	ok, err := cal.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRun_NotOperating(t *testing.T) {
	for _, st := range []codec.SystemStatus{
		codec.StatusIdle, codec.StatusStartUp, codec.StatusShutDown, codec.StatusStandby,
	} {
		cal, fake, _ := setup(t, 5)
		fake.Set(addrSystemStatus, uint16(st))

		ok, err := cal.Run(context.Background(), ptr(20.7))
		require.ErrorIs(t, err, ErrNotOperating, "status=%s", st)
		assert.False(t, ok)
		assert.Empty(t, fake.Writes, "status=%s", st)
	}
}

func TestRun_InvalidTargetAborts(t *testing.T) {
	cal, fake, _ := setup(t, 5)

	ok, err := cal.Run(context.Background(), ptr(101))
	var oor *codec.OutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.False(t, ok)
	assert.Empty(t, fake.Writes)
}

func TestRun_ZeroTargetIsWritten(t *testing.T) {
	cal, fake, _ := setup(t, 1)
	fake.Set(addrCalStatus, uint16(codec.CalibrationCompleted))

	ok, err := cal.Run(context.Background(), ptr(0))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []uint16{0}, fake.WritesTo(addrCalPercent))
}

func TestRun_PollErrorAbort(t *testing.T) {
	cal, fake, _ := setup(t, 5)
	boom := errors.New("no response")
	fake.ReadErrs[addrCalStatus] = boom

	s, err := cal.RunSession(context.Background(), nil)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, StateAborted, s.State)
	assert.Equal(t, 1, fake.ReadsOf(addrCalStatus))

	last, _ := fake.LastWrite()
	assert.Equal(t, uint16(codec.CalibrationReset), last.Value)
}

func TestRun_PollErrorContinue(t *testing.T) {
	fake := transporttest.New()
	fake.Set(addrSystemStatus, uint16(codec.StatusOperating))
	fake.ReadErrs[addrCalStatus] = errors.New("crc")
	clk := &fakeClock{}

	ok, err := Calibrate(context.Background(), device.New(fake), nil, Config{
		Timeout:     4,
		OnPollError: PollErrorContinue,
		Sleep:       clk.sleep,
	})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 4, fake.ReadsOf(addrCalStatus))
	assert.Len(t, clk.waits, 4)

	last, _ := fake.LastWrite()
	assert.Equal(t, transporttest.Write{Addr: addrCalControl, Value: uint16(codec.CalibrationReset)}, last)
}

func TestRun_CancelledStillResets(t *testing.T) {
	cal, fake, _ := setup(t, 5)
	fake.Set(addrCalStatus, uint16(codec.CalibrationInProgress))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := cal.Run(ctx, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
	assert.Equal(t, 0, fake.ReadsOf(addrCalStatus))
	assert.Equal(t, []uint16{
		uint16(codec.CalibrationActivate),
		uint16(codec.CalibrationReset),
	}, fake.WritesTo(addrCalControl))
}

func TestRun_ResetFailureSurfaces(t *testing.T) {
	cal, fake, _ := setup(t, 2)
	fake.Set(addrCalStatus, uint16(codec.CalibrationInProgress))

	cal.dev = &failOnReset{Device: cal.dev}

	ok, err := cal.Run(context.Background(), nil)
	require.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, []uint16{uint16(codec.CalibrationActivate)}, fake.WritesTo(addrCalControl))
}

type failOnReset struct {
	Device
}

func (f *failOnReset) SetCalibrationControl(c codec.CalibrationControl) error {
	if c == codec.CalibrationReset {
		return errors.New("reset write failed")
	}
	return f.Device.SetCalibrationControl(c)
}

func TestDefaults(t *testing.T) {
	c := Config{}.withDefaults()
	assert.Equal(t, DefaultTimeout, c.Timeout)
	assert.Equal(t, DefaultInterval, c.Interval)
	assert.NotNil(t, c.Sleep)

	p, err := ParsePollErrorPolicy("continue")
	require.NoError(t, err)
	assert.Equal(t, PollErrorContinue, p)
	_, err = ParsePollErrorPolicy("retry")
	assert.Error(t, err)
}
