// internal/transport/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/goburrow/modbus"
	"github.com/goburrow/serial"

	"github.com/tamzrod/oxy-lc/internal/transport"
)

// registerClient is the subset of modbus.Client the adapter drives.
type registerClient interface {
	ReadHoldingRegisters(address, quantity uint16) ([]byte, error)
	ReadInputRegisters(address, quantity uint16) ([]byte, error)
	WriteSingleRegister(address, value uint16) ([]byte, error)
}

// Client implements transport.Transport over Modbus RTU.
// It serializes requests; the bus carries one transaction at a time.
type Client struct {
	mu      sync.Mutex
	handler *modbus.RTUClientHandler
	client  registerClient
}

// Config is the serial line setup.
type Config struct {
	Port     string
	SlaveID  uint8
	BaudRate int
	DataBits int
	Parity   string // "N", "E", "O"
	StopBits int
	Timeout  time.Duration
}

// New opens the serial port and returns a connected client.
func New(cfg Config) (*Client, error) {
	if cfg.Port == "" {
		return nil, errors.New("modbus client: port required")
	}
	if cfg.SlaveID < 1 || cfg.SlaveID > 247 {
		return nil, fmt.Errorf("modbus client: slave id %d out of range", cfg.SlaveID)
	}

	h := modbus.NewRTUClientHandler(cfg.Port)
	h.SlaveId = cfg.SlaveID
	h.BaudRate = cfg.BaudRate
	h.DataBits = cfg.DataBits
	h.Parity = cfg.Parity
	h.StopBits = cfg.StopBits
	h.Timeout = cfg.Timeout

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("modbus client: open %s: %w", cfg.Port, err)
	}

	return &Client{
		handler: h,
		client:  modbus.NewClient(h),
	}, nil
}

// Close closes the serial port.
func (c *Client) Close() error {
	if c == nil || c.handler == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handler.Close()
}

// ---- transport.Transport ----

func (c *Client) ReadRegister(addr uint16, fc uint8) (uint16, error) {
	if c == nil || c.client == nil {
		return 0, errors.New("modbus client: not connected")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		data []byte
		err  error
	)
	switch fc {
	case 3:
		data, err = c.client.ReadHoldingRegisters(addr, 1)
	case 4:
		data, err = c.client.ReadInputRegisters(addr, 1)
	default:
		return 0, fmt.Errorf("modbus client: unsupported read fc %d", fc)
	}
	if err != nil {
		return 0, classify(fmt.Sprintf("read fc=%d addr=%d", fc, addr), err)
	}

	regs := unpackRegisters(data)
	if len(regs) != 1 {
		return 0, fmt.Errorf("modbus client: read fc=%d addr=%d: expected 1 register, got %d bytes", fc, addr, len(data))
	}
	return regs[0], nil
}

func (c *Client) WriteRegister(addr uint16, value uint16) error {
	if c == nil || c.client == nil {
		return errors.New("modbus client: not connected")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.client.WriteSingleRegister(addr, value); err != nil {
		return classify(fmt.Sprintf("write addr=%d value=%d", addr, value), err)
	}
	return nil
}

// ---- helpers ----

// classify wraps err with op context and tags silence as transport.ErrNoResponse.
// Modbus exceptions pass through untagged; the device did answer.
func classify(op string, err error) error {
	var mbErr *modbus.ModbusError
	if errors.As(err, &mbErr) {
		return fmt.Errorf("modbus client: %s: %w", op, err)
	}
	if isNoResponse(err) {
		return fmt.Errorf("modbus client: %s: %w: %w", op, transport.ErrNoResponse, err)
	}
	return fmt.Errorf("modbus client: %s: %w", op, err)
}

func isNoResponse(err error) bool {
	if errors.Is(err, serial.ErrTimeout) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// unpackRegisters decodes big-endian register payload.
func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
