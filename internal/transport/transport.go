// internal/transport/transport.go
package transport

import "errors"

// ErrNoResponse marks a request the device never answered (timeout, silence).
// Adapters wrap their native timeout errors with it.
var ErrNoResponse = errors.New("transport: no response")

// Transport is the single-register contract the driver needs.
// One request at a time: Modbus RTU is half-duplex request/reply.
type Transport interface {
	// ReadRegister reads one register with function code 3 or 4.
	ReadRegister(addr uint16, fc uint8) (uint16, error)

	// WriteRegister writes one holding register with function code 6.
	WriteRegister(addr uint16, value uint16) error
}
