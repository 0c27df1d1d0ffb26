// internal/register/register.go
package register

import (
	"errors"
	"fmt"
)

// ErrUnknownRegister is returned for a name outside the catalog.
var ErrUnknownRegister = errors.New("register: unknown register")

// FunctionCode is the Modbus operation selector.
type FunctionCode uint8

const (
	FCReadHolding        FunctionCode = 3
	FCReadInput          FunctionCode = 4
	FCWriteSingleHolding FunctionCode = 6
)

// Class separates read-only input registers from read/write holding registers.
type Class uint8

const (
	ClassInput Class = iota + 1
	ClassHolding
)

func (c Class) String() string {
	switch c {
	case ClassInput:
		return "input"
	case ClassHolding:
		return "holding"
	default:
		return fmt.Sprintf("class(%d)", uint8(c))
	}
}

// Descriptor describes one physical register.
// Geometry only: no scaling, no semantics.
type Descriptor struct {
	Name    Name
	Address uint16
	Class   Class
	ReadFC  FunctionCode
}

// Writable reports whether the register accepts FC 6.
func (d Descriptor) Writable() bool {
	return d.Class == ClassHolding
}

// Lookup returns the descriptor for name.
func Lookup(name Name) (Descriptor, error) {
	d, ok := byName[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownRegister, string(name))
	}
	return d, nil
}

// AddressOf returns the wire address and default read function code for name.
func AddressOf(name Name) (uint16, FunctionCode, error) {
	d, err := Lookup(name)
	if err != nil {
		return 0, 0, err
	}
	return d.Address, d.ReadFC, nil
}

// All returns a copy of the catalog in address order (input block first).
func All() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog)
	return out
}
