// internal/transport/transporttest/fake.go
package transporttest

import (
	"fmt"
	"sync"

	"github.com/tamzrod/oxy-lc/internal/transport"
)

// Read is one recorded read request.
type Read struct {
	Addr uint16
	FC   uint8
}

// Write is one recorded write request.
type Write struct {
	Addr  uint16
	Value uint16
}

// Fake is an in-memory register bank implementing transport.Transport.
//
// Reads return, in order: a queued value for the address if any, else the
// stored value, else 0. Writes update the stored value unless an error is
// injected for that address.
type Fake struct {
	mu sync.Mutex

	Values    map[uint16]uint16
	Queued    map[uint16][]uint16
	ReadErrs  map[uint16]error
	WriteErrs map[uint16]error

	Reads  []Read
	Writes []Write
}

var _ transport.Transport = (*Fake)(nil)

func New() *Fake {
	return &Fake{
		Values:    map[uint16]uint16{},
		Queued:    map[uint16][]uint16{},
		ReadErrs:  map[uint16]error{},
		WriteErrs: map[uint16]error{},
	}
}

// Set stores a value as if the device held it.
func (f *Fake) Set(addr, v uint16) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Values[addr] = v
	return f
}

// Queue appends successive read results for addr. The stored value is used
// once the queue is drained.
func (f *Fake) Queue(addr uint16, vs ...uint16) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Queued[addr] = append(f.Queued[addr], vs...)
	return f
}

func (f *Fake) ReadRegister(addr uint16, fc uint8) (uint16, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Reads = append(f.Reads, Read{Addr: addr, FC: fc})

	if err := f.ReadErrs[addr]; err != nil {
		return 0, err
	}
	if q := f.Queued[addr]; len(q) > 0 {
		f.Queued[addr] = q[1:]
		return q[0], nil
	}
	return f.Values[addr], nil
}

func (f *Fake) WriteRegister(addr uint16, value uint16) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Writes = append(f.Writes, Write{Addr: addr, Value: value})

	if err := f.WriteErrs[addr]; err != nil {
		return err
	}
	f.Values[addr] = value
	return nil
}

// ReadsOf counts reads issued at addr.
func (f *Fake) ReadsOf(addr uint16) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.Reads {
		if r.Addr == addr {
			n++
		}
	}
	return n
}

// WritesTo returns the values written to addr, in order.
func (f *Fake) WritesTo(addr uint16) []uint16 {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []uint16
	for _, w := range f.Writes {
		if w.Addr == addr {
			out = append(out, w.Value)
		}
	}
	return out
}

// LastWrite returns the most recent write.
func (f *Fake) LastWrite() (Write, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Writes) == 0 {
		return Write{}, fmt.Errorf("transporttest: no writes")
	}
	return f.Writes[len(f.Writes)-1], nil
}
