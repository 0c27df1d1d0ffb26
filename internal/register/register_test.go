// internal/register/register_test.go
package register

import (
	"errors"
	"testing"
)

func TestCatalog_InputAddressesSequential(t *testing.T) {
	for i, n := range inputOrder {
		addr, fc, err := AddressOf(n)
		if err != nil {
			t.Fatalf("AddressOf(%s) err=%v", n, err)
		}
		if addr != 30001+uint16(i) {
			t.Fatalf("%s: addr=%d want=%d", n, addr, 30001+i)
		}
		if fc != FCReadInput {
			t.Fatalf("%s: fc=%d want=4", n, fc)
		}
	}
	if addr, _, _ := AddressOf(SoftwareRev); addr != 30022 {
		t.Fatalf("SOFTWARE_REV addr=%d want=30022", addr)
	}
}

func TestCatalog_HoldingAddressesSequential(t *testing.T) {
	for i, n := range holdingOrder {
		d, err := Lookup(n)
		if err != nil {
			t.Fatalf("Lookup(%s) err=%v", n, err)
		}
		if d.Address != 40001+uint16(i) {
			t.Fatalf("%s: addr=%d want=%d", n, d.Address, 40001+i)
		}
		if d.ReadFC != FCReadHolding || !d.Writable() {
			t.Fatalf("%s: expected writable holding register, got %+v", n, d)
		}
	}
	if d, _ := Lookup(HeaterVoltageSave); d.Address != 40012 {
		t.Fatalf("HEATER_VOLTAGE_SAVE addr=%d want=40012", d.Address)
	}
}

func TestCatalog_SizeAndUniqueAddresses(t *testing.T) {
	all := All()
	if len(all) != 34 {
		t.Fatalf("expected 34 registers, got %d", len(all))
	}
	seen := map[uint16]Name{}
	for _, d := range all {
		if prev, ok := seen[d.Address]; ok {
			t.Fatalf("address %d used by %s and %s", d.Address, prev, d.Name)
		}
		seen[d.Address] = d.Name
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup(Name("NOPE"))
	if !errors.Is(err, ErrUnknownRegister) {
		t.Fatalf("expected ErrUnknownRegister, got %v", err)
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	a := All()
	a[0].Address = 1
	if d, _ := Lookup(O2Average); d.Address != 30001 {
		t.Fatalf("catalog mutated through All()")
	}
}
