// Package genesis supplies the handful of bus.Device implementations a
// minimal Sega Genesis host needs: work RAM, a read-only cartridge ROM,
// and a named stand-in for a peripheral this core doesn't model yet.
// Adapted from the synchronous, one-method-per-direction device shape in
// KTStephano-GVM's HardwareDevice, stripped of that source's
// goroutine/channel request-response plumbing -- spec.md's concurrency
// model requires no suspension points and no parallel mutation.
package genesis

import "github.com/sarchlab/genesis68k/bus"

// ramDevice is flat, word-addressable, byte/word/long accessible RAM.
type ramDevice struct {
	name string
	mem  []byte
}

// Ram returns a zero-initialized RAM device of size bytes, addressable
// at any byte offset within [0, size).
func Ram(name string, size int) bus.Device {
	return &ramDevice{name: name, mem: make([]byte, size)}
}

func (r *ramDevice) Name() string { return r.name }

func (r *ramDevice) Read(addr, mask uint32) uint32 {
	if int(addr) >= len(r.mem)-1 {
		return 0
	}
	v := uint32(r.mem[addr])<<8 | uint32(r.mem[addr+1])
	return v &^ mask
}

func (r *ramDevice) Write(addr, mask, data uint32) {
	if int(addr) >= len(r.mem)-1 {
		return
	}
	cur := uint32(r.mem[addr])<<8 | uint32(r.mem[addr+1])
	v := (cur & mask) | (data &^ mask)
	r.mem[addr] = byte(v >> 8)
	r.mem[addr+1] = byte(v)
}

// cartDevice is read-only cartridge ROM; writes are discarded and reads
// past the end of the image answer zero, matching open-bus behavior for
// the unbacked tail of the cart's page range.
type cartDevice struct {
	rom []byte
}

// Cart wraps a ROM image as a read-only bus.Device.
func Cart(rom []byte) bus.Device {
	return &cartDevice{rom: rom}
}

func (c *cartDevice) Name() string { return "cart-rom" }

func (c *cartDevice) Read(addr, mask uint32) uint32 {
	if int(addr) >= len(c.rom)-1 {
		if int(addr) >= len(c.rom) {
			return 0
		}
		return (uint32(c.rom[addr]) << 8) &^ mask
	}
	v := uint32(c.rom[addr])<<8 | uint32(c.rom[addr+1])
	return v &^ mask
}

func (c *cartDevice) Write(addr, mask, data uint32) {}

// stubDevice is a named no-op peripheral stand-in: reads answer zero,
// writes are discarded. Used to give a bus preset slot an identifiable
// name in diagnostics before the real peripheral model exists.
type stubDevice struct{ name string }

// Stub returns a named open-bus-equivalent device.
func Stub(name string) bus.Device { return stubDevice{name: name} }

func (s stubDevice) Name() string                      { return s.name }
func (stubDevice) Read(addr uint32, mask uint32) uint32 { return 0 }
func (stubDevice) Write(addr, mask, data uint32)        {}

// OpenBus re-exports bus.OpenBus so callers that only import genesis
// still have a way to name the default unmapped-page behavior.
func OpenBus() bus.Device { return bus.OpenBus() }
