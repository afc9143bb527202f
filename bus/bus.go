// Package bus implements the paged address-space dispatcher: a fixed
// address width divided into power-of-two pages, each owned by exactly
// one device, with O(1) page-to-device lookup and masked read/write.
package bus

import "fmt"

// Errors returned by Init. UnmappedPages and MaxDeviceLimitReached are
// only checked when StrictInit is true (see strict.go) -- in release
// builds the coverage/limit checks may be elided for speed, per spec.
var (
	ErrConflictingDeviceMappings = fmt.Errorf("bus: conflicting device page mappings")
	ErrUnmappedPages             = fmt.Errorf("bus: one or more pages have no owning device")
	ErrMaxDeviceLimitReached     = fmt.Errorf("bus: device count exceeds the configured maximum")
)

// Device is one address-space participant: it owns a contiguous, page-
// aligned range and answers synchronous reads and writes within it.
// addr is local to the device (already translated from the global
// address by subtracting the device's page-range start). mask is a
// data-width bitmask whose set bits mark positions to ignore.
type Device interface {
	// Name identifies the device for diagnostics.
	Name() string
	// Read returns data for addr, leaving masked-out bits as zero.
	Read(addr uint32, mask uint32) uint32
	// Write stores data at addr, ignoring masked-out bits.
	Write(addr uint32, mask uint32, data uint32)
}

// DeviceMapping assigns a Device to an inclusive page range [Start, End].
type DeviceMapping struct {
	Device     Device
	StartPage  int
	EndPage    int // inclusive
}

// Config parameterizes a Bus: the address space is 2^AddrWidth bytes,
// divided into 2^AddrWidth/PageSize pages.
type Config struct {
	AddrWidth  int
	DataWidth  int
	PageSize   int
	MaxDevices int
}

// Bus is the O(1) paged address-space dispatcher.
type Bus struct {
	cfg      Config
	numPages int
	pageMap     []int // page -> index into devices, or -1
	devices     []Device
	deviceStart []int // parallel to devices: first page owned
	openBus     Device
}

// Init builds a Bus from a Config, an optional open-bus device (nil
// installs a default open-bus device that reads zero and discards
// writes), and a list of device mappings. Mappings are validated eagerly:
// conflicting ranges are always rejected; unmapped-page coverage and the
// device-count limit are checked only when built with the bus.StrictInit
// build tag (see strict.go).
func Init(cfg Config, openBus Device, mappings []DeviceMapping) (*Bus, error) {
	if cfg.PageSize <= 0 || cfg.PageSize&(cfg.PageSize-1) != 0 {
		return nil, fmt.Errorf("bus: page_size %d is not a power of two", cfg.PageSize)
	}

	numPages := (1 << uint(cfg.AddrWidth)) / cfg.PageSize
	b := &Bus{
		cfg:      cfg,
		numPages: numPages,
		pageMap:  make([]int, numPages),
	}
	var deviceStart []int
	for i := range b.pageMap {
		b.pageMap[i] = -1
	}

	if openBus == nil {
		openBus = OpenBus()
	}
	b.openBus = openBus

	if err := checkDeviceLimit(cfg, len(mappings)); err != nil {
		return nil, err
	}

	for _, m := range mappings {
		if m.StartPage < 0 || m.EndPage >= numPages || m.StartPage > m.EndPage {
			return nil, fmt.Errorf("%w: device %q page range [%d,%d] out of bounds [0,%d)",
				ErrConflictingDeviceMappings, m.Device.Name(), m.StartPage, m.EndPage, numPages)
		}
		idx := len(b.devices)
		b.devices = append(b.devices, m.Device)
		deviceStart = append(deviceStart, m.StartPage)
		for p := m.StartPage; p <= m.EndPage; p++ {
			if b.pageMap[p] != -1 {
				return nil, fmt.Errorf("%w: page %d claimed by both %q and %q",
					ErrConflictingDeviceMappings, p, b.devices[b.pageMap[p]].Name(), m.Device.Name())
			}
			b.pageMap[p] = idx
		}
	}
	b.deviceStart = deviceStart

	if err := checkCoverage(b); err != nil {
		return nil, err
	}

	return b, nil
}

// deviceAt resolves the device owning addr and the local address within
// that device's range (relative to the device's page-range start, not
// the whole address space).
func (b *Bus) deviceAt(addr uint32) (Device, uint32) {
	page := int(addr) / b.cfg.PageSize
	if page < 0 || page >= b.numPages {
		return b.openBus, addr
	}
	idx := b.pageMap[page]
	if idx == -1 {
		return b.openBus, addr
	}
	local := addr - uint32(b.deviceStart[idx]*b.cfg.PageSize)
	return b.devices[idx], local
}

// Read dispatches a read to the owning device; never traps, even for an
// address on an unmapped page (open bus answers instead).
func (b *Bus) Read(addr uint32, mask uint32) uint32 {
	dev, local := b.deviceAt(addr)
	return dev.Read(local, mask)
}

// Write dispatches a write to the owning device.
func (b *Bus) Write(addr uint32, mask uint32, data uint32) {
	dev, local := b.deviceAt(addr)
	dev.Write(local, mask, data)
}

// NumPages reports how many pages this bus divides its address space
// into.
func (b *Bus) NumPages() int { return b.numPages }
