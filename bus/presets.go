package bus

// MainConfig is the Sega Genesis 68000 main-bus layout: a 23-bit address
// space (8 MiB) divided into eight 1 MiB pages, at most 7 devices.
var MainConfig = Config{
	AddrWidth:  23,
	DataWidth:  16,
	PageSize:   0x100000,
	MaxDevices: 7,
}

// SubConfig is the Sega Genesis (Mega-CD) Z80 sub-bus layout: a 16-bit
// address space (64 KiB) divided into sixteen 4 KiB pages, at most 5
// devices.
var SubConfig = Config{
	AddrWidth:  16,
	DataWidth:  8,
	PageSize:   0x1000,
	MaxDevices: 5,
}

// MainDevices names the seven fixed participants on the Main bus, in the
// page order the real hardware assigns them.
type MainDevices struct {
	CPU          Device // m68k program ROM / reset vectors region
	CartIO       Device
	PeripheralIO Device
	WorkRAM      Device // 64 KiB
	ArbiterHigh  Device
	IOController Device
	VDP          Device
}

// MainPreset builds the Main bus from a MainConfig page layout. Any nil
// device field is filled with an open-bus stub so the preset can be
// exercised before every peripheral has a real model -- those devices
// remain explicitly out of scope for this core (spec.md Non-goals).
// The seven devices own pages 0-6; page 7 has no mapping and is answered
// by open bus.
func MainPreset(d MainDevices) (*Bus, error) {
	fill := func(dev Device, name string) Device {
		if dev != nil {
			return dev
		}
		return namedOpenBus(name)
	}

	mappings := []DeviceMapping{
		{Device: fill(d.CPU, "cpu"), StartPage: 0, EndPage: 0},
		{Device: fill(d.CartIO, "cart-io"), StartPage: 1, EndPage: 1},
		{Device: fill(d.PeripheralIO, "peripheral-io"), StartPage: 2, EndPage: 2},
		{Device: fill(d.WorkRAM, "work-ram"), StartPage: 3, EndPage: 3},
		{Device: fill(d.ArbiterHigh, "arbiter-high"), StartPage: 4, EndPage: 4},
		{Device: fill(d.IOController, "io-controller"), StartPage: 5, EndPage: 5},
		{Device: fill(d.VDP, "vdp"), StartPage: 6, EndPage: 6},
	}
	return Init(MainConfig, nil, mappings)
}

// SubDevices names the five fixed participants on the Sub bus.
type SubDevices struct {
	Z80CPU       Device
	ArbiterLow   Device
	WorkRAM      Device // 8 KiB
	IOController Device
	Sound        Device
}

// SubPreset builds the Sub bus from a SubConfig page layout.
func SubPreset(d SubDevices) (*Bus, error) {
	fill := func(dev Device, name string) Device {
		if dev != nil {
			return dev
		}
		return namedOpenBus(name)
	}

	mappings := []DeviceMapping{
		{Device: fill(d.Z80CPU, "z80-cpu"), StartPage: 0, EndPage: 2},
		{Device: fill(d.ArbiterLow, "arbiter-low"), StartPage: 3, EndPage: 3},
		{Device: fill(d.WorkRAM, "work-ram"), StartPage: 4, EndPage: 5},
		{Device: fill(d.IOController, "io-controller"), StartPage: 6, EndPage: 9},
		{Device: fill(d.Sound, "sound"), StartPage: 10, EndPage: 15},
	}
	return Init(SubConfig, nil, mappings)
}

// namedOpenBus is an open-bus device that reports a preset slot's name
// for diagnostics, without behaving any differently from OpenBus.
type namedOpenBusDevice struct{ name string }

func namedOpenBus(name string) Device { return namedOpenBusDevice{name: name} }

func (d namedOpenBusDevice) Name() string                        { return d.name }
func (namedOpenBusDevice) Read(addr uint32, mask uint32) uint32 { return 0 }
func (namedOpenBusDevice) Write(addr, mask, data uint32)        {}
