package bus_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/genesis68k/bus"
)

// fakeDevice is a minimal in-memory bus.Device used only by these specs.
type fakeDevice struct {
	name string
	mem  map[uint32]uint32
}

func newFakeDevice(name string) *fakeDevice {
	return &fakeDevice{name: name, mem: map[uint32]uint32{}}
}

func (d *fakeDevice) Name() string { return d.name }

func (d *fakeDevice) Read(addr, mask uint32) uint32 {
	return d.mem[addr] &^ mask
}

func (d *fakeDevice) Write(addr, mask, data uint32) {
	d.mem[addr] = data &^ mask
}

var _ = Describe("Bus page dispatch", func() {
	It("dispatches to the owning device at the correct local address", func() {
		devA := newFakeDevice("a")
		devB := newFakeDevice("b")

		cfg := bus.Config{AddrWidth: 24, DataWidth: 16, PageSize: 0x100000}
		b, err := bus.Init(cfg, nil, []bus.DeviceMapping{
			{Device: devA, StartPage: 0, EndPage: 0},
			{Device: devB, StartPage: 1, EndPage: 15},
		})
		Expect(err).NotTo(HaveOccurred())

		b.Write(0x200000, 0, 0xABCD)
		Expect(devB.mem[0x100000]).To(Equal(uint32(0xABCD)))
		Expect(b.Read(0x200000, 0)).To(Equal(uint32(0xABCD)))
	})

	It("never traps on an unmapped page; open bus answers zero", func() {
		cfg := bus.Config{AddrWidth: 24, DataWidth: 16, PageSize: 0x100000}
		b, err := bus.Init(cfg, nil, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.Read(0x500000, 0)).To(Equal(uint32(0)))
	})

	It("rejects conflicting device page ranges", func() {
		cfg := bus.Config{AddrWidth: 24, DataWidth: 16, PageSize: 0x100000}
		_, err := bus.Init(cfg, nil, []bus.DeviceMapping{
			{Device: newFakeDevice("a"), StartPage: 0, EndPage: 3},
			{Device: newFakeDevice("b"), StartPage: 3, EndPage: 5},
		})
		Expect(err).To(MatchError(bus.ErrConflictingDeviceMappings))
	})

	It("rejects a non-power-of-two page size", func() {
		cfg := bus.Config{AddrWidth: 24, DataWidth: 16, PageSize: 3}
		_, err := bus.Init(cfg, nil, nil)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Genesis bus presets", func() {
	It("builds the Main preset with open-bus stubs for unfilled devices", func() {
		b, err := bus.MainPreset(bus.MainDevices{})
		Expect(err).NotTo(HaveOccurred())
		Expect(b.NumPages()).To(Equal(8))
		Expect(b.Read(0, 0)).To(Equal(uint32(0)))
	})

	It("builds the Sub preset covering all sixteen pages", func() {
		b, err := bus.SubPreset(bus.SubDevices{})
		Expect(err).NotTo(HaveOccurred())
		Expect(b.NumPages()).To(Equal(16))
	})

	It("lets a real work-RAM device answer through the Main preset", func() {
		ram := newFakeDevice("work-ram")
		b, err := bus.MainPreset(bus.MainDevices{WorkRAM: ram})
		Expect(err).NotTo(HaveOccurred())

		ramPageBase := uint32(3 * bus.MainConfig.PageSize)
		b.Write(ramPageBase+4, 0, 0x1234)
		Expect(ram.mem[4]).To(Equal(uint32(0x1234)))
	})

	// bus.Init itself rejects overlapping page ranges
	// (ErrConflictingDeviceMappings, exercised above under "Bus page
	// dispatch") and, in bus.strict builds only, an out-of-range device
	// count (ErrMaxDeviceLimitReached, not exercised here).
	// MainDevices/SubDevices are fixed-field structs with one slot per
	// page range, so neither condition can be constructed through a
	// preset -- what the presets promise instead is that every field
	// combination still yields exactly MaxDevices non-overlapping
	// mappings: the Sub preset's cover all sixteen pages, the Main
	// preset's cover pages 0-6 and leave page 7 to open bus.
	It("saturates the Main preset's seven device pages with no gaps or overlap regardless of which devices are real", func() {
		ram := newFakeDevice("work-ram")
		vdp := newFakeDevice("vdp")
		b, err := bus.MainPreset(bus.MainDevices{WorkRAM: ram, VDP: vdp})
		Expect(err).NotTo(HaveOccurred())
		Expect(b.NumPages()).To(Equal(8))

		for page := 0; page < 7; page++ {
			addr := uint32(page) * uint32(bus.MainConfig.PageSize)
			b.Write(addr, 0, uint32(page+1))
		}
		Expect(ram.mem[0]).To(Equal(uint32(4)))
		Expect(vdp.mem[0]).To(Equal(uint32(7)))
	})

	It("saturates the Sub preset's sixteen pages with no gaps or overlap regardless of which devices are real", func() {
		z80 := newFakeDevice("z80-cpu")
		sound := newFakeDevice("sound")
		b, err := bus.SubPreset(bus.SubDevices{Z80CPU: z80, Sound: sound})
		Expect(err).NotTo(HaveOccurred())
		Expect(b.NumPages()).To(Equal(16))

		b.Write(0, 0, 0xAA)
		Expect(z80.mem[0]).To(Equal(uint32(0xAA)))

		soundPageBase := uint32(10 * bus.SubConfig.PageSize)
		b.Write(soundPageBase, 0, 0xBB)
		Expect(sound.mem[0]).To(Equal(uint32(0xBB)))
	})
})
