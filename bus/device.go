package bus

// openBusDevice is the default device installed on all otherwise
// unmapped pages: reads return zero, writes are discarded.
type openBusDevice struct{}

// OpenBus returns the default open-bus device.
func OpenBus() Device { return openBusDevice{} }

func (openBusDevice) Name() string                          { return "open-bus" }
func (openBusDevice) Read(addr uint32, mask uint32) uint32   { return 0 }
func (openBusDevice) Write(addr, mask, data uint32)          {}
