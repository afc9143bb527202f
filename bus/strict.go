//go:build bus.strict

package bus

// StrictInit is true when the bus.strict build tag is set: the
// unmapped-page-coverage and device-count-limit checks run eagerly at
// Init time. Release builds omit this tag and skip both checks for
// speed, per spec -- conflicting mappings are always checked regardless
// of this tag, since they indicate a spec/wiring bug rather than a
// coverage gap that open bus already answers for.
const StrictInit = true

func checkDeviceLimit(cfg Config, n int) error {
	if cfg.MaxDevices > 0 && n > cfg.MaxDevices {
		return ErrMaxDeviceLimitReached
	}
	return nil
}

func checkCoverage(b *Bus) error {
	for _, idx := range b.pageMap {
		if idx == -1 {
			return ErrUnmappedPages
		}
	}
	return nil
}
