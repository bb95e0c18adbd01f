//go:build !linux

package bench

// PinCPU is a no-op on platforms without thread affinity control.
// It reports CPU -1.
func PinCPU() (int, func(), error) {
	return -1, func() {}, nil
}
