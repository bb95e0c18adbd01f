//go:build linux

package bench

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/wippyai/anybox/errors"
)

// maxCPU bounds the affinity scan; unix.CPUSet holds 1024 CPUs.
const maxCPU = 1024

// PinCPU locks the calling goroutine to its OS thread and binds that thread
// to the CPU it is currently running on. When the current CPU cannot be read
// it falls back to the lowest CPU in the affinity mask. The returned function
// restores the previous affinity and unlocks the thread.
func PinCPU() (int, func(), error) {
	runtime.LockOSThread()

	var old unix.CPUSet
	if err := unix.SchedGetaffinity(0, &old); err != nil {
		runtime.UnlockOSThread()
		return -1, func() {}, errors.Wrap(errors.PhaseBench, errors.KindUnsupported, err, "read cpu affinity")
	}

	cpu, ok := currentCPU()
	if !ok || !old.IsSet(cpu) {
		cpu = -1
		for i := 0; i < maxCPU; i++ {
			if old.IsSet(i) {
				cpu = i
				break
			}
		}
	}
	if cpu < 0 {
		runtime.UnlockOSThread()
		return -1, func() {}, errors.Unsupported(errors.PhaseBench, "no cpu in affinity mask")
	}

	var set unix.CPUSet
	set.Set(cpu)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		runtime.UnlockOSThread()
		return -1, func() {}, errors.Wrap(errors.PhaseBench, errors.KindUnsupported, err, "set cpu affinity")
	}

	return cpu, func() {
		_ = unix.SchedSetaffinity(0, &old)
		runtime.UnlockOSThread()
	}, nil
}

// currentCPU returns the CPU the calling thread is running on.
func currentCPU() (int, bool) {
	var cpu uint32
	_, _, errno := unix.RawSyscall(unix.SYS_GETCPU, uintptr(unsafe.Pointer(&cpu)), 0, 0)
	if errno != 0 {
		return -1, false
	}
	return int(cpu), true
}
