package pool

import "unsafe"

// ptrOffset returns the byte offset of target from base. Both must point
// into the same allocation (the pool's region) for the result to be
// meaningful; slotIndex bounds-checks the result against the region length
// before trusting it.
func ptrOffset(base, target *byte) int64 {
	return int64(uintptr(unsafe.Pointer(target)) - uintptr(unsafe.Pointer(base)))
}
