//go:build darwin

package pool

import (
	"golang.org/x/sys/unix"
)

// mapRegion maps size bytes anonymously. Darwin has no huge-page mapping
// flag in golang.org/x/sys/unix, so this always returns hugePage=false
// regardless of wantHuge; the region is still a real mmap'd mapping, just
// using the platform's default page size.
func mapRegion(size int, wantHuge bool) (region []byte, hugePage bool, err error) {
	region, err = unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, false, err
	}
	return region, false, nil
}

func unmapRegion(region []byte) error {
	if len(region) == 0 {
		return nil
	}
	return unix.Munmap(region)
}
