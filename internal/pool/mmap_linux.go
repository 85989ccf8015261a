//go:build linux

package pool

import (
	"golang.org/x/sys/unix"
)

// mapRegion maps size bytes anonymously. When wantHuge is true it prefers a
// 2 MiB huge-page mapping (MAP_HUGETLB|MAP_HUGE_2MB), falling back to an
// ordinary anonymous mapping if the huge-page request is refused by the
// kernel (common when hugetlbfs has no reserved pages available).
func mapRegion(size int, wantHuge bool) (region []byte, hugePage bool, err error) {
	if wantHuge {
		region, err = unix.Mmap(-1, 0, size,
			unix.PROT_READ|unix.PROT_WRITE,
			unix.MAP_PRIVATE|unix.MAP_ANONYMOUS|unix.MAP_HUGETLB|unix.MAP_HUGE_2MB)
		if err == nil {
			return region, true, nil
		}
	}

	region, err = unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
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
