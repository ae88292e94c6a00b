//go:build linux

package cpus

import "golang.org/x/sys/unix"

// affinity returns the size of the scheduler affinity mask, which honors
// taskset and cgroup cpusets, or 0 when it cannot be read.
func affinity() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return 0
	}
	return set.Count()
}
