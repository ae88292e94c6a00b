// Package cpus reports how many CPUs the current process may run on.
package cpus

import "runtime"

// Available returns the number of CPUs usable by this process, bounded by
// GOMAXPROCS. It never returns less than 1.
func Available() int {
	n := affinity()
	if n < 1 {
		n = runtime.NumCPU()
	}
	return max(1, min(n, runtime.GOMAXPROCS(0)))
}
