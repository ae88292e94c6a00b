//go:build !linux

package cpus

func affinity() int {
	return 0
}
