//go:build unix

package irep

import (
	"os"

	"golang.org/x/sys/unix"
)

// Persist writes blob to path and durably flushes it via mmap+msync
// (domain-stack extension to spec.md §4.F, not part of the wire format
// itself — the bytes written are exactly what Encode produced). Grounded
// on hive/dirty/flush_unix.go's unix.Msync(data, unix.MS_SYNC) idiom and
// internal/mmfile/mmfile_unix.go's Map.
func Persist(path string, blob []byte) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if len(blob) == 0 {
		return f.Sync()
	}
	if err := f.Truncate(int64(len(blob))); err != nil {
		return err
	}

	data, err := unix.Mmap(int(f.Fd()), 0, len(blob), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return err
	}
	defer unix.Munmap(data)

	copy(data, blob)
	return unix.Msync(data, unix.MS_SYNC)
}

// Load reads back a blob written by Persist via a read-only mmap.
func Load(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()
	if size == 0 {
		return []byte{}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	defer unix.Munmap(data)

	out := make([]byte, size)
	copy(out, data)
	return out, nil
}
