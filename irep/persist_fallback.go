//go:build !unix

package irep

import "os"

// Persist writes blob to path with an explicit fsync. Platforms without
// mmap+msync (see persist_unix.go) fall back to a plain durable write,
// mirroring internal/mmfile/mmfile_fallback.go's non-mmap path.
func Persist(path string, blob []byte) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(blob); err != nil {
		return err
	}
	return f.Sync()
}

// Load reads back a blob written by Persist.
func Load(path string) ([]byte, error) {
	return os.ReadFile(path)
}
