package irep

import (
	"encoding/binary"

	"github.com/klauspost/compress/zstd"
)

// PackArchive concatenates blobs (each length-prefixed) and zstd-compresses
// the result — a domain-stack extension for `schemectl pack`, letting
// several serialized IReps travel as one compressed container without
// changing the §4.F wire format of any individual blob. Grounded on
// SnellerInc-sneller's use of klauspost/compress/zstd.
func PackArchive(blobs [][]byte) ([]byte, error) {
	var raw []byte
	var lenPrefix [4]byte
	for _, b := range blobs {
		binary.LittleEndian.PutUint32(lenPrefix[:], uint32(len(b)))
		raw = append(raw, lenPrefix[:]...)
		raw = append(raw, b...)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil), nil
}

// UnpackArchive reverses PackArchive.
func UnpackArchive(archive []byte) ([][]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	raw, err := dec.DecodeAll(archive, nil)
	if err != nil {
		return nil, err
	}

	var blobs [][]byte
	pos := 0
	for pos < len(raw) {
		if pos+4 > len(raw) {
			return nil, ErrTruncated
		}
		l := int(binary.LittleEndian.Uint32(raw[pos : pos+4]))
		pos += 4
		if pos+l > len(raw) {
			return nil, ErrTruncated
		}
		blobs = append(blobs, raw[pos:pos+l])
		pos += l
	}
	return blobs, nil
}
