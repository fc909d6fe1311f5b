package compactproto

import (
	"github.com/pkg/errors"

	"github.com/parquet-forensics/inspector/internal/inspecterr"
)

// maxVarintBytes bounds how many continuation bytes readVarint will
// consume before declaring the stream malformed; a 64-bit varint never
// needs more than 10 bytes (7 payload bits each).
const maxVarintBytes = 10

// readVarint reads an unsigned LEB128 varint (least significant group
// first), as used for string/binary lengths and list/map sizes.
func (r *Reader) readVarint() (uint64, error) {
	var result uint64
	var shift uint
	for i := 0; i < maxVarintBytes; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
	return 0, errors.Wrapf(inspecterr.DecodeError, "varint overflow at offset %d", r.Tell())
}

// readZigzagVarint reads a zigzag-encoded signed varint, used for every
// signed integer field (i16/i32/i64) and the absolute field id in the
// full-form field header.
func (r *Reader) readZigzagVarint() (int64, error) {
	u, err := r.readVarint()
	if err != nil {
		return 0, err
	}
	return int64(u>>1) ^ -int64(u&1), nil
}
