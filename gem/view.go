package gem

import (
	"encoding/binary"
	"errors"
)

var errOutOfRange = errors.New("gem: read out of range")

// view is a read-only window onto a byte slice. Every accessor checks its
// bounds and none of them hand out memory the caller could modify.
type view struct {
	b []byte
}

func (v view) len() int {
	return len(v.b)
}

func (v view) slice(off, n int) (view, error) {
	if off < 0 || n < 0 || off > len(v.b) || n > len(v.b)-off {
		return view{}, errOutOfRange
	}
	return view{v.b[off : off+n : off+n]}, nil
}

func (v view) from(off int) (view, error) {
	if off < 0 || off > len(v.b) {
		return view{}, errOutOfRange
	}
	return view{v.b[off:]}, nil
}

func (v view) byteAt(off int) (uint8, error) {
	if off < 0 || off >= len(v.b) {
		return 0, errOutOfRange
	}
	return v.b[off], nil
}

func (v view) uint16LE(off int) (uint16, error) {
	s, err := v.slice(off, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(s.b), nil
}

// bytes returns a copy of the viewed bytes.
func (v view) bytes() []byte {
	b := make([]byte, len(v.b))
	copy(b, v.b)
	return b
}
