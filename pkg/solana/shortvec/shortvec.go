// Package shortvec implements the compact-u16 length encoding used by the
// wire format for transaction messages.
package shortvec

import (
	"io"
	"math"

	"github.com/pkg/errors"
)

// EncodeLen writes l to w in compact-u16 form, 7 bits per byte with the high
// bit marking continuation. Lengths above math.MaxUint16 are rejected.
func EncodeLen(w io.Writer, l int) (n int, err error) {
	if l > math.MaxUint16 {
		return 0, errors.Errorf("len exceeds %d", math.MaxUint16)
	}

	written := 0
	valBuf := make([]byte, 1)

	for {
		valBuf[0] = byte(l & 0x7f)
		l >>= 7
		if l == 0 {
			n, err := w.Write(valBuf)
			written += n

			return written, err
		}

		valBuf[0] |= 0x80
		n, err := w.Write(valBuf)
		written += n
		if err != nil {
			return written, err
		}
	}
}

// DecodeLen reads a compact-u16 length from r. Encodings longer than three
// bytes are invalid.
func DecodeLen(r io.Reader) (val int, err error) {
	var offset int
	valBuf := make([]byte, 1)

	for {
		if _, err := r.Read(valBuf); err != nil {
			return 0, err
		}

		val |= int(valBuf[0]&0x7f) << (offset * 7)
		offset++

		if valBuf[0]&0x80 == 0 {
			break
		}
	}

	if offset > 3 {
		return 0, errors.Errorf("invalid size: %d (max 3)", offset)
	}

	return val, nil
}
