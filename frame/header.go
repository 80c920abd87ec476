package frame

import (
	"fmt"

	"github.com/pierrec/xxHash/xxHash32"
)

const (
	// frameMagic identifies an LZ4 frame (little-endian on the wire).
	frameMagic = 0x184D2204

	// FLG bit assignments.
	flagDictID            = 0x01
	flagReserved          = 0x02
	flagContentChecksum   = 0x04
	flagContentSize       = 0x08
	flagBlockChecksum     = 0x10
	flagBlockIndependence = 0x20

	// BD bits outside the block-maximum-size field, all reserved.
	bdReservedMask = 0x8F

	// minFrameSize is magic + FLG + BD + HC + EndMark, the shortest frame
	// that can be valid (zero data blocks, no optional fields).
	minFrameSize = 11
)

const maxInt = int(^uint(0) >> 1)

// header holds the decoded frame descriptor.
type header struct {
	independentBlocks bool
	blockChecksum     bool
	contentChecksum   bool
	hasContentSize    bool
	contentSize       uint64
	blockSizeCode     uint8 // parsed for reserved-bit validity, otherwise ignored
}

// parseHeader reads and validates the frame descriptor, leaving the cursor
// at the first block mark. The magic number must already be consumed.
func parseHeader(r *reader) (header, error) {
	var h header

	descStart := r.offset()

	flg, err := r.u8()
	if err != nil {
		return h, err
	}
	if version := flg >> 6; version != 1 {
		return h, fmt.Errorf("%w: frame version %d", ErrCorrupted, version)
	}
	if flg&flagReserved != 0 {
		return h, fmt.Errorf("%w: reserved FLG bit set", ErrCorrupted)
	}
	h.independentBlocks = flg&flagBlockIndependence != 0
	h.blockChecksum = flg&flagBlockChecksum != 0
	h.hasContentSize = flg&flagContentSize != 0
	h.contentChecksum = flg&flagContentChecksum != 0

	bd, err := r.u8()
	if err != nil {
		return h, err
	}
	if bd&bdReservedMask != 0 {
		return h, fmt.Errorf("%w: reserved BD bits set", ErrCorrupted)
	}
	h.blockSizeCode = (bd >> 4) & 0x7

	if h.hasContentSize {
		// Content size, header checksum and EndMark must all still fit.
		if r.left() < 8+1+4 {
			return h, ErrTruncated
		}
		h.contentSize, err = r.u64()
		if err != nil {
			return h, err
		}
		if h.contentSize > uint64(maxInt) {
			return h, fmt.Errorf("%w: content size %d exceeds addressable memory", ErrUnsupported, h.contentSize)
		}
	}

	if flg&flagDictID != 0 {
		return h, fmt.Errorf("%w: preset dictionaries", ErrUnsupported)
	}

	descEnd := r.offset()
	hc, err := r.u8()
	if err != nil {
		return h, err
	}
	want := byte(xxHash32.Checksum(r.buf[descStart:descEnd], 0) >> 8)
	if hc != want {
		return h, fmt.Errorf("%w: header checksum %02x, descriptor hashes to %02x", ErrCorrupted, hc, want)
	}

	return h, nil
}
