package frame

import (
	"fmt"

	"github.com/harriteja/GoZ4F/simd"
)

const (
	// minMatch is the implicit length added to every encoded match.
	minMatch = 4
	// maxShortLength is the largest length a token nibble can hold before
	// continuation bytes take over.
	maxShortLength = 15
	// MaxWindow is how far back a match may reach across block boundaries
	// when blocks are dependent.
	MaxWindow = 64 * 1024
)

// DecodeBlock decompresses a single raw LZ4 block. dict, if non-nil,
// supplies history that matches may reference as if it preceded the block's
// output; only its trailing MaxWindow bytes are addressable. The returned
// slice holds this block's output only.
func DecodeBlock(src, dict []byte) ([]byte, error) {
	if len(dict) > MaxWindow {
		dict = dict[len(dict)-MaxWindow:]
	}
	dst := make([]byte, len(dict), len(dict)+len(src)+len(src)/2+64)
	copy(dst, dict)
	dst, err := appendBlock(dst, src, len(dict))
	if err != nil {
		return nil, err
	}
	return dst[len(dict):], nil
}

// appendBlock decodes src and appends its output to dst, returning the grown
// slice. window is the number of bytes immediately before the current end of
// dst that matches may address; bytes earlier than that are off limits, so
// window 0 gives independent-block semantics.
func appendBlock(dst []byte, src []byte, window int) ([]byte, error) {
	r := newReader(src)
	base := len(dst)

	for !r.empty() {
		token, err := r.u8()
		if err != nil {
			return nil, err
		}

		litLen := int(token >> 4)
		if litLen == maxShortLength {
			litLen, err = extendLength(r, litLen)
			if err != nil {
				return nil, err
			}
		}

		lit, err := r.bytes(litLen)
		if err != nil {
			return nil, err
		}
		if litLen > maxInt-len(dst) {
			return nil, fmt.Errorf("%w: output length overflow", ErrUnsupported)
		}
		pos := len(dst)
		dst = extend(dst, litLen)
		simd.WildCopy(dst[pos:], lit, litLen)

		// The final sequence carries literals only.
		if r.empty() {
			break
		}

		offset, err := r.u16()
		if err != nil {
			return nil, err
		}
		if offset == 0 {
			return nil, fmt.Errorf("%w: match offset 0", ErrCorrupted)
		}
		if int(offset) > len(dst)-base+window {
			return nil, fmt.Errorf("%w: match offset %d reaches before the window", ErrCorrupted, offset)
		}

		matchLen := int(token & 0x0F)
		if matchLen == maxShortLength {
			matchLen, err = extendLength(r, matchLen)
			if err != nil {
				return nil, err
			}
		}
		if matchLen > maxInt-minMatch {
			return nil, fmt.Errorf("%w: match length overflow", ErrUnsupported)
		}
		matchLen += minMatch
		if matchLen > maxInt-len(dst) {
			return nil, fmt.Errorf("%w: output length overflow", ErrUnsupported)
		}

		pos = len(dst)
		dst = extend(dst, matchLen)
		simd.MatchCopy(dst, pos, int(offset), matchLen)
	}

	return dst, nil
}

// extendLength accumulates length continuation bytes: each 0xFF adds 255 and
// continues, the first smaller byte is added and terminates. The encoding is
// unbounded, so the accumulator is checked against the host int range.
func extendLength(r *reader, n int) (int, error) {
	for {
		b, err := r.u8()
		if err != nil {
			return 0, err
		}
		if n > maxInt-255 {
			return 0, fmt.Errorf("%w: sequence length overflow", ErrUnsupported)
		}
		n += int(b)
		if b != 0xFF {
			return n, nil
		}
	}
}

// extend grows dst by n bytes, doubling capacity when reallocation is needed.
func extend(dst []byte, n int) []byte {
	need := len(dst) + n
	if cap(dst) >= need {
		return dst[:need]
	}
	newCap := 2 * cap(dst)
	if newCap < need {
		newCap = need
	}
	grown := make([]byte, need, newCap)
	copy(grown, dst)
	return grown
}
