package simd

import "sync"

var (
	stepOnce sync.Once
	copyStep int
)

// CopyStep returns the register-width granularity the current CPU copies at.
// It only tunes the wild-copy loop; correctness never depends on it.
func CopyStep() int {
	stepOnce.Do(func() {
		switch BestImplementation() {
		case ImplAVX512:
			copyStep = 64
		case ImplAVX2:
			copyStep = 32
		case ImplSSE41, ImplNEON:
			copyStep = 16
		default:
			copyStep = 8
		}
	})
	return copyStep
}

// WildCopy copies length bytes from src to dst in register-width strides.
// dst and src must not overlap and both must hold at least length bytes.
func WildCopy(dst, src []byte, length int) {
	step := CopyStep()
	i := 0
	for ; i+step <= length; i += step {
		copy(dst[i:i+step], src[i:i+step])
	}
	if i < length {
		copy(dst[i:length], src[i:length])
	}
}

// MatchCopy copies length bytes inside dst from pos-offset to pos. When the
// regions overlap (offset < length) the copy runs byte at a time so the
// bytes being produced feed the remainder of the copy, which is what turns a
// short offset into a run. Bounds must be established by the caller.
func MatchCopy(dst []byte, pos, offset, length int) {
	src := pos - offset
	if offset >= length {
		WildCopy(dst[pos:], dst[src:src+length], length)
		return
	}
	for i := 0; i < length; i++ {
		dst[pos+i] = dst[src+i]
	}
}
