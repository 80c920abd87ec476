// Package simd provides CPU feature detection and the copy kernels used by
// the LZ4 block decoder.
package simd

import "sync"

// Copy implementation kinds, from the portable fallback up to the widest
// vector registers.
const (
	ImplGeneric = iota // Pure Go implementation
	ImplSSE41          // SSE4.1 implementation
	ImplAVX2           // AVX2 implementation
	ImplAVX512         // AVX512 implementation
	ImplNEON           // ARM NEON implementation
)

// Features reports what the running CPU offers the copy kernels.
type Features struct {
	HasSSE2   bool
	HasSSE41  bool
	HasAVX2   bool
	HasAVX512 bool
	HasNEON   bool
}

var (
	features   Features
	bestImpl   int
	detectOnce sync.Once
)

// DetectFeatures probes the CPU once and reports its feature flags. The
// probe itself lives in the per-architecture files.
func DetectFeatures() Features {
	detectOnce.Do(func() {
		features, bestImpl = detectFeatures()
	})
	return features
}

// BestImplementation returns the widest copy implementation available on
// this CPU.
func BestImplementation() int {
	DetectFeatures()
	return bestImpl
}

// ImplementationName returns a string name for the implementation type
func ImplementationName(impl int) string {
	switch impl {
	case ImplGeneric:
		return "Generic"
	case ImplSSE41:
		return "SSE4.1"
	case ImplAVX2:
		return "AVX2"
	case ImplAVX512:
		return "AVX512"
	case ImplNEON:
		return "NEON"
	default:
		return "Unknown"
	}
}
