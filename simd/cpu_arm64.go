//go:build arm64

package simd

// detectFeatures needs no probe on ARM64: NEON is mandatory there.
func detectFeatures() (Features, int) {
	return Features{HasNEON: true}, ImplNEON
}
