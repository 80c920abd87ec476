//go:build !amd64 && !arm64

package simd

// detectFeatures reports no vector features; other architectures use the
// generic copy kernel.
func detectFeatures() (Features, int) {
	return Features{}, ImplGeneric
}
