package bench

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/pierrec/lz4/v4"

	goz4f "github.com/harriteja/GoZ4F"
)

const (
	// Test data size for benchmarks
	smallSize  = 1 << 10 // 1KB
	mediumSize = 1 << 16 // 64KB
	largeSize  = 1 << 20 // 1MB
)

var (
	// Global variables to prevent compiler optimizations
	result    []byte
	benchErr  error
	benchDims = []struct {
		name string
		size int
	}{
		{"Small", smallSize},
		{"Medium", mediumSize},
		{"Large", largeSize},
	}
)

// Generate test data with different compressibility
func generateData(size int, compressibility float64) []byte {
	data := make([]byte, size)

	if compressibility <= 0 {
		// Random data (incompressible)
		rand.Read(data)
		return data
	}

	if compressibility >= 1 {
		// All zeros (maximum compressibility)
		return data
	}

	patternSize := int(float64(size) * (1 - compressibility))
	if patternSize < 4 {
		patternSize = 4
	}

	pattern := make([]byte, patternSize)
	rand.Read(pattern)

	for i := 0; i < size; i += patternSize {
		n := copy(data[i:], pattern)
		if n < patternSize {
			break
		}
	}

	return data
}

func encodeFrame(b *testing.B, data []byte, options ...lz4.Option) []byte {
	b.Helper()

	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if err := w.Apply(options...); err != nil {
		b.Fatalf("applying writer options: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		b.Fatalf("encoding benchmark frame: %v", err)
	}
	if err := w.Close(); err != nil {
		b.Fatalf("closing writer: %v", err)
	}
	return buf.Bytes()
}

// Benchmark frame decompression across input sizes and compressibility
func BenchmarkDecompress(b *testing.B) {
	for _, dim := range benchDims {
		for _, comp := range []float64{0.0, 0.5, 0.9} {
			data := generateData(dim.size, comp)
			in := encodeFrame(b, data)

			name := dim.name
			switch comp {
			case 0.0:
				name += "/Random"
			case 0.5:
				name += "/Mixed"
			default:
				name += "/Redundant"
			}

			b.Run(name, func(b *testing.B) {
				b.SetBytes(int64(dim.size))
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					result, benchErr = goz4f.Decompress(in)
					if benchErr != nil {
						b.Fatalf("Decompress failed: %v", benchErr)
					}
				}
			})
		}
	}
}

// Benchmark concurrent decompression of multi-block frames
func BenchmarkDecompressConcurrent(b *testing.B) {
	data := generateData(4*largeSize, 0.5)
	in := encodeFrame(b, data, lz4.BlockSizeOption(lz4.Block256Kb))

	for _, workers := range []int{1, 2, 4, 8} {
		b.Run(string(rune('0'+workers))+"workers", func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				result, benchErr = goz4f.DecompressConcurrent(in, workers)
				if benchErr != nil {
					b.Fatalf("DecompressConcurrent failed: %v", benchErr)
				}
			}
		})
	}
}

// Benchmark raw block decompression without frame overhead
func BenchmarkDecompressBlock(b *testing.B) {
	data := generateData(mediumSize, 0.5)
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil || n == 0 {
		b.Fatalf("oracle compression failed: n=%d err=%v", n, err)
	}

	b.SetBytes(int64(mediumSize))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result, benchErr = goz4f.DecompressBlock(compressed[:n], nil)
		if benchErr != nil {
			b.Fatalf("DecompressBlock failed: %v", benchErr)
		}
	}
}
