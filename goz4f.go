// Package goz4f provides a pure-Go decompressor for the LZ4 frame format.
package goz4f

import (
	"bytes"
	"io"

	"github.com/harriteja/GoZ4F/frame"
	"github.com/harriteja/GoZ4F/parallel"
)

// Version constants
const (
	// Version of the library
	Version = "1.0.0"
	// VersionMajor is the major version number
	VersionMajor = 1
	// VersionMinor is the minor version number
	VersionMinor = 0
	// VersionPatch is the patch version number
	VersionPatch = 0
)

// Errors returned by the decoder, re-exported from the frame package so
// callers can classify failures with errors.Is.
var (
	// ErrTruncated reports input that ends before the frame does.
	ErrTruncated = frame.ErrTruncated
	// ErrCorrupted reports structural damage to the frame or a block.
	ErrCorrupted = frame.ErrCorrupted
	// ErrChecksumMismatch reports a failed block or content XXH32 check.
	ErrChecksumMismatch = frame.ErrChecksumMismatch
	// ErrUnsupported reports valid input using a feature this decoder does
	// not implement, such as preset dictionaries.
	ErrUnsupported = frame.ErrUnsupported
)

// ChecksumMismatchError is the content-checksum failure carrying the decoded
// payload; it unwraps to ErrChecksumMismatch.
type ChecksumMismatchError = frame.ChecksumMismatchError

// Decompress decompresses a complete LZ4 frame held in src and returns the
// original payload. src is only read; the returned slice is freshly
// allocated and owned by the caller.
func Decompress(src []byte) ([]byte, error) {
	return frame.Decode(src)
}

// DecompressConcurrent is Decompress with the block decoding spread over
// workers goroutines when the frame declares independent blocks. Workers <= 0
// means one per CPU. Frames with dependent blocks decode sequentially. The
// result is identical to Decompress.
func DecompressConcurrent(src []byte, workers int) ([]byte, error) {
	return parallel.Decode(src, workers)
}

// DecompressBlock decompresses a single raw LZ4 block, outside any frame.
// dict optionally supplies up to 64 KiB of history for matches to reference.
func DecompressBlock(src, dict []byte) ([]byte, error) {
	return frame.DecodeBlock(src, dict)
}

// Reader is an io.Reader yielding the decompressed payload of an LZ4 frame
// read from an underlying reader. The frame format carries its checksums in
// a trailer, so Reader consumes the whole underlying stream and decodes it
// on the first call to Read.
type Reader struct {
	src io.Reader
	out *bytes.Reader
	err error
}

// NewReader creates a new Reader that decompresses the frame read from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{src: r}
}

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.out == nil {
		raw, err := io.ReadAll(r.src)
		if err == nil {
			var decoded []byte
			decoded, err = frame.Decode(raw)
			if err == nil {
				r.out = bytes.NewReader(decoded)
			}
		}
		if err != nil {
			r.err = err
			return 0, err
		}
	}
	return r.out.Read(p)
}

// Reset discards the Reader's state and switches it to read from src.
func (r *Reader) Reset(src io.Reader) {
	r.src = src
	r.out = nil
	r.err = nil
}
