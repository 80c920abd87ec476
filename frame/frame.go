// Package frame implements the LZ4 frame container: descriptor parsing,
// block decoding with inter-block window carry, and the XXH32 integrity
// checks at the header, block and content level.
package frame

import (
	"fmt"

	"github.com/pierrec/xxHash/xxHash32"
)

// storedBit marks a block mark whose payload is raw rather than compressed.
const storedBit = 0x80000000

// Block is one framed data block: a view into the input buffer plus the
// stored/compressed distinction from the block mark's high bit.
type Block struct {
	Data   []byte
	Stored bool
}

// Frame is a scanned frame: the validated descriptor and the framed block
// payloads, with all block checksums already verified.
type Frame struct {
	IndependentBlocks  bool
	HasContentSize     bool
	ContentSize        uint64
	HasContentChecksum bool
	ContentChecksum    uint32
	Blocks             []Block
}

// Scan parses and validates everything in input except the block payloads
// themselves: magic, descriptor, header checksum, block framing, per-block
// checksums, EndMark and trailer. Block payloads are returned as views into
// input for Decode or a concurrent decoder to consume.
func Scan(input []byte) (*Frame, error) {
	if len(input) < minFrameSize {
		return nil, ErrTruncated
	}

	r := newReader(input)

	magic, err := r.u32()
	if err != nil {
		return nil, err
	}
	if magic != frameMagic {
		return nil, fmt.Errorf("%w: bad magic %08x", ErrCorrupted, magic)
	}

	h, err := parseHeader(r)
	if err != nil {
		return nil, err
	}

	f := &Frame{
		IndependentBlocks:  h.independentBlocks,
		HasContentSize:     h.hasContentSize,
		ContentSize:        h.contentSize,
		HasContentChecksum: h.contentChecksum,
	}

	for {
		mark, err := r.u32()
		if err != nil {
			return nil, err
		}
		if mark == 0 {
			break // EndMark
		}

		stored := mark&storedBit != 0
		blockSize := int(mark &^ storedBit)

		// The payload, its checksum if any, and at least an EndMark must
		// still fit.
		need := blockSize + 4
		if h.blockChecksum {
			need += 4
		}
		if r.left() < need {
			return nil, ErrTruncated
		}

		payload, err := r.bytes(blockSize)
		if err != nil {
			return nil, err
		}

		if h.blockChecksum {
			sum, err := r.u32()
			if err != nil {
				return nil, err
			}
			if got := xxHash32.Checksum(payload, 0); got != sum {
				return nil, fmt.Errorf("%w: block checksum %08x, payload hashes to %08x", ErrChecksumMismatch, sum, got)
			}
		}

		f.Blocks = append(f.Blocks, Block{Data: payload, Stored: stored})
	}

	if h.contentChecksum {
		f.ContentChecksum, err = r.u32()
		if err != nil {
			return nil, err
		}
	}

	return f, nil
}

// Decode decompresses a complete LZ4 frame held in input and returns the
// original payload.
func Decode(input []byte) ([]byte, error) {
	f, err := Scan(input)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, f.sizeHint())
	for _, b := range f.Blocks {
		if b.Stored {
			out = append(out, b.Data...)
			continue
		}
		window := 0
		if !f.IndependentBlocks {
			window = len(out)
			if window > MaxWindow {
				window = MaxWindow
			}
		}
		out, err = appendBlock(out, b.Data, window)
		if err != nil {
			return nil, err
		}
	}

	if err := f.VerifyContent(out); err != nil {
		return nil, err
	}
	return out, nil
}

// VerifyContent checks the decoded payload against the declared content size
// and the content checksum. A checksum failure carries out in the error so
// callers may still inspect the data.
func (f *Frame) VerifyContent(out []byte) error {
	if f.HasContentSize && uint64(len(out)) != f.ContentSize {
		return fmt.Errorf("%w: decoded %d bytes, frame declares %d", ErrCorrupted, len(out), f.ContentSize)
	}
	if f.HasContentChecksum {
		if got := xxHash32.Checksum(out, 0); got != f.ContentChecksum {
			return &ChecksumMismatchError{Got: got, Want: f.ContentChecksum, Decoded: out}
		}
	}
	return nil
}

// sizeHint estimates the output size for the initial allocation.
func (f *Frame) sizeHint() int {
	if f.HasContentSize {
		// The declared size is only trusted for the allocation when the
		// blocks could produce it: no block expands more than 255-fold.
		limit := uint64(0)
		for _, b := range f.Blocks {
			limit += 255 * uint64(len(b.Data))
		}
		if f.ContentSize <= limit {
			return int(f.ContentSize)
		}
	}
	n := 0
	for _, b := range f.Blocks {
		if b.Stored {
			n += len(b.Data)
		} else {
			// Compressed blocks usually expand; 2x is a cheap guess and
			// appendBlock grows past it when wrong.
			n += 2 * len(b.Data)
		}
	}
	return n
}
