package parallel

import "github.com/harriteja/GoZ4F/frame"

// Decode decompresses a complete LZ4 frame, decoding its blocks concurrently
// when the frame declares independent blocks. Frames with dependent blocks,
// or with too few blocks for concurrency to pay, fall back to the sequential
// decoder. The output is byte-identical to frame.Decode in every case.
func Decode(input []byte, workers int) ([]byte, error) {
	f, err := frame.Scan(input)
	if err != nil {
		return nil, err
	}

	if !f.IndependentBlocks || len(f.Blocks) < 2 {
		return frame.Decode(input)
	}

	d := NewDispatcher(workers)
	defer d.Stop()

	out, err := d.DecodeBlocks(f.Blocks)
	if err != nil {
		return nil, err
	}

	if err := f.VerifyContent(out); err != nil {
		return nil, err
	}
	return out, nil
}
