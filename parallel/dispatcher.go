// Package parallel decodes the blocks of an independent-block LZ4 frame on a
// worker pool.
package parallel

import (
	"errors"
	"runtime"
	"sync"

	"github.com/harriteja/GoZ4F/frame"
)

// DefaultNumWorkers means use runtime.GOMAXPROCS(0) workers.
const DefaultNumWorkers = 0

// Dispatcher manages parallel decoding of LZ4 blocks
type Dispatcher struct {
	// Number of worker goroutines
	numWorkers int

	// Channel for work distribution
	jobChan chan decodeJob

	// WaitGroup for worker synchronization
	wg sync.WaitGroup

	// Dispatcher state
	running   bool
	runningMu sync.Mutex

	// Stats
	totalJobs  int
	totalBytes int64
}

// decodeJob represents a block to be decoded
type decodeJob struct {
	id       int
	block    frame.Block
	resultCh chan<- decodeResult
}

// decodeResult represents a decoded block
type decodeResult struct {
	id     int
	output []byte
	err    error
}

// NewDispatcher creates a new parallel decode dispatcher
func NewDispatcher(numWorkers int) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	return &Dispatcher{
		numWorkers: numWorkers,
		jobChan:    make(chan decodeJob, numWorkers*2),
	}
}

// Start launches worker goroutines
func (d *Dispatcher) Start() error {
	d.runningMu.Lock()
	defer d.runningMu.Unlock()

	if d.running {
		return errors.New("dispatcher already running")
	}

	d.totalJobs = 0
	d.totalBytes = 0

	d.wg.Add(d.numWorkers)
	for i := 0; i < d.numWorkers; i++ {
		go d.worker()
	}

	d.running = true
	return nil
}

// Stop shuts down worker goroutines
func (d *Dispatcher) Stop() {
	d.runningMu.Lock()
	defer d.runningMu.Unlock()

	if !d.running {
		return
	}

	close(d.jobChan)
	d.wg.Wait()

	d.running = false
}

// worker processes decode jobs
func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for job := range d.jobChan {
		job.resultCh <- d.decodeBlock(job)
	}
}

// decodeBlock decodes a single block. Stored blocks pass through untouched;
// the join step copies them into place.
func (d *Dispatcher) decodeBlock(job decodeJob) decodeResult {
	if job.block.Stored {
		return decodeResult{id: job.id, output: job.block.Data}
	}

	output, err := frame.DecodeBlock(job.block.Data, nil)
	return decodeResult{
		id:     job.id,
		output: output,
		err:    err,
	}
}

// DecodeBlocks decodes the given blocks in parallel and returns their
// concatenated output in block order. The blocks must be independent: no
// block's matches may reference another block's history.
func (d *Dispatcher) DecodeBlocks(blocks []frame.Block) ([]byte, error) {
	d.runningMu.Lock()
	running := d.running
	d.runningMu.Unlock()
	if !running {
		if err := d.Start(); err != nil {
			return nil, err
		}
	}

	results := make([][]byte, len(blocks))
	resultCh := make(chan decodeResult, len(blocks))

	for i, b := range blocks {
		d.jobChan <- decodeJob{
			id:       i,
			block:    b,
			resultCh: resultCh,
		}
		d.totalJobs++
	}

	// Collect results
	var err error
	for range blocks {
		result := <-resultCh
		results[result.id] = result.output

		if result.err != nil && err == nil {
			err = result.err
		}
	}

	if err != nil {
		return nil, err
	}

	// Combine results in block order
	totalSize := 0
	for _, out := range results {
		totalSize += len(out)
	}
	d.totalBytes += int64(totalSize)

	output := make([]byte, totalSize)
	pos := 0
	for _, out := range results {
		copy(output[pos:], out)
		pos += len(out)
	}

	return output, nil
}

// NumWorkers returns the number of worker goroutines
func (d *Dispatcher) NumWorkers() int {
	return d.numWorkers
}

// TotalJobs returns how many blocks this dispatcher has decoded
func (d *Dispatcher) TotalJobs() int {
	return d.totalJobs
}
