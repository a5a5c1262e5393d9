package sim

import (
	"runtime"
	"sync"
)

// cellParallelThreshold is the minimum cell count to dispatch an interaction
// colour class to the pool. Cell tasks are heavy, so even a handful pay off.
const cellParallelThreshold = 2

// chunkFunc processes items [start, end) on the given worker.
type chunkFunc func(start, end, worker int)

// workerScratch holds per-worker state reused across frames.
type workerScratch struct {
	pairs int // interaction pairs applied this frame
}

// workChunk represents a range of items for a worker to process.
type workChunk struct {
	start, end int
	fn         chunkFunc
}

// workerPool runs fork-join loops on persistent goroutines.
type workerPool struct {
	scratches  []workerScratch
	numWorkers int
	threshold  int // loops shorter than this run inline

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

// newWorkerPool creates a pool with n workers; n <= 0 means GOMAXPROCS.
// Goroutines start on the first parallel loop.
func newWorkerPool(n, threshold int) *workerPool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if threshold < 1 {
		threshold = 1
	}
	return &workerPool{
		numWorkers: n,
		threshold:  threshold,
		scratches:  make([]workerScratch, n),
	}
}

// startWorkers launches persistent worker goroutines.
func (p *workerPool) startWorkers() {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *workerPool) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *workerPool) worker(workerID int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			chunk.fn(chunk.start, chunk.end, workerID)
			p.doneChan <- struct{}{}
		}
	}
}

// parallelFor splits [0, n) into one chunk per worker and returns once every
// chunk is done. With a single worker, or fewer than threshold items, fn runs
// inline as worker 0.
func (p *workerPool) parallelFor(n, threshold int, fn chunkFunc) {
	if n <= 0 {
		return
	}
	if p.numWorkers == 1 || n < threshold {
		fn(0, n, 0)
		return
	}

	// Ensure workers are running
	if !p.running {
		p.startWorkers()
	}

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers

	// Dispatch chunks to workers
	chunksDispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}

		p.workChan <- workChunk{start: start, end: end, fn: fn}
		chunksDispatched++
	}

	// Wait for all chunks to complete
	for i := 0; i < chunksDispatched; i++ {
		<-p.doneChan
	}
}

// resetPairs zeroes every worker's pair counter.
func (p *workerPool) resetPairs() {
	for i := range p.scratches {
		p.scratches[i].pairs = 0
	}
}

// pairs sums the pair counters across workers.
func (p *workerPool) pairs() int {
	total := 0
	for i := range p.scratches {
		total += p.scratches[i].pairs
	}
	return total
}
