package autosave

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fairyhunter13/food-waste-inventory-service/internal/model"
	"github.com/fairyhunter13/food-waste-inventory-service/internal/obs"
)

// sequencer provides monotonically increasing sequence numbers.
type sequencer struct{ n atomic.Uint64 }

func (s *sequencer) next() uint64 { return s.n.Add(1) }

// Pipeline applies queued drafts to a Store with a fixed pool of workers.
type Pipeline struct {
	q       *queue
	st      *Store
	workers int
	ctx     context.Context
	cancel  context.CancelFunc

	mu            sync.Mutex
	workerCancels []context.CancelFunc
}

// NewPipeline builds a pipeline with the given worker count and output buffer.
func NewPipeline(st *Store, workers, buffer int) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{q: newQueue(buffer), st: st, workers: workers}
}

// Start runs the broker and the workers until parent is done or Stop is called.
func (p *Pipeline) Start(parent context.Context) {
	p.ctx, p.cancel = context.WithCancel(parent)
	p.q.start(p.ctx, cap(p.q.out))
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := 0; i < p.workers; i++ {
		wctx, cancel := context.WithCancel(p.ctx)
		p.workerCancels = append(p.workerCancels, cancel)
		go p.worker(wctx)
	}
	obs.Logger.Infow("autosave_workers_started", "worker_count", len(p.workerCancels))
}

// Stop cancels the broker and the workers.
func (p *Pipeline) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Lock()
	for _, c := range p.workerCancels {
		c()
	}
	p.workerCancels = nil
	p.mu.Unlock()
}

func (p *Pipeline) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case d := <-p.q.out:
			if !p.st.Apply(d) {
				obs.Logger.Debugw("autosave_stale_draft", "form_id", d.FormID, "sequence", d.Sequence)
			}
			p.q.markProcessed()
		}
	}
}

// Enqueue hands a draft to the workers. It fails with ErrClosed after CloseIntake.
func (p *Pipeline) Enqueue(d model.Draft) error { return p.q.enqueue(d) }

// CloseIntake rejects future enqueues.
func (p *Pipeline) CloseIntake() { p.q.closeIntake() }

// IsShuttingDown reports whether intake has been closed.
func (p *Pipeline) IsShuttingDown() bool { return p.q.shuttingDown.Load() }

// WorkerCount returns the number of running workers.
func (p *Pipeline) WorkerCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.workerCancels)
}

// PipelineMetrics are the pipeline counters and sizes.
type PipelineMetrics struct {
	Enqueued  uint64 `json:"enqueued"`
	Processed uint64 `json:"processed"`
	Backlog   int    `json:"backlog"`
	Depth     int    `json:"depth"`
	Workers   int    `json:"workers"`
}

func (p *Pipeline) Metrics() PipelineMetrics {
	return PipelineMetrics{
		Enqueued:  p.q.enqueued.Load(),
		Processed: p.q.processed.Load(),
		Backlog:   p.q.backlogSize(),
		Depth:     p.q.depth(),
		Workers:   p.WorkerCount(),
	}
}

// DrainUntil blocks until every enqueued draft is applied or ctx is done.
func (p *Pipeline) DrainUntil(ctx context.Context) bool {
	for {
		m := p.Metrics()
		if m.Backlog == 0 && m.Depth == 0 && m.Enqueued == m.Processed {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(50 * time.Millisecond):
		}
	}
}
