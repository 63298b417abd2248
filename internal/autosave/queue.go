package autosave

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fairyhunter13/food-waste-inventory-service/internal/model"
	"github.com/fairyhunter13/food-waste-inventory-service/internal/obs"
)

// queue is a buffered draft queue with a background broker. Enqueue never
// blocks: drafts wait in an unbounded backlog until the output buffer has room.
type queue struct {
	mu           sync.Mutex
	backlog      []model.Draft
	notify       chan struct{}
	out          chan model.Draft
	shuttingDown atomic.Bool

	enqueued  atomic.Uint64
	processed atomic.Uint64
}

func newQueue(outBuffer int) *queue {
	if outBuffer <= 0 {
		outBuffer = 64
	}
	return &queue{
		notify: make(chan struct{}, 1),
		out:    make(chan model.Draft, outBuffer),
	}
}

func (q *queue) start(ctx context.Context, highWatermark int) {
	go q.broker(ctx, highWatermark)
}

// broker moves backlog items to the output channel.
func (q *queue) broker(ctx context.Context, highWatermark int) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		q.flushOnce()
		if highWatermark > 0 {
			if sz := q.backlogSize(); sz > highWatermark {
				obs.Logger.Warnw("autosave_backlog_high", "backlog_size", sz, "high_watermark", highWatermark)
			}
		}
		select {
		case <-ctx.Done():
			return
		case <-q.notify:
		case <-ticker.C:
		}
	}
}

func (q *queue) flushOnce() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.backlog) > 0 && len(q.out) < cap(q.out) {
		item := q.backlog[0]
		q.backlog = q.backlog[1:]
		q.out <- item
	}
}

func (q *queue) enqueue(d model.Draft) error {
	if q.shuttingDown.Load() {
		return ErrClosed
	}
	q.enqueued.Add(1)
	q.mu.Lock()
	q.backlog = append(q.backlog, d)
	q.mu.Unlock()
	select {
	case q.notify <- struct{}{}:
	default:
	}
	return nil
}

func (q *queue) backlogSize() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.backlog)
}

// depth is backlog plus buffered output items.
func (q *queue) depth() int {
	q.mu.Lock()
	bl := len(q.backlog)
	q.mu.Unlock()
	return bl + len(q.out)
}

func (q *queue) markProcessed() { q.processed.Add(1) }

func (q *queue) closeIntake() { q.shuttingDown.Store(true) }
