package autosave

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fairyhunter13/food-waste-inventory-service/internal/model"
	"github.com/fairyhunter13/food-waste-inventory-service/internal/obs"
)

func TestQueueNonBlockingEnqueue(t *testing.T) {
	q := newQueue(1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.start(ctx, 0)
	for i := 0; i < 1000; i++ {
		if err := q.enqueue(model.Draft{FormID: "x", Sequence: uint64(i + 1)}); err != nil {
			t.Fatalf("enqueue failed at %d: %v", i, err)
		}
	}
	if q.backlogSize() == 0 {
		t.Fatalf("expected backlog > 0")
	}
}

func TestPipelineCloseIntake(t *testing.T) {
	p := NewPipeline(NewStore(), 1, 1)
	p.CloseIntake()
	if !p.IsShuttingDown() {
		t.Fatalf("expected shutting down true")
	}
	if err := p.Enqueue(model.Draft{FormID: "x"}); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestPipelineDrain(t *testing.T) {
	obs.InitNop()
	st := NewStore()
	p := NewPipeline(st, 2, 16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)
	defer p.Stop()
	if wc := p.WorkerCount(); wc != 2 {
		t.Fatalf("expected 2 workers, got %d", wc)
	}
	for i := 1; i <= 100; i++ {
		_ = p.Enqueue(model.Draft{FormID: "xx", Fields: map[string]any{"n": i}, Sequence: uint64(i)})
	}
	ctxDrain, cancelDrain := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancelDrain()
	if ok := p.DrainUntil(ctxDrain); !ok {
		t.Fatalf("expected drain true")
	}
	m := p.Metrics()
	if m.Enqueued != 100 || m.Processed != 100 {
		t.Fatalf("unexpected metrics: %+v", m)
	}
	got, _ := st.Get("xx")
	if got.Sequence != 100 {
		t.Fatalf("expected newest draft to win, got sequence %d", got.Sequence)
	}
}

func TestPipelineDrainTimesOutWithoutWorkers(t *testing.T) {
	p := NewPipeline(NewStore(), 1, 1)
	_ = p.Enqueue(model.Draft{FormID: "x", Sequence: 1})
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if p.DrainUntil(ctx) {
		t.Fatalf("expected drain to time out")
	}
}
