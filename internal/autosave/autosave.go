// Package autosave debounces form drafts and applies them in the background:
// a per-form quiet window coalesces bursts of edits, a worker pipeline applies
// the surviving draft to the draft store, and sequence numbers keep a late
// older draft from overwriting a newer one.
package autosave

import (
	"context"
	"errors"
	"time"

	"github.com/fairyhunter13/food-waste-inventory-service/internal/model"
	"github.com/fairyhunter13/food-waste-inventory-service/internal/obs"
)

// ErrClosed is returned for drafts submitted after shutdown began.
var ErrClosed = errors.New("autosave closed")

const (
	DefaultQuiet     = 500 * time.Millisecond
	DefaultWorkers   = 2
	DefaultQueueSize = 128
)

// Options configure an Autosaver.
type Options struct {
	Quiet     time.Duration
	Workers   int
	QueueSize int
	Now       func() time.Time
}

// Autosaver wires the debouncer, the pipeline and the store together.
type Autosaver struct {
	deb   *Debouncer[string, model.Draft]
	pipe  *Pipeline
	store *Store
	seq   sequencer
	now   func() time.Time
}

// Metrics are the autosave counters.
type Metrics struct {
	Pending  int             `json:"pending"`
	Saved    int             `json:"saved_forms"`
	Pipeline PipelineMetrics `json:"pipeline"`
}

func New(opts Options) *Autosaver {
	if opts.Quiet <= 0 {
		opts.Quiet = DefaultQuiet
	}
	if opts.Workers < 1 {
		opts.Workers = DefaultWorkers
	}
	if opts.QueueSize < 1 {
		opts.QueueSize = DefaultQueueSize
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	a := &Autosaver{store: NewStore(), now: opts.Now}
	a.pipe = NewPipeline(a.store, opts.Workers, opts.QueueSize)
	a.deb = NewDebouncer(opts.Quiet, a.handoff)
	return a
}

// Start runs the pipeline workers.
func (a *Autosaver) Start(ctx context.Context) { a.pipe.Start(ctx) }

func (a *Autosaver) handoff(formID string, d model.Draft) {
	if err := a.pipe.Enqueue(d); err != nil {
		obs.Logger.Warnw("autosave_dropped", "form_id", formID, "sequence", d.Sequence, "error", err)
	}
}

// Save records a draft for formID. The draft is applied once the form has
// been quiet for the window; the returned draft carries its sequence.
func (a *Autosaver) Save(formID string, fields map[string]any) (model.Draft, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	d := model.Draft{FormID: formID, Fields: fields, Sequence: a.seq.next(), SavedAt: a.now().UTC()}
	if err := a.deb.Schedule(formID, d); err != nil {
		return model.Draft{}, err
	}
	return d, nil
}

// Get returns the applied draft for formID.
func (a *Autosaver) Get(formID string) (model.Draft, bool) { return a.store.Get(formID) }

// Flush hands every pending draft to the pipeline without waiting for its window.
func (a *Autosaver) Flush() int { return a.deb.Flush() }

// Shutdown stops accepting drafts, flushes pending ones and waits for the
// pipeline to apply them. It reports false when ctx ended first.
func (a *Autosaver) Shutdown(ctx context.Context) bool {
	n := a.deb.Close()
	a.pipe.CloseIntake()
	ok := a.pipe.DrainUntil(ctx)
	a.pipe.Stop()
	obs.Logger.Infow("autosave_shutdown", "flushed", n, "drained", ok)
	return ok
}

func (a *Autosaver) Metrics() Metrics {
	return Metrics{Pending: a.deb.Pending(), Saved: a.store.Len(), Pipeline: a.pipe.Metrics()}
}
