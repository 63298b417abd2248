package autosave

import (
	"sync"
	"time"
)

type pendingCall[V any] struct {
	timer *time.Timer
	value V
	gen   uint64
}

// Debouncer delays a call per key until the key has been quiet for the
// window, then fires once with the latest value. Each Schedule for a key
// cancels and replaces the pending call.
type Debouncer[K comparable, V any] struct {
	quiet time.Duration
	fn    func(K, V)

	mu       sync.Mutex
	inflight sync.WaitGroup
	gen      uint64
	closed   bool
	pending  map[K]*pendingCall[V]
}

func NewDebouncer[K comparable, V any](quiet time.Duration, fn func(K, V)) *Debouncer[K, V] {
	return &Debouncer[K, V]{quiet: quiet, fn: fn, pending: make(map[K]*pendingCall[V])}
}

// Schedule (re)starts the quiet window for key with value v.
func (d *Debouncer[K, V]) Schedule(key K, v V) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	if p, ok := d.pending[key]; ok {
		p.timer.Stop()
	}
	d.gen++
	gen := d.gen
	p := &pendingCall[V]{value: v, gen: gen}
	p.timer = time.AfterFunc(d.quiet, func() { d.fire(key, gen) })
	d.pending[key] = p
	return nil
}

// fire runs the call for key unless a later Schedule, Flush or Stop took it.
func (d *Debouncer[K, V]) fire(key K, gen uint64) {
	d.mu.Lock()
	p, ok := d.pending[key]
	if !ok || p.gen != gen {
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.inflight.Add(1)
	d.mu.Unlock()
	defer d.inflight.Done()
	d.fn(key, p.value)
}

func (d *Debouncer[K, V]) takeAll() map[K]*pendingCall[V] {
	all := d.pending
	d.pending = make(map[K]*pendingCall[V])
	for _, p := range all {
		p.timer.Stop()
	}
	return all
}

// Flush fires every pending call now and returns how many fired.
func (d *Debouncer[K, V]) Flush() int {
	d.mu.Lock()
	all := d.takeAll()
	d.mu.Unlock()
	for k, p := range all {
		d.fn(k, p.value)
	}
	return len(all)
}

// Close rejects future Schedules, fires every pending call and waits for
// calls already started by their timers.
func (d *Debouncer[K, V]) Close() int {
	d.mu.Lock()
	d.closed = true
	all := d.takeAll()
	d.mu.Unlock()
	for k, p := range all {
		d.fn(k, p.value)
	}
	d.inflight.Wait()
	return len(all)
}

// Stop rejects future Schedules and drops every pending call.
func (d *Debouncer[K, V]) Stop() {
	d.mu.Lock()
	d.closed = true
	d.takeAll()
	d.mu.Unlock()
}

// Pending returns the number of keys waiting for their window to end.
func (d *Debouncer[K, V]) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}
