package autosave

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/food-waste-inventory-service/internal/obs"
)

type recorder struct {
	mu    sync.Mutex
	calls map[string][]int
}

func (r *recorder) fn(k string, v int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.calls == nil {
		r.calls = map[string][]int{}
	}
	r.calls[k] = append(r.calls[k], v)
}

func (r *recorder) get(k string) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.calls[k]...)
}

func TestDebouncerCoalescesBurst(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(40*time.Millisecond, rec.fn)
	for i := 1; i <= 5; i++ {
		require.NoError(t, d.Schedule("form", i))
		time.Sleep(5 * time.Millisecond)
	}
	require.Eventually(t, func() bool { return len(rec.get("form")) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, []int{5}, rec.get("form"))
	assert.Zero(t, d.Pending())
}

func TestDebouncerKeysAreIndependent(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(20*time.Millisecond, rec.fn)
	require.NoError(t, d.Schedule("a", 1))
	require.NoError(t, d.Schedule("b", 2))
	require.Eventually(t, func() bool { return len(rec.get("a")) == 1 && len(rec.get("b")) == 1 }, time.Second, 5*time.Millisecond)
}

func TestDebouncerFlush(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(time.Hour, rec.fn)
	_ = d.Schedule("a", 1)
	_ = d.Schedule("a", 2)
	_ = d.Schedule("b", 3)
	assert.Equal(t, 2, d.Pending())
	assert.Equal(t, 2, d.Flush())
	assert.Equal(t, []int{2}, rec.get("a"))
	assert.Equal(t, []int{3}, rec.get("b"))
	assert.Zero(t, d.Flush())
	require.NoError(t, d.Schedule("a", 4), "flush keeps the debouncer open")
}

func TestDebouncerStopDropsPending(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(10*time.Millisecond, rec.fn)
	_ = d.Schedule("a", 1)
	d.Stop()
	time.Sleep(40 * time.Millisecond)
	assert.Empty(t, rec.get("a"))
	assert.True(t, errors.Is(d.Schedule("a", 2), ErrClosed))
}

func TestDebouncerCloseFiresPending(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(time.Hour, rec.fn)
	_ = d.Schedule("a", 7)
	assert.Equal(t, 1, d.Close())
	assert.Equal(t, []int{7}, rec.get("a"))
	assert.ErrorIs(t, d.Schedule("a", 8), ErrClosed)
}

func TestAutosaverAppliesAfterQuietWindow(t *testing.T) {
	obs.InitNop()
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	a := New(Options{Quiet: 30 * time.Millisecond, Workers: 1, QueueSize: 4, Now: func() time.Time { return now }})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.Start(ctx)

	first, err := a.Save("grocery", map[string]any{"businessType": "grocery"})
	require.NoError(t, err)
	second, err := a.Save("grocery", map[string]any{"perishableItems": 40.0})
	require.NoError(t, err)
	assert.Greater(t, second.Sequence, first.Sequence)

	_, ok := a.Get("grocery")
	assert.False(t, ok, "nothing applied before the window ends")

	require.Eventually(t, func() bool {
		_, ok := a.Get("grocery")
		return ok
	}, time.Second, 5*time.Millisecond)
	got, _ := a.Get("grocery")
	assert.Equal(t, second.Sequence, got.Sequence)
	assert.Equal(t, map[string]any{"perishableItems": 40.0}, got.Fields, "only the last draft of a burst is applied")
	assert.Equal(t, now, got.SavedAt)
}

func TestAutosaverShutdownFlushesAndRejects(t *testing.T) {
	obs.InitNop()
	a := New(Options{Quiet: time.Hour})
	a.Start(context.Background())

	_, err := a.Save("restaurant", map[string]any{"food_type": "Meat"})
	require.NoError(t, err)
	assert.Equal(t, 1, a.Metrics().Pending)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.True(t, a.Shutdown(ctx))

	got, ok := a.Get("restaurant")
	require.True(t, ok)
	assert.Equal(t, "Meat", got.Fields["food_type"])

	_, err = a.Save("restaurant", nil)
	assert.ErrorIs(t, err, ErrClosed)
	m := a.Metrics()
	assert.Equal(t, 1, m.Saved)
	assert.EqualValues(t, 1, m.Pipeline.Processed)
}
