package autosave

import (
	"sync"
	"testing"

	"github.com/fairyhunter13/food-waste-inventory-service/internal/model"
)

func TestStorePartialDrafts(t *testing.T) {
	s := NewStore()
	s.Apply(model.Draft{FormID: "f1", Fields: map[string]any{"businessType": "grocery"}, Sequence: 1})
	s.Apply(model.Draft{FormID: "f1", Fields: map[string]any{"perishableItems": 40.0}, Sequence: 2})
	got, ok := s.Get("f1")
	if !ok {
		t.Fatalf("not found")
	}
	if got.Fields["businessType"] != "grocery" || got.Fields["perishableItems"] != 40.0 || got.Sequence != 2 {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestStoreLastWriteWins(t *testing.T) {
	s := NewStore()
	if !s.Apply(model.Draft{FormID: "f2", Fields: map[string]any{"location": "Miami"}, Sequence: 2}) {
		t.Fatalf("expected first draft applied")
	}
	if s.Apply(model.Draft{FormID: "f2", Fields: map[string]any{"location": "Chicago"}, Sequence: 1}) {
		t.Fatalf("expected older draft ignored")
	}
	if s.Apply(model.Draft{FormID: "f2", Fields: map[string]any{"location": "Chicago"}, Sequence: 2}) {
		t.Fatalf("expected duplicate sequence ignored")
	}
	got, _ := s.Get("f2")
	if got.Fields["location"] != "Miami" {
		t.Fatalf("expected Miami, got %v", got.Fields["location"])
	}
}

func TestStoreIgnoresEmptyFormID(t *testing.T) {
	s := NewStore()
	if s.Apply(model.Draft{Sequence: 1}) || s.Len() != 0 {
		t.Fatalf("expected empty form id ignored")
	}
}

func TestStoreGetReturnsCopy(t *testing.T) {
	s := NewStore()
	in := map[string]any{"a": 1}
	s.Apply(model.Draft{FormID: "f", Fields: in, Sequence: 1})
	in["a"] = 2
	got, _ := s.Get("f")
	got.Fields["a"] = 3
	again, _ := s.Get("f")
	if again.Fields["a"] != 1 {
		t.Fatalf("store aliased caller maps: %v", again.Fields["a"])
	}
}

func TestStoreConcurrentApply(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 1; i <= 100; i++ {
		seq := uint64(i)
		v := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Apply(model.Draft{FormID: "f3", Fields: map[string]any{"n": v}, Sequence: seq})
		}()
	}
	wg.Wait()
	got, ok := s.Get("f3")
	if !ok {
		t.Fatalf("not found")
	}
	if got.Fields["n"] != 100 || got.Sequence != 100 {
		t.Fatalf("expected 100, got %v", got.Fields["n"])
	}
}
