package reconcile

import (
	"sync"
	"testing"
)

func TestSession_TryIncrementSaturates(t *testing.T) {
	s := NewSession()
	key := LineKey{Name: "Keg", Size: "50"}

	for i := 1; i <= 3; i++ {
		count, ok := s.TryIncrement(key, 3)
		if !ok || count != i {
			t.Fatalf("increment %d: got (%d, %v)", i, count, ok)
		}
	}
	if count, ok := s.TryIncrement(key, 3); ok {
		t.Errorf("expected saturation at 3, got %d", count)
	}
}

func TestSession_TryIncrementConcurrent(t *testing.T) {
	const requested = 10
	const attempts = 100

	s := NewSession()
	key := LineKey{Name: "Keg", Size: "50"}

	var wg sync.WaitGroup
	var mu sync.Mutex
	granted := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := s.TryIncrement(key, requested); ok {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if granted != requested {
		t.Errorf("expected exactly %d grants, got %d", requested, granted)
	}
	if s.Count(key) != requested {
		t.Errorf("expected count %d, got %d", requested, s.Count(key))
	}
}

func TestSession_DecrementFloorsAtZero(t *testing.T) {
	s := NewSession()
	key := LineKey{Name: "Keg", Size: "50"}

	s.Decrement(key)
	if s.Count(key) != 0 {
		t.Errorf("expected 0, got %d", s.Count(key))
	}

	s.TryIncrement(key, 2)
	s.Decrement(key)
	if s.Count(key) != 0 {
		t.Errorf("expected rollback to 0, got %d", s.Count(key))
	}
}

func TestSession_ProgressSnapshot(t *testing.T) {
	s := NewSession()
	a := LineKey{Name: "Keg", Size: "50"}
	b := LineKey{Name: "Cask", Size: "30"}

	s.TryIncrement(a, 5)
	s.TryIncrement(a, 5)
	s.TryIncrement(b, 1)

	got := s.Progress()
	if got[a] != 2 || got[b] != 1 {
		t.Errorf("unexpected snapshot: %v", got)
	}

	// Mutating the snapshot does not touch the session.
	got[a] = 99
	if s.Count(a) != 2 {
		t.Errorf("snapshot must be a copy, count is %d", s.Count(a))
	}
}
