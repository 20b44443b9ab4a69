package reconcile

import "sync"

// LineKey identifies an order line by its display strings, the same strings
// the matcher compares against scanned units.
type LineKey struct {
	Name string `json:"name"`
	Size string `json:"size"`
}

// Session is the scan progress of one reconciliation run. It lives in this
// process only and is thrown away when the operator finishes; two devices
// reconciling the same order each hold their own session.
type Session struct {
	mu     sync.Mutex
	counts map[LineKey]int
	units  map[string]bool
}

func NewSession() *Session {
	return &Session{
		counts: make(map[LineKey]int),
		units:  make(map[string]bool),
	}
}

// TryIncrement bumps the scanned count for a line unless it already reached
// requested. The check and the bump are one critical section, so a count can
// never pass the requested quantity.
func (s *Session) TryIncrement(key LineKey, requested int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.counts[key]
	if current >= requested {
		return current, false
	}
	s.counts[key] = current + 1
	return current + 1, true
}

// Decrement undoes a TryIncrement whose follow-up write failed, so a scan
// either fully applies or leaves no trace.
func (s *Session) Decrement(key LineKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counts[key] > 0 {
		s.counts[key]--
	}
}

func (s *Session) Count(key LineKey) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[key]
}

func (s *Session) MarkScanned(unitID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.units[unitID] = true
}

func (s *Session) WasScanned(unitID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.units[unitID]
}

// Progress returns a snapshot of per-line counts for the fulfillment view.
func (s *Session) Progress() map[LineKey]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[LineKey]int, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}
	return out
}
