package progress

import "sync"

// Tracker remembers the last phase rendered per checkout so that phase
// regressions reported by the engine can be surfaced. It does not alter
// what gets rendered.
type Tracker struct {
	mu   sync.Mutex
	last map[string]Phase
}

func NewTracker() *Tracker {
	return &Tracker{last: make(map[string]Phase)}
}

// Observe records phase for key and returns the previously recorded phase
// and whether the new one moves backwards. PhaseNone is never recorded.
func (t *Tracker) Observe(key string, phase Phase) (prev Phase, regressed bool) {
	if phase == PhaseNone {
		return PhaseNone, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	prev = t.last[key]
	t.last[key] = phase
	return prev, prev != PhaseNone && phase < prev
}

// Forget drops the recorded phase for key.
func (t *Tracker) Forget(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.last, key)
}
