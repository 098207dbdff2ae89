package feed

import (
	"sort"
	"sync"

	"github.com/vitwit/cartcheckout/types"
)

type entry struct {
	partition int
	offset    int64
	tx        *types.Transaction
}

// LatestStore keeps the newest snapshot per checkout key. It is safe for
// concurrent use.
type LatestStore struct {
	mu      sync.RWMutex
	entries map[string]entry
}

func NewLatestStore() *LatestStore {
	return &LatestStore{entries: make(map[string]entry)}
}

// Put stores tx unless a snapshot with a higher or equal offset on the same
// partition is already held. It reports whether tx was accepted.
func (s *LatestStore) Put(key string, partition int, offset int64, tx *types.Transaction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.entries[key]; ok && cur.partition == partition && cur.offset >= offset {
		return false
	}
	s.entries[key] = entry{partition: partition, offset: offset, tx: tx.Clone()}
	return true
}

// Get returns a copy of the latest snapshot for key.
func (s *LatestStore) Get(key string) (*types.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	return e.tx.Clone(), true
}

// Delete forgets key.
func (s *LatestStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Keys returns the stored keys sorted.
func (s *LatestStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
