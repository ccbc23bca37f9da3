// Package dedup provides the bounded recency cache that suppresses
// reprocessing of redelivered events.
package dedup

import "sync"

const (
	defaultHighWater  = 1000
	defaultKeepRecent = 500
)

// DedupCacheService is an insertion-ordered bounded set. When the set grows
// past the high-water mark it evicts the oldest entries in bulk, keeping only
// the most recently inserted ones. Insertion order, not access order, drives
// eviction; entries never expire by time alone.
type DedupCacheService struct {
	mu         sync.Mutex
	highWater  int
	keepRecent int
	order      []string
	index      map[string]struct{}
}

func NewDedupCacheService() *DedupCacheService {
	return NewDedupCacheServiceWithBounds(defaultHighWater, defaultKeepRecent)
}

func NewDedupCacheServiceWithBounds(highWater, keepRecent int) *DedupCacheService {
	return &DedupCacheService{
		highWater:  highWater,
		keepRecent: keepRecent,
		index:      make(map[string]struct{}),
	}
}

// MarkIfNew marks the key as seen and reports whether this caller was the
// first writer. Concurrent callers racing on the same key see at most one
// true result.
func (s *DedupCacheService) MarkIfNew(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, seen := s.index[key]; seen {
		return false
	}

	s.index[key] = struct{}{}
	s.order = append(s.order, key)

	if len(s.order) > s.highWater {
		drop := len(s.order) - s.keepRecent
		for _, evicted := range s.order[:drop] {
			delete(s.index, evicted)
		}
		s.order = append([]string(nil), s.order[drop:]...)
	}

	return true
}

func (s *DedupCacheService) Seen(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, seen := s.index[key]
	return seen
}

func (s *DedupCacheService) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.order)
}
