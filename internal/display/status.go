package display

import (
	"container/heap"
	"sync"
	"time"

	"github.com/nicksukie/livesub/internal/core"
)

const statusCapacity = 6

// statusHeap implements [container/heap.Interface] as a min-heap ordered by
// expiry time ascending, so the soonest-to-expire message sits at the root.
type statusHeap []core.StatusMessage

func (h statusHeap) Len() int            { return len(h) }
func (h statusHeap) Less(i, j int) bool  { return h[i].ExpiryTime.Before(h[j].ExpiryTime) }
func (h statusHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *statusHeap) Push(x any)         { *h = append(*h, x.(core.StatusMessage)) }
func (h *statusHeap) Pop() any {
	old := *h
	n := len(old)
	m := old[n-1]
	*h = old[:n-1]
	return m
}

// StatusSet is the transient status-message collection: a capacity-6
// min-heap on expiry time, evicted lazily on every read.
type StatusSet struct {
	mu   sync.Mutex
	h    statusHeap
	now  func() time.Time
}

func NewStatusSet() *StatusSet {
	s := &StatusSet{now: time.Now}
	heap.Init(&s.h)
	return s
}

// Push adds a status message that expires after ttl. If the set is already
// at capacity, the message with the soonest expiry is evicted to make room.
func (s *StatusSet) Push(text string, ttl time.Duration, isGoodNews bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := core.StatusMessage{Text: text, ExpiryTime: s.now().Add(ttl), IsGoodNews: isGoodNews}
	heap.Push(&s.h, msg)
	if s.h.Len() > statusCapacity {
		heap.Pop(&s.h)
	}
}

// Active returns the non-expired messages, evicting expired ones first.
// Order is not significant to callers; the overlay renders the full set.
func (s *StatusSet) Active() []core.StatusMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpired()
	out := make([]core.StatusMessage, len(s.h))
	copy(out, s.h)
	return out
}

func (s *StatusSet) evictExpired() {
	now := s.now()
	kept := s.h[:0]
	for _, m := range s.h {
		if m.ExpiryTime.After(now) {
			kept = append(kept, m)
		}
	}
	s.h = kept
	heap.Init(&s.h)
}
