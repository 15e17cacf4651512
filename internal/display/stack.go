package display

import (
	"sync"
	"time"

	"github.com/nicksukie/livesub/internal/core"
)

const (
	stackCapacity  = 2
	recentWindow   = 12 * time.Second
	recentCapacity = 15
)

// Stack is the display-stack policy: at most stackCapacity visible entries,
// each vetted against the visible entries and a 12s ring of recently-evicted
// translations before being appended. Owned by the translation worker and
// the UI-tick task only (spec's shared-collection ownership rule).
type Stack struct {
	mu sync.Mutex

	visible []core.DisplayItem
	recent  []recentEntry
	now     func() time.Time
}

type recentEntry struct {
	text string
	at   time.Time
}

func NewStack() *Stack {
	return &Stack{now: time.Now}
}

// Push evaluates a candidate against suppression rules and appends it if it
// survives. Returns false when the candidate was suppressed as a near-dup.
func (s *Stack) Push(text string, partial bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictExpired(now)

	for _, item := range s.visible {
		if similar(text, item.Text) {
			return false
		}
	}
	for _, r := range s.recent {
		if similar(text, r.text) {
			return false
		}
	}

	s.visible = append(s.visible, core.DisplayItem{Text: text, Partial: partial, CommitAt: now})
	if len(s.visible) > stackCapacity {
		oldest := s.visible[0]
		s.visible = s.visible[1:]
		s.recent = append(s.recent, recentEntry{text: oldest.Text, at: now})
		s.trimRecent()
	}
	return true
}

func (s *Stack) trimRecent() {
	if len(s.recent) > recentCapacity {
		s.recent = s.recent[len(s.recent)-recentCapacity:]
	}
}

func (s *Stack) evictExpired(now time.Time) {
	kept := s.recent[:0]
	for _, r := range s.recent {
		if now.Sub(r.at) <= recentWindow {
			kept = append(kept, r)
		}
	}
	s.recent = kept
}

// Visible returns a snapshot of the currently-visible display items, oldest
// first; the bottom (index 0) entry is the one render contracts check for
// the partial-muted style.
func (s *Stack) Visible() []core.DisplayItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.DisplayItem, len(s.visible))
	copy(out, s.visible)
	return out
}

// BottomPartial reports whether the bottom (oldest-visible) entry is marked
// partial, the signal the overlay's muted-render contract keys off of.
func (s *Stack) BottomPartial() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.visible) == 0 {
		return false
	}
	return s.visible[0].Partial
}

// Reset clears both the visible stack and the recent-translations ring.
func (s *Stack) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = nil
	s.recent = nil
}
