package challenge

import (
	"container/heap"
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/todo-api/internal/constants"
)

type entry struct {
	answer    int
	expiresAt time.Time
}

type deadline struct {
	id string
	at time.Time
}

// deadlineQueue is a min-heap of expiry deadlines, earliest first.
type deadlineQueue []deadline

func (q deadlineQueue) Len() int           { return len(q) }
func (q deadlineQueue) Less(i, j int) bool { return q[i].at.Before(q[j].at) }
func (q deadlineQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *deadlineQueue) Push(x any) {
	*q = append(*q, x.(deadline))
}

func (q *deadlineQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// MemoryStore keeps challenges in process memory. Expired entries are dropped
// lazily on every access and periodically by Run.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	queue   deadlineQueue

	ttl   time.Duration
	now   func() time.Time
	intn  func(int) int
	newID func() string
}

// Option configures a MemoryStore.
type Option func(*MemoryStore)

// WithTTL sets how long an unverified challenge stays valid.
func WithTTL(ttl time.Duration) Option {
	return func(s *MemoryStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// WithRand replaces the operand source. intn must return a value in [0, n).
func WithRand(intn func(int) int) Option {
	return func(s *MemoryStore) {
		s.intn = intn
	}
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]entry),
		ttl:     constants.DefaultChallengeTTL,
		now:     time.Now,
		intn:    defaultIntN,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate implements Store.
func (s *MemoryStore) Generate(_ context.Context) (Challenge, error) {
	num1, num2 := operands(s.intn)
	id := s.newID()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purgeLocked(now)

	expiresAt := now.Add(s.ttl)
	s.entries[id] = entry{answer: num1 * num2, expiresAt: expiresAt}
	heap.Push(&s.queue, deadline{id: id, at: expiresAt})

	return Challenge{ID: id, Num1: num1, Num2: num2}, nil
}

// Verify implements Store.
func (s *MemoryStore) Verify(_ context.Context, id string, answer int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purgeLocked(now)

	e, ok := s.entries[id]
	if !ok || !now.Before(e.expiresAt) {
		return false, nil
	}
	if e.answer != answer {
		return false, nil
	}

	// The queued deadline stays behind; purging an absent id is a no-op.
	delete(s.entries, id)
	return true, nil
}

// Len returns the number of live challenges.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeLocked(s.now())
	return len(s.entries)
}

// Run sweeps expired challenges every interval until ctx is done.
func (s *MemoryStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			removed := s.purgeLocked(s.now())
			s.mu.Unlock()
			if removed > 0 {
				log.Printf("challenge sweep: removed %d expired challenge(s)", removed)
			}
		}
	}
}

// purgeLocked drops every entry whose deadline is not after now and returns
// how many live entries were removed. s.mu must be held.
func (s *MemoryStore) purgeLocked(now time.Time) int {
	removed := 0
	for s.queue.Len() > 0 && !s.queue[0].at.After(now) {
		d := heap.Pop(&s.queue).(deadline)
		if _, ok := s.entries[d.id]; ok {
			delete(s.entries, d.id)
			removed++
		}
	}
	return removed
}
