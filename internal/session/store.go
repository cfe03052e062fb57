// Package session keeps the per-view state of the storefront (selections
// and checkouts) in memory, addressed by random ids, and expires entries
// that have been idle for too long.
package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iliyamo/concert-ticketing/internal/utils"
)

// ErrNotFound is returned for unknown, expired or deleted ids.
var ErrNotFound = errors.New("session not found")

type entry[T any] struct {
	mu       sync.Mutex
	value    T
	lastSeen atomic.Int64 // unix nanoseconds
	gone     bool
}

// Store holds values of type T.  Access to a single value is serialized
// through With so a value never sees two operations at once.
type Store[T any] struct {
	name  string
	ttl   time.Duration
	now   func() time.Time
	mu    sync.Mutex
	items map[string]*entry[T]
}

// NewStore returns a store whose entries expire after ttl of inactivity.
// A non-positive ttl disables expiry.
func NewStore[T any](name string, ttl time.Duration) *Store[T] {
	return &Store[T]{name: name, ttl: ttl, now: time.Now, items: make(map[string]*entry[T])}
}

// Put stores v under a fresh id.
func (s *Store[T]) Put(v T) (string, error) {
	id, err := utils.RandomHex(16)
	if err != nil {
		return "", err
	}
	e := &entry[T]{value: v}
	e.lastSeen.Store(s.now().UnixNano())
	s.mu.Lock()
	s.items[id] = e
	s.mu.Unlock()
	return id, nil
}

func (s *Store[T]) lookup(id string) (*entry[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[id]
	if !ok {
		return nil, false
	}
	if s.expired(e) {
		delete(s.items, id)
		return nil, false
	}
	return e, true
}

func (s *Store[T]) expired(e *entry[T]) bool {
	return s.ttl > 0 && s.now().Sub(time.Unix(0, e.lastSeen.Load())) > s.ttl
}

// With runs fn with exclusive access to the value stored under id.
func (s *Store[T]) With(id string, fn func(v T) error) error {
	e, ok := s.lookup(id)
	if !ok {
		return ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gone {
		return ErrNotFound
	}
	e.lastSeen.Store(s.now().UnixNano())
	return fn(e.value)
}

// Take removes the value stored under id and returns it.  Take waits for a
// running With on the same id to finish.
func (s *Store[T]) Take(id string) (T, error) {
	var out T
	err := s.TakeIf(id, func(v T) error {
		out = v
		return nil
	})
	return out, err
}

// TakeIf runs fn with exclusive access to the value stored under id and
// removes the value when fn returns nil.  When fn fails the value stays
// in the store.  Concurrent callers on one id see the value at most once
// as successfully taken.
func (s *Store[T]) TakeIf(id string, fn func(v T) error) error {
	e, ok := s.lookup(id)
	if !ok {
		return ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gone {
		return ErrNotFound
	}
	if err := fn(e.value); err != nil {
		e.lastSeen.Store(s.now().UnixNano())
		return err
	}
	e.gone = true
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
	return nil
}

// Delete discards the value stored under id.  It reports whether a value
// was removed.
func (s *Store[T]) Delete(id string) bool {
	_, err := s.Take(id)
	return err == nil
}

// Len returns the number of stored entries, expired ones included until the
// next sweep.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Sweep drops expired entries and returns how many were removed.
func (s *Store[T]) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.items {
		if s.expired(e) {
			delete(s.items, id)
			n++
		}
	}
	return n
}

// Run sweeps the store every interval until ctx is cancelled.
func (s *Store[T]) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 || s.ttl <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.Sweep(); n > 0 {
				log.Printf("session: expired %d %s entries", n, s.name)
			}
		}
	}
}
