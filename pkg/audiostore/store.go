// Package audiostore keeps generated audio in memory between the
// synthesis call and the playback/download requests that follow it.
// Entries expire, nothing is persisted.
package audiostore

import (
	"context"
	"sync"
	"time"

	"github.com/dchest/uniuri"
)

const DefaultTTL = 15 * time.Minute

type entry struct {
	audio     []byte
	expiresAt time.Time
}

type Store struct {
	ttl time.Duration

	lock    sync.Mutex
	entries map[string]entry

	now func() time.Time
}

func New(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Store{
		ttl:     ttl,
		entries: map[string]entry{},
		now:     time.Now,
	}
}

// Put stores the audio and returns its id.
func (s *Store) Put(audio []byte) string {
	id := uniuri.New()

	s.lock.Lock()
	defer s.lock.Unlock()

	s.entries[id] = entry{
		audio:     audio,
		expiresAt: s.now().Add(s.ttl),
	}

	return id
}

// Get returns the audio for an id, or false when the id is unknown or
// already expired.
func (s *Store) Get(id string) ([]byte, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}

	if s.now().After(e.expiresAt) {
		delete(s.entries, id)

		return nil, false
	}

	return e.audio, true
}

func (s *Store) Len() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return len(s.entries)
}

func (s *Store) evictExpired() {
	s.lock.Lock()
	defer s.lock.Unlock()

	now := s.now()
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}

// Janitor evicts expired entries until the context is cancelled. Run it
// in its own goroutine.
func (s *Store) Janitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.evictExpired()
		case <-ctx.Done():
			return
		}
	}
}
