package middleware

import (
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

type rateEntry struct {
	count   int
	resetAt time.Time
}

// RateLimitStore tracks attempt counts per key (mobile number, email, IP)
// inside a fixed window. It is constructed at startup and injected where
// needed; entries are swept periodically and cleared explicitly on success.
type RateLimitStore struct {
	mu      sync.Mutex
	entries map[string]*rateEntry
	max     int
	window  time.Duration
}

// NewRateLimitStore creates a store allowing max attempts per window
func NewRateLimitStore(max int, window time.Duration) *RateLimitStore {
	return &RateLimitStore{
		entries: make(map[string]*rateEntry),
		max:     max,
		window:  window,
	}
}

// Allow records an attempt for key and reports whether it is within the limit
func (s *RateLimitStore) Allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	entry, ok := s.entries[key]
	if !ok || now.After(entry.resetAt) {
		s.entries[key] = &rateEntry{count: 1, resetAt: now.Add(s.window)}
		return true
	}

	entry.count++
	return entry.count <= s.max
}

// Clear removes the entry for key, typically after a successful attempt
func (s *RateLimitStore) Clear(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Sweep drops expired entries
func (s *RateLimitStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, entry := range s.entries {
		if now.After(entry.resetAt) {
			delete(s.entries, key)
		}
	}
}

// Len reports the number of tracked keys
func (s *RateLimitStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// StartSweeper schedules a periodic sweep on the given cron scheduler
func (s *RateLimitStore) StartSweeper(c *cron.Cron) {
	if _, err := c.AddFunc("@every 5m", s.Sweep); err != nil {
		log.Printf("Failed to schedule rate limit sweep: %v", err)
	}
}
