// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/vibecompass/internal/metrics"
)

// memoryEntry is a node of the LRU list.
type memoryEntry struct {
	key       string
	data      []byte
	expiresAt time.Time
	prev      *memoryEntry
	next      *memoryEntry
}

// MemoryStore is a thread-safe LRU store with TTL support.
//
// Get, Set and eviction are O(1): a doubly-linked list keeps the access
// order and a map indexes the nodes. Expired entries are removed lazily on
// access and in bulk by CleanupExpired, which the cache janitor service calls
// periodically.
type MemoryStore struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration

	items map[string]*memoryEntry

	// head.next is the most recently used, tail.prev the least.
	head *memoryEntry
	tail *memoryEntry

	stats Stats
}

// Stats tracks store performance.
type Stats struct {
	Hits        int64     `json:"hits"`
	Misses      int64     `json:"misses"`
	Evictions   int64     `json:"evictions"`
	Keys        int       `json:"keys"`
	LastCleanup time.Time `json:"last_cleanup"`
}

// NewMemoryStore creates an LRU store holding at most capacity entries.
func NewMemoryStore(capacity int, ttl time.Duration) *MemoryStore {
	if capacity <= 0 {
		capacity = 10000
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	s := &MemoryStore{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*memoryEntry, capacity),
		head:     &memoryEntry{},
		tail:     &memoryEntry{},
	}
	s.head.next = s.tail
	s.tail.prev = s.head
	return s
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, key string, dst any) (bool, error) {
	s.mu.Lock()
	entry, ok := s.items[key]
	if ok && time.Now().After(entry.expiresAt) {
		s.removeEntry(entry)
		s.stats.Evictions++
		metrics.CacheEvictions.WithLabelValues("memory", "expired").Inc()
		ok = false
	}
	if !ok {
		s.stats.Misses++
		s.mu.Unlock()
		metrics.RecordCacheLookup("memory", false)
		return false, nil
	}
	s.moveToFront(entry)
	s.stats.Hits++
	data := entry.data
	s.mu.Unlock()

	metrics.RecordCacheLookup("memory", true)
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

// Set implements Store.
func (s *MemoryStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s for cache: %w", key, err)
	}
	if ttl <= 0 {
		ttl = s.ttl
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt := time.Now().Add(ttl)
	if entry, exists := s.items[key]; exists {
		entry.data = data
		entry.expiresAt = expiresAt
		s.moveToFront(entry)
		return nil
	}

	entry := &memoryEntry{key: key, data: data, expiresAt: expiresAt}
	s.addToFront(entry)
	s.items[key] = entry

	for len(s.items) > s.capacity {
		s.evictOldest()
	}
	metrics.CacheSize.WithLabelValues("memory").Set(float64(len(s.items)))
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.items[key]; ok {
		s.removeEntry(entry)
	}
	return nil
}

// Len returns the number of entries, including expired ones not yet removed.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// CleanupExpired removes all expired entries and returns how many were
// removed.
func (s *MemoryStore) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for entry := s.tail.prev; entry != s.head; {
		prev := entry.prev
		if now.After(entry.expiresAt) {
			s.removeEntry(entry)
			removed++
		}
		entry = prev
	}

	s.stats.Evictions += int64(removed)
	s.stats.LastCleanup = now
	if removed > 0 {
		metrics.CacheEvictions.WithLabelValues("memory", "expired").Add(float64(removed))
	}
	metrics.CacheSize.WithLabelValues("memory").Set(float64(len(s.items)))
	return removed
}

// GetStats returns a snapshot of the store statistics.
func (s *MemoryStore) GetStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stats
	st.Keys = len(s.items)
	return st
}

// HitRate returns the hit rate as a percentage.
func (s *MemoryStore) HitRate() float64 {
	st := s.GetStats()
	total := st.Hits + st.Misses
	if total == 0 {
		return 0.0
	}
	return float64(st.Hits) / float64(total) * 100.0
}

// Internal methods (must be called with lock held)

func (s *MemoryStore) addToFront(entry *memoryEntry) {
	entry.prev = s.head
	entry.next = s.head.next
	s.head.next.prev = entry
	s.head.next = entry
}

func (s *MemoryStore) moveToFront(entry *memoryEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	s.addToFront(entry)
}

func (s *MemoryStore) removeEntry(entry *memoryEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	delete(s.items, entry.key)
}

func (s *MemoryStore) evictOldest() {
	oldest := s.tail.prev
	if oldest == s.head {
		return
	}
	s.removeEntry(oldest)
	s.stats.Evictions++
	metrics.CacheEvictions.WithLabelValues("memory", "capacity").Inc()
}
