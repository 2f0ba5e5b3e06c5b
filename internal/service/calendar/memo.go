package calendar

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ContentKey hashes the JSON encoding of parts. Equal content gives an
// equal key regardless of slice identity.
func ContentKey(parts ...any) (string, error) {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for i, p := range parts {
		if err := enc.Encode(p); err != nil {
			return "", fmt.Errorf("hash part %d: %w", i, err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

type MemoStats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Size   int    `json:"size"`
}

// Memo is a bounded content-addressed cache with least-recently-used
// eviction. Hit and miss counters are kept alongside the cache.
type Memo[V any] struct {
	cache  *lru.Cache[string, V]
	hits   atomic.Uint64
	misses atomic.Uint64
}

func NewMemo[V any](capacity int) *Memo[V] {
	if capacity <= 0 {
		capacity = 128
	}
	// New only fails on a non-positive size.
	cache, _ := lru.New[string, V](capacity)
	return &Memo[V]{cache: cache}
}

func (m *Memo[V]) Get(key string) (V, bool) {
	v, ok := m.cache.Get(key)
	if ok {
		m.hits.Add(1)
	} else {
		m.misses.Add(1)
	}
	return v, ok
}

func (m *Memo[V]) Put(key string, v V) {
	m.cache.Add(key, v)
}

// Do returns the cached value for key, computing and storing it on a miss.
func (m *Memo[V]) Do(key string, compute func() V) (V, bool) {
	if v, ok := m.Get(key); ok {
		return v, true
	}
	v := compute()
	m.Put(key, v)
	return v, false
}

// Purge drops every entry and returns how many were removed.
func (m *Memo[V]) Purge() int {
	n := m.cache.Len()
	m.cache.Purge()
	return n
}

func (m *Memo[V]) Stats() MemoStats {
	return MemoStats{Hits: m.hits.Load(), Misses: m.misses.Load(), Size: m.cache.Len()}
}
