// Package cmap provides a sharded concurrent map for integer keys. Writers
// that touch different shards never contend, which makes it a good
// accumulator for per-document scores updated from many goroutines.
package cmap

import "sync"

// Integer constrains keys to integral types so the shard index can be
// derived from the key value itself.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

type shard[K Integer, V any] struct {
	mu    sync.Mutex
	items map[K]*V
}

// ConcurrentMap is a key→value mapping split across a fixed number of
// mutex-guarded shards. A key always maps to the same shard.
type ConcurrentMap[K Integer, V any] struct {
	shards []shard[K, V]
}

// New creates a ConcurrentMap with the given shard count. A prime or
// power-of-two count spreads uniformly distributed keys evenly.
func New[K Integer, V any](shardCount int) *ConcurrentMap[K, V] {
	if shardCount < 1 {
		shardCount = 1
	}
	m := &ConcurrentMap[K, V]{shards: make([]shard[K, V], shardCount)}
	for i := range m.shards {
		m.shards[i].items = make(map[K]*V)
	}
	return m
}

// Access is a scoped handle granting exclusive access to one value. The
// shard stays locked until Release is called.
type Access[V any] struct {
	mu  *sync.Mutex
	Ref *V
}

// Release unlocks the shard the value lives in. The Ref pointer must not be
// used after Release.
func (a Access[V]) Release() {
	a.mu.Unlock()
}

func (m *ConcurrentMap[K, V]) shardFor(key K) *shard[K, V] {
	return &m.shards[uint64(key)%uint64(len(m.shards))]
}

// Access locks the shard owning key and returns a handle to its value,
// inserting the zero value if the key is absent. Only one shard lock is held
// at a time, so handles for keys in different shards do not block each other.
func (m *ConcurrentMap[K, V]) Access(key K) Access[V] {
	s := m.shardFor(key)
	s.mu.Lock()
	v, ok := s.items[key]
	if !ok {
		v = new(V)
		s.items[key] = v
	}
	return Access[V]{mu: &s.mu, Ref: v}
}

// Erase removes key from its shard.
func (m *ConcurrentMap[K, V]) Erase(key K) {
	s := m.shardFor(key)
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
}

// BuildOrdinaryMap merges every shard into one plain map. Shards are locked
// one by one in index order; the result is a consistent snapshot as long as
// no writer is active.
func (m *ConcurrentMap[K, V]) BuildOrdinaryMap() map[K]V {
	out := make(map[K]V)
	for i := range m.shards {
		s := &m.shards[i]
		s.mu.Lock()
		for k, v := range s.items {
			out[k] = *v
		}
		s.mu.Unlock()
	}
	return out
}
