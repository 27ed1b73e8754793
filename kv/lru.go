package kv

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// LRU is a bounded map evicting the least recently used key.
type LRU[K comparable, V any] struct {
	c *lru.Cache[K, V]
}

func NewLRU[K comparable, V any](size int) (*LRU[K, V], error) {
	c, err := lru.New[K, V](size)
	if err != nil {
		return nil, err
	}
	return &LRU[K, V]{c: c}, nil
}

var _ KVS[string, any] = (*LRU[string, any])(nil)

// Get implements KVS
func (m *LRU[K, V]) Get(key K) (V, bool) {
	return m.c.Get(key)
}

// Set implements KVS
func (m *LRU[K, V]) Set(key K, value V) {
	m.c.Add(key, value)
}

// GetOrCompute implements KVS. Concurrent callers may compute the same key,
// the first stored value wins.
func (m *LRU[K, V]) GetOrCompute(key K, compute func() V) (V, bool) {
	if v, ok := m.c.Get(key); ok {
		return v, true
	}
	v := compute()
	if prev, ok, _ := m.c.PeekOrAdd(key, v); ok {
		return prev, true
	}
	return v, false
}

func (m *LRU[K, V]) Range(f func(key K, value V) bool) {
	for _, k := range m.c.Keys() {
		v, ok := m.c.Peek(k)
		if !ok {
			continue
		}
		if !f(k, v) {
			return
		}
	}
}

func (m *LRU[K, V]) Len() int {
	return m.c.Len()
}
