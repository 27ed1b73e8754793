// Package kv holds the concurrent key-value stores used as registries and
// caches across mapcore.
package kv

// KVS is a concurrency safe map. GetOrCompute stores the computed value only
// when the key is absent and reports whether an existing value was returned.
type KVS[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V)
	GetOrCompute(key K, compute func() V) (V, bool)
	Range(func(key K, value V) bool)
	Len() int
}
