// Package threadsafe implements data structures that are safe for use
// from multiple goroutines. The accept loop uses a Map to track
// connections that are currently being served, so that a shutdown can
// wait for them to drain.
package threadsafe

import "sync"

// A Map is a map that is safe for concurrent access and updates.
type Map struct {
	mu     sync.RWMutex
	values map[interface{}]interface{}
}

// NewMap returns an empty Map ready for use.
func NewMap() *Map {
	return &Map{values: make(map[interface{}]interface{})}
}

// Get retrieves a value from the Map. If the value is not present, ok
// will be false.
func (m *Map) Get(key interface{}) (val interface{}, ok bool) {
	m.mu.RLock()
	val, ok = m.values[key]
	m.mu.RUnlock()
	return val, ok
}

// Put stores a value in the map, overwriting any previous value stored
// under key.
func (m *Map) Put(key, val interface{}) {
	m.mu.Lock()
	m.values[key] = val
	m.mu.Unlock()
}

// Del deletes a value from the map.
func (m *Map) Del(key interface{}) {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
}

// Len returns the number of entries currently in the map.
func (m *Map) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

// Do calls f once for every entry in the Map, while holding the read
// lock. f must not call back into the Map.
func (m *Map) Do(f func(key, val interface{})) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for k, v := range m.values {
		f(k, v)
	}
}
