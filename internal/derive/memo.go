package derive

// Memo caches the value computed for the most recent key.
type Memo[K comparable, V any] struct {
	key   K
	value V
	valid bool
}

// Get returns the cached value when key equals the previous key and calls
// compute otherwise.
func (m *Memo[K, V]) Get(key K, compute func() V) V {
	if m.valid && m.key == key {
		return m.value
	}
	m.value = compute()
	m.key = key
	m.valid = true
	return m.value
}

// Reset drops the cached entry.
func (m *Memo[K, V]) Reset() {
	var zero V
	m.value = zero
	m.valid = false
}
