package types

// DefaultMap wraps a map so reads of missing keys materialize (and store) a
// value produced by a user-supplied constructor, removing existence checks
// from indexing code.
type DefaultMap[K comparable, V any] struct {
	data        map[K]V
	defaultFunc func() V
}

// NewDefaultMap builds an empty DefaultMap using defaultFunc for missing keys.
func NewDefaultMap[K comparable, V any](defaultFunc func() V) DefaultMap[K, V] {
	return DefaultMap[K, V]{
		data:        make(map[K]V),
		defaultFunc: defaultFunc,
	}
}

// Get returns the value for key, creating and storing a default when absent.
func (d *DefaultMap[K, V]) Get(key K) V {
	if val, ok := d.data[key]; ok {
		return val
	}

	val := d.defaultFunc()
	d.data[key] = val
	return val
}

// Set assigns val to key.
func (d *DefaultMap[K, V]) Set(key K, val V) {
	d.data[key] = val
}

// ToMap exposes the underlying map for iteration or bulk reads.
func (d *DefaultMap[K, V]) ToMap() map[K]V {
	return d.data
}
