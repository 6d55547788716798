package spec

import (
	"reflect"
	"sync"
)

// Cache memoizes derived specifications keyed by class identity. Entries
// are atomic: either absent or fully built; a failed build publishes
// nothing. The zero value is ready to use.
type Cache struct {
	mu sync.Mutex
	m  map[reflect.Type]Spec
}

// DefaultCache is the process-wide cache used by the package-level
// constructors. Callers wanting an isolated lifetime can use their own
// Cache.
var DefaultCache = NewCache()

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{m: map[reflect.Type]Spec{}}
}

// FromType builds (or recalls) the specification of a struct type.
func (c *Cache) FromType(rt reflect.Type) (Spec, error) {
	c.mu.Lock()
	if c.m == nil {
		c.m = map[reflect.Type]Spec{}
	}

	s, ok := c.m[rt]
	c.mu.Unlock()

	if ok {
		return s, nil
	}

	// built outside the critical section: nested specifications re-enter
	// the cache
	s, err := buildType(rt, c)
	if err != nil {
		return Spec{}, err
	}

	c.mu.Lock()
	c.m[rt] = s
	c.mu.Unlock()

	return s, nil
}
