package update

import (
	"maps"
	"slices"
)

// changes is a keyed set of modifications and removals in which a key is
// never both modified and removed. It is the merge rule shared by
// statement, term and lexeme form/sense updates: a later set or remove on
// a key overrides whatever was pending for it.
type changes[V any] struct {
	modified map[string]V
	removed  map[string]struct{}
}

func (c *changes[V]) set(key string, v V) {
	if c.modified == nil {
		c.modified = make(map[string]V)
	}
	c.modified[key] = v
	delete(c.removed, key)
}

func (c *changes[V]) remove(key string) {
	if c.removed == nil {
		c.removed = make(map[string]struct{})
	}
	c.removed[key] = struct{}{}
	delete(c.modified, key)
}

// forget drops any pending change for key.
func (c *changes[V]) forget(key string) {
	delete(c.modified, key)
	delete(c.removed, key)
}

func (c changes[V]) get(key string) (V, bool) {
	v, ok := c.modified[key]
	return v, ok
}

func (c changes[V]) isRemoved(key string) bool {
	_, ok := c.removed[key]
	return ok
}

func (c changes[V]) isEmpty() bool {
	return len(c.modified) == 0 && len(c.removed) == 0
}

func (c changes[V]) clone() changes[V] {
	return changes[V]{modified: maps.Clone(c.modified), removed: maps.Clone(c.removed)}
}

// modifiedKeys returns the modified keys in sorted order.
func (c changes[V]) modifiedKeys() []string {
	return slices.Sorted(maps.Keys(c.modified))
}

// removedKeys returns the removed keys in sorted order.
func (c changes[V]) removedKeys() []string {
	return slices.Sorted(maps.Keys(c.removed))
}

func (c changes[V]) modifiedCopy() map[string]V {
	out := make(map[string]V, len(c.modified))
	maps.Copy(out, c.modified)
	return out
}
