package mockapi

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"
)

// Collection is an insertion-ordered set of records keyed by Key(). New
// records go to the front, so the default list order is most recent first.
type Collection[T Keyed] struct {
	entity string

	mu    sync.RWMutex
	items []T
}

func NewCollection[T Keyed](entity string, seed []T) *Collection[T] {
	return &Collection[T]{entity: entity, items: slices.Clone(seed)}
}

func (c *Collection[T]) Entity() string { return c.entity }

// List returns a copy of the records in collection order.
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Collection[T]) Get(id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return c.items[i], nil
	}
	var zero T
	return zero, notFound(c.entity, id)
}

// Create runs build under the write lock so that the id it picks cannot be
// taken by a concurrent create, then prepends the result.
func (c *Collection[T]) Create(build func(taken func(id string) bool) (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, err := build(func(id string) bool { return c.indexOf(id) >= 0 })
	if err != nil {
		var zero T
		return zero, err
	}
	if c.indexOf(rec.Key()) >= 0 {
		var zero T
		return zero, fmt.Errorf("%w: %s %s", ErrDuplicateID, c.entity, rec.Key())
	}

	c.items = slices.Insert(c.items, 0, rec)
	return rec, nil
}

// Update shallow-merges patch onto the stored record. Fields present in the
// patch overwrite, absent fields are kept, and an "id" in the patch is ignored.
func (c *Collection[T]) Update(id string, patch json.RawMessage) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	i := c.indexOf(id)
	if i < 0 {
		return zero, notFound(c.entity, id)
	}

	merged, err := mergeFields(c.items[i], patch)
	if err != nil {
		return zero, err
	}

	c.items[i] = merged
	return merged, nil
}

// Delete removes the first record whose key equals id exactly.
func (c *Collection[T]) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return notFound(c.entity, id)
	}
	c.items = slices.Delete(c.items, i, i+1)
	return nil
}

func (c *Collection[T]) replace(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = slices.Clone(items)
}

func (c *Collection[T]) indexOf(id string) int {
	return slices.IndexFunc(c.items, func(rec T) bool { return rec.Key() == id })
}

// mergeFields overlays patch onto the JSON form of rec and decodes the result
// into a fresh value, so the merged record shares no slices with rec. Unknown
// fields fall away during the decode.
func mergeFields[T Keyed](rec T, patch json.RawMessage) (T, error) {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(patch, &fields); err != nil {
		return rec, &PayloadError{Err: err}
	}
	delete(fields, "id")
	if len(fields) == 0 {
		return rec, nil
	}

	current, err := json.Marshal(rec)
	if err != nil {
		return rec, err
	}
	base := map[string]json.RawMessage{}
	if err := json.Unmarshal(current, &base); err != nil {
		return rec, err
	}
	for k, v := range fields {
		base[k] = v
	}

	overlaid, err := json.Marshal(base)
	if err != nil {
		return rec, err
	}

	var merged T
	if err := json.Unmarshal(overlaid, &merged); err != nil {
		return rec, &PayloadError{Err: err}
	}
	return merged, nil
}
