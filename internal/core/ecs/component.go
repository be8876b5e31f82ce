package ecs

import "slices"

// Storage is the type-erased face of a component collection. The manager
// keeps one per component type and uses it to purge destroyed entities.
type Storage interface {
	Contains(e Entity) bool
	Remove(e Entity) bool
	Clear()
	Len() int
	Items() []Entity
}

// Collection stores one T per entity. components[k] belongs to the entity
// at Items()[k]; both slices move together on every swap-remove.
type Collection[T any] struct {
	set        SparseSet
	components []T
	notifier   Notifier
}

func NewCollection[T any](n Notifier) *Collection[T] {
	return &Collection[T]{
		components: make([]T, 0, 64),
		notifier:   n,
	}
}

// Add attaches v to e. It is a no-op returning false if e, or another
// version of e's index, already has a value; the existing value is left
// untouched.
func (c *Collection[T]) Add(e Entity, v T) bool {
	if !c.set.Add(e) {
		return false
	}
	c.components = append(c.components, v)
	c.notifier.Notify(ComponentAdded, v, e)
	return true
}

// Remove detaches e's value and notifies with the value it held.
func (c *Collection[T]) Remove(e Entity) bool {
	pos, ok := c.set.position(e)
	if !ok {
		return false
	}
	v := c.components[pos]
	last := len(c.components) - 1
	c.components[pos] = c.components[last]
	var zero T
	c.components[last] = zero
	c.components = c.components[:last]
	c.set.Remove(e)

	c.notifier.Notify(ComponentRemoved, v, e)
	return true
}

// Reset is Remove for callers clearing a value without replacing it.
func (c *Collection[T]) Reset(e Entity) bool {
	return c.Remove(e)
}

// Replace overwrites e's value in place. It reports false, without side
// effects, if e has no value.
func (c *Collection[T]) Replace(e Entity, v T) bool {
	pos, ok := c.set.position(e)
	if !ok {
		return false
	}
	c.notifier.Notify(ComponentRemoved, c.components[pos], e)
	c.components[pos] = v
	c.notifier.Notify(ComponentAdded, v, e)
	return true
}

// Save replaces e's value if present and adds it otherwise.
func (c *Collection[T]) Save(e Entity, v T) {
	if !c.Replace(e, v) {
		c.Add(e, v)
	}
}

// Get returns a pointer to e's value, or nil if e has none. The pointer is
// invalidated by the next Add or Remove on this collection.
func (c *Collection[T]) Get(e Entity) *T {
	pos, ok := c.set.position(e)
	if !ok {
		return nil
	}
	return &c.components[pos]
}

func (c *Collection[T]) Contains(e Entity) bool { return c.set.Contains(e) }
func (c *Collection[T]) Len() int               { return c.set.Len() }
func (c *Collection[T]) Items() []Entity        { return c.set.Items() }

// Each visits every value in packed order.
func (c *Collection[T]) Each(fn func(Entity, *T)) {
	for i, e := range c.set.dense {
		fn(e, &c.components[i])
	}
}

// Clear removes every value, notifying once per removed value.
func (c *Collection[T]) Clear() {
	dense := slices.Clone(c.set.dense)
	components := slices.Clone(c.components)
	clear(c.components)
	c.components = c.components[:0]
	c.set.Clear()
	for i, e := range dense {
		c.notifier.Notify(ComponentRemoved, components[i], e)
	}
}
