package ecs

import "fmt"

// Assign attaches v to e. It reports false if e already had a T, in which
// case the stored value is unchanged.
func Assign[T any](m *Manager, e Entity, v T) (bool, error) {
	if err := m.validate(e); err != nil {
		return false, err
	}
	return collectionFor[T](m.registry).Add(e, v), nil
}

// Replace overwrites e's T. It reports false if e had none.
func Replace[T any](m *Manager, e Entity, v T) (bool, error) {
	if err := m.validate(e); err != nil {
		return false, err
	}
	return collectionFor[T](m.registry).Replace(e, v), nil
}

// Save sets e's T whether or not one was attached.
func Save[T any](m *Manager, e Entity, v T) error {
	if err := m.validate(e); err != nil {
		return err
	}
	collectionFor[T](m.registry).Save(e, v)
	return nil
}

// Get returns a pointer to e's T. The pointer is only good until the next
// structural change to the T collection.
func Get[T any](m *Manager, e Entity) (*T, error) {
	if err := m.validate(e); err != nil {
		return nil, err
	}
	v := collectionFor[T](m.registry).Get(e)
	if v == nil {
		return nil, &EntityError{Entity: e, Err: fmt.Errorf("%w: %T", ErrComponentNotFound, *new(T))}
	}
	return v, nil
}

// Remove detaches e's T. It reports false if e had none.
func Remove[T any](m *Manager, e Entity) (bool, error) {
	if err := m.validate(e); err != nil {
		return false, err
	}
	return collectionFor[T](m.registry).Remove(e), nil
}

// Reset clears e's T if present.
func Reset[T any](m *Manager, e Entity) (bool, error) {
	if err := m.validate(e); err != nil {
		return false, err
	}
	return collectionFor[T](m.registry).Reset(e), nil
}

// ResetAll detaches T from every entity holding one.
func ResetAll[T any](m *Manager) int {
	c := collectionFor[T](m.registry)
	n := c.Len()
	c.Clear()
	return n
}

// Has reports whether e holds a T.
func Has[T any](m *Manager, e Entity) (bool, error) {
	if err := m.validate(e); err != nil {
		return false, err
	}
	return collectionFor[T](m.registry).Contains(e), nil
}

// Count returns the number of entities holding a T.
func Count[T any](m *Manager) int {
	return collectionFor[T](m.registry).Len()
}

// CollectionOf exposes the collection backing T, for callers that iterate
// a single type in packed order.
func CollectionOf[T any](m *Manager) *Collection[T] {
	return collectionFor[T](m.registry)
}
