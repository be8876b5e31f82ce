package ecs

import "github.com/sparsecs/engine/internal/core/family"

// Registry owns one collection per component type, indexed by the type's
// id in the component family. Slots stay nil until the type is first used.
type Registry struct {
	family   *family.Family
	stores   []Storage
	notifier Notifier
}

func NewRegistry(n Notifier) *Registry {
	return &Registry{
		family:   family.New(),
		stores:   make([]Storage, 0, 16),
		notifier: n,
	}
}

// collectionFor returns the collection for T, creating it on first use.
func collectionFor[T any](r *Registry) *Collection[T] {
	id := family.ID[T](r.family)
	if int(id) >= len(r.stores) {
		r.stores = append(r.stores, make([]Storage, int(id)+1-len(r.stores))...)
	}
	if r.stores[id] == nil {
		r.stores[id] = NewCollection[T](r.notifier)
	}
	return r.stores[id].(*Collection[T])
}

// RemoveAll clears the given entity from every populated store and returns
// how many stores held it.
func (r *Registry) RemoveAll(e Entity) int {
	n := 0
	for _, s := range r.stores {
		if s != nil && s.Remove(e) {
			n++
		}
	}
	return n
}

// Len returns the number of populated stores.
func (r *Registry) Len() int {
	n := 0
	for _, s := range r.stores {
		if s != nil {
			n++
		}
	}
	return n
}
