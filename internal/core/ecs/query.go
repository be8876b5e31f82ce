package ecs

import "iter"

// View intersects several stores. The smallest store drives iteration and
// the rest are only checked with Contains, so a pass costs
// O(len(driver) * len(filters)). Ties go to the earliest argument.
//
// A View reads the stores lazily: adding or removing components of the
// viewed types while ranging over All is undefined. Collect the entities
// first, or queue destruction with Manager.MarkForDestruction.
type View struct {
	driver  Storage
	filters []Storage
}

// NewView builds a view over stores. It panics when given none.
func NewView(stores ...Storage) *View {
	if len(stores) == 0 {
		panic("ecs: view needs at least one store")
	}
	driver := 0
	for i, s := range stores {
		if s.Len() < stores[driver].Len() {
			driver = i
		}
	}
	filters := make([]Storage, 0, len(stores)-1)
	for i, s := range stores {
		if i != driver {
			filters = append(filters, s)
		}
	}
	return &View{driver: stores[driver], filters: filters}
}

func (v *View) Driver() Storage { return v.driver }

func (v *View) matches(e Entity) bool {
	for _, f := range v.filters {
		if !f.Contains(e) {
			return false
		}
	}
	return true
}

// All yields every entity present in all stores.
func (v *View) All() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for _, e := range v.driver.Items() {
			if v.matches(e) && !yield(e) {
				return
			}
		}
	}
}

// Collect materializes the intersection, which makes it safe to mutate the
// stores while walking the result.
func (v *View) Collect() []Entity {
	var out []Entity
	for e := range v.All() {
		out = append(out, e)
	}
	return out
}

// Each1 visits every entity holding an A.
func Each1[A any](m *Manager, fn func(Entity, *A)) {
	collectionFor[A](m.registry).Each(fn)
}

// Each2 visits every entity holding both an A and a B.
func Each2[A, B any](m *Manager, fn func(Entity, *A, *B)) {
	ca := collectionFor[A](m.registry)
	cb := collectionFor[B](m.registry)
	for e := range NewView(ca, cb).All() {
		fn(e, ca.Get(e), cb.Get(e))
	}
}

// Each3 visits every entity holding an A, a B and a C.
func Each3[A, B, C any](m *Manager, fn func(Entity, *A, *B, *C)) {
	ca := collectionFor[A](m.registry)
	cb := collectionFor[B](m.registry)
	cc := collectionFor[C](m.registry)
	for e := range NewView(ca, cb, cc).All() {
		fn(e, ca.Get(e), cb.Get(e), cc.Get(e))
	}
}

// Each4 visits every entity holding an A, a B, a C and a D.
func Each4[A, B, C, D any](m *Manager, fn func(Entity, *A, *B, *C, *D)) {
	ca := collectionFor[A](m.registry)
	cb := collectionFor[B](m.registry)
	cc := collectionFor[C](m.registry)
	cd := collectionFor[D](m.registry)
	for e := range NewView(ca, cb, cc, cd).All() {
		fn(e, ca.Get(e), cb.Get(e), cc.Get(e), cd.Get(e))
	}
}
