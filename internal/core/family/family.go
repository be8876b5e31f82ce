package family

import "reflect"

// Family hands out a small, stable integer per distinct Go type. IDs start
// at 0 and grow by one for every new type; they are never reused. Separate
// Family values keep separate numbering, so components and messages can be
// counted independently.
type Family struct {
	ids  map[reflect.Type]uint32
	next uint32
}

func New() *Family {
	return &Family{
		ids: make(map[reflect.Type]uint32, 32),
	}
}

// ID returns the identifier for T, assigning one on first use.
func ID[T any](f *Family) uint32 {
	return f.IDOf(reflect.TypeFor[T]())
}

// IDOf returns the identifier for t, assigning one on first use.
func (f *Family) IDOf(t reflect.Type) uint32 {
	if id, ok := f.ids[t]; ok {
		return id
	}
	id := f.next
	f.ids[t] = id
	f.next++
	return id
}

// Lookup returns the identifier for t without assigning a new one.
func (f *Family) Lookup(t reflect.Type) (uint32, bool) {
	id, ok := f.ids[t]
	return id, ok
}

// Len reports how many types have been assigned an identifier.
func (f *Family) Len() int {
	return int(f.next)
}
