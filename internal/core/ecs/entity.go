package ecs

import "fmt"

// Entity packs a 24-bit slot index in the low bits and an 8-bit version in
// the high bits. The version advances every time the slot is recycled, so a
// handle kept across a destroy no longer matches the slot table.
type Entity uint32

const (
	IDBits       = 24
	IDMask       = 1<<IDBits - 1
	VersionShift = IDBits
	VersionMask  = 0xFF

	// MaxEntities is the number of slots the index bits can address.
	MaxEntities = IDMask + 1
)

func NewEntity(index uint32, version uint8) Entity {
	return Entity(index&IDMask | uint32(version)<<VersionShift)
}

func (e Entity) Index() uint32  { return uint32(e) & IDMask }
func (e Entity) Version() uint8 { return uint8(uint32(e) >> VersionShift & VersionMask) }

func (e Entity) String() string {
	return fmt.Sprintf("%d:%d", e.Index(), e.Version())
}

// entityPool is the slot table. A live slot holds its own handle; a free
// slot holds the index of the next free slot together with the version the
// slot will carry when it is handed out again.
type entityPool struct {
	slots     []Entity
	next      uint32 // head of the free list, meaningful while available > 0
	available uint32
	limit     uint32
}

func newEntityPool(capacity int) entityPool {
	return entityPool{
		slots: make([]Entity, 0, capacity),
		limit: MaxEntities,
	}
}

func (p *entityPool) create() (Entity, error) {
	if p.available > 0 {
		idx := p.next
		slot := p.slots[idx]
		e := Entity(idx) | slot&^IDMask
		p.next = slot.Index()
		p.slots[idx] = e
		p.available--
		return e, nil
	}
	idx := uint32(len(p.slots))
	if idx >= p.limit {
		return 0, ErrCapacityExceeded
	}
	e := Entity(idx)
	p.slots = append(p.slots, e)
	return e, nil
}

// release frees the slot of a live handle. The caller has validated e.
func (p *entityPool) release(e Entity) {
	idx := e.Index()
	version := uint32(e)&^IDMask + 1<<VersionShift // wraps past 255

	// With an empty free list the link is never followed, but it must not
	// point back at idx or the slot would look live to each().
	link := (idx + 1) & IDMask
	if p.available > 0 {
		link = p.next
	}
	p.slots[idx] = Entity(link | version)
	p.next = idx
	p.available++
}

func (p *entityPool) valid(e Entity) bool {
	idx := e.Index()
	return int(idx) < len(p.slots) && p.slots[idx] == e
}

func (p *entityPool) size() int {
	return len(p.slots) - int(p.available)
}

func (p *entityPool) each(fn func(Entity)) {
	if p.available == 0 {
		for _, e := range p.slots {
			fn(e)
		}
		return
	}
	for i, e := range p.slots {
		if e.Index() == uint32(i) {
			fn(e)
		}
	}
}
