package ecs

import "fmt"

// Manager is the top-level container. It owns the slot table, one
// collection per component type, and a deferred destruction queue flushed
// once per tick.
//
// A Manager is not safe for concurrent use.
type Manager struct {
	pool         entityPool
	registry     *Registry
	notifier     Notifier
	destroyQueue []Entity
}

// NewManager creates a manager that reports structural changes to n.
// capacity preallocates the slot table.
func NewManager(n Notifier, capacity int) *Manager {
	if n == nil {
		panic("ecs: nil notifier")
	}
	return &Manager{
		pool:         newEntityPool(capacity),
		registry:     NewRegistry(n),
		notifier:     n,
		destroyQueue: make([]Entity, 0, 64),
	}
}

func (m *Manager) Registry() *Registry { return m.registry }

// Create returns a fresh live handle, reusing a freed slot when one exists.
// It panics once all MaxEntities slots are live; use TryCreate to get the
// condition as an error.
func (m *Manager) Create() Entity {
	e, err := m.TryCreate()
	if err != nil {
		panic(err)
	}
	return e
}

// TryCreate is Create returning ErrCapacityExceeded instead of panicking.
func (m *Manager) TryCreate() (Entity, error) {
	e, err := m.pool.create()
	if err != nil {
		return 0, fmt.Errorf("create entity (%d live): %w", m.pool.size(), err)
	}
	m.notifier.Notify(EntityCreated, nil, e)
	return e, nil
}

// Destroy detaches every component e holds, then frees its slot. The slot
// stays taken while the removals are reported, so an entity created by a
// listener never reuses e's index.
func (m *Manager) Destroy(e Entity) error {
	if err := m.validate(e); err != nil {
		return err
	}
	m.registry.RemoveAll(e)
	m.pool.release(e)
	m.notifier.Notify(EntityDestroyed, nil, e)
	return nil
}

// Valid reports whether e is the handle currently stored in its slot.
func (m *Manager) Valid(e Entity) bool {
	return m.pool.valid(e)
}

// Version returns the version encoded in e itself.
func (m *Manager) Version(e Entity) uint8 {
	return e.Version()
}

// Current returns the version the slot table holds for e's index. It
// differs from Version(e) exactly when e is stale.
func (m *Manager) Current(e Entity) (uint8, error) {
	idx := e.Index()
	if int(idx) >= len(m.pool.slots) {
		return 0, &EntityError{Entity: e, Err: ErrInvalidEntity}
	}
	return m.pool.slots[idx].Version(), nil
}

// Size returns the number of live entities.
func (m *Manager) Size() int {
	return m.pool.size()
}

// EachEntity visits every live entity in slot order.
func (m *Manager) EachEntity(fn func(Entity)) {
	m.pool.each(fn)
}

// MarkForDestruction queues e to be destroyed by the next Flush.
func (m *Manager) MarkForDestruction(e Entity) {
	m.destroyQueue = append(m.destroyQueue, e)
}

// Flush destroys every queued entity that is still valid and returns how
// many were destroyed. Duplicates and stale handles are skipped. Entities
// marked by listeners during the flush are destroyed by the same call.
func (m *Manager) Flush() int {
	n := 0
	for i := 0; i < len(m.destroyQueue); i++ {
		if m.Destroy(m.destroyQueue[i]) == nil {
			n++
		}
	}
	m.destroyQueue = m.destroyQueue[:0]
	return n
}

// Pending returns the number of queued destructions.
func (m *Manager) Pending() int {
	return len(m.destroyQueue)
}

func (m *Manager) validate(e Entity) error {
	if !m.pool.valid(e) {
		return &EntityError{Entity: e, Err: ErrInvalidEntity}
	}
	return nil
}
