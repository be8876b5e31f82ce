package event

import (
	"reflect"
	"sync"

	"github.com/sparsecs/engine/internal/core/ecs"
	"github.com/sparsecs/engine/internal/core/family"
)

// Bus delivers two kinds of traffic. Structural changes from the entity
// manager arrive through Notify and are delivered synchronously. Game
// messages are either published immediately or emitted into a double
// buffer: messages emitted in tick N are dispatched in tick N+1 after
// SwapBuffers.
type Bus struct {
	mu       sync.Mutex // only protects handler registration
	messages *family.Family
	handlers [][]listener[func(any)]
	front    []queued
	back     []queued
	nextID   uint64

	components [2][][]listener[func(ecs.Entity, any)] // [added|removed][message id]
	entities   [2][]listener[func(ecs.Entity)]        // [created|destroyed]

	pre  []listener[func(any)]
	post []listener[func(any)]
}

type listener[F any] struct {
	id uint64
	fn F
}

// Connection is returned by every registration. Disconnect removes the
// handler; calling it again is a no-op. A handler disconnected during a
// delivery still sees that delivery.
type Connection struct {
	once sync.Once
	drop func()
}

func (c *Connection) Disconnect() { c.once.Do(c.drop) }

// attach appends fn to the list returned by slot. slot is re-evaluated on
// disconnect because the outer tables may have been regrown since.
// Callers hold b.mu.
func attach[F any](b *Bus, slot func() *[]listener[F], fn F) *Connection {
	b.nextID++
	id := b.nextID
	list := slot()
	*list = append(*list, listener[F]{id: id, fn: fn})
	return &Connection{drop: func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := slot()
		kept := make([]listener[F], 0, len(*list))
		for _, l := range *list {
			if l.id != id {
				kept = append(kept, l)
			}
		}
		*list = kept
	}}
}

type queued struct {
	id  uint32
	msg any
}

var _ ecs.Notifier = (*Bus)(nil)

func NewBus() *Bus {
	return &Bus{
		messages: family.New(),
		front:    make([]queued, 0, 64),
		back:     make([]queued, 0, 64),
	}
}

// Subscribe registers a typed handler for messages of type M.
func Subscribe[M any](b *Bus, fn func(M)) *Connection {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := family.ID[M](b.messages)
	b.handlers = grow(b.handlers, id)
	return attach(b, func() *[]listener[func(any)] { return &b.handlers[id] },
		func(msg any) { fn(msg.(M)) })
}

// Publish delivers msg to its handlers before returning.
func Publish[M any](b *Bus, msg M) {
	b.deliver(family.ID[M](b.messages), msg)
}

// Emit queues msg into the back buffer; it is readable next tick.
func Emit[M any](b *Bus, msg M) {
	b.back = append(b.back, queued{id: family.ID[M](b.messages), msg: msg})
}

// SwapBuffers rotates back→front and clears the new back buffer.
// Called once at tick start.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front
	clear(b.back)
	b.back = b.back[:0]
}

// DispatchAll delivers all front-buffer messages in emission order and
// returns how many were delivered.
func (b *Bus) DispatchAll() int {
	n := len(b.front)
	for _, q := range b.front {
		b.deliver(q.id, q.msg)
	}
	clear(b.front)
	b.front = b.front[:0]
	return n
}

// Pending reports whether messages are waiting in either buffer.
func (b *Bus) Pending() bool {
	return len(b.front) > 0 || len(b.back) > 0
}

// Hook installs fn to run before every delivered message.
func (b *Bus) Hook(fn func(any)) *Connection {
	b.mu.Lock()
	defer b.mu.Unlock()
	return attach(b, func() *[]listener[func(any)] { return &b.pre }, fn)
}

// Hooked installs fn to run after every delivered message.
func (b *Bus) Hooked(fn func(any)) *Connection {
	b.mu.Lock()
	defer b.mu.Unlock()
	return attach(b, func() *[]listener[func(any)] { return &b.post }, fn)
}

func (b *Bus) deliver(id uint32, msg any) {
	for _, h := range b.pre {
		h.fn(msg)
	}
	if int(id) < len(b.handlers) {
		for _, h := range b.handlers[id] {
			h.fn(msg)
		}
	}
	for _, h := range b.post {
		h.fn(msg)
	}
}

// Notify implements ecs.Notifier. Component events are routed by the
// dynamic type of component.
func (b *Bus) Notify(kind ecs.EventKind, component any, e ecs.Entity) {
	switch kind {
	case ecs.ComponentAdded, ecs.ComponentRemoved:
		id, ok := b.messages.Lookup(reflect.TypeOf(component))
		if !ok {
			return
		}
		slot := b.components[kind-ecs.ComponentAdded]
		if int(id) < len(slot) {
			for _, h := range slot[id] {
				h.fn(e, component)
			}
		}
	case ecs.EntityCreated, ecs.EntityDestroyed:
		for _, h := range b.entities[kind-ecs.EntityCreated] {
			h.fn(e)
		}
	}
}

func onComponent[T any](b *Bus, kind ecs.EventKind, fn func(ecs.Entity, T)) *Connection {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := family.ID[T](b.messages)
	i := kind - ecs.ComponentAdded
	b.components[i] = grow(b.components[i], id)
	return attach(b, func() *[]listener[func(ecs.Entity, any)] { return &b.components[i][id] },
		func(e ecs.Entity, c any) { fn(e, c.(T)) })
}

// OnComponentAdded registers fn for every T attached to an entity,
// including the new value of a replace.
func OnComponentAdded[T any](b *Bus, fn func(ecs.Entity, T)) *Connection {
	return onComponent(b, ecs.ComponentAdded, fn)
}

// OnComponentRemoved registers fn for every T detached from an entity,
// including the old value of a replace and removals caused by Destroy.
func OnComponentRemoved[T any](b *Bus, fn func(ecs.Entity, T)) *Connection {
	return onComponent(b, ecs.ComponentRemoved, fn)
}

func OnEntityCreated(b *Bus, fn func(ecs.Entity)) *Connection {
	b.mu.Lock()
	defer b.mu.Unlock()
	return attach(b, func() *[]listener[func(ecs.Entity)] { return &b.entities[0] }, fn)
}

func OnEntityDestroyed(b *Bus, fn func(ecs.Entity)) *Connection {
	b.mu.Lock()
	defer b.mu.Unlock()
	return attach(b, func() *[]listener[func(ecs.Entity)] { return &b.entities[1] }, fn)
}

func grow[S ~[]E, E any](s S, id uint32) S {
	if int(id) < len(s) {
		return s
	}
	return append(s, make(S, int(id)+1-len(s))...)
}
