package ecs

// EventKind classifies a structural change reported to a Notifier.
type EventKind uint8

const (
	ComponentAdded EventKind = iota
	ComponentRemoved
	EntityCreated
	EntityDestroyed
)

func (k EventKind) String() string {
	switch k {
	case ComponentAdded:
		return "component_added"
	case ComponentRemoved:
		return "component_removed"
	case EntityCreated:
		return "entity_created"
	case EntityDestroyed:
		return "entity_destroyed"
	}
	return "unknown"
}

// Notifier receives exactly one call per structural add and one per
// structural remove, including removals caused by Destroy. component is nil
// for entity events.
type Notifier interface {
	Notify(kind EventKind, component any, e Entity)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(kind EventKind, component any, e Entity)

func (f NotifierFunc) Notify(kind EventKind, component any, e Entity) {
	f(kind, component, e)
}

// Discard drops every notification.
var Discard Notifier = NotifierFunc(func(EventKind, any, Entity) {})
