package ecs

type position struct{ X, Y float64 }
type velocity struct{ DX, DY float64 }
type health struct{ HP int }
type tag struct{}

type record struct {
	kind      EventKind
	component any
	entity    Entity
}

type recorder struct {
	events []record
}

func (r *recorder) Notify(kind EventKind, component any, e Entity) {
	r.events = append(r.events, record{kind: kind, component: component, entity: e})
}

func (r *recorder) only(kind EventKind) []record {
	var out []record
	for _, ev := range r.events {
		if ev.kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

func (r *recorder) reset() { r.events = r.events[:0] }
