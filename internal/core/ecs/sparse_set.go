package ecs

import "iter"

const occupied = 1 << 31

// SparseSet maps entity handles to positions in a packed slice. The sparse
// side is addressed by handle index and the dense side stores the full
// handle, so a stale handle whose index is reused is not a member.
//
// Removal swaps the last item into the hole: iteration order changes with
// every Remove and must not be relied upon across mutation.
type SparseSet struct {
	dense  []Entity
	sparse []uint32
}

func (s *SparseSet) position(e Entity) (uint32, bool) {
	idx := e.Index()
	if int(idx) >= len(s.sparse) {
		return 0, false
	}
	slot := s.sparse[idx]
	if slot&occupied == 0 {
		return 0, false
	}
	pos := slot &^ occupied
	return pos, s.dense[pos] == e
}

// Add inserts e and reports whether it was inserted. It reports false if
// e is already a member, and also if another version of e's index is: one
// index holds at most one handle, and the older one must be removed first.
func (s *SparseSet) Add(e Entity) bool {
	idx := e.Index()
	if int(idx) < len(s.sparse) && s.sparse[idx]&occupied != 0 {
		return false
	}
	if int(idx) >= len(s.sparse) {
		s.sparse = append(s.sparse, make([]uint32, int(idx)+1-len(s.sparse))...)
	}
	s.sparse[idx] = uint32(len(s.dense)) | occupied
	s.dense = append(s.dense, e)
	return true
}

// Remove deletes e and reports whether it was present.
func (s *SparseSet) Remove(e Entity) bool {
	pos, ok := s.position(e)
	if !ok {
		return false
	}
	last := s.dense[len(s.dense)-1]
	s.dense[pos] = last
	s.sparse[last.Index()] = pos | occupied
	s.dense = s.dense[:len(s.dense)-1]
	s.sparse[e.Index()] = 0
	return true
}

func (s *SparseSet) Contains(e Entity) bool {
	_, ok := s.position(e)
	return ok
}

func (s *SparseSet) Len() int { return len(s.dense) }

// Items returns the packed members. The slice is owned by the set.
func (s *SparseSet) Items() []Entity { return s.dense }

func (s *SparseSet) All() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for _, e := range s.dense {
			if !yield(e) {
				return
			}
		}
	}
}

func (s *SparseSet) Clear() {
	s.dense = s.dense[:0]
	s.sparse = s.sparse[:0]
}
