package ecs

// store is the type-erased view of a sparse component set that the world
// needs for entity teardown.
type store interface {
	drop(id entityID) bool
	len() int
}

// sparseStore keeps components densely packed and indexed by entity slot.
type sparseStore[T any] struct {
	dense  []Entity
	values []*T
	sparse []int
}

func newSparseStore[T any]() *sparseStore[T] {
	return &sparseStore[T]{}
}

func (s *sparseStore[T]) index(id entityID) (int, bool) {
	if s == nil || id == 0 || int(id) > len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.dense) || s.dense[idx].id() != id {
		return 0, false
	}
	return idx, true
}

func (s *sparseStore[T]) get(e Entity) (*T, bool) {
	idx, ok := s.index(e.id())
	if !ok || s.dense[idx] != e {
		return nil, false
	}
	return s.values[idx], true
}

func (s *sparseStore[T]) set(e Entity, v *T) {
	id := e.id()
	for int(id) > len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if idx, ok := s.index(id); ok {
		s.dense[idx] = e
		s.values[idx] = v
		return
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.dense) - 1
}

func (s *sparseStore[T]) drop(id entityID) bool {
	idx, ok := s.index(id)
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	moved := s.dense[last]

	s.dense[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.id()-1] = idx

	s.dense[last] = 0
	s.values[last] = nil
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[id-1] = -1
	return true
}

func (s *sparseStore[T]) len() int {
	if s == nil {
		return 0
	}
	return len(s.dense)
}

// snapshot copies the dense entity list so callbacks may add or destroy
// entities while a query is running.
func (s *sparseStore[T]) snapshot() []Entity {
	if s == nil || len(s.dense) == 0 {
		return nil
	}
	out := make([]Entity, len(s.dense))
	copy(out, s.dense)
	return out
}
