package gla

// AbsSet is the current abstraction A: a membership set plus an
// insertion-ordered list, with stack-like rollback to a previous size
// (spec.md §4.F). Iteration is always in insertion order — spec.md §9
// explicitly calls out "deterministic iteration order = insertion
// order... do not iterate over a hash set" — mirrored here from
// emu/io.go's small explicit-state-with-an-obvious-rollback-point
// style rather than any generic container.
type AbsSet struct {
	inSet map[ObjID]bool
	list  []ObjID
}

// NewAbsSet creates an abstraction set containing only const-0, per
// spec.md §3 invariant (i).
func NewAbsSet() *AbsSet {
	s := &AbsSet{inSet: map[ObjID]bool{0: true}, list: []ObjID{0}}
	return s
}

func (s *AbsSet) Contains(id ObjID) bool { return s.inSet[id] }

// Add is idempotent in set membership and duplicate-free in the list.
func (s *AbsSet) Add(id ObjID) {
	if s.inSet[id] {
		return
	}
	s.inSet[id] = true
	s.list = append(s.list, id)
}

// AddAll adds every id in ids, in order.
func (s *AbsSet) AddAll(ids []ObjID) {
	for _, id := range ids {
		s.Add(id)
	}
}

func (s *AbsSet) Size() int { return len(s.list) }

// List returns the abstraction in insertion order. Callers must not
// mutate the returned slice.
func (s *AbsSet) List() []ObjID { return s.list }

// RollbackTo clears membership for every element beyond oldSize and
// truncates the list to it.
func (s *AbsSet) RollbackTo(oldSize int) {
	for _, id := range s.list[oldSize:] {
		delete(s.inSet, id)
	}
	s.list = s.list[:oldSize]
}
