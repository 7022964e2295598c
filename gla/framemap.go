package gla

// framePair records a (glaID, frame) SAT-variable allocation made
// since the last bookmark, so shrinkAfterRollback can undo exactly
// those allocations (spec.md §4.E).
type framePair struct {
	glaID ObjID
	frame int
}

// FrameMap maps (GLA object, frame) to SAT variable, 0 meaning
// "unallocated" — the same bank-slot-indexing idea as emu/mem.go's
// m.bankSlot, generalized from 3 slots to one slot per timeframe.
type FrameMap struct {
	slots     [][]int32 // slots[glaID][frame], grown lazily per object
	justAdded []framePair
	solver    Solver
	isPOOrRI  func(ObjID) bool
}

// NewFrameMap creates an empty frame map over n GLA objects.
func NewFrameMap(n int, solver Solver, isPOOrRI func(ObjID) bool) *FrameMap {
	return &FrameMap{
		slots:    make([][]int32, n),
		solver:   solver,
		isPOOrRI: isPOOrRI,
	}
}

func (m *FrameMap) ensure(id ObjID, frame int) {
	for len(m.slots[id]) <= frame {
		m.slots[id] = append(m.slots[id], 0)
	}
}

// CheckVar reports whether a SAT variable already exists for
// (id, frame). PO and RI objects never get variables of their own
// (spec.md §4.G: "PO/RI are never loaded").
func (m *FrameMap) CheckVar(id ObjID, frame int) bool {
	if m.isPOOrRI(id) {
		return false
	}
	if frame < 0 || frame >= len(m.slots[id]) {
		return false
	}
	return m.slots[id][frame] != 0
}

// GetVar returns the existing SAT variable for (id, frame), or
// allocates the next sequential one, recording the allocation in
// justAdded.
func (m *FrameMap) GetVar(id ObjID, frame int) int32 {
	m.ensure(id, frame)
	if v := m.slots[id][frame]; v != 0 {
		return v
	}
	v := m.solver.NewVar()
	m.slots[id][frame] = v
	m.justAdded = append(m.justAdded, framePair{id, frame})
	return v
}

// ShrinkAfterRollback clears every variable slot allocated since the
// last bookmark and empties justAdded (spec.md §4.E).
func (m *FrameMap) ShrinkAfterRollback() {
	for _, p := range m.justAdded {
		if p.frame < len(m.slots[p.glaID]) {
			m.slots[p.glaID][p.frame] = 0
		}
	}
	m.justAdded = m.justAdded[:0]
}

// Bookmark establishes a new rollback baseline: allocations made so
// far are treated as permanent (no longer undone by a later
// ShrinkAfterRollback), and justAdded starts tracking fresh from here.
// The driver calls this at the same point it bookmarks the solver, so
// the two stay in lockstep (spec.md §4.E's invariant).
func (m *FrameMap) Bookmark() {
	m.justAdded = m.justAdded[:0]
}
