package gla

// loadObjectAtFrame emits the clauses for one GLA object at one
// timeframe, per spec.md §4.G. A variable for (id, frame) may already
// exist because a loaded fanout referenced it, so variable existence
// says nothing about whether the object's own clauses were added:
// every call adds them, and callers load an object at a frame once.
func (m *Manager) loadObjectAtFrame(id ObjID, frame int) error {
	obj := m.objs[id]
	switch obj.Kind {
	case KindConst0:
		v := m.frameMap.GetVar(id, frame)
		return m.solver.AddClause([]Lit{NewLit(v, false)}, int32(id))

	case KindRO:
		v := m.frameMap.GetVar(id, frame)
		if frame == 0 {
			return m.solver.AddClause([]Lit{NewLit(v, false)}, int32(id))
		}
		faninVar := m.frameMap.GetVar(obj.Fanins[0], frame-1)
		m.solver.AddBuffer(v, faninVar, obj.FaninComp0, int32(id))
		return nil

	case KindAnd:
		out := m.frameMap.GetVar(id, frame)
		faninVars := make([]int32, len(obj.Fanins))
		for i, f := range obj.Fanins {
			faninVars[i] = m.frameMap.GetVar(f, frame)
		}
		for _, clause := range m.cnf.ClausesFor(id, obj) {
			lits := make([]Lit, len(clause))
			for i, l := range clause {
				v := l.Var()
				var real int32
				if v == 0 {
					real = out
				} else {
					real = faninVars[v-1]
				}
				lits[i] = NewLit(real, l.IsPos())
			}
			if err := m.solver.AddClause(lits, int32(id)); err != nil {
				return err
			}
		}
		return nil

	default:
		// PO/RI are never loaded (spec.md §4.G): reached only through
		// fanin resolution of the objects that use them.
		return nil
	}
}

// LoadFrame loads every object currently in the abstraction into
// timeframe f, then lets the solver simplify.
func (m *Manager) LoadFrame(f int) error {
	for _, id := range m.abs.List() {
		if err := m.loadObjectAtFrame(id, f); err != nil {
			return err
		}
	}
	m.solver.Simplify()
	return nil
}

// LoadObjectRange loads a single object into every frame 0..=throughFrame,
// used when a PPI or UNSAT-core object is newly added to the
// abstraction mid-invocation (spec.md §4.L: "load them in all frames
// 0..=f").
func (m *Manager) LoadObjectRange(id ObjID, throughFrame int) error {
	for f := 0; f <= throughFrame; f++ {
		if err := m.loadObjectAtFrame(id, f); err != nil {
			return err
		}
	}
	return nil
}
