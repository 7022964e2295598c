package gla

import (
	"github.com/google/uuid"
)

// LutConfig describes a mapped LUT's support and truth table, carried
// by a GLA object produced by the mapping-aware duplicator (component
// C). NumFanins is at most 4 (spec.md §4.C: "each mapped AND has ≤ 4
// fanins").
type LutConfig struct {
	NumFanins int
	Truth     uint16
}

// GLAObject is the gate-local descriptor from spec.md §3: the source
// AIG id, kind, primary-fanin complement, and a fanin array of GLA
// ids. Lut is nil for raw (non-mapped) AND gates and for every
// non-AND kind.
type GLAObject struct {
	AigID      ObjID
	Kind       Kind
	FaninComp0 bool // complement of Fanins[0] (RO/PO/RI's sole fanin, or AND's first)
	FaninComp1 bool // complement of Fanins[1]; AND only
	Fanins     []ObjID
	Lut        *LutConfig
}

// buildGLAObjects materializes one GLAObject per AIG object reachable
// in or fanning into the abstraction, in the common (non-LUT-mapped)
// case: a 1:1 copy of the AIG with raw AND gates. The mapping-aware
// duplicator (dup.go) builds the LUT-mapped variant by constructing an
// equivalent []GLAObject directly from its duplicated AIG.
func buildGLAObjects(aig AIG) []GLAObject {
	n := aig.ObjectCount()
	objs := make([]GLAObject, n)
	for id := 0; id < n; id++ {
		oid := ObjID(id)
		switch {
		case aig.IsConst0(oid):
			objs[id] = GLAObject{AigID: oid, Kind: KindConst0}
		case aig.IsPI(oid):
			objs[id] = GLAObject{AigID: oid, Kind: KindPI}
		case aig.IsRO(oid):
			ri := aig.RoToRi(oid)
			f0, c0 := aig.FaninID0(ri), aig.FaninComplement0(ri)
			objs[id] = GLAObject{AigID: oid, Kind: KindRO, FaninComp0: c0, Fanins: []ObjID{f0}}
		case aig.IsRI(oid):
			objs[id] = GLAObject{AigID: oid, Kind: KindRI, Fanins: []ObjID{aig.FaninID0(oid)}}
		case aig.IsPO(oid):
			f0, c0 := aig.POFanin0(oid)
			objs[id] = GLAObject{AigID: oid, Kind: KindPO, FaninComp0: c0, Fanins: []ObjID{f0}}
		case aig.IsAnd(oid):
			objs[id] = GLAObject{
				AigID:      oid,
				Kind:       KindAnd,
				FaninComp0: aig.FaninComplement0(oid),
				FaninComp1: aig.FaninComplement1(oid),
				Fanins:     []ObjID{aig.FaninID0(oid), aig.FaninID1(oid)},
			}
		}
	}
	return objs
}

// Manager owns every exclusively-held resource of one GLA invocation:
// the GLA object arena, CNF templates, frame map, abstraction set, SAT
// solver, and refinement manager (spec.md §3 lifecycle). It is a fresh
// owned struct per invocation, never a package-level singleton (spec.md
// §9: "each GLA invocation is a fresh owned struct... not a static
// manager"), the same way emu.EmulatorBase is built once per emulator
// instance by initEmulatorBase rather than held globally.
type Manager struct {
	ID uuid.UUID

	aig    AIG
	params Params

	objs []GLAObject
	cnf  *CNFData

	abs      *AbsSet
	solver   Solver
	frameMap *FrameMap
	refine   *Refiner

	poID ObjID
}

// NewManager builds a GLA manager over aig with the given property PO
// and parameters, and seeds the abstraction with const-0 and the PO's
// backward cone up to its RO frontier (spec.md §3 invariant (iv)).
func NewManager(aig AIG, po ObjID, params Params, solver Solver) (*Manager, error) {
	if !aig.IsPO(po) {
		return nil, ErrInputValidation
	}
	objs := buildGLAObjects(aig)
	m := &Manager{
		ID:     uuid.New(),
		aig:    aig,
		params: params,
		objs:   objs,
		cnf:    DeriveCNF(objs),
		abs:    NewAbsSet(),
		solver: solver,
		poID:   po,
	}
	m.frameMap = NewFrameMap(len(objs), solver, func(id ObjID) bool {
		return objs[id].Kind == KindPO || objs[id].Kind == KindRI
	})
	m.refine = NewRefiner(aig)
	seedInitialAbstraction(objs, m.abs, po)
	return m, nil
}

// seedInitialAbstraction fills in invariant (iv): the abstraction
// starts with const-0 plus the property PO's combinational backward
// cone, stopping at (but including) every RO it reaches — registers
// are frontier objects, never expanded past at this stage.
func seedInitialAbstraction(objs []GLAObject, abs *AbsSet, po ObjID) {
	visited := make(map[ObjID]bool)
	var visit func(id ObjID)
	visit = func(id ObjID) {
		if visited[id] {
			return
		}
		visited[id] = true
		switch objs[id].Kind {
		case KindConst0:
			abs.Add(id)
		case KindPI:
			// a free input, never part of the abstraction itself
		case KindRO:
			abs.Add(id)
		case KindAnd:
			abs.Add(id)
			for _, f := range objs[id].Fanins {
				visit(f)
			}
		case KindPO:
			for _, f := range objs[id].Fanins {
				visit(f)
			}
		}
	}
	visit(po)
}

// Object returns the GLA descriptor for id.
func (m *Manager) Object(id ObjID) GLAObject { return m.objs[id] }

// POFaninGLAID returns the GLA id directly driving the property
// output (used by the driver to build each frame's PO assumption).
func (m *Manager) POFaninGLAID() ObjID { return m.objs[m.poID].Fanins[0] }

// Abstraction returns the manager's abstraction set.
func (m *Manager) Abstraction() *AbsSet { return m.abs }
