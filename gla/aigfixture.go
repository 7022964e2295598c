package gla

// FixtureAIG is a concrete, arena-backed AIG used by tests and the
// cmd/glademo harness. It is not part of the GLA core's contract —
// spec.md §1 treats the AIG representation as an out-of-scope
// collaborator — but the core needs *some* implementation to exercise
// against, so one is provided here in the teacher's flat-array arena
// style (emu/mem.go keeps ROM/RAM/bank-slot state in plain slices and
// arrays rather than a pointer graph; FixtureAIG does the same for AIG
// objects).
type FixtureAIG struct {
	kinds       []Kind
	fanin0      []ObjID
	fanin0Comp  []bool
	fanin1      []ObjID
	fanin1Comp  []bool
	roToRi      map[ObjID]ObjID
	riToRo      map[ObjID]ObjID
	fanoutIdx   [][]ObjID
	hasFanout   bool
	travIDs     []uint32
	travCurrent uint32
}

// NewFixtureAIG creates a fixture with just the const-0 object
// allocated (id 0), matching spec.md §3's invariant that id 0 is
// always Const0.
func NewFixtureAIG() *FixtureAIG {
	f := &FixtureAIG{
		kinds:      []Kind{KindConst0},
		fanin0:     []ObjID{0},
		fanin0Comp: []bool{false},
		fanin1:     []ObjID{0},
		fanin1Comp: []bool{false},
		roToRi:     map[ObjID]ObjID{},
		riToRo:     map[ObjID]ObjID{},
		travIDs:    []uint32{0},
	}
	return f
}

func (f *FixtureAIG) alloc(k Kind, f0 ObjID, c0 bool, f1 ObjID, c1 bool) ObjID {
	id := ObjID(len(f.kinds))
	f.kinds = append(f.kinds, k)
	f.fanin0 = append(f.fanin0, f0)
	f.fanin0Comp = append(f.fanin0Comp, c0)
	f.fanin1 = append(f.fanin1, f1)
	f.fanin1Comp = append(f.fanin1Comp, c1)
	f.travIDs = append(f.travIDs, 0)
	return id
}

// AddPI allocates a new primary input.
func (f *FixtureAIG) AddPI() ObjID { return f.alloc(KindPI, 0, false, 0, false) }

// AddAnd allocates a 2-input AND gate with the given fanins/polarities.
func (f *FixtureAIG) AddAnd(f0 ObjID, c0 bool, f1 ObjID, c1 bool) ObjID {
	return f.alloc(KindAnd, f0, c0, f1, c1)
}

// AddFlop allocates an RO/RI pair. The RI's fanin (the flop's
// next-state function) is set via SetRIFanin once it is known.
func (f *FixtureAIG) AddFlop() (ro, ri ObjID) {
	ro = f.alloc(KindRO, 0, false, 0, false)
	ri = f.alloc(KindRI, 0, false, 0, false)
	f.roToRi[ro] = ri
	f.riToRo[ri] = ro
	return ro, ri
}

// SetRIFanin sets an RI's driving literal.
func (f *FixtureAIG) SetRIFanin(ri ObjID, fanin ObjID, comp bool) {
	f.fanin0[ri] = fanin
	f.fanin0Comp[ri] = comp
}

// AddPO allocates a primary output driven by fanin.
func (f *FixtureAIG) AddPO(fanin ObjID, comp bool) ObjID {
	return f.alloc(KindPO, fanin, comp, 0, false)
}

// BuildFanout computes a static fanout index by a single linear pass,
// enabling the refinement engine's optional propFanout path.
func (f *FixtureAIG) BuildFanout() {
	f.fanoutIdx = make([][]ObjID, len(f.kinds))
	for id := ObjID(1); id < ObjID(len(f.kinds)); id++ {
		switch f.kinds[id] {
		case KindAnd:
			f.fanoutIdx[f.fanin0[id]] = append(f.fanoutIdx[f.fanin0[id]], id)
			f.fanoutIdx[f.fanin1[id]] = append(f.fanoutIdx[f.fanin1[id]], id)
		case KindRI:
			f.fanoutIdx[f.fanin0[id]] = append(f.fanoutIdx[f.fanin0[id]], id)
		}
	}
	f.hasFanout = true
}

func (f *FixtureAIG) ObjectCount() int { return len(f.kinds) }

func (f *FixtureAIG) IsConst0(id ObjID) bool { return id == 0 }
func (f *FixtureAIG) IsPI(id ObjID) bool     { return f.kinds[id] == KindPI }
func (f *FixtureAIG) IsAnd(id ObjID) bool    { return f.kinds[id] == KindAnd }
func (f *FixtureAIG) IsRO(id ObjID) bool     { return f.kinds[id] == KindRO }
func (f *FixtureAIG) IsRI(id ObjID) bool     { return f.kinds[id] == KindRI }
func (f *FixtureAIG) IsPO(id ObjID) bool     { return f.kinds[id] == KindPO }
func (f *FixtureAIG) IsCI(id ObjID) bool     { return f.IsPI(id) || f.IsRO(id) }
func (f *FixtureAIG) IsCO(id ObjID) bool     { return f.IsPO(id) || f.IsRI(id) }

func (f *FixtureAIG) FaninID0(id ObjID) ObjID        { return f.fanin0[id] }
func (f *FixtureAIG) FaninComplement0(id ObjID) bool { return f.fanin0Comp[id] }
func (f *FixtureAIG) FaninID1(id ObjID) ObjID        { return f.fanin1[id] }
func (f *FixtureAIG) FaninComplement1(id ObjID) bool { return f.fanin1Comp[id] }

func (f *FixtureAIG) RoToRi(ro ObjID) ObjID { return f.roToRi[ro] }
func (f *FixtureAIG) RiToRo(ri ObjID) ObjID { return f.riToRo[ri] }

func (f *FixtureAIG) POFanin0(po ObjID) (ObjID, bool) { return f.fanin0[po], f.fanin0Comp[po] }

func (f *FixtureAIG) IncrementTravID() { f.travCurrent++ }
func (f *FixtureAIG) SetTravIDCurrent(id ObjID) { f.travIDs[id] = f.travCurrent }
func (f *FixtureAIG) IsTravIDCurrent(id ObjID) bool { return f.travIDs[id] == f.travCurrent }

func (f *FixtureAIG) HasFanout() bool { return f.hasFanout }
func (f *FixtureAIG) FanoutIDs(id ObjID) []ObjID { return f.fanoutIdx[id] }
