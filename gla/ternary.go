package gla

// Tri is a three-valued simulation value: 0, 1, or X (unknown).
type Tri int8

const (
	TriX Tri = iota
	Tri0
	Tri1
)

func (t Tri) String() string {
	switch t {
	case Tri0:
		return "0"
	case Tri1:
		return "1"
	default:
		return "X"
	}
}

// triLit applies a fanin complement to a ternary value: X stays X, 0
// and 1 flip.
func triLit(v Tri, comp bool) Tri {
	if !comp || v == TriX {
		return v
	}
	if v == Tri0 {
		return Tri1
	}
	return Tri0
}

// triAnd combines two (already-complemented) ternary values: AND is
// 0-dominant and X-absorbing, per spec.md §4.J.
func triAnd(a, b Tri) Tri {
	if a == Tri0 || b == Tri0 {
		return Tri0
	}
	if a == TriX || b == TriX {
		return TriX
	}
	return Tri1
}

// TernarySim replays a counterexample over the GLA object arena in
// ternary logic: PIs and selected PPIs take their CEX bit, everything
// else not in the supplied assignment is X. It is used only by the
// refinement engine's verification step, VerifyRefinement (spec.md
// §4.J); the sensitization pass computes plain Boolean values itself,
// and the SAT-facing components never use it.
type TernarySim struct {
	objs []GLAObject
}

// NewTernarySim creates a simulator over a GLA object arena.
func NewTernarySim(objs []GLAObject) *TernarySim {
	return &TernarySim{objs: objs}
}

// frameValues holds the ternary value of every GLA object for one
// timeframe, plus that frame's RO values (needed by frame f+1).
type frameValues struct {
	v []Tri
}

// Simulate computes the ternary value of every object in cone, for
// every frame 0..frameCount-1, given assign(id, frame) supplying the
// driving value for objects outside the cone (PIs, and PPIs whose
// value is fixed rather than simulated). cone must be in topological
// order (fanins before the objects that use them), as produced by
// collectCone. Returns, per frame, the value of every object named in
// cone.
func (s *TernarySim) Simulate(cone []ObjID, frameCount int, assign func(id ObjID, frame int) (Tri, bool)) []map[ObjID]Tri {
	frames := make([]map[ObjID]Tri, frameCount)
	var prevRO map[ObjID]Tri
	for f := 0; f < frameCount; f++ {
		cur := make(map[ObjID]Tri, len(cone))
		for _, id := range cone {
			if v, ok := assign(id, f); ok {
				cur[id] = v
				continue
			}
			obj := s.objs[id]
			switch obj.Kind {
			case KindConst0:
				cur[id] = Tri0
			case KindPI:
				cur[id] = TriX
			case KindAnd:
				a := triLit(cur[obj.Fanins[0]], obj.FaninComp0)
				b := triLit(cur[obj.Fanins[1]], obj.FaninComp1)
				cur[id] = triAnd(a, b)
			case KindRO:
				if f == 0 {
					cur[id] = Tri0
				} else {
					cur[id] = prevRO[id]
				}
			case KindPO:
				cur[id] = triLit(cur[obj.Fanins[0]], obj.FaninComp0)
			}
		}
		// RO values for frame f+1 come from this frame's RI fanin,
		// which is obj.Fanins[0]/FaninComp0 on the RO object itself
		// (GLAObject already resolves RO through its RI, per gla.go).
		next := make(map[ObjID]Tri)
		for _, id := range cone {
			obj := s.objs[id]
			if obj.Kind == KindRO {
				next[id] = triLit(cur[obj.Fanins[0]], obj.FaninComp0)
			}
		}
		prevRO = next
		frames[f] = cur
	}
	return frames
}
