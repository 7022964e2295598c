package gla

import "fmt"

// frameKey addresses one GLA object at one timeframe.
type frameKey struct {
	id    ObjID
	frame int
}

// idSet is a duplicate-free, insertion-ordered set of object ids —
// the same shape as AbsSet, kept separate here since it seeds empty
// rather than pre-populated with const-0.
type idSet struct {
	has  map[ObjID]bool
	list []ObjID
}

func newIDSet() *idSet { return &idSet{has: make(map[ObjID]bool)} }

func (s *idSet) add(id ObjID) {
	if s.has[id] {
		return
	}
	s.has[id] = true
	s.list = append(s.list, id)
}

// Refiner is the counterexample-guided refinement engine (Rnm,
// component K). It borrows the AIG by reference — spec.md §3: "the
// refinement manager borrows the AIG view by shared reference" — and
// uses it only for the optional fanout-propagation pass; everything
// else runs over the caller-supplied GLA object arena.
type Refiner struct {
	aig AIG
}

// NewRefiner creates a refinement engine over aig.
func NewRefiner(aig AIG) *Refiner { return &Refiner{aig: aig} }

// rnmInfo is one GLA object's sensitized value and justification
// priority at one frame (spec.md §4.K.2).
type rnmInfo struct {
	val      bool
	priority int
	isPPI    bool
}

// collectCone walks backward from po staying inside
// {Const0, PI, RO, AND, RI, PO}, stopping at anything named in
// stopSet, and returns the visited objects in topological
// (fanins-before-object) order. RI is never itself visited: GLAObject
// already resolves an RO through its RI's fanin (see buildGLAObjects),
// so the cone only ever touches Const0/PI/RO/AND/PO objects. A cycle
// can only pass through an RO, whose fanin is read one frame earlier,
// so the walk does not re-enter an object it is still expanding.
func collectCone(objs []GLAObject, po ObjID, stopSet map[ObjID]int) []ObjID {
	type work struct {
		id     ObjID
		issued bool
	}
	done := make(map[ObjID]bool)
	expanding := make(map[ObjID]bool)
	var order []ObjID
	stack := []work{{po, false}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if done[top.id] {
			continue
		}
		if top.issued {
			done[top.id] = true
			order = append(order, top.id)
			continue
		}
		if expanding[top.id] {
			continue
		}
		if _, stop := stopSet[top.id]; stop {
			done[top.id] = true
			order = append(order, top.id)
			continue
		}
		expanding[top.id] = true
		stack = append(stack, work{top.id, true})
		for _, f := range objs[top.id].Fanins {
			if !done[f] {
				stack = append(stack, work{f, false})
			}
		}
	}
	return order
}

// forwardSensitize computes, for every object in cone at every frame
// 0..frameCount-1, the boolean value the counterexample drives it to
// and its justification-rank priority, per spec.md §4.K.2.
func forwardSensitize(objs []GLAObject, cone []ObjID, cex *Cex, stopSet map[ObjID]int, nPIs int) map[frameKey]rnmInfo {
	state := make(map[frameKey]rnmInfo, len(cone)*cex.FrameCount)
	for f := 0; f < cex.FrameCount; f++ {
		for _, id := range cone {
			var info rnmInfo
			if idx, stop := stopSet[id]; stop {
				info.val = cex.piBit(f, idx)
				info.priority = idx + 1 // 1-based: priority 0 stays reserved for const-0/frame-0 register cones
				info.isPPI = idx >= nPIs
			} else {
				obj := objs[id]
				switch obj.Kind {
				case KindConst0:
					info.val, info.priority = false, 0
				case KindRO:
					if f == 0 {
						info.val, info.priority = false, 0
					} else {
						prev := state[frameKey{obj.Fanins[0], f - 1}]
						info.val = prev.val != obj.FaninComp0
						info.priority = prev.priority
					}
				case KindAnd:
					f0 := state[frameKey{obj.Fanins[0], f}]
					f1 := state[frameKey{obj.Fanins[1], f}]
					v0 := f0.val != obj.FaninComp0
					v1 := f1.val != obj.FaninComp1
					info.val = v0 && v1
					switch {
					case info.val:
						info.priority = maxInt(f0.priority, f1.priority)
					case !v0 && !v1:
						if f0.priority <= f1.priority {
							info.priority = f0.priority
						} else {
							info.priority = f1.priority
						}
					case !v0:
						info.priority = f0.priority
					default:
						info.priority = f1.priority
					}
				case KindPO:
					fi := state[frameKey{obj.Fanins[0], f}]
					info.val = fi.val != obj.FaninComp0
					info.priority = fi.priority
				}
			}
			state[frameKey{id, f}] = info
		}
	}
	return state
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// backwardJustify recurses from the PO at lastFrame, marking the
// minimal set of PPIs whose CEX value must be preserved, per spec.md
// §4.K.3. touched collects every object visited along the way
// (PPI or not), used by the post-filter to judge "inside the
// justified area".
func backwardJustify(objs []GLAObject, po ObjID, lastFrame int, state map[frameKey]rnmInfo, stopSet map[ObjID]int) (ppis *idSet, touched map[ObjID]bool) {
	ppis = newIDSet()
	touched = make(map[ObjID]bool)
	visited := make(map[frameKey]bool)

	var visit func(id ObjID, frame int)
	visit = func(id ObjID, frame int) {
		key := frameKey{id, frame}
		if visited[key] {
			return
		}
		visited[key] = true
		touched[id] = true

		info := state[key]
		if info.isPPI {
			ppis.add(id)
			return
		}
		if _, stop := stopSet[id]; stop {
			return // a true primary input: nothing further to justify
		}

		obj := objs[id]
		switch obj.Kind {
		case KindConst0:
		case KindRO:
			if frame > 0 {
				visit(obj.Fanins[0], frame-1)
			}
		case KindAnd:
			f0 := state[frameKey{obj.Fanins[0], frame}]
			f1 := state[frameKey{obj.Fanins[1], frame}]
			v0 := f0.val != obj.FaninComp0
			v1 := f1.val != obj.FaninComp1
			switch {
			case v0 && v1:
				if f0.priority > 0 {
					visit(obj.Fanins[0], frame)
				}
				if f1.priority > 0 {
					visit(obj.Fanins[1], frame)
				}
			case !v0 && !v1:
				if f0.priority <= f1.priority {
					visit(obj.Fanins[0], frame)
				} else {
					visit(obj.Fanins[1], frame)
				}
			case !v0:
				visit(obj.Fanins[0], frame)
			default:
				visit(obj.Fanins[1], frame)
			}
		case KindPO:
			visit(obj.Fanins[0], frame)
		}
	}
	visit(po, lastFrame)
	return ppis, touched
}

// propagateFanout extends touched (and, for any fanout that is itself
// a PPI candidate, ppis) across AND-gate fanouts that already have one
// justified fanin, transitively, per spec.md §4.K.3's propFanout
// option. This trades a little extra PPI selection for fewer
// refinement rounds by pre-empting reconvergent picks.
func propagateFanout(aig AIG, objs []GLAObject, stopSet map[ObjID]int, nPIs int, touched map[ObjID]bool, ppis *idSet) {
	if !aig.HasFanout() {
		return
	}
	queue := make([]ObjID, 0, len(touched))
	for id := range touched {
		queue = append(queue, id)
	}
	for len(queue) > 0 {
		id := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		for _, fo := range aig.FanoutIDs(id) {
			if int(fo) >= len(objs) || objs[fo].Kind != KindAnd {
				continue
			}
			obj := objs[fo]
			if len(obj.Fanins) < 2 {
				continue
			}
			if !touched[obj.Fanins[0]] && !touched[obj.Fanins[1]] {
				continue
			}
			if touched[fo] {
				continue
			}
			touched[fo] = true
			if idx, stop := stopSet[fo]; stop && idx >= nPIs {
				ppis.add(fo)
			}
			queue = append(queue, fo)
		}
	}
}

// postFilter keeps only PPIs that are flop outputs, have a fanin in
// the already-justified area, or are reconvergent with another
// selected PPI, per spec.md §4.K.4. It never returns more PPIs than it
// was given, and falls back to the unfiltered list if filtering would
// empty it out.
func postFilter(ppis []ObjID, objs []GLAObject, touched map[ObjID]bool) []ObjID {
	faninSets := make(map[ObjID]map[ObjID]bool, len(ppis))
	for _, p := range ppis {
		s := make(map[ObjID]bool, len(objs[p].Fanins))
		for _, f := range objs[p].Fanins {
			s[f] = true
		}
		faninSets[p] = s
	}
	var kept []ObjID
	for _, p := range ppis {
		obj := objs[p]
		if obj.Kind == KindRO {
			kept = append(kept, p)
			continue
		}
		ok := false
		for _, f := range obj.Fanins {
			if touched[f] {
				ok = true
				break
			}
		}
		if !ok {
			for _, q := range ppis {
				if q == p {
					continue
				}
				for f := range faninSets[p] {
					if faninSets[q][f] {
						ok = true
						break
					}
				}
				if ok {
					break
				}
			}
		}
		if ok {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return ppis
	}
	return kept
}

// Refine is the public entry point for component K: given a
// counterexample, the (primary input ++ current PPI) index map the
// CEX's columns are drawn from, and the count of true primary inputs
// at the front of piMap, returns the PPIs (by AIG id) whose value the
// abstraction must preserve to keep the property output at 1.
//
// An empty (possibly nil) return with a nil error means the CEX is
// justifiable from true primary inputs alone — spec.md §7's
// RefinementEmpty case, which the driver treats as a real
// counterexample.
func (r *Refiner) Refine(objs []GLAObject, po ObjID, cex *Cex, piMap []ObjID, nPIs int, propFanout, fanoutFilter bool) ([]ObjID, error) {
	stopSet := make(map[ObjID]int, len(piMap))
	for i, id := range piMap {
		stopSet[id] = i
	}

	cone := collectCone(objs, po, stopSet)
	state := forwardSensitize(objs, cone, cex, stopSet, nPIs)

	lastFrame := cex.FrameCount - 1
	if !state[frameKey{po, lastFrame}].val {
		return nil, fmt.Errorf("refine: sensitized counterexample does not drive PO to 1: %w", ErrInputValidation)
	}

	ppis, touched := backwardJustify(objs, po, lastFrame, state, stopSet)
	if propFanout {
		propagateFanout(r.aig, objs, stopSet, nPIs, touched, ppis)
	}

	result := ppis.list
	if fanoutFilter {
		result = postFilter(result, objs, touched)
	}
	return result, nil
}

// RefineHeuristicOnly is the degenerate "grow one layer" refinement
// path: the entire PPI frontier is promoted, with no priority-based
// minimal selection (spec.md §4.K/§9, §4.L's historical "variant (a)").
// It is not used by Driver, which always runs the proof-based variant
// (b) spec.md §4.L requires for conformance; it is kept for the
// initial-abstraction bootstrapping case spec.md §4.L calls out as the
// one place variant (a) is still acceptable — growing a first
// abstraction when no prior one is supplied.
func RefineHeuristicOnly(objs []GLAObject, abs *AbsSet) []ObjID {
	return CollectPPIs(objs, abs)
}

// VerifyRefinement replays selected (plus every true primary input)
// through the ternary simulator and checks the PO reaches 1 at the
// last frame, with every non-selected PPI forced to X — spec.md
// §4.K.5. The driver runs it on every non-empty refinement it makes.
func (r *Refiner) VerifyRefinement(objs []GLAObject, po ObjID, cex *Cex, piMap []ObjID, nPIs int, selected []ObjID) bool {
	stopSet := make(map[ObjID]int, len(piMap))
	for i, id := range piMap {
		stopSet[id] = i
	}
	selSet := make(map[ObjID]bool, len(selected))
	for _, id := range selected {
		selSet[id] = true
	}

	cone := collectCone(objs, po, stopSet)
	sim := NewTernarySim(objs)
	frames := sim.Simulate(cone, cex.FrameCount, func(id ObjID, f int) (Tri, bool) {
		idx, stop := stopSet[id]
		if !stop {
			return TriX, false
		}
		if idx >= nPIs && !selSet[id] {
			return TriX, true
		}
		if cex.piBit(f, idx) {
			return Tri1, true
		}
		return Tri0, true
	})
	last := frames[cex.FrameCount-1]
	return last[po] == Tri1
}
