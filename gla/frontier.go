package gla

// CollectPPIs is the PPI frontier selector (component H). For every
// object already in the abstraction, it walks that object's fanins;
// any fanin that is neither already in the abstraction nor a primary
// input is a pseudo-primary-input candidate. The result is
// deduplicated and returned in reverse discovery order, matching
// ABC's Gla_ManCollectPPis walking vAbs back to front.
func CollectPPIs(objs []GLAObject, abs *AbsSet) []ObjID {
	seen := make(map[ObjID]bool)
	var out []ObjID
	list := abs.List()
	for i := len(list) - 1; i >= 0; i-- {
		obj := objs[list[i]]
		for _, f := range obj.Fanins {
			if abs.Contains(f) {
				continue
			}
			if objs[f].Kind == KindPI {
				continue
			}
			if seen[f] {
				continue
			}
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// ExplorePPIs is the optional heuristic filter over a PPI candidate
// list: a PPI is dropped if none of its own fanins are yet in the
// abstraction (it is "far" from the current frontier), per spec.md
// §4.H. Rounds alternate between the strict (both fanins required)
// and lenient (one fanin suffices) variants the way ABC's
// Gla_ManExplorePpis/ExplorePpis2 pair does; round selects which.
func ExplorePPIs(ppis []ObjID, objs []GLAObject, abs *AbsSet, round int) []ObjID {
	lenient := round%2 == 1
	var out []ObjID
	for _, id := range ppis {
		obj := objs[id]
		if len(obj.Fanins) == 0 {
			out = append(out, id)
			continue
		}
		inCount := 0
		for _, f := range obj.Fanins {
			if abs.Contains(f) {
				inCount++
			}
		}
		if lenient {
			if inCount >= 1 {
				out = append(out, id)
			}
		} else if inCount == len(obj.Fanins) {
			out = append(out, id)
		}
	}
	return out
}

// ExplorePPIs2 restricts a PPI candidate list to those that also
// appeared in a previous frame's UNSAT core — spec.md §9's tuning
// knob built on "the alternate refinement path Gla_ManExplorePPis2",
// left optional and off the critical path. Falls back to the
// unfiltered list if the restriction would empty it out, matching
// postFilter's "never shrink to nothing" convention (ExplorePPIs has
// no such fallback and can return an empty list).
func ExplorePPIs2(ppis []ObjID, prevCore map[ObjID]bool) []ObjID {
	if len(prevCore) == 0 {
		return ppis
	}
	var out []ObjID
	for _, id := range ppis {
		if prevCore[id] {
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return ppis
	}
	return out
}
