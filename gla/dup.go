package gla

import "sort"

// LutSpec is one mapped root's support and truth table, expressed in
// the original AIG's id space: Fanins are root CI objects or other
// mapped roots, and Truth is the function over them in positive phase
// (bit i of Truth is the output for the input row whose bit j is
// Fanins[j]) — any edge complement in the original mapping must
// already be folded into Truth by the caller, the same way the LUT's
// Tseitin encoding (cnf.go's lutClauses) takes its fanins at face
// value.
type LutSpec struct {
	Fanins []ObjID
	Truth  uint16
}

// LutMapping is a technology mapping over an AIG: every AND object
// named as a key is a LUT root: the non-root ANDs inside its cone are
// folded into Truth and never separately materialized. Every AND
// object in the AIG must be covered by exactly one root or appear as
// one of a root's own fanins.
type LutMapping map[ObjID]LutSpec

// DupMapped is the mapping-aware duplicator (component C). It builds a
// fresh GLA object arena in which CI/CO objects are rebuilt 1-to-1 and
// each LUT root collapses to a single AND GLAObject carrying a
// LutConfig, and returns the id bijection from the original AIG's ids
// to the new arena's ids (for CNFData.RemapLits and for translating a
// resulting abstraction back to the original AIG). The original AIG is
// left untouched. Grounded on ABC's Gia_ManDupMapped/
// Gia_ManDupMapped_rec (src/aig/gia/giaAbsGla2.c in the original
// sources): walk CI/CO 1-to-1, walk a mapped root's Truth/Fanins
// directly without descending into its internal (non-root) ANDs.
func DupMapped(aig AIG, mapping LutMapping) ([]GLAObject, map[ObjID]ObjID, error) {
	n := aig.ObjectCount()

	isRoot := make([]bool, n)
	for root, spec := range mapping {
		if int(root) < 0 || int(root) >= n || !aig.IsAnd(root) {
			return nil, nil, ErrInvalidMapping
		}
		if len(spec.Fanins) == 0 || len(spec.Fanins) > 4 {
			return nil, nil, ErrInvalidMapping
		}
		isRoot[root] = true
	}

	// Every fanin named by a root must itself be a CI or a root: a
	// reference to an internal (non-root) AND is not reconstructible
	// once that AND has been folded away.
	for root, spec := range mapping {
		for _, f := range spec.Fanins {
			if int(f) < 0 || int(f) >= n {
				return nil, nil, ErrInvalidMapping
			}
			if f == 0 || aig.IsCI(f) || isRoot[f] {
				continue
			}
			if aig.IsAnd(f) {
				return nil, nil, ErrInvalidMapping
			}
		}
		_ = root
	}

	// Deterministic new-id assignment: const0 keeps 0, then every kept
	// old id (CI, CO, and LUT roots — skipping non-root ANDs) in
	// ascending old-id order.
	var keep []ObjID
	for id := 1; id < n; id++ {
		oid := ObjID(id)
		if aig.IsAnd(oid) && !isRoot[oid] {
			continue
		}
		keep = append(keep, oid)
	}
	sort.Slice(keep, func(i, j int) bool { return keep[i] < keep[j] })

	idMap := make(map[ObjID]ObjID, len(keep)+1)
	idMap[0] = 0
	for i, oid := range keep {
		idMap[oid] = ObjID(i + 1)
	}

	remap := func(old ObjID) ObjID {
		if new, ok := idMap[old]; ok {
			return new
		}
		return old // const0 or otherwise unmapped; caller has already validated
	}

	objs := make([]GLAObject, len(keep)+1)
	objs[0] = GLAObject{AigID: 0, Kind: KindConst0}
	for oldID, newID := range idMap {
		if oldID == 0 {
			continue
		}
		switch {
		case aig.IsPI(oldID):
			objs[newID] = GLAObject{AigID: oldID, Kind: KindPI}
		case aig.IsRO(oldID):
			ri := aig.RoToRi(oldID)
			f0, c0 := aig.FaninID0(ri), aig.FaninComplement0(ri)
			objs[newID] = GLAObject{AigID: oldID, Kind: KindRO, FaninComp0: c0, Fanins: []ObjID{remap(f0)}}
		case aig.IsRI(oldID):
			objs[newID] = GLAObject{AigID: oldID, Kind: KindRI, Fanins: []ObjID{remap(aig.FaninID0(oldID))}}
		case aig.IsPO(oldID):
			f0, c0 := aig.POFanin0(oldID)
			objs[newID] = GLAObject{AigID: oldID, Kind: KindPO, FaninComp0: c0, Fanins: []ObjID{remap(f0)}}
		case isRoot[oldID]:
			spec := mapping[oldID]
			fanins := make([]ObjID, len(spec.Fanins))
			for i, f := range spec.Fanins {
				fanins[i] = remap(f)
			}
			objs[newID] = GLAObject{
				AigID:  oldID,
				Kind:   KindAnd,
				Fanins: fanins,
				Lut:    &LutConfig{NumFanins: len(spec.Fanins), Truth: spec.Truth},
			}
		}
	}
	return objs, idMap, nil
}
