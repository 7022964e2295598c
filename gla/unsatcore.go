package gla

// UnsatCore is the UNSAT-core extractor (component I). It is called
// only after a Solve has already returned StatusUnsat; it translates
// the solver's proof core (a list of clause proof-ids, which this
// package always tags with the originating GLA object's AIG id — see
// ginisolver.go's clauseRec) into the deduplicated, later-allocated-
// first object id list spec.md §4.I calls the reload order.
//
// The driver calls it only when a frame turns UNSAT after at least one
// refinement. On UNSAT at the very first solve of a frame it keeps the
// frame as loaded and extracts no core.
func UnsatCore(solver Solver) []ObjID {
	raw := solver.ProofCore()
	out := make([]ObjID, len(raw))
	for i, v := range raw {
		out[i] = ObjID(v)
	}
	return out
}
