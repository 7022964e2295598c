package gla

import (
	"context"
	"time"
)

// Solver is the narrow SAT-with-proof-logging contract the GLA core
// consumes (spec.md §6.3, component D). Its method set is the
// operation list from spec.md §6.3, Go-cased; the shape (small
// interface, Reset/Name-less here because this core owns exactly one
// solver per invocation) is grounded on the idiomatic Go SAT interface
// in other_examples' xDarkicex-logic/sat package (Solve/AddClause/
// GetStatistics/Reset), narrowed to what the core actually needs.
type Solver interface {
	// NewVar allocates and returns the next sequential SAT variable.
	NewVar() int32
	NumVars() int32
	NumClauses() int
	NumConflicts() uint64

	// AddClause adds a clause, tagging it with proofID (the
	// originating AIG object id) for later proof-core translation.
	AddClause(lits []Lit, proofID int32) error

	// AddConst asserts a unit literal for v with the given polarity.
	AddConst(v int32, polarity bool, proofID int32)

	// AddBuffer asserts out <-> (in XOR complement).
	AddBuffer(out, in int32, complement bool, proofID int32)

	// AddAnd asserts out <-> (in0^c0) AND (in1^c1).
	AddAnd(out, in0, in1 int32, c0, c1 bool, proofID int32)

	// Simplify is a no-op propagation hook called between timeframes.
	Simplify()

	// Bookmark/Rollback save and restore a variable/clause/trail
	// checkpoint (spec.md §4.E/§4.F/§5).
	Bookmark()
	Rollback()

	// Solve runs an assumption-based search bounded by conflictLimit
	// (0 = unlimited) and ctx's deadline.
	Solve(ctx context.Context, assumps []Lit, conflictLimit uint64) SolveStatus

	VarValue(v int32) bool

	// ProofCore returns the AIG object ids (proof-id tags) of the
	// clauses that participated in the most recent UNSAT proof.
	ProofCore() []int32

	SetRuntimeLimit(deadline time.Time)
	SetLearntMax(n uint32)
}
