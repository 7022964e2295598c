package gla

import (
	"context"
	"time"
)

// mockClause is one stored clause plus its originating-object tag,
// mirroring ginisolver.go's clauseRec.
type mockClause struct {
	lits    []Lit
	proofID int32
}

// mockSolver is an in-test-only brute-force Solver: correct (it
// enumerates every assignment) rather than fast, which is exactly
// right for the tiny fixtures this package's tests build. Grounded on
// z80_test.go's mockIO — a minimal stand-in for an external dependency
// (there koron-go/z80.IO, here gla.Solver) that lets the rest of the
// package be unit-tested without the real backend.
type mockSolver struct {
	nVars   int32
	clauses []mockClause
	model   []bool // 1-indexed by variable; model[0] unused

	bookmarkedClauses int
	bookmarkedVars    int32

	solveCalls uint64
}

func newMockSolver() *mockSolver { return &mockSolver{} }

func (s *mockSolver) NewVar() int32 {
	s.nVars++
	return s.nVars
}

func (s *mockSolver) NumVars() int32  { return s.nVars }
func (s *mockSolver) NumClauses() int { return len(s.clauses) }
func (s *mockSolver) NumConflicts() uint64 { return s.solveCalls }

func (s *mockSolver) AddClause(lits []Lit, proofID int32) error {
	s.clauses = append(s.clauses, mockClause{lits: append([]Lit(nil), lits...), proofID: proofID})
	return nil
}

func (s *mockSolver) AddConst(v int32, polarity bool, proofID int32) {
	s.AddClause([]Lit{NewLit(v, polarity)}, proofID)
}

func (s *mockSolver) AddBuffer(out, in int32, complement bool, proofID int32) {
	s.AddClause([]Lit{NewLit(out, false), NewLit(in, complement)}, proofID)
	s.AddClause([]Lit{NewLit(out, true), NewLit(in, !complement)}, proofID)
}

func (s *mockSolver) AddAnd(out, in0, in1 int32, c0, c1 bool, proofID int32) {
	s.AddClause([]Lit{NewLit(out, true), NewLit(in0, !c0)}, proofID)
	s.AddClause([]Lit{NewLit(out, true), NewLit(in1, !c1)}, proofID)
	s.AddClause([]Lit{NewLit(out, false), NewLit(in0, c0), NewLit(in1, c1)}, proofID)
}

func (s *mockSolver) Simplify() {}

func (s *mockSolver) Bookmark() {
	s.bookmarkedClauses = len(s.clauses)
	s.bookmarkedVars = s.nVars
}

func (s *mockSolver) Rollback() {
	s.clauses = s.clauses[:s.bookmarkedClauses]
	s.nVars = s.bookmarkedVars
}

// clauseSatisfied/allSatisfied brute-force-check one candidate
// assignment, assign[1..nVars], against every stored clause plus the
// solve-time assumptions.
func clauseSatisfied(c mockClause, assign []bool) bool {
	for _, l := range c.lits {
		v := assign[l.Var()]
		if v == l.IsPos() {
			return true
		}
	}
	return false
}

func (s *mockSolver) Solve(ctx context.Context, assumps []Lit, conflictLimit uint64) SolveStatus {
	s.solveCalls++
	if conflictLimit > 0 && s.solveCalls > conflictLimit {
		return StatusUndef
	}
	n := int(s.nVars)
	total := uint64(1) << uint(n)
	for combo := uint64(0); combo < total; combo++ {
		assign := make([]bool, n+1)
		for v := 1; v <= n; v++ {
			assign[v] = (combo>>uint(v-1))&1 == 1
		}
		ok := true
		for _, a := range assumps {
			if assign[a.Var()] != a.IsPos() {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		for _, c := range s.clauses {
			if !clauseSatisfied(c, assign) {
				ok = false
				break
			}
		}
		if ok {
			s.model = assign
			return StatusSat
		}
	}
	s.model = nil
	return StatusUnsat
}

func (s *mockSolver) VarValue(v int32) bool {
	if s.model == nil || int(v) >= len(s.model) {
		return false
	}
	return s.model[v]
}

// ProofCore returns every distinct proof id among the solver's
// clauses, reverse-ordered — a deliberately maximal (not minimal)
// core, which is sound for every test that exercises it (the driver
// only ever needs soundness, per spec.md §4.I).
func (s *mockSolver) ProofCore() []int32 {
	seen := make(map[int32]bool)
	var out []int32
	for i := len(s.clauses) - 1; i >= 0; i-- {
		id := s.clauses[i].proofID
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func (s *mockSolver) SetRuntimeLimit(deadline time.Time) {}
func (s *mockSolver) SetLearntMax(n uint32)              {}
