package gla

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// CNFData is the CNF builder's output (component B): for each GLA
// object id that is an AND/LUT node, a clause count, an offset into a
// flat literal buffer, and the literals themselves. Literals are
// object-local: variable 0 is the object's own output, variables
// 1..k are its k fanins in Fanins order (spec.md §3: "object-local
// variable indices"). Const0/RO templates are not stored here — the
// timeframe loader (component G) special-cases them directly, per
// spec.md §4.G.
type CNFData struct {
	clauseCount []int32 // indexed by GLA object id
	firstClause []int32 // indexed by GLA object id, offset into literals
	literals    []Lit   // flattened, objectLocal-indexed clauses back to back
}

// clauseCoverCache memoizes the minterm-enumeration cover used to
// Tseitin-encode a LUT node's truth table, keyed by (arity, truth
// table). LUT nodes repeat small truth tables constantly across a
// mapped design (the same 2- and 3-input functions recur at nearly
// every node), so caching pays for itself the way ABC's own
// Ga2_ManCnfCompute truth-table cache does in giaAbsGla.c.
var clauseCoverCache, _ = lru.New[uint32, [][]Lit](4096)

func cacheKey(arity int, truth uint16) uint32 {
	return uint32(arity)<<16 | uint32(truth)
}

// DeriveCNF computes CNF templates for every AND/LUT object in objs.
// Raw 2-input AND gates (Lut == nil) get the standard 3-clause Tseitin
// encoding for out = in0 AND in1. LUT objects (produced by the
// mapping-aware duplicator, component C) get a full Tseitin expansion
// over their truth table — not SOP/ISOP-minimized, since that
// machinery is explicitly out of scope for this core (spec.md §1).
func DeriveCNF(objs []GLAObject) *CNFData {
	cnf := &CNFData{
		clauseCount: make([]int32, len(objs)),
		firstClause: make([]int32, len(objs)),
	}
	for id, obj := range objs {
		if obj.Kind != KindAnd {
			continue
		}
		var clauses [][]Lit
		if obj.Lut != nil {
			clauses = lutClauses(obj.Lut)
		} else {
			clauses = andClauses(obj.FaninComp0, obj.FaninComp1)
		}
		cnf.firstClause[id] = int32(len(cnf.literals))
		cnf.clauseCount[id] = int32(len(clauses))
		for _, c := range clauses {
			cnf.literals = append(cnf.literals, c...)
		}
	}
	return cnf
}

// andClauses is the standard 3-clause encoding for out = (in0^c0) AND
// (in1^c1), using object-local variables: 0 = out, 1 = in0, 2 = in1.
// The fanin complements are baked into the literal polarity here since
// variables are object-local and carry no inversion of their own.
func andClauses(c0, c1 bool) [][]Lit {
	out := NewLit(0, false)
	notOut := NewLit(0, true)
	in0 := NewLit(1, !c0)
	notIn0 := NewLit(1, c0)
	in1 := NewLit(2, !c1)
	notIn1 := NewLit(2, c1)
	return [][]Lit{
		{notOut, in0},
		{notOut, in1},
		{out, notIn0, notIn1},
	}
}

// lutClauses Tseitin-encodes an up-to-4-input LUT: for each input row,
// one clause forcing the implication "row holds => out matches the
// truth table at that row", in both directions.
func lutClauses(l *LutConfig) [][]Lit {
	key := cacheKey(l.NumFanins, l.Truth)
	if cached, ok := clauseCoverCache.Get(key); ok {
		return cached
	}
	n := l.NumFanins
	out := NewLit(0, false)
	notOut := NewLit(0, true)
	clauses := make([][]Lit, 0, 1<<uint(n))
	for row := 0; row < (1 << uint(n)); row++ {
		bit := (l.Truth >> uint(row)) & 1
		clause := make([]Lit, 0, n+1)
		if bit == 1 {
			clause = append(clause, out)
		} else {
			clause = append(clause, notOut)
		}
		for i := 0; i < n; i++ {
			v := int32(i + 1)
			if (row>>uint(i))&1 == 1 {
				clause = append(clause, NewLit(v, false))
			} else {
				clause = append(clause, NewLit(v, true))
			}
		}
		clauses = append(clauses, clause)
	}
	clauseCoverCache.Add(key, clauses)
	return clauses
}

// RemapLits rewrites the per-id template index tables when AIG/GLA
// object ids change under a bijection (component C's duplication).
// Since clause literals are object-local (§3), only the id-indexed
// offset tables move; literal content is unaffected. Returns
// ErrOutOfLiteralBounds if idMap sends an id out of [0, newSize).
func (c *CNFData) RemapLits(idMap map[int32]int32, newSize int) (*CNFData, error) {
	out := &CNFData{
		clauseCount: make([]int32, newSize),
		firstClause: make([]int32, newSize),
		literals:    c.literals,
	}
	for oldID, newID := range idMap {
		if newID < 0 || int(newID) >= newSize {
			return nil, ErrOutOfLiteralBounds
		}
		if int(oldID) >= len(c.clauseCount) {
			continue
		}
		out.clauseCount[newID] = c.clauseCount[oldID]
		out.firstClause[newID] = c.firstClause[oldID]
	}
	return out, nil
}

// ClausesFor returns the object-local clauses for a GLA AND/LUT
// object. The clause shapes follow from obj (already known to the
// caller — the timeframe loader): a raw AND has andClauses' fixed
// widths 2, 2 and 3, and every row of a LUT has width NumFanins+1;
// the flat literal buffer itself carries no per-clause length table.
func (c *CNFData) ClausesFor(id ObjID, obj GLAObject) [][]Lit {
	n := c.clauseCount[id]
	if n == 0 {
		return nil
	}
	start := c.firstClause[id]
	if obj.Lut == nil {
		lits := c.literals[start : start+7]
		return [][]Lit{lits[0:2], lits[2:4], lits[4:7]}
	}
	width := int32(obj.Lut.NumFanins + 1)
	lits := c.literals[start : start+n*width]
	result := make([][]Lit, 0, n)
	for i := int32(0); i < n; i++ {
		result = append(result, lits[i*width:i*width+width])
	}
	return result
}
