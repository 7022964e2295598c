package gla

import "testing"

// buildFrontierFixture builds and2 = AND(pi1, pi2) and
// and1 = AND(pi0, and2), with abstraction = {const0, and1}. pi0 is a
// true primary input and so not a PPI; and2 is the only PPI.
func buildFrontierFixture() (objs []GLAObject, abs *AbsSet) {
	f := NewFixtureAIG()
	pi0 := f.AddPI()
	pi1 := f.AddPI()
	pi2 := f.AddPI()
	and2 := f.AddAnd(pi1, false, pi2, false)
	and1 := f.AddAnd(pi0, false, and2, false)
	objs = buildGLAObjects(f)
	abs = NewAbsSet()
	abs.Add(and1)
	return objs, abs
}

func TestCollectPPIs_SkipsPIsAndInAbstractionFanins(t *testing.T) {
	objs, abs := buildFrontierFixture()
	ppis := CollectPPIs(objs, abs)
	if len(ppis) != 1 {
		t.Fatalf("expected exactly 1 PPI (and2), got %v", ppis)
	}
	// and2 is the AND gate id: const0(0), pi0(1), pi1(2), pi2(3), and2(4), and1(5)
	if ppis[0] != 4 {
		t.Errorf("expected PPI to be and2 (id 4), got %d", ppis[0])
	}
}

func TestExplorePPIs_StrictRoundRequiresAllFaninsInAbstraction(t *testing.T) {
	objs, abs := buildFrontierFixture()
	ppis := CollectPPIs(objs, abs)
	// and2's fanins (pi1, pi2) are PIs, never added to abs directly, so
	// the strict round (round 0) must drop it.
	strict := ExplorePPIs(ppis, objs, abs, 0)
	if len(strict) != 0 {
		t.Errorf("expected strict round to drop and2 (no fanins in abstraction), got %v", strict)
	}
}

func TestExplorePPIs2_FallsBackWhenRestrictionEmpties(t *testing.T) {
	ppis := []ObjID{4}
	out := ExplorePPIs2(ppis, map[ObjID]bool{9: true})
	if len(out) != 1 || out[0] != 4 {
		t.Errorf("expected fallback to unfiltered list, got %v", out)
	}
}
