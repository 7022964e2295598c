// Command glademo runs the gate-level abstraction CEGAR engine over a
// small set of built-in fixture circuits, printing the verdict and, on
// a real counterexample, its frame and input counts (not the per-frame
// input values). It takes no file inputs —
// AIGER parsing stays out of scope (spec.md §1) — so the fixtures are
// the only circuits it knows how to check.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/hwmc/gla/gla"
)

// fixture builds one of the demo's built-in circuits and returns the
// AIG plus its single property-output id.
type fixture struct {
	name        string
	description string
	build       func() (*gla.FixtureAIG, gla.ObjID)
}

var fixtures = []fixture{
	{
		name:        "unsat",
		description: "PO tied to const-0: unreachable, proves out",
		build: func() (*gla.FixtureAIG, gla.ObjID) {
			aig := gla.NewFixtureAIG()
			po := aig.AddPO(0, false)
			return aig, po
		},
	},
	{
		name:        "sat",
		description: "PO tied to const-1: violated at frame 0",
		build: func() (*gla.FixtureAIG, gla.ObjID) {
			aig := gla.NewFixtureAIG()
			po := aig.AddPO(0, true)
			return aig, po
		},
	},
	{
		name:        "counter4",
		description: "4-bit ripple counter, property violated at 0xF",
		build:       buildCounter4,
	},
}

func buildCounter4() (*gla.FixtureAIG, gla.ObjID) {
	aig := gla.NewFixtureAIG()
	ro0, ri0 := aig.AddFlop()
	ro1, ri1 := aig.AddFlop()
	ro2, ri2 := aig.AddFlop()
	ro3, ri3 := aig.AddFlop()

	xor := func(a gla.ObjID, ca bool, b gla.ObjID, cb bool) (gla.ObjID, bool) {
		t1 := aig.AddAnd(a, ca, b, !cb)
		t2 := aig.AddAnd(a, !ca, b, cb)
		return aig.AddAnd(t1, true, t2, true), true
	}

	aig.SetRIFanin(ri0, ro0, true)

	n1, c1 := xor(ro1, false, ro0, false)
	aig.SetRIFanin(ri1, n1, c1)

	carry01 := aig.AddAnd(ro0, false, ro1, false)
	n2, c2 := xor(ro2, false, carry01, false)
	aig.SetRIFanin(ri2, n2, c2)

	carry012 := aig.AddAnd(carry01, false, ro2, false)
	n3, c3 := xor(ro3, false, carry012, false)
	aig.SetRIFanin(ri3, n3, c3)

	carry0123 := aig.AddAnd(carry012, false, ro3, false)
	po := aig.AddPO(carry0123, false)
	return aig, po
}

func main() {
	name := flag.String("fixture", "counter4", "built-in fixture to check: unsat, sat, counter4")
	framesMax := flag.Uint("frames-max", 20, "hard ceiling on timeframes")
	framesStart := flag.Uint("frames-start", 1, "depth (frame index + 1) of the first timeframe checked; 1 checks from frame 0")
	timeout := flag.Duration("timeout", 30*time.Second, "wall-clock budget")
	verbose := flag.Bool("verbose", true, "print per-frame diagnostics")
	flag.Parse()

	var f *fixture
	for i := range fixtures {
		if fixtures[i].name == *name {
			f = &fixtures[i]
			break
		}
	}
	if f == nil {
		log.Fatalf("unknown fixture %q (known: unsat, sat, counter4)", *name)
	}

	aig, po := f.build()
	params := gla.DefaultParams()
	params.FramesMax = uint32(*framesMax)
	params.FramesStart = uint32(*framesStart)
	params.Timeout = *timeout
	params.Verbose = *verbose

	m, err := gla.NewManager(aig, po, params, gla.NewGiniSolver())
	if err != nil {
		log.Fatalf("gla: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout+time.Second)
	defer cancel()

	res, err := gla.NewDriver(m).Run(ctx)
	if err != nil {
		log.Fatalf("gla: %v", err)
	}

	fmt.Printf("fixture: %s (%s)\n", f.name, f.description)
	fmt.Printf("outcome: %s, frames checked: %d\n", res.Outcome, res.FramesDone)
	if res.Outcome == gla.OutcomeFoundRealCex {
		printCex(res.RealCex)
	}
}

func printCex(cex *gla.Cex) {
	fmt.Printf("counterexample: %d frame(s), %d primary input(s)\n", cex.FrameCount, cex.PiCount)
}
