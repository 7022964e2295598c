package gla

import (
	"context"
	"fmt"
	"time"
)

// Driver is the outer GLA state machine (component L): it grows the
// abstraction frame by frame, alternating SAT solves, refinement, and
// proof-based rollback/shrinking, per spec.md §4.L. One Driver wraps
// exactly one Manager and is run once; grounded on emu/emulator.go's
// runScanlines/Cycle outer loop (one call drives the whole simulation
// to a terminal state) and ABC's Gia_GlaPerform.
type Driver struct {
	m      *Manager
	diag   *diag
	piIDs  []ObjID // true primary inputs, in ascending AIG-id order, fixed for the invocation
	params Params
}

// NewDriver creates a driver over an already-seeded Manager.
func NewDriver(m *Manager) *Driver {
	var pis []ObjID
	for id, obj := range m.objs {
		if obj.Kind == KindPI {
			pis = append(pis, ObjID(id))
		}
	}
	return &Driver{
		m:      m,
		diag:   newDiag(m.ID.String(), m.params.Verbose),
		piIDs:  pis,
		params: m.params,
	}
}

// frameResult is the inner per-frame loop's outcome, replacing the
// goto-FINISH control flow of the original C source with an explicit
// result enum, per spec.md §9.
type frameResult int

const (
	frameContinue frameResult = iota // this frame settled UNSAT; proceed to the next frame
	frameRealCex                     // a genuine counterexample was found
	frameResourceExhausted           // Undef: timeout or conflict budget
)

// Run executes the driver to completion: either it proves the
// property up to params.FramesMax (or the ratio ceiling), or it
// produces a real counterexample, or it exhausts its resource budget.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	m := d.m
	universe := m.aig.ObjectCount()

	m.solver.SetLearntMax(d.params.LearntMax)
	if d.params.Timeout > 0 {
		m.solver.SetRuntimeLimit(time.Now().Add(d.params.Timeout))
	}

	var realCex *Cex
	outcome := OutcomeProducedAbstraction
	framesDone := 0

	framesMax := int(d.params.FramesMax)
	framesStart := int(d.params.FramesStart)
	if framesStart < 1 {
		framesStart = 1
	}

frameLoop:
	for f := 0; f < framesMax; f++ {
		if err := m.LoadFrame(f); err != nil {
			return nil, fmt.Errorf("gla: load frame %d: %w", f, err)
		}
		framesDone = f + 1

		// Warm-up unrolling: spec.md §6.2's framesStart is the first
		// depth the property is actually checked at; shallower frames
		// are unrolled (so register-buffer chains are correct) but not
		// separately solved, avoiding per-frame SAT overhead for a
		// property nobody expects to break near frame 0.
		if f+1 < framesStart {
			continue
		}

		d.diag.frameStart(f, m.abs.Size())
		m.solver.Bookmark()
		m.frameMap.Bookmark()
		absBefore := m.abs.Size()

		res, cex, err := d.runFrame(ctx, f, absBefore)
		if err != nil {
			return nil, err
		}
		switch res {
		case frameRealCex:
			realCex = cex
			outcome = OutcomeFoundRealCex
			break frameLoop
		case frameResourceExhausted:
			m.solver.Rollback()
			m.abs.RollbackTo(absBefore)
			m.frameMap.ShrinkAfterRollback()
			if ctx.Err() != nil {
				outcome = OutcomeSolverTimeout
			} else {
				outcome = OutcomeSolverConflictLimit
			}
			break frameLoop
		case frameContinue:
			// fall through to the ratio check below
		}

		threshold := float64(universe) * (1 - float64(d.params.RatioMin)/100.0)
		if float64(m.abs.Size()) >= threshold {
			outcome = OutcomeRatioExceeded
			break frameLoop
		}
	}

	d.diag.outcome(outcome)
	return &Result{
		Outcome:     outcome,
		GateClasses: d.gateClasses(universe),
		RealCex:     realCex,
		FramesDone:  framesDone,
	}, nil
}

// runFrame is the per-frame {solve -> refine -> reload} loop body
// (spec.md §4.L's inner `loop:`). It returns frameContinue once the
// frame settles UNSAT (after an optional proof-based rollback and
// shrink), frameRealCex with the counterexample, or
// frameResourceExhausted.
func (d *Driver) runFrame(ctx context.Context, f, absBefore int) (frameResult, *Cex, error) {
	m := d.m
	frameIter := 0

	for {
		assump := d.poAssumption(f)
		status := m.solver.Solve(ctx, []Lit{assump}, d.params.ConflictLimit)

		switch status {
		case StatusUndef:
			return frameResourceExhausted, nil, nil

		case StatusSat:
			frameIter++
			d.diag.sat(f, frameIter)
			piMap, nPIs := d.currentPIMap()
			cex := d.deriveCex(f, piMap)
			ppis, err := m.refine.Refine(m.objs, m.poID, cex, piMap, nPIs, d.params.PropFanout, d.params.PropFanout)
			if err != nil {
				return 0, nil, fmt.Errorf("gla: %w: %w", ErrAbstractionRollbackInvalid, err)
			}
			if len(ppis) == 0 {
				d.diag.refine(0)
				return frameRealCex, d.realCexFromAbstract(cex, nPIs), nil
			}
			if !m.refine.VerifyRefinement(m.objs, m.poID, cex, piMap, nPIs, ppis) {
				// spec.md §9: a selected PPI set that ternary simulation
				// cannot re-justify to PO=1 is a bug in the refinement
				// engine itself, not a recoverable outcome.
				return 0, nil, fmt.Errorf("gla: refine selection does not re-justify PO: %w", ErrAbstractionRollbackInvalid)
			}
			d.diag.refine(len(ppis))
			m.abs.AddAll(ppis)
			for _, id := range ppis {
				if err := m.LoadObjectRange(id, f); err != nil {
					return 0, nil, fmt.Errorf("gla: load ppi %d: %w", id, err)
				}
			}
			continue

		case StatusUnsat:
			d.diag.unsat(f, frameIter)
			if frameIter == 0 {
				return frameContinue, nil, nil
			}
			return d.rollbackAndReload(ctx, f, absBefore)
		}
	}
}

// rollbackAndReload implements spec.md §4.L's UNSAT-after-refinement
// branch: extract the proof core, roll everything back to the state
// at the frame's bookmark, reload only the core, and re-solve — which
// must itself be UNSAT under correct bookkeeping (spec.md §8 property 4).
func (d *Driver) rollbackAndReload(ctx context.Context, f, absBefore int) (frameResult, *Cex, error) {
	m := d.m
	core := UnsatCore(m.solver)

	m.solver.Rollback()
	m.abs.RollbackTo(absBefore)
	m.frameMap.ShrinkAfterRollback()
	for _, id := range core {
		if m.abs.Contains(id) {
			continue // already loaded in frames 0..f before the bookmark
		}
		m.abs.Add(id)
		if err := m.LoadObjectRange(id, f); err != nil {
			return 0, nil, fmt.Errorf("gla: load core object %d: %w", id, err)
		}
	}

	assump := d.poAssumption(f)
	status := m.solver.Solve(ctx, []Lit{assump}, d.params.ConflictLimit)
	switch status {
	case StatusUnsat:
		return frameContinue, nil, nil
	case StatusUndef:
		return frameResourceExhausted, nil, nil
	default:
		// spec.md §7: in the initial-frames regime this is a real CEX;
		// otherwise a fatal invariant violation. Frame 0 is this
		// module's "initial-frames regime".
		if f == 0 {
			piMap, nPIs := d.currentPIMap()
			cex := d.deriveCex(f, piMap)
			return frameRealCex, d.realCexFromAbstract(cex, nPIs), nil
		}
		return 0, nil, ErrAbstractionRollbackInvalid
	}
}

// poAssumption builds the assumption literal asserting the property
// output reads 1 at frame f (a witness to the safety violation), per
// spec.md §4.L's PO_lit(f).
func (d *Driver) poAssumption(f int) Lit {
	m := d.m
	faninID := m.POFaninGLAID()
	comp := m.Object(m.poID).FaninComp0
	v := m.frameMap.GetVar(faninID, f)
	return NewLit(v, !comp)
}

// currentPIMap builds the Rnm piMap (spec.md §4.K): true primary
// inputs first, in ascending AIG-id order, then the current PPI
// frontier (spec.md §4.H's CollectPPIs) in its returned order.
func (d *Driver) currentPIMap() ([]ObjID, int) {
	ppis := CollectPPIs(d.m.objs, d.m.abs)
	piMap := make([]ObjID, 0, len(d.piIDs)+len(ppis))
	piMap = append(piMap, d.piIDs...)
	piMap = append(piMap, ppis...)
	return piMap, len(d.piIDs)
}

// deriveCex reads the solver's current model over piMap for every
// loaded frame 0..f, in the spec.md §3 CEX bit layout (register bits
// are always 0 in this setting, so RegCount is always 0 here).
func (d *Driver) deriveCex(f int, piMap []ObjID) *Cex {
	m := d.m
	data := make([]bool, (f+1)*len(piMap))
	for fr := 0; fr <= f; fr++ {
		for i, id := range piMap {
			if !m.frameMap.CheckVar(id, fr) {
				continue // never referenced at this frame; value is don't-care
			}
			v := m.frameMap.GetVar(id, fr)
			data[fr*len(piMap)+i] = m.solver.VarValue(v)
		}
	}
	return &Cex{PiCount: len(piMap), FrameCount: f + 1, Data: data}
}

// realCexFromAbstract drops every PPI column from an abstract CEX,
// leaving only the true-primary-input assignment — spec.md §7's
// RefinementEmpty recovery: "re-derives a CEX from SAT values over
// the PI subset".
func (d *Driver) realCexFromAbstract(cex *Cex, nPIs int) *Cex {
	out := &Cex{PiCount: nPIs, FrameCount: cex.FrameCount, Data: make([]bool, cex.FrameCount*nPIs)}
	for f := 0; f < cex.FrameCount; f++ {
		for i := 0; i < nPIs; i++ {
			out.Data[f*nPIs+i] = cex.piBit(f, i)
		}
	}
	return out
}

// gateClasses builds spec.md §6.4's output bitmap: every object in the
// final abstraction, plus every PO (POs are never themselves added to
// AbsSet — they are reached only through fanin resolution, per
// spec.md §4.G).
func (d *Driver) gateClasses(universe int) []bool {
	gc := make([]bool, universe)
	for _, id := range d.m.abs.List() {
		gc[id] = true
	}
	for id, obj := range d.m.objs {
		if obj.Kind == KindPO {
			gc[id] = true
		}
	}
	return gc
}
