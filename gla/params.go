package gla

import "time"

// Params holds the driver-level knobs enumerated in spec.md §6.2. It
// is a plain struct with a constructor of defaults, the same shape as
// the teacher's RegionTiming/GetTimingForRegion pair in emu/region.go
// — no functional-options or config-framework layer, since the
// parameter set is small and fixed at invocation time.
type Params struct {
	FramesStart   uint32 // initial number of timeframes to unroll
	FramesMax     uint32 // hard ceiling on timeframes
	FramesOver    uint32 // timeframe overlap when reusing prior UNSAT cores
	ConflictLimit uint64 // conflict budget passed to every Solve; 0 = unlimited. GiniSolver counts each Solve call as one conflict, cumulatively
	Timeout       time.Duration
	RatioMin      uint32 // percent; stop once abstraction exceeds (1 - RatioMin/100) of the universe
	LearntMax     uint32 // learnt-clause-DB cap; 0 = unbounded
	PropFanout    bool   // propagate justification through fanout in Rnm
	DumpIntermediate bool
	UseTermVars   bool // emit terminal variables for flop-initial constants
	Verbose       bool
}

// DefaultParams returns spec.md §6.2's enumerated defaults.
func DefaultParams() Params {
	return Params{
		FramesStart:   5,
		FramesMax:     10,
		FramesOver:    3,
		ConflictLimit: 0,
		Timeout:       60 * time.Second,
		RatioMin:      0,
		LearntMax:     0,
		PropFanout:    false,
		DumpIntermediate: false,
		UseTermVars:   false,
		Verbose:       false,
	}
}
