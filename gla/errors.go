package gla

import "errors"

// Sentinel errors for the GLA core, in the style of romloader's
// ErrNoSMSFile/ErrUnsupportedFormat/ErrFileTooLarge: a flat set of
// package-level values that call sites wrap with fmt.Errorf("...: %w").
var (
	// ErrOutOfLiteralBounds is returned by RemapLits when an id
	// remap produces an out-of-range variable. Fatal (spec.md §4.B).
	ErrOutOfLiteralBounds = errors.New("gla: literal out of bounds after remap")

	// ErrInvalidMapping is returned by the duplicator when a LUT
	// fanin references a non-root or missing node (spec.md §4.C).
	ErrInvalidMapping = errors.New("gla: invalid LUT mapping")

	// ErrResourceExhausted marks a timeout or conflict-budget
	// exhaustion (spec.md §7). Recovered locally by the driver.
	ErrResourceExhausted = errors.New("gla: resource exhausted")

	// ErrRefinementEmpty marks that Rnm.refine returned no PPIs;
	// treated as a real counterexample (spec.md §7).
	ErrRefinementEmpty = errors.New("gla: refinement produced no PPIs")

	// ErrAbstractionRollbackInvalid marks that a post-rollback,
	// core-only reload did not resolve to UNSAT in a frame where that
	// is a fatal invariant violation (spec.md §7).
	ErrAbstractionRollbackInvalid = errors.New("gla: rollback reload is not UNSAT")

	// ErrInputValidation covers missing property PO, non-unit PO
	// count, CEX/PI count mismatch, and bad flop-init assumptions
	// (spec.md §7). Always fail-fast.
	ErrInputValidation = errors.New("gla: invalid input")
)
