package gla

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// diag prints per-frame status lines when Params.Verbose is set,
// color-coded the way steveyegge-vc's internal/repl/status.go
// color-codes its own status line (cyan label, green/yellow/red by
// outcome). It is pure output plumbing: nothing in the driver depends
// on diag ever being called.
type diag struct {
	id      string
	enabled bool
	cyan    func(a ...interface{}) string
	green   func(a ...interface{}) string
	yellow  func(a ...interface{}) string
	red     func(a ...interface{}) string
}

func newDiag(id string, enabled bool) *diag {
	return &diag{
		id:      id,
		enabled: enabled,
		cyan:    color.New(color.FgCyan, color.Bold).SprintFunc(),
		green:   color.New(color.FgGreen).SprintFunc(),
		yellow:  color.New(color.FgYellow).SprintFunc(),
		red:     color.New(color.FgRed).SprintFunc(),
	}
}

func (d *diag) frameStart(frame int, absSize int) {
	if !d.enabled {
		return
	}
	fmt.Fprintf(os.Stderr, "[%s] %s frame=%d |A|=%d\n", d.id, d.cyan("gla"), frame, absSize)
}

func (d *diag) sat(frame, iter int) {
	if !d.enabled {
		return
	}
	fmt.Fprintf(os.Stderr, "[%s]   %s frame=%d iter=%d\n", d.id, d.green("SAT"), frame, iter)
}

func (d *diag) unsat(frame, iter int) {
	if !d.enabled {
		return
	}
	fmt.Fprintf(os.Stderr, "[%s]   %s frame=%d iter=%d\n", d.id, d.yellow("UNSAT"), frame, iter)
}

func (d *diag) refine(n int) {
	if !d.enabled {
		return
	}
	fmt.Fprintf(os.Stderr, "[%s]   refine: %d PPI(s) promoted\n", d.id, n)
}

func (d *diag) outcome(o Outcome) {
	if !d.enabled {
		return
	}
	label := d.green(o.String())
	if o == OutcomeSolverTimeout || o == OutcomeSolverConflictLimit || o == OutcomeRatioExceeded {
		label = d.red(o.String())
	} else if o == OutcomeFoundRealCex {
		label = d.yellow(o.String())
	}
	fmt.Fprintf(os.Stderr, "[%s] done: %s\n", d.id, label)
}
