// Package report prints a solved circuit's node potentials and source
// currents in a simple "V(name) = ..." / "I(name) = ..." textual form,
// grounded on the corpus's habit of pairing a solver with a small plain-text
// result dump rather than a structured output format.
package report

import (
	"fmt"
	"io"

	"github.com/circuitkit/mna/circuit"
)

// Solve flushes any pending circuit work, solves the MNA system, and writes,
// for each bipole named in names, a "V(name) = <potential>" line for its
// positive terminal when that pin is not ground and, if it is a voltage
// source, an "I(name) = <current>" line for its branch current.
// Bipoles not present in names are skipped; names is typically the map
// returned by netlist.Load.
func Solve(w io.Writer, c *circuit.Circuit[float64], names map[string]*circuit.Bipole[float64]) error {
	ev, err := c.Evaluator()
	if err != nil {
		return err
	}

	for name, bp := range names {
		if id, ok := bp.Pos().ID(); ok {
			v, err := ev.GetPotential(id)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "V(%s) = %v\n", name, v); err != nil {
				return err
			}
		}
		if id, ok := bp.VSID(); ok {
			i, err := ev.GetCurrent(id)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "I(%s) = %v\n", name, i); err != nil {
				return err
			}
		}
	}
	return nil
}
