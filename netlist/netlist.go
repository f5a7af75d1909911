// Package netlist reads and writes the line-oriented textual circuit
// description this module uses to drive the engine from a file: one element
// per line, "<name> <kind> <pos> <neg> <value>", kind one of R/V/I, and
// pos/neg either "0" (ground) or an arbitrary node label. Grounded on the
// corpus's whitespace-tokenized, line-oriented simulation-input idiom,
// distilled down to the scale this engine needs.
package netlist

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/circuitkit/mna/circuit"
)

// ParseError reports a malformed netlist line, naming its 1-based line
// number.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("netlist: line %d: %s", e.Line, e.Msg)
}

const groundLabel = "0"

// Load scans r for netlist lines, building one Bipole per line via
// circuit.Circuit.Add and interning node labels: the first occurrence of a
// label allocates a fresh pin, later occurrences connect to it via
// Circuit.ConnectPins. Blank lines and lines starting with '#' are skipped.
// It returns the assembled circuit and a name -> Bipole index for later
// lookups (e.g. to push an excitation onto a named source after load).
// Load stops at the first malformed line; there is no partial-circuit
// rollback, since pin/row allocations already made for prior lines are part
// of the circuit's permanent (if not yet linearized) namespace state.
func Load(r io.Reader) (*circuit.Circuit[float64], map[string]*circuit.Bipole[float64], error) {
	c := circuit.NewCircuit[float64]()
	byName := make(map[string]*circuit.Bipole[float64])
	nodes := make(map[string]*circuit.Pin)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 5 {
			return nil, nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("expected 5 fields, got %d", len(fields))}
		}
		name, kindStr, posLabel, negLabel, valueStr := fields[0], fields[1], fields[2], fields[3], fields[4]

		kind, err := parseKind(kindStr)
		if err != nil {
			return nil, nil, &ParseError{Line: lineNo, Msg: err.Error()}
		}

		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return nil, nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("bad value %q: %v", valueStr, err)}
		}

		bp := c.Add(newKind(kind, value))

		internNode(c, nodes, bp.Pos(), posLabel)
		internNode(c, nodes, bp.Neg(), negLabel)

		byName[name] = bp
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return c, byName, nil
}

func internNode(c *circuit.Circuit[float64], nodes map[string]*circuit.Pin, pin *circuit.Pin, label string) {
	if label == groundLabel {
		pin.Ground()
		return
	}
	if existing, ok := nodes[label]; ok {
		c.ConnectPins(pin, existing)
		return
	}
	nodes[label] = pin
}

func parseKind(s string) (circuit.Kind, error) {
	switch strings.ToUpper(s) {
	case "R":
		return circuit.Resistor, nil
	case "V":
		return circuit.VoltageSource, nil
	case "I":
		return circuit.CurrentSource, nil
	default:
		return 0, fmt.Errorf("unknown element kind %q", s)
	}
}

func kindLetter(k circuit.Kind) string {
	switch k {
	case circuit.Resistor:
		return "R"
	case circuit.VoltageSource:
		return "V"
	case circuit.CurrentSource:
		return "I"
	default:
		return "?"
	}
}

func newKind(k circuit.Kind, value float64) circuit.BipoleKind[float64] {
	switch k {
	case circuit.Resistor:
		return circuit.NewResistor(value)
	case circuit.VoltageSource:
		return circuit.NewVoltageSource(value)
	default:
		return circuit.NewCurrentSource(value)
	}
}

// Write renders c as a netlist, one line per bipole in insertion order,
// using names to label each line and "0" for any pin that is grounded
// (other node pins are labeled n<id> using their current, possibly
// unlinearized, id).
func Write(w io.Writer, c *circuit.Circuit[float64], names map[string]*circuit.Bipole[float64]) error {
	byBipole := make(map[*circuit.Bipole[float64]]string, len(names))
	for name, bp := range names {
		byBipole[bp] = name
	}

	for i, bp := range c.Bipoles() {
		name := byBipole[bp]
		if name == "" {
			name = fmt.Sprintf("X%d", i)
		}
		kind := bp.Kind()
		_, err := fmt.Fprintf(w, "%s %s %s %s %v\n",
			name, kindLetter(kind.Kind), pinLabel(bp.Pos()), pinLabel(bp.Neg()), kind.Value)
		if err != nil {
			return err
		}
	}
	return nil
}

func pinLabel(p *circuit.Pin) string {
	if p.IsGround() {
		return groundLabel
	}
	id, _ := p.ID()
	return fmt.Sprintf("n%d", id)
}
