package netlist

import (
	"bytes"
	"strings"
	"testing"

	"github.com/circuitkit/mna/internal/asserttol"
)

func TestLoadSimpleDivider(t *testing.T) {
	src := strings.NewReader(`
# a 2-ohm resistor to ground, driven through a 1-ohm series resistor
vs V 1 0 5
rs R 1 2 1
rl R 2 0 2
`)
	c, names, err := Load(src)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ev, err := c.Evaluator()
	if err != nil {
		t.Fatalf("Evaluator: %v", err)
	}

	rl, ok := names["rl"]
	if !ok {
		t.Fatal("missing bipole \"rl\"")
	}
	id, ok := rl.Pos().ID()
	if !ok {
		t.Fatal("rl.Pos() unexpectedly ground")
	}
	v, err := ev.GetPotential(id)
	if err != nil {
		t.Fatalf("GetPotential: %v", err)
	}
	// Divider: 5V across 1+2 ohm in series, node2 sees 5 * 2/3.
	asserttol.Float(t, "V(node2)", v, 10.0/3.0, 1e-9)
}

func TestLoadRejectsBadFieldCount(t *testing.T) {
	src := strings.NewReader("bad line here\n")
	_, _, err := Load(src)
	var pe *ParseError
	if err == nil {
		t.Fatal("expected a ParseError")
	}
	if pe2, ok := err.(*ParseError); ok {
		pe = pe2
	} else {
		t.Fatalf("got %T, want *ParseError", err)
	}
	if pe.Line != 1 {
		t.Fatalf("Line = %d, want 1", pe.Line)
	}
}

func TestLoadRejectsUnknownKind(t *testing.T) {
	src := strings.NewReader("x Q 1 0 1\n")
	_, _, err := Load(src)
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("got %T, want *ParseError", err)
	}
	if pe.Line != 1 {
		t.Fatalf("Line = %d, want 1", pe.Line)
	}
}

func TestLoadRejectsBadValue(t *testing.T) {
	src := strings.NewReader("x R 1 0 notanumber\n")
	_, _, err := Load(src)
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("got %T, want *ParseError", err)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	src := strings.NewReader("vs V 1 0 5\nrl R 1 0 2\n")
	c, names, err := Load(src)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, c, names); err != nil {
		t.Fatalf("Write: %v", err)
	}

	c2, names2, err := Load(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("reloading written netlist: %v\n%s", err, buf.String())
	}
	if len(names2) != len(names) {
		t.Fatalf("got %d bipoles after round-trip, want %d", len(names2), len(names))
	}

	ev1, _ := c.Evaluator()
	ev2, _ := c2.Evaluator()
	id1, _ := names["rl"].Pos().ID()
	id2, _ := names2["rl"].Pos().ID()
	v1, _ := ev1.GetPotential(id1)
	v2, _ := ev2.GetPotential(id2)
	asserttol.Float(t, "round-tripped V", v2, v1, 1e-9)
}
