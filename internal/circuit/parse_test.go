package circuit

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestParseIgnoresConditionalLines(t *testing.T) {
	// Conditional ("if (...)") lines have no statevector meaning and are not
	// part of the QASM subset this editor round-trips; the parser skips them
	// rather than misinterpreting them as plain gates.
	qasm := `OPENQASM 2.0;
include "qelib1.inc";

qreg q[3];
creg c0[1];
creg c1[1];

h q[1];
cx q[1], q[2];
cx q[0], q[1];
h q[0];
measure q[0] -> c0[0];
measure q[1] -> c1[0];

if(c1==1) x q[2];
if(c0==1) z q[2];`

	c := Circuit{NumQubits: 3}
	err := c.ParseQASM(qasm)
	if err != nil {
		t.Fatalf("ParseQASM error: %v", err)
	}

	fmt.Printf("Parsed %d gates:\n", len(c.Gates))
	for _, g := range c.Gates {
		fmt.Printf("  Step %d: Type=%s Target=%d Control=%d\n", g.Step, g.Type, g.Target, g.Control)
	}

	// Expected gates in order: H, CX, CX, H, MEASURE, MEASURE. The trailing
	// if(...) lines contribute nothing.
	if len(c.Gates) != 6 {
		t.Fatalf("expected 6 gates, got %d", len(c.Gates))
	}
	for _, g := range c.Gates {
		if g.Type == "X" || g.Type == "Z" {
			t.Errorf("conditional line leaked a %s gate into the circuit", g.Type)
		}
	}
}

func TestParseOldCregFormat(t *testing.T) {
	// Make sure the old c[N] format still works for plain measurement.
	qasm := `OPENQASM 2.0;
include "qelib1.inc";

qreg q[3];
creg c[3];

h q[0];
measure q[0] -> c[0];`

	c := Circuit{NumQubits: 3}
	err := c.ParseQASM(qasm)
	if err != nil {
		t.Fatalf("ParseQASM error: %v", err)
	}

	fmt.Printf("Old format: Parsed %d gates:\n", len(c.Gates))
	for _, g := range c.Gates {
		fmt.Printf("  Step %d: Type=%s Target=%d Control=%d\n", g.Step, g.Type, g.Target, g.Control)
	}

	if len(c.Gates) != 2 {
		t.Fatalf("expected 2 gates (H + MEASURE), got %d", len(c.Gates))
	}

	g1 := c.Gates[1]
	if g1.Type != "MEASURE" || g1.Target != 0 {
		t.Errorf("gate 1: expected MEASURE on q[0], got Type=%s Target=%d", g1.Type, g1.Target)
	}
}

func TestRoundTripQASM(t *testing.T) {
	// Build a circuit, export to QASM, re-parse, and check the gates survive.
	c := Circuit{NumQubits: 3}
	c.AddGate("H", 0, 0)
	c.AddGate("X", 2, 1)
	c.AddGate("MEASURE", 0, 2)

	qasm := c.ToQASM()
	fmt.Printf("Round-trip QASM output:\n%s\n", qasm)

	c2 := Circuit{}
	c2.ParseQASM(qasm)

	if len(c2.Gates) != 3 {
		t.Fatalf("round-trip: expected 3 gates, got %d", len(c2.Gates))
	}

	g := c2.Gates[2]
	if g.Type != "MEASURE" || g.Target != 0 {
		t.Errorf("round-trip gate 2: expected MEASURE q[0], got Type=%s Target=%d", g.Type, g.Target)
	}
}

func TestParseParamExpr(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		// Plain numbers
		{"1.5707", 1.5707, true},
		{"3.14", 3.14, true},
		{"-0.5", -0.5, true},
		{"0", 0, true},
		{"42", 42, true},

		// Pi constant
		{"pi", math.Pi, true},
		{"PI", math.Pi, true},
		{"Pi", math.Pi, true},

		// Pi fractions
		{"pi/2", math.Pi / 2, true},
		{"pi/4", math.Pi / 4, true},
		{"pi/3", math.Pi / 3, true},
		{"pi/8", math.Pi / 8, true},

		// Coefficients
		{"2pi", 2 * math.Pi, true},
		{"2*pi", 2 * math.Pi, true},
		{"3pi/4", 3 * math.Pi / 4, true},
		{"3*pi/4", 3 * math.Pi / 4, true},
		{"2*pi/3", 2 * math.Pi / 3, true},

		// Negative
		{"-pi", -math.Pi, true},
		{"-pi/2", -math.Pi / 2, true},
		{"-3*pi/4", -3 * math.Pi / 4, true},
		{"-2pi", -2 * math.Pi, true},

		// Whitespace
		{" pi ", math.Pi, true},
		{" pi / 2 ", math.Pi / 2, true},
		{" 3 * pi / 4 ", 3 * math.Pi / 4, true},

		// Invalid
		{"", 0, false},
		{"abc", 0, false},
		{"pi/0", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseParamExpr(tt.input)
		if ok != tt.ok {
			t.Errorf("ParseParamExpr(%q): ok=%v, want ok=%v", tt.input, ok, tt.ok)
			continue
		}
		if ok && math.Abs(got-tt.want) > 1e-10 {
			t.Errorf("ParseParamExpr(%q) = %g, want %g", tt.input, got, tt.want)
		}
	}
}

func TestFormatParam(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{math.Pi, "pi"},
		{math.Pi / 2, "pi/2"},
		{math.Pi / 4, "pi/4"},
		{math.Pi / 3, "pi/3"},
		{3 * math.Pi / 4, "3*pi/4"},
		{-math.Pi, "-pi"},
		{-math.Pi / 2, "-pi/2"},
		{2 * math.Pi, "2*pi"},
		{1.5, "1.5"},
		{0, "0"},
		{0.01, "0.01"},
	}

	for _, tt := range tests {
		got := FormatParam(tt.input)
		if got != tt.want {
			t.Errorf("FormatParam(%g) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPiParamQASMRoundTrip(t *testing.T) {
	// Build a circuit with pi-valued parameters
	c := Circuit{NumQubits: 2}
	c.AddParameterizedGate("RX", 0, 0, []float64{math.Pi / 2})
	c.AddParameterizedGate("RY", 1, 1, []float64{3 * math.Pi / 4})
	c.AddParameterizedGate("RZ", 0, 2, []float64{-math.Pi})

	qasm := c.ToQASM()
	fmt.Printf("Pi round-trip QASM:\n%s\n", qasm)

	// Verify the QASM output uses pi notation
	if !strings.Contains(qasm, "rx(pi/2)") {
		t.Errorf("expected 'rx(pi/2)' in QASM, got:\n%s", qasm)
	}
	if !strings.Contains(qasm, "ry(3*pi/4)") {
		t.Errorf("expected 'ry(3*pi/4)' in QASM, got:\n%s", qasm)
	}
	if !strings.Contains(qasm, "rz(-pi)") {
		t.Errorf("expected 'rz(-pi)' in QASM, got:\n%s", qasm)
	}

	// Parse it back and verify values
	c2 := Circuit{}
	c2.ParseQASM(qasm)

	if len(c2.Gates) != 3 {
		t.Fatalf("pi round-trip: expected 3 gates, got %d", len(c2.Gates))
	}

	tolerance := 1e-10
	if math.Abs(c2.Gates[0].Params[0]-math.Pi/2) > tolerance {
		t.Errorf("gate 0 param: got %g, want %g", c2.Gates[0].Params[0], math.Pi/2)
	}
	if math.Abs(c2.Gates[1].Params[0]-3*math.Pi/4) > tolerance {
		t.Errorf("gate 1 param: got %g, want %g", c2.Gates[1].Params[0], 3*math.Pi/4)
	}
	if math.Abs(c2.Gates[2].Params[0]+math.Pi) > tolerance {
		t.Errorf("gate 2 param: got %g, want %g", c2.Gates[2].Params[0], -math.Pi)
	}
}

func TestPiParamTwoQubitQASMRoundTrip(t *testing.T) {
	// Two-qubit parameterized gate with pi
	c := Circuit{NumQubits: 3}
	c.AddParameterizedGate("CRX", 1, 0, []float64{math.Pi / 4}, 0)

	qasm := c.ToQASM()
	fmt.Printf("CRX pi round-trip QASM:\n%s\n", qasm)

	if !strings.Contains(qasm, "crx(pi/4)") {
		t.Errorf("expected 'crx(pi/4)' in QASM, got:\n%s", qasm)
	}

	c2 := Circuit{}
	c2.ParseQASM(qasm)

	if len(c2.Gates) != 1 {
		t.Fatalf("CRX round-trip: expected 1 gate, got %d", len(c2.Gates))
	}

	g := c2.Gates[0]
	if g.Type != "CRX" || g.Control != 0 || g.Target != 1 {
		t.Errorf("CRX gate: Type=%s Control=%d Target=%d", g.Type, g.Control, g.Target)
	}
	if math.Abs(g.Params[0]-math.Pi/4) > 1e-10 {
		t.Errorf("CRX param: got %g, want %g", g.Params[0], math.Pi/4)
	}
}

func TestDAGParseParallelGates(t *testing.T) {
	qasm := `OPENQASM 2.0;
include "qelib1.inc";
qreg q[4];
creg c[1];

h q[0];
h q[1];
cx q[0], q[1];
x q[2];
`

	dag := NewCircuitDAG()
	dag.ParseQASM(qasm)

	fmt.Printf("DAG Parsed %d nodes:\n", len(dag.Nodes))
	for _, node := range dag.Nodes {
		fmt.Printf("  Step %d: %s on q[%d]", node.Step, node.Type, node.Target)
		if node.Control >= 0 {
			fmt.Printf(" (control q[%d])", node.Control)
		}
		fmt.Println()
	}

	h0Step := -1
	h1Step := -1
	for _, node := range dag.Nodes {
		if node.Type == "H" {
			if node.Target == 0 {
				h0Step = node.Step
			} else if node.Target == 1 {
				h1Step = node.Step
			}
		}
	}

	if h0Step != h1Step {
		t.Errorf("H q[0] at step %d, H q[1] at step %d - expected same step for parallel gates", h0Step, h1Step)
	}

	cxStep := -1
	for _, node := range dag.Nodes {
		if node.Type == "CX" && node.Target == 1 && node.Control == 0 {
			cxStep = node.Step
			break
		}
	}
	if cxStep <= h0Step {
		t.Errorf("CX should be after H gates, got CX at step %d, H at step %d", cxStep, h0Step)
	}
}
