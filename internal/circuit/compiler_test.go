package circuit

import (
	"math"
	"testing"
)

func TestRunHadamardProducesEqualSuperposition(t *testing.T) {
	c := Circuit{NumQubits: 1}
	c.AddGate("H", 0, 0)

	qv, err := Run(&c, -1)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	p0, p1 := qv.Probability(0)
	if math.Abs(p0-0.5) > 1e-9 || math.Abs(p1-0.5) > 1e-9 {
		t.Errorf("expected 50/50 superposition, got p0=%g p1=%g", p0, p1)
	}
}

func TestRunBellPairEntanglesBothQubits(t *testing.T) {
	c := Circuit{NumQubits: 2}
	c.AddGate("H", 0, 0)
	c.AddGate("CX", 1, 1, 0)

	qv, err := Run(&c, -1)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	amp00 := qv.At(0)
	amp11 := qv.At(3)
	amp01 := qv.At(1)
	amp10 := qv.At(2)

	want := complex(1/math.Sqrt2, 0)
	if math.Abs(real(amp00)-real(want)) > 1e-9 || math.Abs(real(amp11)-real(want)) > 1e-9 {
		t.Errorf("expected |00> and |11> amplitudes near %v, got %v and %v", want, amp00, amp11)
	}
	if math.Abs(real(amp01)) > 1e-9 || math.Abs(real(amp10)) > 1e-9 {
		t.Errorf("expected |01> and |10> amplitudes near 0, got %v and %v", amp01, amp10)
	}
}

func TestRunUpToStepStopsEarly(t *testing.T) {
	c := Circuit{NumQubits: 1}
	c.AddGate("X", 0, 0)
	c.AddGate("X", 0, 1)

	qv, err := Run(&c, 0)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	p0, p1 := qv.Probability(0)
	if p0 > 1e-9 || math.Abs(p1-1) > 1e-9 {
		t.Errorf("expected |1> after a single X, got p0=%g p1=%g", p0, p1)
	}
}

func TestApplyGateRejectsUnsupportedType(t *testing.T) {
	comp, err := NewCompiler(1)
	if err != nil {
		t.Fatalf("NewCompiler error: %v", err)
	}
	err = comp.ApplyGate(Gate{Type: "NOT_A_GATE", Target: 0, Control: -1})
	if err == nil {
		t.Fatal("expected error for unsupported gate type")
	}
}

func TestApplyGateSkipsBarrierAndMeasure(t *testing.T) {
	comp, err := NewCompiler(1)
	if err != nil {
		t.Fatalf("NewCompiler error: %v", err)
	}
	gates := []Gate{
		{Type: "BARRIER", Target: -1, Control: -1},
		{Type: "MEASURE", Target: 0, Control: -1},
	}
	for _, g := range gates {
		if err := comp.ApplyGate(g); err != nil {
			t.Fatalf("ApplyGate(%+v) error: %v", g, err)
		}
	}

	p0, _ := comp.State().Probability(0)
	if math.Abs(p0-1) > 1e-9 {
		t.Errorf("expected register to remain |0>, got p0=%g", p0)
	}
}

func TestApplyGateResetProjectsOntoZero(t *testing.T) {
	comp, err := NewCompiler(1)
	if err != nil {
		t.Fatalf("NewCompiler error: %v", err)
	}
	if err := comp.ApplyGate(Gate{Type: "H", Target: 0, Control: -1}); err != nil {
		t.Fatalf("H error: %v", err)
	}
	if err := comp.ApplyGate(Gate{Type: "X", Target: 0, Control: -1, IsReset: true}); err != nil {
		t.Fatalf("reset error: %v", err)
	}

	p0, p1 := comp.State().Probability(0)
	if math.Abs(p0-1) > 1e-9 || p1 > 1e-9 {
		t.Errorf("expected reset to project onto |0>, got p0=%g p1=%g", p0, p1)
	}
}

func TestApplyGateDaggerNegatesRotationAngle(t *testing.T) {
	comp, err := NewCompiler(1)
	if err != nil {
		t.Fatalf("NewCompiler error: %v", err)
	}
	theta := math.Pi / 3
	if err := comp.ApplyGate(Gate{Type: "RX", Target: 0, Control: -1, Params: []float64{theta}}); err != nil {
		t.Fatalf("RX error: %v", err)
	}
	if err := comp.ApplyGate(Gate{Type: "RX", Target: 0, Control: -1, Params: []float64{theta}, IsDagger: true}); err != nil {
		t.Fatalf("RX dagger error: %v", err)
	}

	p0, p1 := comp.State().Probability(0)
	if math.Abs(p0-1) > 1e-9 || p1 > 1e-9 {
		t.Errorf("expected RX followed by its dagger to return to |0>, got p0=%g p1=%g", p0, p1)
	}
}

func TestQSphereStatesReportsPopulatedBasisStates(t *testing.T) {
	comp, err := NewCompiler(2)
	if err != nil {
		t.Fatalf("NewCompiler error: %v", err)
	}
	if err := comp.ApplyGate(Gate{Type: "H", Target: 0, Control: -1}); err != nil {
		t.Fatalf("H error: %v", err)
	}
	if err := comp.ApplyGate(Gate{Type: "CX", Target: 1, Control: 0}); err != nil {
		t.Fatalf("CX error: %v", err)
	}

	states := QSphereStates(comp.State())
	if len(states) != 2 {
		t.Fatalf("expected 2 populated basis states for a Bell pair, got %d", len(states))
	}
	for _, s := range states {
		if s.BasisState != 0 && s.BasisState != 3 {
			t.Errorf("unexpected populated basis state %d for a Bell pair", s.BasisState)
		}
		if math.Abs(s.Prob-0.5) > 1e-9 {
			t.Errorf("basis state %d: expected probability 0.5, got %g", s.BasisState, s.Prob)
		}
	}
}
