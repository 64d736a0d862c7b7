package circuit

import (
	"fmt"
	"math"

	"github.com/hlalwani/qstatevec/internal/statevector"
)

// Compiler lowers a circuit's gate sequence onto a dense statevector
// register, one gate at a time, in step order.
type Compiler struct {
	qv *statevector.QubitVector
}

// NewCompiler allocates a register initialized to |0...0> and ready to
// receive gates.
func NewCompiler(numQubits int, opts ...statevector.Option) (*Compiler, error) {
	qv, err := statevector.New(numQubits, opts...)
	if err != nil {
		return nil, err
	}
	qv.Initialize()
	return &Compiler{qv: qv}, nil
}

// State exposes the underlying register for measurement, sampling, and
// checkpoint operations.
func (c *Compiler) State() *statevector.QubitVector {
	return c.qv
}

// Run replays every gate in the circuit up to and including upToStep (or
// every gate, if upToStep is negative) against a fresh register and returns
// it. Gates are applied in step order regardless of the slice's storage
// order, mirroring how the circuit editor allows gates to be placed on
// earlier steps after later ones already exist.
func Run(c *Circuit, upToStep int, opts ...statevector.Option) (*statevector.QubitVector, error) {
	n := c.NumQubits
	if n == 0 {
		n = 1
	}
	comp, err := NewCompiler(n, opts...)
	if err != nil {
		return nil, err
	}

	gates := make([]Gate, len(c.Gates))
	copy(gates, c.Gates)
	sortGatesByStep(gates)

	for _, gate := range gates {
		if upToStep >= 0 && gate.Step > upToStep {
			continue
		}
		if err := comp.ApplyGate(gate); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", gate.Step, gate.Type, err)
		}
	}
	return comp.State(), nil
}

func sortGatesByStep(gates []Gate) {
	for i := range gates {
		for j := i + 1; j < len(gates); j++ {
			if gates[j].Step < gates[i].Step {
				gates[i], gates[j] = gates[j], gates[i]
			}
		}
	}
}

// ApplyGate lowers a single gate onto the register. Barriers and bare
// measurement markers carry no statevector effect here and are silently
// skipped — callers that need measurement outcomes use State().SampleMeasure
// and friends directly against the resulting register.
func (c *Compiler) ApplyGate(gate Gate) error {
	switch {
	case gate.Type == "BARRIER", gate.Type == "MEASURE":
		return nil
	case gate.IsReset:
		return c.applyReset(gate.Target)
	}

	if gate.IsDagger {
		return c.applyDagger(gate)
	}

	switch gate.Type {
	case "CX":
		return c.qv.ApplyMCX(c.controlledQubits(gate))
	case "CY":
		return c.qv.ApplyMCY(c.controlledQubits(gate))
	case "CZ":
		return c.qv.ApplyMCZ(c.controlledQubits(gate))
	case "CH":
		return c.qv.ApplyMCU(c.controlledQubits(gate), mustMatrix("H", nil))
	case "SWAP":
		if gate.Control < 0 {
			return fmt.Errorf("SWAP requires a control qubit, got %d", gate.Control)
		}
		return c.qv.ApplyMCSWAP([]int{gate.Control, gate.Target})
	case "CCX":
		return c.qv.ApplyMCX(c.multiControlledQubits(gate))
	}

	if base, ok := rotationGate(gate.Type); ok {
		mat := mustMatrix(base, gate.Params)
		if gate.Control >= 0 || len(gate.Controls) > 0 {
			return c.qv.ApplyMCU(c.controlledQubits(gate), mat)
		}
		return c.qv.ApplyMatrix([]int{gate.Target}, mat)
	}

	mat, ok := gateMatrix(gate.Type, gate.Params)
	if !ok {
		return fmt.Errorf("unsupported gate type %q", gate.Type)
	}
	if gate.Control >= 0 {
		return c.qv.ApplyMCU([]int{gate.Control, gate.Target}, mat)
	}
	return c.qv.ApplyMatrix([]int{gate.Target}, mat)
}

// applyDagger applies the conjugate-transpose of the named base gate by
// negating its rotation angle or parameter before matrix construction —
// every gate this editor allows daggering (S, T, and the rotation family)
// is one whose adjoint is itself a named or angle-negated gate in the same
// family.
func (c *Compiler) applyDagger(gate Gate) error {
	switch gate.Type {
	case "S":
		return c.qv.ApplyMatrix([]int{gate.Target}, mustMatrix("SDG", nil))
	case "T":
		return c.qv.ApplyMatrix([]int{gate.Target}, mustMatrix("TDG", nil))
	case "RX", "RY", "RZ":
		negated := append([]float64(nil), gate.Params...)
		if len(negated) == 0 {
			negated = []float64{0}
		}
		negated[0] = -negated[0]
		return c.qv.ApplyMatrix([]int{gate.Target}, mustMatrix(gate.Type, negated))
	default:
		return fmt.Errorf("dagger of gate type %q is not supported", gate.Type)
	}
}

// controlledQubits returns the qubit list for an ApplyMCU/ApplyMCX/ApplyMCZ
// call built from a gate's single Control field, target last.
func (c *Compiler) controlledQubits(gate Gate) []int {
	if gate.Control >= 0 {
		return []int{gate.Control, gate.Target}
	}
	return []int{gate.Target}
}

// multiControlledQubits returns the qubit list for a Toffoli-style gate
// whose controls may arrive either via Control or Controls (or both).
func (c *Compiler) multiControlledQubits(gate Gate) []int {
	qubits := append([]int(nil), gate.Controls...)
	if gate.Control >= 0 {
		qubits = append(qubits, gate.Control)
	}
	return append(qubits, gate.Target)
}

// applyReset projects the target qubit onto |0>, renormalizing the
// remaining amplitude mass, the way a mid-circuit reset operation behaves
// on real hardware once the discarded branch's probability is known.
func (c *Compiler) applyReset(target int) error {
	p0, _ := c.qv.Probability(target)
	norm := math.Sqrt(p0)
	if norm == 0 {
		norm = 1
	}
	bit := 1 << uint(target)
	for i := 0; i < c.qv.Size(); i++ {
		if i&bit == 0 {
			c.qv.Set(i, c.qv.At(i)/complex(norm, 0))
		} else {
			c.qv.Set(i, 0)
		}
	}
	return nil
}

func mustMatrix(gateType string, params []float64) []complex128 {
	mat, ok := gateMatrix(gateType, params)
	if !ok {
		panic("circuit: no fixed matrix for gate type " + gateType)
	}
	return mat
}

// QSphereState describes one populated basis state for QSphere-style
// visualization: its computational-basis index, amplitude, probability
// mass, phase, and Hamming weight.
type QSphereState struct {
	BasisState int
	Amplitude  complex128
	Prob       float64
	Phase      float64
	Hamming    int
}

// QSphereStates returns every basis state carrying non-negligible
// probability mass, for rendering on a QSphere-style plot.
func QSphereStates(qv *statevector.QubitVector) []QSphereState {
	amps := qv.Amplitudes()
	states := make([]QSphereState, 0, len(amps))
	for i, amp := range amps {
		prob := real(amp)*real(amp) + imag(amp)*imag(amp)
		if prob <= 1e-10 {
			continue
		}
		states = append(states, QSphereState{
			BasisState: i,
			Amplitude:  amp,
			Prob:       prob,
			Phase:      cmplxPhase(amp),
			Hamming:    bitsCount(i),
		})
	}
	return states
}

func cmplxPhase(z complex128) float64 {
	return math.Atan2(imag(z), real(z))
}

func bitsCount(x int) int {
	count := 0
	for x > 0 {
		count += x & 1
		x >>= 1
	}
	return count
}
