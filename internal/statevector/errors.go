package statevector

import "fmt"

// DimensionError reports a size mismatch between an operation's expected
// buffer length and what was actually supplied.
type DimensionError struct {
	Op   string
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("statevector: %s: expected dimension %d, got %d", e.Op, e.Want, e.Got)
}

// QubitRangeError reports a qubit index outside [0, NumQubits).
type QubitRangeError struct {
	Qubit     int
	NumQubits int
}

func (e *QubitRangeError) Error() string {
	return fmt.Sprintf("statevector: qubit %d out of range for %d-qubit register", e.Qubit, e.NumQubits)
}

// ErrUnsupportedFusion is returned when a fused gate spans more qubits than
// the dense-matrix fusion path can expand.
type ErrUnsupportedFusion struct {
	NumQubits int
}

func (e *ErrUnsupportedFusion) Error() string {
	return fmt.Sprintf("statevector: fusion of %d-qubit matrices is not supported, maximum is 2", e.NumQubits)
}

var (
	// ErrNoCheckpoint is returned by Revert when Checkpoint was never called,
	// or was already consumed by a prior Revert.
	ErrNoCheckpoint = fmt.Errorf("statevector: no checkpoint set")

	// ErrFusionArgMismatch is returned by ApplyMatrixSequence when the number
	// of qubit registers does not match the number of matrices supplied.
	ErrFusionArgMismatch = fmt.Errorf("statevector: apply matrix sequence requires equal number of qubit registers and matrices")

	// errInternalSortMatrix signals that sortMatrix's current and target
	// qubit orderings do not describe the same set of qubits, which would
	// leave its swap search with no valid target and should never happen
	// for orderings built from the same register internally.
	errInternalSortMatrix = fmt.Errorf("statevector: sortMatrix given incompatible qubit orderings")
)
