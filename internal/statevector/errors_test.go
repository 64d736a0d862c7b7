package statevector

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDimensionErrorMessage(t *testing.T) {
	err := &DimensionError{Op: "ApplyMatrix", Want: 4, Got: 2}
	require.Contains(t, err.Error(), "ApplyMatrix")
	require.Contains(t, err.Error(), "4")
	require.Contains(t, err.Error(), "2")
}

func TestQubitRangeErrorMessage(t *testing.T) {
	err := &QubitRangeError{Qubit: 5, NumQubits: 3}
	require.Contains(t, err.Error(), "5")
	require.Contains(t, err.Error(), "3")
}

func TestErrUnsupportedFusionMessage(t *testing.T) {
	err := &ErrUnsupportedFusion{NumQubits: 3}
	require.Contains(t, err.Error(), "3")
}
