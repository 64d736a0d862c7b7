package statevector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

const invSqrt2 = 1 / math.Sqrt2

func hadamardMatrix() []complex128 {
	h := complex(invSqrt2, 0)
	return []complex128{h, h, h, -h}
}

func newState(t *testing.T, n int, opts ...Option) *QubitVector {
	t.Helper()
	qv, err := New(n, opts...)
	require.NoError(t, err)
	qv.Initialize()
	return qv
}

func TestApplyMatrixHadamardOnSingleQubit(t *testing.T) {
	qv := newState(t, 1)
	require.NoError(t, qv.ApplyMatrix([]int{0}, hadamardMatrix()))
	require.InDelta(t, invSqrt2, real(qv.At(0)), 1e-12)
	require.InDelta(t, invSqrt2, real(qv.At(1)), 1e-12)
}

func TestApplyMatrixTakesDiagonalFastPath(t *testing.T) {
	qv := newState(t, 1)
	qv.Set(0, complex(invSqrt2, 0))
	qv.Set(1, complex(invSqrt2, 0))
	z := []complex128{1, 0, 0, -1}
	require.NoError(t, qv.ApplyMatrix([]int{0}, z))
	require.InDelta(t, invSqrt2, real(qv.At(0)), 1e-12)
	require.InDelta(t, -invSqrt2, real(qv.At(1)), 1e-12)
}

func TestApplyDiagonalRejectsWrongSize(t *testing.T) {
	qv := newState(t, 2)
	err := qv.ApplyDiagonal([]int{0, 1}, []complex128{1, 1})
	require.Error(t, err)
	var dimErr *DimensionError
	require.ErrorAs(t, err, &dimErr)
}

func TestApplyPermutationActsLikeX(t *testing.T) {
	qv := newState(t, 1)
	require.NoError(t, qv.ApplyPermutation([]int{0}, [][2]int{{0, 1}}))
	require.Equal(t, complex(0, 0), qv.At(0))
	require.Equal(t, complex(1, 0), qv.At(1))
}

func TestApplyMCXActsAsCNOT(t *testing.T) {
	// |10> with qubit 0 as control, qubit 1 as target: control set -> flip target.
	qv := newState(t, 2)
	qv.Set(0, 0)
	qv.Set(1, 1) // basis |01> = qubit0=1, qubit1=0
	require.NoError(t, qv.ApplyMCX([]int{0, 1}))
	require.Equal(t, complex(1, 0), qv.At(3)) // |11>
	require.Equal(t, complex(0, 0), qv.At(1))
}

func TestApplyMCXIgnoresBranchesWhereControlIsZero(t *testing.T) {
	qv := newState(t, 2) // |00>, control qubit0 is 0
	require.NoError(t, qv.ApplyMCX([]int{0, 1}))
	require.Equal(t, complex(1, 0), qv.At(0))
}

func TestApplyMCYActsAsControlledY(t *testing.T) {
	// Control qubit0 set, target qubit1 in |0>: CY|10> = i|11>.
	qv := newState(t, 2)
	qv.Set(0, 0)
	qv.Set(1, 1) // basis |01> = qubit0=1, qubit1=0
	require.NoError(t, qv.ApplyMCY([]int{0, 1}))
	require.Equal(t, complex(0, 0), qv.At(1))
	require.Equal(t, complex(0, 1), qv.At(3)) // |11> with amplitude i
}

func TestApplyMCYIgnoresBranchesWhereControlIsZero(t *testing.T) {
	qv := newState(t, 2) // |00>, control qubit0 is 0
	require.NoError(t, qv.ApplyMCY([]int{0, 1}))
	require.Equal(t, complex(1, 0), qv.At(0))
}

func TestApplyMCUDiagonalFastPathMatchesApplyDiagonal(t *testing.T) {
	qv1 := newState(t, 2)
	qv1.Set(0, 0)
	qv1.Set(3, 1) // |11>, control satisfied
	z := []complex128{1, 0, 0, -1}
	require.NoError(t, qv1.ApplyMCU([]int{0, 1}, z))
	require.Equal(t, complex(-1, 0), qv1.At(3))

	qv2 := newState(t, 2)
	qv2.Set(0, 0)
	qv2.Set(3, 1)
	require.NoError(t, qv2.ApplyDiagonal([]int{0, 1}, []complex128{1, 1, 1, -1}))
	for i := 0; i < 4; i++ {
		require.Equal(t, qv2.At(i), qv1.At(i))
	}
}

func TestApplyMCUNonDiagonalIsBlockRelative(t *testing.T) {
	// Two independent control blocks (qubit 2 = 0 vs qubit 2 = 1) must each
	// see the unitary applied relative to their own block, not to the
	// absolute indices of the first block only.
	qv := newState(t, 3)
	qv.data.Zero()
	qv.Set(3, 1) // block where qubit2=0: |011> control satisfied, target=1
	qv.Set(7, 1) // block where qubit2=1: |111> control satisfied, target=1
	h := hadamardMatrix()
	require.NoError(t, qv.ApplyMCU([]int{0, 1}, h))
	require.InDelta(t, invSqrt2, real(qv.At(1)), 1e-12)
	require.InDelta(t, -invSqrt2, real(qv.At(3)), 1e-12)
	require.InDelta(t, invSqrt2, real(qv.At(5)), 1e-12)
	require.InDelta(t, -invSqrt2, real(qv.At(7)), 1e-12)
}

func TestInitializeComponentTensorsOntoZeroBranch(t *testing.T) {
	qv := newState(t, 2)
	state := []complex128{complex(invSqrt2, 0), complex(invSqrt2, 0)}
	require.NoError(t, qv.InitializeComponent([]int{0}, state))
	require.InDelta(t, invSqrt2, real(qv.At(0)), 1e-12)
	require.InDelta(t, invSqrt2, real(qv.At(1)), 1e-12)
}
