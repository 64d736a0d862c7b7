package statevector

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func pauliX() []complex128 {
	return []complex128{0, 1, 1, 0}
}

func pauliZ() []complex128 {
	return []complex128{1, 0, 0, -1}
}

func TestApplyMatrixSequenceMatchesSequentialApplication(t *testing.T) {
	fused := newState(t, 2)
	require.NoError(t, fused.ApplyMatrixSequence(
		[][]int{{0}, {1}},
		[][]complex128{pauliX(), hadamardMatrix()},
	))

	sequential := newState(t, 2)
	require.NoError(t, sequential.ApplyMatrix([]int{0}, pauliX()))
	require.NoError(t, sequential.ApplyMatrix([]int{1}, hadamardMatrix()))

	for i := 0; i < 4; i++ {
		require.InDelta(t, real(sequential.At(i)), real(fused.At(i)), 1e-12)
		require.InDelta(t, imag(sequential.At(i)), imag(fused.At(i)), 1e-12)
	}
}

func TestApplyMatrixSequenceEmptyIsNoop(t *testing.T) {
	qv := newState(t, 1)
	require.NoError(t, qv.ApplyMatrixSequence(nil, nil))
	require.Equal(t, complex(1, 0), qv.At(0))
}

func TestApplyMatrixSequenceRejectsArgMismatch(t *testing.T) {
	qv := newState(t, 2)
	err := qv.ApplyMatrixSequence([][]int{{0}}, [][]complex128{pauliX(), pauliZ()})
	require.ErrorIs(t, err, ErrFusionArgMismatch)
}

func TestApplyMatrixSequenceFallsBackForWideRegisters(t *testing.T) {
	// A 3-qubit register in the sequence disables fusion outright; the gate
	// is still applied, just without being folded into a combined matrix.
	fused := newState(t, 3)
	ccx := make([]complex128, 64)
	for i := 0; i < 8; i++ {
		ccx[i+8*i] = 1
	}
	// swap the |110> and |111> rows/cols to make it an actual Toffoli.
	ccx[6+8*6], ccx[7+8*7] = 0, 0
	ccx[6+8*7], ccx[7+8*6] = 1, 1

	require.NoError(t, fused.ApplyMatrixSequence([][]int{{0, 1, 2}}, [][]complex128{ccx}))
}

func TestExpandMatrixSingleQubitIdentityOnExtraQubit(t *testing.T) {
	// X lifted from qubit 1 alone into the 2-qubit space [0, 1] must flip
	// qubit 1 while leaving qubit 0 untouched: basis states pair up as
	// (q0=0,q1=0)<->(q0=0,q1=1) and (q0=1,q1=0)<->(q0=1,q1=1), i.e. 0<->2
	// and 1<->3 under the q0 + 2*q1 basis ordering.
	u, err := expandMatrix([]int{1}, []int{0, 1}, pauliX())
	require.NoError(t, err)
	require.Len(t, u, 16)
	const dstDim = 4
	require.Equal(t, complex128(1), u[0+dstDim*2])
	require.Equal(t, complex128(1), u[2+dstDim*0])
	require.Equal(t, complex128(1), u[1+dstDim*3])
	require.Equal(t, complex128(1), u[3+dstDim*1])
	require.Equal(t, complex128(0), u[0+dstDim*0])
	require.Equal(t, complex128(0), u[1+dstDim*1])
}

func TestExpandMatrixRejectsThreeOrMoreQubits(t *testing.T) {
	_, err := expandMatrix([]int{0, 1, 2}, []int{0, 1, 2}, make([]complex128, 64))
	require.Error(t, err)
	var fusionErr *ErrUnsupportedFusion
	require.ErrorAs(t, err, &fusionErr)
}

func TestSortMatrixIsIdentityWhenAlreadySorted(t *testing.T) {
	mat := []complex128{1, 2, 3, 4}
	out, err := sortMatrix([]int{0, 1}, []int{0, 1}, mat)
	require.NoError(t, err)
	require.Equal(t, mat, out)
}
