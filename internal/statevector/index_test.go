package statevector

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndex0(t *testing.T) {
	// 3-qubit register, carving out qubit 1: k's bit 0 stays bit 0, k's
	// remaining bits shift up past the carved-out slot.
	require.Equal(t, uint64(0), index0([]int{1}, 0))
	require.Equal(t, uint64(1), index0([]int{1}, 1))
	require.Equal(t, uint64(4), index0([]int{1}, 2))
	require.Equal(t, uint64(5), index0([]int{1}, 3))
}

func TestIndexesSingleQubit(t *testing.T) {
	inds := indexes([]int{2}, []int{2}, 0)
	require.Equal(t, []uint64{0, 4}, inds)

	inds = indexes([]int{2}, []int{2}, 1)
	require.Equal(t, []uint64{1, 5}, inds)
}

func TestIndexesTwoQubitsOrderingFollowsUnsortedList(t *testing.T) {
	// qubits given as [1, 0] (unsorted) but qubitsSorted is [0, 1]; the
	// returned indices must still correspond to the local axis ordering of
	// the unsorted qubits list, not the sorted one.
	inds := indexes([]int{1, 0}, []int{0, 1}, 0)
	require.Len(t, inds, 4)
	// local index 0 = both target qubits 0 -> basis 0
	require.Equal(t, uint64(0), inds[0])
	// local index 1 sets qubits[0] = qubit 1 -> basis bit 1 set -> 2
	require.Equal(t, uint64(2), inds[1])
	// local index 2 sets qubits[1] = qubit 0 -> basis bit 0 set -> 1
	require.Equal(t, uint64(1), inds[2])
	// local index 3 sets both -> 3
	require.Equal(t, uint64(3), inds[3])
}

func TestSortedCopyDoesNotMutateInput(t *testing.T) {
	original := []int{3, 1, 2}
	sorted := sortedCopy(original)
	require.Equal(t, []int{1, 2, 3}, sorted)
	require.Equal(t, []int{3, 1, 2}, original)
}
