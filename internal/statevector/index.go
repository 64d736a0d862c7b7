package statevector

import "sort"

// index0 computes the data offset of the |0...0> branch of the block
// addressed by k once the bits named in qubitsSorted (ascending) are carved
// out of k's binary representation and replaced with zeros.
//
// qubitsSorted must already be sorted ascending; callers that do not already
// have a sorted copy should sort one before calling.
func index0(qubitsSorted []int, k uint64) uint64 {
	ret := k
	for _, q := range qubitsSorted {
		shift := uint(q)
		lowbits := ret & ((1 << shift) - 1)
		ret >>= shift
		ret <<= shift + 1
		ret |= lowbits
	}
	return ret
}

// indexes returns the 2^len(qubits) data offsets touched by a gate acting on
// qubits, for block k of the (N-len(qubits))-qubit iteration space. qubits
// gives the bit position assigned to each index of the gate's own local
// axis; qubitsSorted is the same set sorted ascending (needed to compute the
// |0...0> branch via index0).
func indexes(qubits []int, qubitsSorted []int, k uint64) []uint64 {
	n := len(qubits)
	dim := uint64(1) << uint(n)
	ret := make([]uint64, dim)
	ret[0] = index0(qubitsSorted, k)
	for i := 0; i < n; i++ {
		half := uint64(1) << uint(i)
		bit := uint64(1) << uint(qubits[i])
		for j := uint64(0); j < half; j++ {
			ret[half+j] = ret[j] | bit
		}
	}
	return ret
}

// sortedCopy returns an ascending-sorted copy of qubits.
func sortedCopy(qubits []int) []int {
	out := make([]int, len(qubits))
	copy(out, qubits)
	sort.Ints(out)
	return out
}
