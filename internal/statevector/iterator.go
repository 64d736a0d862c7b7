package statevector

import "github.com/hlalwani/qstatevec/internal/workerpool"

// blockFunc is applied once per block of a qubit-gated iteration. inds
// holds the 2^len(qubits) data offsets the block touches, in the same
// order the targeted qubits were given.
type blockFunc func(inds []uint64)

// blockReducer is blockFunc's reduction counterpart: it accumulates into
// the (re, im) pair belonging to its block, and the blocks are summed once
// every goroutine has returned.
type blockReducer func(inds []uint64) (re, im float64)

// forEachIndex calls fn once for every one of the 2^N basis indices,
// fanned out across qv's configured worker count when the vector is large
// enough to cross the parallel threshold.
func forEachIndex(qv *QubitVector, fn func(k uint64)) {
	end := qv.Size()
	workerpool.Run(end, qv.workers(), func(start, stop int) {
		for k := start; k < stop; k++ {
			fn(uint64(k))
		}
	})
}

// forEachBlock partitions the data into 2^(N-len(qubits)) blocks, one per
// combination of the bits not in qubits, and calls fn once per block with
// the indices that combination addresses within the targeted qubits.
func forEachBlock(qv *QubitVector, qubits []int, fn blockFunc) {
	numQubits := len(qubits)
	end := qv.Size() >> uint(numQubits)
	sorted := sortedCopy(qubits)
	workerpool.Run(end, qv.workers(), func(start, stop int) {
		for k := start; k < stop; k++ {
			fn(indexes(qubits, sorted, uint64(k)))
		}
	})
}

// reduceBlocks is forEachBlock's reduction counterpart, returning the
// complex sum of every block's contribution.
func reduceBlocks(qv *QubitVector, qubits []int, fn blockReducer) complex128 {
	numQubits := len(qubits)
	end := qv.Size() >> uint(numQubits)
	sorted := sortedCopy(qubits)
	re, im := workerpool.RunReduce(end, qv.workers(), func(start, stop int) (float64, float64) {
		var localRe, localIm float64
		for k := start; k < stop; k++ {
			r, i := fn(indexes(qubits, sorted, uint64(k)))
			localRe += r
			localIm += i
		}
		return localRe, localIm
	})
	return complex(re, im)
}

// reduceAll is reduceBlocks without any qubits carved out: it folds a
// reducer over every basis index in the vector.
func reduceAll(qv *QubitVector, fn func(k uint64) (re, im float64)) complex128 {
	end := qv.Size()
	re, im := workerpool.RunReduce(end, qv.workers(), func(start, stop int) (float64, float64) {
		var localRe, localIm float64
		for k := start; k < stop; k++ {
			r, i := fn(uint64(k))
			localRe += r
			localIm += i
		}
		return localRe, localIm
	})
	return complex(re, im)
}
