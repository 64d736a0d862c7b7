package statevector

// ApplyMatrixSequence fuses a sequence of small gate matrices acting on
// (possibly overlapping) qubit registers into one dense matrix over their
// combined, sorted qubit set, and applies it in a single pass over the
// state. qubits[i] and mats[i] describe the i-th gate in application
// order: mats[0] is applied first.
//
// When any register spans more than two qubits, fusion is skipped entirely
// and each gate is applied on its own, since expandMatrix only knows how to
// lift 1- and 2-qubit matrices into the combined space.
func (qv *QubitVector) ApplyMatrixSequence(qubits [][]int, mats [][]complex128) error {
	if len(mats) == 0 {
		return nil
	}
	if len(qubits) != len(mats) {
		return ErrFusionArgMismatch
	}

	atMostTwo := true
	for _, reg := range qubits {
		if len(reg) > 2 {
			atMostTwo = false
			break
		}
	}
	if !atMostTwo {
		for i := range qubits {
			if err := qv.ApplyMatrix(qubits[i], mats[i]); err != nil {
				return err
			}
		}
		return nil
	}

	var sorted []int
	seen := make(map[int]bool)
	for _, reg := range qubits {
		for _, q := range reg {
			if !seen[q] {
				seen[q] = true
				sorted = append(sorted, q)
			}
		}
	}
	sorted = sortedCopy(sorted)
	dim := 1 << uint(len(sorted))

	sortedMats := make([][]complex128, len(qubits))
	for i := range qubits {
		u, err := expandMatrix(qubits[i], sorted, mats[i])
		if err != nil {
			return err
		}
		sortedMats[i] = u
	}

	u := sortedMats[0]
	for m := 1; m < len(sortedMats); m++ {
		next := sortedMats[m]
		tmp := make([]complex128, dim*dim)
		for i := 0; i < dim; i++ {
			for j := 0; j < dim; j++ {
				var acc complex128
				for k := 0; k < dim; k++ {
					acc += next[i+dim*k] * u[k+dim*j]
				}
				tmp[i+dim*j] = acc
			}
		}
		u = tmp
	}

	return qv.ApplyMatrix(sorted, u)
}

// expandMatrix lifts vmat, a dense matrix over srcQubits, into a matrix of
// the same rank as dstSorted by identifying which bit positions of the
// destination index space correspond to srcQubits and broadcasting vmat's
// entries across every combination of the remaining bits (which the lifted
// matrix must act as identity on).
func expandMatrix(srcQubits, dstSorted []int, vmat []complex128) ([]complex128, error) {
	dstDim := 1 << uint(len(dstSorted))
	u := make([]complex128, dstDim*dstDim)
	filled := make([]bool, dstDim)

	position := func(q int) int {
		for i, d := range dstSorted {
			if d == q {
				return i
			}
		}
		return -1
	}

	switch len(srcQubits) {
	case 1:
		srcDim := 2
		delta := 1 << uint(position(srcQubits[0]))
		for i := 0; i < dstDim; i++ {
			if filled[i] {
				continue
			}
			u[i+(i+0)*dstDim] = vmat[0+0*srcDim]
			u[i+(i+delta)*dstDim] = vmat[0+1*srcDim]
			u[(i+delta)+(i+0)*dstDim] = vmat[1+0*srcDim]
			u[(i+delta)+(i+delta)*dstDim] = vmat[1+1*srcDim]
			filled[i] = true
			filled[i+delta] = true
		}

	case 2:
		srcDim := 4
		sortedSrc := sortedCopy(srcQubits)
		sortedVmat, err := sortMatrix(srcQubits, sortedSrc, vmat)
		if err != nil {
			return nil, err
		}
		lowDelta := 1 << uint(position(sortedSrc[0]))
		highDelta := 1 << uint(position(sortedSrc[1]))
		offsets := [4]int{0, lowDelta, highDelta, lowDelta + highDelta}
		for i := 0; i < dstDim; i++ {
			if filled[i] {
				continue
			}
			for r := 0; r < 4; r++ {
				for c := 0; c < 4; c++ {
					u[(i+offsets[r])+(i+offsets[c])*dstDim] = sortedVmat[r+srcDim*c]
				}
			}
			for _, off := range offsets {
				filled[i+off] = true
			}
		}

	default:
		return nil, &ErrUnsupportedFusion{NumQubits: len(srcQubits)}
	}

	return u, nil
}

// sortMatrix permutes the rows and columns of mat, a matrix described over
// qubit order current, so that it instead describes the same operator over
// qubit order sorted. current and sorted must contain the same qubits.
func sortMatrix(current, sorted []int, mat []complex128) ([]complex128, error) {
	dim := 1 << uint(len(current))
	ret := make([]complex128, len(mat))
	copy(ret, mat)
	cur := make([]int, len(current))
	copy(cur, current)

	for !intSliceEqual(cur, sorted) {
		from := -1
		for i := range cur {
			if cur[i] != sorted[i] {
				from = i
				break
			}
		}
		if from == -1 {
			break
		}
		to := -1
		for i := from + 1; i < len(cur); i++ {
			if cur[from] == sorted[i] {
				to = i
				break
			}
		}
		if to == -1 {
			return nil, errInternalSortMatrix
		}
		swapColsAndRows(from, to, ret, dim)
		cur[from], cur[to] = cur[to], cur[from]
	}

	return ret, nil
}

// swapColsAndRows exchanges row/column idx1 with row/column idx2 in a
// dim x dim column-major matrix, restricted to the sub-block where bit idx1
// is set and bit idx2 is clear (the other half follows by symmetry of the
// pairing, exactly as the reference simulator's own index arithmetic
// relies on).
func swapColsAndRows(idx1, idx2 int, mat []complex128, dim int) {
	mask1 := 1 << uint(idx1)
	mask2 := 1 << uint(idx2)
	for first := 0; first < dim; first++ {
		if first&mask1 != 0 && first&mask2 == 0 {
			second := (first ^ mask1) | mask2
			for i := 0; i < dim; i++ {
				mat[first*dim+i], mat[second*dim+i] = mat[second*dim+i], mat[first*dim+i]
			}
			for i := 0; i < dim; i++ {
				mat[i*dim+first], mat[i*dim+second] = mat[i*dim+second], mat[i*dim+first]
			}
		}
	}
}

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
