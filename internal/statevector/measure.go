package statevector

import "github.com/hlalwani/qstatevec/internal/workerpool"

// Norm returns the total probability mass of the state, sum_k |data[k]|^2.
// A correctly normalized vector always returns 1; this is primarily useful
// to check that a fused sequence of gate applications preserved unitarity.
func (qv *QubitVector) Norm() float64 {
	re, _ := reduceAllMagnitude(qv)
	return re
}

func reduceAllMagnitude(qv *QubitVector) (float64, float64) {
	c := reduceAll(qv, func(k uint64) (float64, float64) {
		v := qv.data.At(k)
		return real(v) * real(v) + imag(v)*imag(v), 0
	})
	return real(c), imag(c)
}

// Marginal returns the 2^len(qubits) marginal probability distribution
// over qubits, summing out every other qubit in the register. The empty
// register returns a single-element slice holding Norm(). Qubits need not
// be sorted or contiguous.
func (qv *QubitVector) Marginal(qubits []int) []float64 {
	if len(qubits) == 0 {
		return []float64{qv.Norm()}
	}
	dim := 1 << uint(len(qubits))
	sorted := sortedCopy(qubits)
	end := qv.Size() >> uint(len(qubits))

	return workerpool.RunReduceVec(end, qv.workers(), dim, func(start, stop int) []float64 {
		acc := make([]float64, dim)
		for k := start; k < stop; k++ {
			inds := indexes(qubits, sorted, uint64(k))
			for i, idx := range inds {
				v := qv.data.At(idx)
				acc[i] += real(v)*real(v) + imag(v)*imag(v)
			}
		}
		return acc
	})
}

// Probability returns the (P(0), P(1)) marginal for a single qubit.
func (qv *QubitVector) Probability(qubit int) (p0, p1 float64) {
	m := qv.Marginal([]int{qubit})
	return m[0], m[1]
}

// Probabilities returns the full 2^N basis-state probability distribution.
func (qv *QubitVector) Probabilities() []float64 {
	out := make([]float64, qv.Size())
	forEachIndex(qv, func(k uint64) {
		v := qv.data.At(k)
		out[k] = real(v)*real(v) + imag(v)*imag(v)
	})
	return out
}

// MatrixNorm returns the probability mass sum_i |sum_j mat[i+dim*j] *
// data[inds[j]]|^2 that applying the dense matrix mat to qubits would
// produce, without mutating the state. This is how a projective
// measurement or partial-trace computation estimates an outcome's
// probability before committing to it.
func (qv *QubitVector) MatrixNorm(qubits []int, mat []complex128) (float64, error) {
	dim := 1 << uint(len(qubits))
	if len(mat) != dim*dim {
		return 0, &DimensionError{Op: "MatrixNorm", Want: dim * dim, Got: len(mat)}
	}
	c := reduceBlocks(qv, qubits, func(inds []uint64) (float64, float64) {
		var sum float64
		for i := 0; i < dim; i++ {
			var vi complex128
			for j := 0; j < dim; j++ {
				vi += mat[i+dim*j] * qv.data.At(inds[j])
			}
			sum += real(vi)*real(vi) + imag(vi)*imag(vi)
		}
		return sum, 0
	})
	return real(c), nil
}

// MatrixNormDiagonal is MatrixNorm specialized for a diagonal matrix given
// by its diagonal entries.
func (qv *QubitVector) MatrixNormDiagonal(qubits []int, diag []complex128) (float64, error) {
	dim := 1 << uint(len(qubits))
	if len(diag) != dim {
		return 0, &DimensionError{Op: "MatrixNormDiagonal", Want: dim, Got: len(diag)}
	}
	c := reduceBlocks(qv, qubits, func(inds []uint64) (float64, float64) {
		var sum float64
		for i := 0; i < dim; i++ {
			vi := diag[i] * qv.data.At(inds[i])
			sum += real(vi)*real(vi) + imag(vi)*imag(vi)
		}
		return sum, 0
	})
	return real(c), nil
}

// InnerProduct returns <qv|other>, the Hermitian inner product between two
// equally sized statevectors.
func (qv *QubitVector) InnerProduct(other *QubitVector) (complex128, error) {
	if err := qv.checkDimension(other); err != nil {
		return 0, err
	}
	re, im := workerpool.RunReduce(qv.Size(), qv.workers(), func(start, end int) (float64, float64) {
		var r, i float64
		for k := start; k < end; k++ {
			a := qv.data.At(uint64(k))
			b := other.data.At(uint64(k))
			prod := complexConj(a) * b
			r += real(prod)
			i += imag(prod)
		}
		return r, i
	})
	return complex(re, im), nil
}

func complexConj(c complex128) complex128 {
	return complex(real(c), -imag(c))
}

// SampleMeasure draws one basis-state outcome per entry of rnds, each drawn
// uniformly from [0, 1), by walking the cumulative probability
// distribution. Below 2^SampleMeasureIndexSize amplitudes it scans
// linearly; above it, it first locates the coarse block the random value
// falls into from a precomputed per-block cumulative mass table, then
// finishes with a linear scan inside that block. Both regimes share the
// same tie-break: a random value landing exactly on a cumulative boundary
// advances past it, because the comparison is strict less-than.
func (qv *QubitVector) SampleMeasure(rnds []float64) []int {
	end := qv.Size()
	samples := make([]int, len(rnds))
	indexSize := qv.cfg.SampleMeasureIndexSize
	indexEnd := 1 << uint(indexSize)

	if end < indexEnd {
		workerpool.Run(len(rnds), qv.workers(), func(start, stop int) {
			for s := start; s < stop; s++ {
				samples[s] = qv.sampleLinear(rnds[s], 0, end)
			}
		})
		return samples
	}

	loop := end >> uint(indexSize)
	blockMass := make([]float64, indexEnd)
	workerpool.Run(indexEnd, qv.workers(), func(start, stop int) {
		for i := start; i < stop; i++ {
			base := loop * i
			var total float64
			for j := 0; j < loop; j++ {
				v := qv.data.At(uint64(base | j))
				total += real(v)*real(v) + imag(v)*imag(v)
			}
			blockMass[i] = total
		}
	})

	workerpool.Run(len(rnds), qv.workers(), func(start, stop int) {
		for s := start; s < stop; s++ {
			rnd := rnds[s]
			var p float64
			sample := 0
			for j := 0; j < len(blockMass); j++ {
				if rnd < p+blockMass[j] {
					break
				}
				p += blockMass[j]
				sample += loop
			}
			samples[s] = qv.sampleLinearFrom(rnd, sample, end, p)
		}
	})
	return samples
}

func (qv *QubitVector) sampleLinear(rnd float64, from, end int) int {
	return qv.sampleLinearFrom(rnd, from, end, 0)
}

func (qv *QubitVector) sampleLinearFrom(rnd float64, from, end int, startMass float64) int {
	p := startMass
	sample := from
	for ; sample < end-1; sample++ {
		v := qv.data.At(uint64(sample))
		p += real(v)*real(v) + imag(v)*imag(v)
		if rnd < p {
			break
		}
	}
	return sample
}
