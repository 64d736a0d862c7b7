package statevector

import "github.com/theapemachine/errnie"

// Amplitudes is the storage backend for a QubitVector's 2^N complex
// coefficients. The dense backend below is the only implementation shipped,
// but gate kernels and measurement only ever reach the buffer through this
// interface so a sparse or GPU-resident backend could be dropped in later
// without touching index.go, kernels.go, fusion.go or measure.go.
type Amplitudes interface {
	At(i uint64) complex128
	Set(i uint64, v complex128)
	CopyFrom(src Amplitudes)
	Zero()
	Len() int
}

type denseBuffer []complex128

func (d denseBuffer) At(i uint64) complex128     { return d[i] }
func (d denseBuffer) Set(i uint64, v complex128) { d[i] = v }
func (d denseBuffer) Len() int                   { return len(d) }

func (d denseBuffer) CopyFrom(src Amplitudes) {
	s, ok := src.(denseBuffer)
	if !ok {
		for i := 0; i < len(d); i++ {
			d[i] = src.At(uint64(i))
		}
		return
	}
	copy(d, s)
}

func (d denseBuffer) Zero() {
	for i := range d {
		d[i] = 0
	}
}

// Config tunes the concurrency and output behavior of a QubitVector. The
// zero value is not usable directly; start from DefaultConfig, or pass With*
// options to New, which applies them on top of DefaultConfig.
type Config struct {
	// Workers is the number of goroutines a parallel block iteration fans
	// out to. 1 disables parallelism outright.
	Workers int

	// ParallelThreshold is the minimum qubit count before an operation is
	// considered for parallel execution at all.
	ParallelThreshold int

	// SampleMeasureIndexSize selects the coarse/fine split point for
	// SampleMeasure's two-pass algorithm: states are sampled with a single
	// linear scan below 2^SampleMeasureIndexSize amplitudes, and with the
	// coarse-index precomputation above it.
	SampleMeasureIndexSize int

	// JSONChopThreshold zeroes amplitude components with magnitude at or
	// below this value when marshaling to JSON. 0 disables chopping.
	JSONChopThreshold float64

	// DebugBounds enables the qubit-range and dimension assertions that
	// ship disabled in release builds of the reference simulator this
	// package's algorithms are drawn from.
	DebugBounds bool
}

// DefaultConfig matches the reference simulator's own defaults.
func DefaultConfig() Config {
	return Config{
		Workers:                1,
		ParallelThreshold:      14,
		SampleMeasureIndexSize: 10,
		JSONChopThreshold:      0,
		DebugBounds:            false,
	}
}

// Option configures a QubitVector at construction time.
type Option func(*Config)

// WithWorkers sets the number of goroutines used for parallel block
// iteration. Values <= 1 force serial execution.
func WithWorkers(n int) Option {
	return func(c *Config) { c.Workers = n }
}

// WithParallelThreshold sets the minimum qubit count before parallel
// execution is considered.
func WithParallelThreshold(n int) Option {
	return func(c *Config) { c.ParallelThreshold = n }
}

// WithSampleMeasureIndexSize sets the coarse-index width SampleMeasure uses
// to decide between its small-state and large-state algorithms.
func WithSampleMeasureIndexSize(n int) Option {
	return func(c *Config) { c.SampleMeasureIndexSize = n }
}

// WithJSONChopThreshold sets the magnitude at or below which MarshalJSON
// zeroes an amplitude's real and imaginary components, each independently.
func WithJSONChopThreshold(t float64) Option {
	return func(c *Config) { c.JSONChopThreshold = t }
}

// WithDebugBounds enables qubit-range and dimension assertions.
func WithDebugBounds(on bool) Option {
	return func(c *Config) { c.DebugBounds = on }
}

// QubitVector is a dense statevector over numQubits qubits, stored as
// 2^numQubits complex128 amplitudes in the standard little-endian basis
// ordering (qubit 0 is the least significant bit of the basis index).
type QubitVector struct {
	cfg       Config
	numQubits int
	data      Amplitudes
	checkpt   Amplitudes
}

// New allocates a QubitVector over n qubits, zero-initialized (all
// amplitudes 0; call Initialize to reset it to |0...0>). n must be >= 0.
func New(n int, opts ...Option) (*QubitVector, error) {
	if n < 0 {
		return nil, &QubitRangeError{Qubit: n, NumQubits: 0}
	}
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	qv := &QubitVector{
		cfg:       cfg,
		numQubits: n,
		data:      make(denseBuffer, uint64(1)<<uint(n)),
	}
	errnie.Info("statevector.New - numQubits %d, workers %d, threshold %d", n, cfg.Workers, cfg.ParallelThreshold)
	return qv, nil
}

// Initialize resets the vector to the computational basis state |0...0>,
// discarding any checkpoint.
func (qv *QubitVector) Initialize() {
	qv.data.Zero()
	qv.data.Set(0, complex(1, 0))
	qv.checkpt = nil
}

// NumQubits returns the number of qubits this vector represents.
func (qv *QubitVector) NumQubits() int { return qv.numQubits }

// Size returns the number of amplitudes, 2^NumQubits().
func (qv *QubitVector) Size() int { return qv.data.Len() }

// At returns the amplitude at basis index i.
func (qv *QubitVector) At(i int) complex128 {
	qv.checkQubitIndex(i)
	return qv.data.At(uint64(i))
}

// Set overwrites the amplitude at basis index i.
func (qv *QubitVector) Set(i int, v complex128) {
	qv.checkQubitIndex(i)
	qv.data.Set(uint64(i), v)
}

// Amplitudes returns a defensive copy of the full amplitude vector. Callers
// are free to mutate the returned slice; it is never aliased to internal
// state.
func (qv *QubitVector) Amplitudes() []complex128 {
	out := make([]complex128, qv.Size())
	for i := range out {
		out[i] = qv.data.At(uint64(i))
	}
	return out
}

func (qv *QubitVector) checkQubitIndex(i int) {
	if !qv.cfg.DebugBounds {
		return
	}
	if i < 0 || i >= qv.Size() {
		panic(&DimensionError{Op: "At/Set", Want: qv.Size(), Got: i})
	}
}

func (qv *QubitVector) checkDimension(other *QubitVector) error {
	if qv.Size() != other.Size() {
		return &DimensionError{Op: "checkDimension", Want: qv.Size(), Got: other.Size()}
	}
	return nil
}

// workers returns the configured worker count, but only when the vector is
// large enough for the parallel threshold to kick in; otherwise it reports
// 1 so callers always run serially on small states.
func (qv *QubitVector) workers() int {
	if qv.numQubits > qv.cfg.ParallelThreshold && qv.cfg.Workers > 1 {
		return qv.cfg.Workers
	}
	return 1
}
