package statevector

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewInitializesToGroundState(t *testing.T) {
	qv, err := New(3)
	require.NoError(t, err)
	qv.Initialize()
	require.Equal(t, 8, qv.Size())
	require.Equal(t, 3, qv.NumQubits())
	require.Equal(t, complex(1, 0), qv.At(0))
	for i := 1; i < qv.Size(); i++ {
		require.Equal(t, complex(0, 0), qv.At(i))
	}
}

func TestNewRejectsNegativeQubitCount(t *testing.T) {
	_, err := New(-1)
	require.Error(t, err)
}

func TestAmplitudesReturnsDefensiveCopy(t *testing.T) {
	qv := newState(t, 1)
	amps := qv.Amplitudes()
	amps[0] = complex(99, 0)
	require.Equal(t, complex(1, 0), qv.At(0))
}

func TestSetAndAt(t *testing.T) {
	qv := newState(t, 2)
	qv.Set(2, complex(0.5, 0.25))
	require.Equal(t, complex(0.5, 0.25), qv.At(2))
}

func TestMarshalJSONAppliesChopThreshold(t *testing.T) {
	qv := newState(t, 1, WithJSONChopThreshold(1e-6))
	qv.Set(1, complex(1e-9, 1e-9))
	b, err := qv.MarshalJSON()
	require.NoError(t, err)

	var decoded struct {
		NumQubits  int          `json:"num_qubits"`
		Amplitudes [][2]float64 `json:"amplitudes"`
	}
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, 1, decoded.NumQubits)
	require.Equal(t, [2]float64{0, 0}, decoded.Amplitudes[1])
}

func TestWorkersStaysSerialBelowThreshold(t *testing.T) {
	qv := newState(t, 4, WithWorkers(8), WithParallelThreshold(14))
	require.Equal(t, 1, qv.workers())
}

func TestWorkersActivatesAboveThreshold(t *testing.T) {
	qv := newState(t, 16, WithWorkers(8), WithParallelThreshold(14))
	require.Equal(t, 8, qv.workers())
}
