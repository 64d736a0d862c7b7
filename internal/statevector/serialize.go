package statevector

import (
	"encoding/json"
	"math"
)

// jsonAmplitude mirrors the reference simulator's own wire format for a
// complex amplitude: a two-element [re, im] pair rather than an object, so
// downstream tooling that already expects that shape (plotting, notebook
// widgets) can consume it unmodified.
type jsonAmplitude [2]float64

// MarshalJSON encodes the vector as {"num_qubits": N, "amplitudes":
// [[re,im], ...]}. Any component whose magnitude is at or below
// Config.JSONChopThreshold is zeroed before encoding, matching the
// reference simulator's own "chop" behavior for suppressing numerical
// noise in printed output. A zero threshold disables chopping.
func (qv *QubitVector) MarshalJSON() ([]byte, error) {
	amps := make([]jsonAmplitude, qv.Size())
	chop := qv.cfg.JSONChopThreshold
	for i := 0; i < qv.Size(); i++ {
		v := qv.data.At(uint64(i))
		re, im := real(v), imag(v)
		if chop > 0 {
			if math.Abs(re) <= chop {
				re = 0
			}
			if math.Abs(im) <= chop {
				im = 0
			}
		}
		amps[i] = jsonAmplitude{re, im}
	}
	return json.Marshal(struct {
		NumQubits  int             `json:"num_qubits"`
		Amplitudes []jsonAmplitude `json:"amplitudes"`
	}{
		NumQubits:  qv.numQubits,
		Amplitudes: amps,
	})
}
