package circuit

import (
	"math"
	"math/cmplx"
)

// gateMatrix returns the 2x2 column-major unitary for a named single-qubit
// gate type with the given rotation parameters. ok is false for gate types
// that are not expressible as a single fixed or parameterized 2x2 matrix
// (measurement, barrier, reset, and multi-qubit gates other than CRZ and
// CU1, which return their target-qubit RZ and U1 matrices).
func gateMatrix(gateType string, params []float64) (mat []complex128, ok bool) {
	p := func(i int) float64 {
		if i < len(params) {
			return params[i]
		}
		return 0
	}

	switch gateType {
	case "H":
		h := complex(1/math.Sqrt2, 0)
		return []complex128{h, h, h, -h}, true
	case "X":
		return []complex128{0, 1, 1, 0}, true
	case "Y":
		return []complex128{0, complex(0, 1), complex(0, -1), 0}, true
	case "Z":
		return []complex128{1, 0, 0, -1}, true
	case "I":
		return []complex128{1, 0, 0, 1}, true
	case "S":
		return []complex128{1, 0, 0, complex(0, 1)}, true
	case "SDG":
		return []complex128{1, 0, 0, complex(0, -1)}, true
	case "T":
		return []complex128{1, 0, 0, cmplx.Exp(complex(0, math.Pi/4))}, true
	case "TDG":
		return []complex128{1, 0, 0, cmplx.Exp(complex(0, -math.Pi/4))}, true
	case "SX":
		return sqrtPauli(false), true
	case "SY":
		return sqrtPauli(true), true
	case "RX":
		theta := p(0)
		c := complex(math.Cos(theta/2), 0)
		s := complex(0, -math.Sin(theta/2))
		return []complex128{c, s, s, c}, true
	case "RY":
		theta := p(0)
		c := complex(math.Cos(theta/2), 0)
		s := complex(math.Sin(theta/2), 0)
		return []complex128{c, s, -s, c}, true
	case "RZ", "CRZ":
		theta := p(0)
		return []complex128{cmplx.Exp(complex(0, -theta/2)), 0, 0, cmplx.Exp(complex(0, theta/2))}, true
	case "P", "U1", "CU1":
		lambda := p(0)
		return []complex128{1, 0, 0, cmplx.Exp(complex(0, lambda))}, true
	case "U2":
		phi, lambda := p(0), p(1)
		h := complex(1/math.Sqrt2, 0)
		return []complex128{
			h, h * cmplx.Exp(complex(0, phi)),
			-h * cmplx.Exp(complex(0, lambda)), h * cmplx.Exp(complex(0, phi+lambda)),
		}, true
	case "U3":
		theta, phi, lambda := p(0), p(1), p(2)
		c := complex(math.Cos(theta/2), 0)
		s := complex(math.Sin(theta/2), 0)
		return []complex128{
			c, s * cmplx.Exp(complex(0, phi)),
			-s * cmplx.Exp(complex(0, lambda)), c * cmplx.Exp(complex(0, phi+lambda)),
		}, true
	default:
		return nil, false
	}
}

// sqrtPauli returns the principal square root of Pauli-X (y=false) or
// Pauli-Y (y=true), each applied twice recovering the base gate.
func sqrtPauli(y bool) []complex128 {
	half := complex(0.5, 0.5)
	if y {
		return []complex128{half, -half, half, half}
	}
	return []complex128{half, complex(0.5, -0.5), complex(0.5, -0.5), half}
}

// rotationGate reports whether gateType carries a CRX/CRY/CPhase-style
// controlled-rotation matrix, as opposed to a fixed controlled gate like CX
// whose target operation is better expressed through the permutation/Pauli
// kernels directly.
func rotationGate(gateType string) (base string, ok bool) {
	switch gateType {
	case "CRX":
		return "RX", true
	case "CRY":
		return "RY", true
	case "CRZ":
		return "RZ", true
	case "CU1":
		return "U1", true
	default:
		return "", false
	}
}
