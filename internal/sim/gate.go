package sim

import (
	"fmt"
	"math"
	"math/cmplx"
)

type Complex = complex128

// Tolerance is the numerical tolerance used for unitarity, hermiticity and
// trace checks throughout the package.
const Tolerance = 1e-9

// Gate is a unitary operation over Arity qubits. Matrix is row-major with
// dimension 2^Arity; within the gate's own basis, bit t of a basis index
// corresponds to the t-th target qubit the gate is applied to.
type Gate struct {
	Name   string
	Arity  int
	Matrix []Complex
	Params []float64 // rotation angles, empty for fixed gates
}

// NewGate builds a custom gate after validating the matrix dimensions and
// unitarity. Built-in constructors below skip the check.
func NewGate(name string, arity int, matrix []Complex) (Gate, error) {
	dim := 1 << arity
	if len(matrix) != dim*dim {
		return Gate{}, fmt.Errorf("sim: gate %s: matrix size %d, want %d: %w",
			name, len(matrix), dim*dim, ErrNonUnitary)
	}
	if !isUnitary(matrix, dim) {
		return Gate{}, fmt.Errorf("sim: gate %s: %w", name, ErrNonUnitary)
	}
	return Gate{Name: name, Arity: arity, Matrix: matrix}, nil
}

// isUnitary reports whether U†U == I within Tolerance.
func isUnitary(m []Complex, dim int) bool {
	for r := 0; r < dim; r++ {
		for c := 0; c < dim; c++ {
			var sum Complex
			for k := 0; k < dim; k++ {
				sum += cmplx.Conj(m[k*dim+r]) * m[k*dim+c]
			}
			want := Complex(0)
			if r == c {
				want = 1
			}
			if cmplx.Abs(sum-want) > Tolerance {
				return false
			}
		}
	}
	return true
}

var (
	invSqrt2 = complex(1/math.Sqrt2, 0)

	// I is the single-qubit identity gate.
	I = Gate{Name: "I", Arity: 1, Matrix: []Complex{1, 0, 0, 1}}

	// H is the Hadamard gate.
	H = Gate{Name: "H", Arity: 1, Matrix: []Complex{
		invSqrt2, invSqrt2,
		invSqrt2, -invSqrt2,
	}}

	// X, Y, Z are the Pauli gates.
	X = Gate{Name: "X", Arity: 1, Matrix: []Complex{0, 1, 1, 0}}
	Y = Gate{Name: "Y", Arity: 1, Matrix: []Complex{0, -1i, 1i, 0}}
	Z = Gate{Name: "Z", Arity: 1, Matrix: []Complex{1, 0, 0, -1}}

	// S and T are the phase and pi/8 gates, with their adjoints.
	S   = Gate{Name: "S", Arity: 1, Matrix: []Complex{1, 0, 0, 1i}}
	Sdg = Gate{Name: "SDG", Arity: 1, Matrix: []Complex{1, 0, 0, -1i}}
	T   = Gate{Name: "T", Arity: 1, Matrix: []Complex{1, 0, 0, cmplx.Exp(complex(0, math.Pi/4))}}
	Tdg = Gate{Name: "TDG", Arity: 1, Matrix: []Complex{1, 0, 0, cmplx.Exp(complex(0, -math.Pi/4))}}

	// CX is the controlled-NOT gate; the first target is the control.
	CX = Gate{Name: "CX", Arity: 2, Matrix: []Complex{
		1, 0, 0, 0,
		0, 0, 0, 1,
		0, 0, 1, 0,
		0, 1, 0, 0,
	}}

	// CZ is the controlled-Z gate.
	CZ = Gate{Name: "CZ", Arity: 2, Matrix: []Complex{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, -1,
	}}

	// SWAP exchanges two qubits.
	SWAP = Gate{Name: "SWAP", Arity: 2, Matrix: []Complex{
		1, 0, 0, 0,
		0, 0, 1, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
	}}
)

// RX returns a rotation about the X axis by theta.
func RX(theta float64) Gate {
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	return Gate{Name: "RX", Arity: 1, Matrix: []Complex{c, js, js, c}, Params: []float64{theta}}
}

// RY returns a rotation about the Y axis by theta.
func RY(theta float64) Gate {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return Gate{Name: "RY", Arity: 1, Matrix: []Complex{c, -s, s, c}, Params: []float64{theta}}
}

// RZ returns a rotation about the Z axis by theta.
func RZ(theta float64) Gate {
	return Gate{Name: "RZ", Arity: 1, Matrix: []Complex{
		cmplx.Exp(complex(0, -theta/2)), 0,
		0, cmplx.Exp(complex(0, theta/2)),
	}, Params: []float64{theta}}
}

// P returns a phase shift by theta on |1>.
func P(theta float64) Gate {
	return Gate{Name: "P", Arity: 1, Matrix: []Complex{1, 0, 0, cmplx.Exp(complex(0, theta))}, Params: []float64{theta}}
}

// GateByName resolves a gate identifier (case-insensitive QASM spelling) to a
// Gate, applying params to rotation gates.
func GateByName(name string, params ...float64) (Gate, error) {
	theta := 0.0
	if len(params) > 0 {
		theta = params[0]
	}
	switch normalizeGateName(name) {
	case "I", "ID":
		return I, nil
	case "H":
		return H, nil
	case "X":
		return X, nil
	case "Y":
		return Y, nil
	case "Z":
		return Z, nil
	case "S":
		return S, nil
	case "SDG":
		return Sdg, nil
	case "T":
		return T, nil
	case "TDG":
		return Tdg, nil
	case "RX":
		return RX(theta), nil
	case "RY":
		return RY(theta), nil
	case "RZ":
		return RZ(theta), nil
	case "P", "U1":
		return P(theta), nil
	case "CX", "CNOT":
		return CX, nil
	case "CZ":
		return CZ, nil
	case "SWAP":
		return SWAP, nil
	}
	return Gate{}, fmt.Errorf("sim: unknown gate %q", name)
}

func normalizeGateName(name string) string {
	out := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
