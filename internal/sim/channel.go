package sim

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Channel is a quantum channel in Kraus form: rho' = sum_i K_i rho K_i†.
// Each operator is a row-major 2^Arity x 2^Arity matrix. The completeness
// relation sum_i K_i† K_i == I is validated at construction, so applying a
// Channel to a valid density matrix always yields a valid density matrix.
type Channel struct {
	Name  string
	Arity int
	Kraus [][]Complex
}

// NewChannel validates the Kraus set and returns the channel. A set that
// does not satisfy the completeness relation fails fast with
// ErrInvalidChannel here, not at apply time.
func NewChannel(name string, arity int, kraus [][]Complex) (*Channel, error) {
	dim := 1 << arity
	if len(kraus) == 0 {
		return nil, fmt.Errorf("sim: channel %s: empty kraus set: %w", name, ErrInvalidChannel)
	}
	for i, k := range kraus {
		if len(k) != dim*dim {
			return nil, fmt.Errorf("sim: channel %s: kraus[%d] size %d, want %d: %w",
				name, i, len(k), dim*dim, ErrInvalidChannel)
		}
	}
	for r := 0; r < dim; r++ {
		for c := 0; c < dim; c++ {
			var sum Complex
			for _, k := range kraus {
				for row := 0; row < dim; row++ {
					sum += cmplx.Conj(k[row*dim+r]) * k[row*dim+c]
				}
			}
			want := Complex(0)
			if r == c {
				want = 1
			}
			if cmplx.Abs(sum-want) > Tolerance {
				return nil, fmt.Errorf("sim: channel %s: %w", name, ErrInvalidChannel)
			}
		}
	}
	return &Channel{Name: name, Arity: arity, Kraus: kraus}, nil
}

// pauli1 holds the single-qubit Pauli matrices I, X, Y, Z in that order.
var pauli1 = [][]Complex{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1i, 1i, 0},
	{1, 0, 0, -1},
}

// scale returns s*m without mutating m.
func scale(s float64, m []Complex) []Complex {
	out := make([]Complex, len(m))
	f := complex(s, 0)
	for i, v := range m {
		out[i] = f * v
	}
	return out
}

// kron2 returns the 4x4 matrix applying a to gate bit 0 and b to gate bit 1.
func kron2(a, b []Complex) []Complex {
	out := make([]Complex, 16)
	for rp := 0; rp < 4; rp++ {
		for c := 0; c < 4; c++ {
			out[rp*4+c] = a[(rp&1)*2+(c&1)] * b[(rp>>1)*2+(c>>1)]
		}
	}
	return out
}

// Depolarizing returns the single-qubit depolarizing channel at probability
// p: the state is mixed with the maximally mixed state, rho' = (1-p)rho +
// p*I/2, expressed as the Kraus set {sqrt(1-3p/4) I, sqrt(p/4) X, Y, Z}.
func Depolarizing(p float64) (*Channel, error) {
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("sim: depolarizing probability %g out of [0,1]: %w", p, ErrInvalidChannel)
	}
	kraus := [][]Complex{
		scale(math.Sqrt(1-3*p/4), pauli1[0]),
		scale(math.Sqrt(p/4), pauli1[1]),
		scale(math.Sqrt(p/4), pauli1[2]),
		scale(math.Sqrt(p/4), pauli1[3]),
	}
	return NewChannel("depolarizing", 1, kraus)
}

// DepolarizingTwoQubit returns the two-qubit depolarizing channel at
// probability p, built from the 16 two-qubit Pauli products.
func DepolarizingTwoQubit(p float64) (*Channel, error) {
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("sim: depolarizing probability %g out of [0,1]: %w", p, ErrInvalidChannel)
	}
	kraus := make([][]Complex, 0, 16)
	for i, a := range pauli1 {
		for j, b := range pauli1 {
			w := p / 16
			if i == 0 && j == 0 {
				w = 1 - 15*p/16
			}
			kraus = append(kraus, scale(math.Sqrt(w), kron2(a, b)))
		}
	}
	return NewChannel("depolarizing2", 2, kraus)
}

// AmplitudeDamping returns the amplitude-damping channel with decay
// probability gamma, modeling energy relaxation towards |0>.
func AmplitudeDamping(gamma float64) (*Channel, error) {
	if gamma < 0 || gamma > 1 {
		return nil, fmt.Errorf("sim: damping probability %g out of [0,1]: %w", gamma, ErrInvalidChannel)
	}
	kraus := [][]Complex{
		{1, 0, 0, complex(math.Sqrt(1-gamma), 0)},
		{0, complex(math.Sqrt(gamma), 0), 0, 0},
	}
	return NewChannel("amplitude_damping", 1, kraus)
}

// PhaseDamping returns the phase-damping channel with probability lambda,
// modeling loss of coherence without energy exchange.
func PhaseDamping(lambda float64) (*Channel, error) {
	if lambda < 0 || lambda > 1 {
		return nil, fmt.Errorf("sim: damping probability %g out of [0,1]: %w", lambda, ErrInvalidChannel)
	}
	kraus := [][]Complex{
		{1, 0, 0, complex(math.Sqrt(1-lambda), 0)},
		{0, 0, 0, complex(math.Sqrt(lambda), 0)},
	}
	return NewChannel("phase_damping", 1, kraus)
}

// ChannelByName resolves a noise identifier to a channel constructor result.
// Recognized names follow the QASM noise-comment spelling: "depolarizing",
// "amplitude_damping", "phase_damping".
func ChannelByName(name string, param float64) (*Channel, error) {
	switch name {
	case "depolarizing":
		return Depolarizing(param)
	case "amplitude_damping":
		return AmplitudeDamping(param)
	case "phase_damping":
		return PhaseDamping(param)
	}
	return nil, fmt.Errorf("sim: unknown noise channel %q", name)
}
