package sim

import (
	"fmt"
	"math/cmplx"
)

// targetMask returns the bitmask covering the given qubit indices.
func targetMask(targets []int) int {
	mask := 0
	for _, q := range targets {
		mask |= 1 << q
	}
	return mask
}

// expandIndex spreads the bits of sub onto the target qubit positions of
// base. Bit t of sub lands on qubit targets[t].
func expandIndex(base, sub int, targets []int) int {
	idx := base
	for t, q := range targets {
		if sub&(1<<t) != 0 {
			idx |= 1 << q
		}
	}
	return idx
}

// StateVector is a pure quantum state over NumQubits qubits. It is the fast
// path used when no noise channel is configured; mixed states need a
// DensityMatrix.
type StateVector struct {
	Amplitudes []Complex
	NumQubits  int
}

// NewStateVector returns the |0...0> state.
func NewStateVector(numQubits int) *StateVector {
	amps := make([]Complex, 1<<numQubits)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

// Clone returns a deep copy of the state.
func (s *StateVector) Clone() *StateVector {
	amps := make([]Complex, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// Apply contracts the gate matrix against the target axes of the state,
// leaving every other qubit's subspace untouched.
func (s *StateVector) Apply(g Gate, targets []int) error {
	if err := checkTargets(g, targets, s.NumQubits); err != nil {
		return err
	}
	n := len(s.Amplitudes)
	k := 1 << g.Arity
	mask := targetMask(targets)
	idx := make([]int, k)
	scratch := make([]Complex, k)

	for base := 0; base < n; base++ {
		if base&mask != 0 {
			continue
		}
		for sub := 0; sub < k; sub++ {
			idx[sub] = expandIndex(base, sub, targets)
		}
		for row := 0; row < k; row++ {
			var sum Complex
			for col := 0; col < k; col++ {
				sum += g.Matrix[row*k+col] * s.Amplitudes[idx[col]]
			}
			scratch[row] = sum
		}
		for sub := 0; sub < k; sub++ {
			s.Amplitudes[idx[sub]] = scratch[sub]
		}
	}
	return nil
}

// Probabilities returns the computational-basis probability of each basis
// state.
func (s *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(s.Amplitudes))
	for i, amp := range s.Amplitudes {
		probs[i] = real(amp * cmplx.Conj(amp))
	}
	return probs
}

// checkTargets validates a target list against a gate's arity and the
// register size.
func checkTargets(g Gate, targets []int, numQubits int) error {
	if len(targets) != g.Arity {
		return fmt.Errorf("sim: gate %s wants %d targets, got %d: %w",
			g.Name, g.Arity, len(targets), ErrInvalidTarget)
	}
	for i, q := range targets {
		if q < 0 || q >= numQubits {
			return fmt.Errorf("sim: target q[%d] out of range [0,%d): %w",
				q, numQubits, ErrInvalidTarget)
		}
		for _, prev := range targets[:i] {
			if prev == q {
				return fmt.Errorf("sim: target q[%d] repeated: %w", q, ErrInvalidTarget)
			}
		}
	}
	return nil
}
