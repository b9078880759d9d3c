package sim

import (
	"math"
	"math/cmplx"
)

// DensityMatrix is a mixed quantum state: a 2^N x 2^N Hermitian, trace-1,
// positive-semidefinite complex matrix, stored row-major. A run owns its
// density matrix exclusively and mutates it in place.
type DensityMatrix struct {
	Data      []Complex
	NumQubits int
	dim       int
}

// NewDensityMatrix returns |0...0><0...0|.
func NewDensityMatrix(numQubits int) *DensityMatrix {
	dim := 1 << numQubits
	data := make([]Complex, dim*dim)
	data[0] = 1
	return &DensityMatrix{Data: data, NumQubits: numQubits, dim: dim}
}

// DensityFromStateVector returns the pure-state density matrix |ψ><ψ|.
func DensityFromStateVector(s *StateVector) *DensityMatrix {
	dim := len(s.Amplitudes)
	data := make([]Complex, dim*dim)
	for r := 0; r < dim; r++ {
		for c := 0; c < dim; c++ {
			data[r*dim+c] = s.Amplitudes[r] * cmplx.Conj(s.Amplitudes[c])
		}
	}
	return &DensityMatrix{Data: data, NumQubits: s.NumQubits, dim: dim}
}

// Dim returns the matrix dimension 2^NumQubits.
func (d *DensityMatrix) Dim() int { return d.dim }

// Trace returns the trace of the matrix.
func (d *DensityMatrix) Trace() Complex {
	var tr Complex
	for i := 0; i < d.dim; i++ {
		tr += d.Data[i*d.dim+i]
	}
	return tr
}

// Diagonal returns the real parts of the diagonal entries, the
// computational-basis probabilities.
func (d *DensityMatrix) Diagonal() []float64 {
	probs := make([]float64, d.dim)
	for i := 0; i < d.dim; i++ {
		probs[i] = real(d.Data[i*d.dim+i])
	}
	return probs
}

// ApplyUnitary performs rho' = U rho U† over the target qubits.
func (d *DensityMatrix) ApplyUnitary(g Gate, targets []int) error {
	if err := checkTargets(g, targets, d.NumQubits); err != nil {
		return err
	}
	d.leftApply(g.Matrix, g.Arity, targets)
	d.rightApplyDagger(g.Matrix, g.Arity, targets)
	return nil
}

// leftApply computes rho <- M rho, with M acting on the target qubits only.
func (d *DensityMatrix) leftApply(m []Complex, arity int, targets []int) {
	k := 1 << arity
	mask := targetMask(targets)
	idx := make([]int, k)
	scratch := make([]Complex, k)

	for base := 0; base < d.dim; base++ {
		if base&mask != 0 {
			continue
		}
		for sub := 0; sub < k; sub++ {
			idx[sub] = expandIndex(base, sub, targets)
		}
		for c := 0; c < d.dim; c++ {
			for row := 0; row < k; row++ {
				var sum Complex
				for col := 0; col < k; col++ {
					sum += m[row*k+col] * d.Data[idx[col]*d.dim+c]
				}
				scratch[row] = sum
			}
			for sub := 0; sub < k; sub++ {
				d.Data[idx[sub]*d.dim+c] = scratch[sub]
			}
		}
	}
}

// rightApplyDagger computes rho <- rho M†, with M acting on the target
// qubits only.
func (d *DensityMatrix) rightApplyDagger(m []Complex, arity int, targets []int) {
	k := 1 << arity
	mask := targetMask(targets)
	idx := make([]int, k)
	scratch := make([]Complex, k)

	for base := 0; base < d.dim; base++ {
		if base&mask != 0 {
			continue
		}
		for sub := 0; sub < k; sub++ {
			idx[sub] = expandIndex(base, sub, targets)
		}
		for r := 0; r < d.dim; r++ {
			// (rho M†)[r, idx[row]] = sum_col rho[r, idx[col]] * conj(M[row, col])
			for row := 0; row < k; row++ {
				var sum Complex
				for col := 0; col < k; col++ {
					sum += d.Data[r*d.dim+idx[col]] * cmplx.Conj(m[row*k+col])
				}
				scratch[row] = sum
			}
			for sub := 0; sub < k; sub++ {
				d.Data[r*d.dim+idx[sub]] = scratch[sub]
			}
		}
	}
}

// ApplyChannel performs rho' = sum_i K_i rho K_i† over the target qubits.
func (d *DensityMatrix) ApplyChannel(ch *Channel, targets []int) error {
	probe := Gate{Name: ch.Name, Arity: ch.Arity}
	if err := checkTargets(probe, targets, d.NumQubits); err != nil {
		return err
	}
	acc := make([]Complex, len(d.Data))
	orig := make([]Complex, len(d.Data))
	copy(orig, d.Data)

	for _, kraus := range ch.Kraus {
		copy(d.Data, orig)
		d.leftApply(kraus, ch.Arity, targets)
		d.rightApplyDagger(kraus, ch.Arity, targets)
		for i, v := range d.Data {
			acc[i] += v
		}
	}
	copy(d.Data, acc)
	return nil
}

// Drift returns the worst numerical violation of the density-matrix
// invariants: distance of the trace from 1, and hermiticity asymmetry.
func (d *DensityMatrix) Drift() float64 {
	drift := cmplx.Abs(d.Trace() - 1)
	for r := 0; r < d.dim; r++ {
		for c := r; c < d.dim; c++ {
			asym := cmplx.Abs(d.Data[r*d.dim+c] - cmplx.Conj(d.Data[c*d.dim+r]))
			if asym > drift {
				drift = asym
			}
		}
	}
	return drift
}

// Reproject corrects numerical drift by re-hermitizing the matrix and
// renormalizing its trace. This is the recovery action for drift: corrective,
// never fatal.
func (d *DensityMatrix) Reproject() {
	for r := 0; r < d.dim; r++ {
		for c := r; c < d.dim; c++ {
			avg := (d.Data[r*d.dim+c] + cmplx.Conj(d.Data[c*d.dim+r])) / 2
			d.Data[r*d.dim+c] = avg
			d.Data[c*d.dim+r] = cmplx.Conj(avg)
		}
	}
	tr := real(d.Trace())
	if math.Abs(tr) < Tolerance {
		return
	}
	scale := complex(1/tr, 0)
	for i := range d.Data {
		d.Data[i] *= scale
	}
}
