package sim

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityGateLeavesStateUnchanged(t *testing.T) {
	t.Run("density matrix", func(t *testing.T) {
		rho := entangledState(t)
		before := make([]Complex, len(rho.Data))
		copy(before, rho.Data)

		require.NoError(t, rho.ApplyUnitary(I, []int{1}))

		for i := range before {
			assert.InDelta(t, 0.0, cmplx.Abs(rho.Data[i]-before[i]), 1e-12)
		}
	})

	t.Run("statevector", func(t *testing.T) {
		sv := NewStateVector(2)
		require.NoError(t, sv.Apply(H, []int{0}))
		before := sv.Clone()

		require.NoError(t, sv.Apply(I, []int{1}))

		for i := range before.Amplitudes {
			assert.InDelta(t, 0.0, cmplx.Abs(sv.Amplitudes[i]-before.Amplitudes[i]), 1e-12)
		}
	})
}

func TestUnitaryApplicationMatchesStateVector(t *testing.T) {
	// The same circuit applied to both representations must yield identical
	// computational-basis distributions.
	ops := []struct {
		gate    Gate
		targets []int
	}{
		{H, []int{0}},
		{RY(math.Pi / 3), []int{2}},
		{CX, []int{0, 1}},
		{T, []int{1}},
		{CZ, []int{2, 0}},
		{SWAP, []int{1, 2}},
	}

	sv := NewStateVector(3)
	rho := NewDensityMatrix(3)
	for _, op := range ops {
		require.NoError(t, sv.Apply(op.gate, op.targets))
		require.NoError(t, rho.ApplyUnitary(op.gate, op.targets))
	}

	svProbs := sv.Probabilities()
	diag := rho.Diagonal()
	require.Len(t, diag, len(svProbs))
	for i := range svProbs {
		assert.InDelta(t, svProbs[i], diag[i], 1e-9, "basis state %d", i)
	}
	assert.InDelta(t, 1.0, real(rho.Trace()), 1e-9)

	// With no noise the evolved mixed state is exactly the pure-state
	// projector of the evolved vector, entry for entry.
	pure := DensityFromStateVector(sv)
	require.Len(t, pure.Data, len(rho.Data))
	for i := range rho.Data {
		assert.InDelta(t, real(pure.Data[i]), real(rho.Data[i]), 1e-9, "entry %d", i)
		assert.InDelta(t, imag(pure.Data[i]), imag(rho.Data[i]), 1e-9, "entry %d", i)
	}
}

func TestHadamardIsSelfInverse(t *testing.T) {
	rho := NewDensityMatrix(1)
	require.NoError(t, rho.ApplyUnitary(H, []int{0}))
	require.NoError(t, rho.ApplyUnitary(H, []int{0}))

	assert.InDelta(t, 1.0, real(rho.Data[0]), 1e-9)
	assert.InDelta(t, 0.0, cmplx.Abs(rho.Data[3]), 1e-9)
}

func TestDriftDetectionAndReprojection(t *testing.T) {
	rho := NewDensityMatrix(1)
	require.NoError(t, rho.ApplyUnitary(H, []int{0}))
	assert.LessOrEqual(t, rho.Drift(), Tolerance)

	// Push the state off the valid manifold by hand.
	rho.Data[0] += complex(1e-6, 0)
	rho.Data[1] += complex(0, 1e-6)
	assert.Greater(t, rho.Drift(), Tolerance)

	rho.Reproject()
	assert.LessOrEqual(t, rho.Drift(), Tolerance)
	assert.InDelta(t, 1.0, real(rho.Trace()), 1e-12)
}

func TestNewGateRejectsNonUnitary(t *testing.T) {
	_, err := NewGate("bad", 1, []Complex{1, 0, 0, 2})
	assert.ErrorIs(t, err, ErrNonUnitary)

	_, err = NewGate("bad", 1, []Complex{1, 0, 0})
	assert.ErrorIs(t, err, ErrNonUnitary)

	g, err := NewGate("phase", 1, []Complex{1, 0, 0, cmplx.Exp(complex(0, 0.7))})
	require.NoError(t, err)
	assert.Equal(t, 1, g.Arity)
}

func TestBuiltinGatesAreUnitary(t *testing.T) {
	gates := []Gate{I, H, X, Y, Z, S, Sdg, T, Tdg, CX, CZ, SWAP,
		RX(0.3), RY(1.1), RZ(-2.5), P(math.Pi / 5)}
	for _, g := range gates {
		assert.True(t, isUnitary(g.Matrix, 1<<g.Arity), "gate %s", g.Name)
	}
}

func TestGateByName(t *testing.T) {
	tests := []struct {
		name   string
		params []float64
		want   string
		arity  int
	}{
		{"h", nil, "H", 1},
		{"X", nil, "X", 1},
		{"sdg", nil, "SDG", 1},
		{"rx", []float64{math.Pi / 2}, "RX", 1},
		{"u1", []float64{0.4}, "P", 1},
		{"cnot", nil, "CX", 2},
		{"swap", nil, "SWAP", 2},
	}

	for _, tt := range tests {
		g, err := GateByName(tt.name, tt.params...)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, g.Name)
		assert.Equal(t, tt.arity, g.Arity)
	}

	_, err := GateByName("ccx")
	assert.Error(t, err)
}
