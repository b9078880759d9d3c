package qasm

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abawan7/quantum-entanglement-and-decoherence-simulator/internal/sim"
)

const bellQASM = `OPENQASM 2.0;
include "qelib1.inc";

qreg q[2];
creg c[2];

h q[0];
cx q[0], q[1];
measure q[0] -> c[0];
measure q[1] -> c[1];`

func TestParseBell(t *testing.T) {
	p, err := Parse(bellQASM)
	require.NoError(t, err)

	require.Equal(t, 2, p.Circuit.NumQubits())
	ops := p.Circuit.Operations()
	require.Len(t, ops, 2)
	assert.Equal(t, "H", ops[0].Gate.Name)
	assert.Equal(t, []int{0}, ops[0].Targets)
	assert.Equal(t, "CX", ops[1].Gate.Name)
	assert.Equal(t, []int{0, 1}, ops[1].Targets)

	ms := p.Circuit.Measurements()
	require.Len(t, ms, 2)
	assert.Equal(t, sim.Measurement{Qubit: 0, Cbit: 0}, ms[0])
	assert.Equal(t, sim.Measurement{Qubit: 1, Cbit: 1}, ms[1])
	assert.Empty(t, p.Noise)
}

func TestParseNoiseDirectives(t *testing.T) {
	qasm := `qreg q[2];
// noise depolarizing q[0] param=0.02
// noise depolarizing q[1] param=0.02
h q[0];
cx q[0], q[1];`

	p, err := Parse(qasm)
	require.NoError(t, err)
	require.Len(t, p.Noise, 2)
	assert.Equal(t, Directive{Type: "depolarizing", Qubit: 0, Param: 0.02}, p.Noise[0])

	model, err := p.NoiseModel()
	require.NoError(t, err)
	require.NotNil(t, model)
	assert.Equal(t, sim.PolicyUniform, model.Policy)
	require.Len(t, model.PerQubit, 2)
	assert.Equal(t, "depolarizing", model.PerQubit[0].Name)
	assert.Equal(t, "depolarizing", model.PerQubit[1].Name)
}

func TestNoiseDirectiveAffectsOnlyNamedQubit(t *testing.T) {
	// Full depolarization declared on q[1] only: q[0] stays pure, so an X on
	// q[0] yields a deterministic measurement there.
	qasm := `qreg q[2];
// noise depolarizing q[1] param=1
x q[0];`

	p, err := Parse(qasm)
	require.NoError(t, err)
	model, err := p.NoiseModel()
	require.NoError(t, err)

	run := sim.NewRun(p.Circuit, sim.WithNoise(model), sim.WithSeed(7))
	require.NoError(t, run.Execute(context.Background()))
	counts, err := run.Sample(1000)
	require.NoError(t, err)
	assert.Equal(t, 1000, counts["10"])
}

func TestNoiseDirectiveOutsideRegisterRejected(t *testing.T) {
	qasm := `qreg q[2];
// noise depolarizing q[5] param=0.1
h q[0];`

	p, err := Parse(qasm)
	require.NoError(t, err)
	_, err = p.NoiseModel()
	assert.ErrorIs(t, err, sim.ErrInvalidTarget)
}

func TestParseMixedNoiseDirectivesRejected(t *testing.T) {
	qasm := `qreg q[1];
// noise depolarizing q[0] param=0.02
// noise phase_damping q[0] param=0.1
h q[0];`

	p, err := Parse(qasm)
	require.NoError(t, err)
	_, err = p.NoiseModel()
	assert.Error(t, err)
}

func TestParseParameterizedGates(t *testing.T) {
	qasm := `qreg q[2];
rx(pi/2) q[0];
ry(3*pi/4) q[1];
rz(-pi) q[0];
p(0.25) q[1];`

	p, err := Parse(qasm)
	require.NoError(t, err)

	ops := p.Circuit.Operations()
	require.Len(t, ops, 4)
	assert.InDelta(t, math.Pi/2, ops[0].Gate.Params[0], 1e-10)
	assert.InDelta(t, 3*math.Pi/4, ops[1].Gate.Params[0], 1e-10)
	assert.InDelta(t, -math.Pi, ops[2].Gate.Params[0], 1e-10)
	assert.InDelta(t, 0.25, ops[3].Gate.Params[0], 1e-10)
}

func TestParseErrors(t *testing.T) {
	t.Run("gate before qreg", func(t *testing.T) {
		_, err := Parse("h q[0];")
		assert.ErrorIs(t, err, ErrNoRegister)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Parse("")
		assert.ErrorIs(t, err, ErrNoRegister)
	})

	t.Run("unknown construct", func(t *testing.T) {
		_, err := Parse("qreg q[2];\nteleport q[0] q[1];")
		assert.ErrorIs(t, err, ErrSyntax)
	})

	t.Run("target outside register", func(t *testing.T) {
		_, err := Parse("qreg q[2];\nh q[5];")
		assert.ErrorIs(t, err, sim.ErrInvalidTarget)
	})

	t.Run("duplicate classical bit", func(t *testing.T) {
		_, err := Parse("qreg q[2];\nmeasure q[0] -> c[0];\nmeasure q[1] -> c[0];")
		assert.ErrorIs(t, err, sim.ErrDuplicateBit)
	})
}

func TestRoundTrip(t *testing.T) {
	qasm := `qreg q[4];
// noise depolarizing q[0] param=0.02
h q[0];
cx q[0], q[1];
cx q[1], q[2];
cx q[2], q[3];
rx(pi/2) q[3];
measure q[0] -> c[0];
measure q[1] -> c[1];`

	p, err := Parse(qasm)
	require.NoError(t, err)

	printed := Print(p)
	assert.Contains(t, printed, "OPENQASM 2.0;")
	assert.Contains(t, printed, "qreg q[4];")
	assert.Contains(t, printed, "rx(pi/2) q[3];")
	assert.Contains(t, printed, "// noise depolarizing q[0] param=0.02")

	p2, err := Parse(printed)
	require.NoError(t, err)

	require.Len(t, p2.Circuit.Operations(), len(p.Circuit.Operations()))
	for i, op := range p.Circuit.Operations() {
		got := p2.Circuit.Operations()[i]
		assert.Equal(t, op.Gate.Name, got.Gate.Name, "op %d", i)
		assert.Equal(t, op.Targets, got.Targets, "op %d", i)
	}
	assert.Equal(t, p.Circuit.Measurements(), p2.Circuit.Measurements())
	assert.Equal(t, p.Noise, p2.Noise)
}

func TestParseParamExpr(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"1.5707", 1.5707, true},
		{"-0.5", -0.5, true},
		{"pi", math.Pi, true},
		{"PI", math.Pi, true},
		{"pi/2", math.Pi / 2, true},
		{"2*pi", 2 * math.Pi, true},
		{"3pi/4", 3 * math.Pi / 4, true},
		{"-pi/2", -math.Pi / 2, true},
		{" 3 * pi / 4 ", 3 * math.Pi / 4, true},
		{"", 0, false},
		{"abc", 0, false},
		{"pi/0", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseParamExpr(tt.input)
		require.Equal(t, tt.ok, ok, "parseParamExpr(%q)", tt.input)
		if ok {
			assert.InDelta(t, tt.want, got, 1e-10, "parseParamExpr(%q)", tt.input)
		}
	}
}

func TestFormatParam(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{math.Pi, "pi"},
		{math.Pi / 2, "pi/2"},
		{3 * math.Pi / 4, "3*pi/4"},
		{-math.Pi, "-pi"},
		{2 * math.Pi, "2*pi"},
		{1.5, "1.5"},
		{0, "0"},
		{0.01, "0.01"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatParam(tt.input), "formatParam(%g)", tt.input)
	}
}

func TestPrintedProgramExecutes(t *testing.T) {
	p, err := Parse(bellQASM)
	require.NoError(t, err)

	p2, err := Parse(Print(p))
	require.NoError(t, err)

	if !strings.Contains(Print(p2), "h q[0];") {
		t.Fatalf("printed program lost the Hadamard:\n%s", Print(p2))
	}
}
