package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	root.AddCommand(newRunCmd())

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestRunCmd_DemoCircuit(t *testing.T) {
	out, err := executeCmd(t, "run", "--shots", "200", "--seed", "7")
	require.NoError(t, err)

	assert.Contains(t, out, "0000")
	assert.Contains(t, out, "1111")
	assert.Contains(t, out, "200")
}

func TestRunCmd_ChartOutput(t *testing.T) {
	out, err := executeCmd(t, "run", "--shots", "100", "--seed", "3", "--chart")
	require.NoError(t, err)

	assert.Contains(t, out, "Simulated")
	assert.Contains(t, out, "█")
}

func TestRunCmd_CircuitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bell.qasm")
	qasm := "OPENQASM 2.0;\nqreg q[2];\ncreg c[2];\nh q[0];\ncx q[0],q[1];\nmeasure q[0] -> c[0];\nmeasure q[1] -> c[1];\n"
	require.NoError(t, os.WriteFile(path, []byte(qasm), 0o644))

	out, err := executeCmd(t, "run", "--shots", "500", "--seed", "11", path)
	require.NoError(t, err)

	assert.Contains(t, out, "00")
	assert.Contains(t, out, "11")
	assert.NotContains(t, out, "01")
}

func TestRunCmd_RejectsMalformedCircuit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.qasm")
	require.NoError(t, os.WriteFile(path, []byte("h q[0];\n"), 0o644))

	_, err := executeCmd(t, "run", path)
	require.Error(t, err)
}

func TestBuildRequest_NoiseFlags(t *testing.T) {
	cmd := newRunCmd()
	require.NoError(t, cmd.Flags().Set("noise", "0.05"))
	require.NoError(t, cmd.Flags().Set("two-qubit-noise", "0.1"))
	require.NoError(t, cmd.Flags().Set("seed", "42"))

	req, err := buildRequest(cmd, nil)
	require.NoError(t, err)

	require.NotNil(t, req.Noise)
	assert.Equal(t, "per-arity", req.Noise.Policy)
	assert.Equal(t, 0.05, req.Noise.SingleQubit)
	assert.Equal(t, 0.1, req.Noise.TwoQubit)
	require.NotNil(t, req.Seed)
	assert.Equal(t, int64(42), *req.Seed)
}

func TestBuildRequest_NoNoiseByDefault(t *testing.T) {
	req, err := buildRequest(newRunCmd(), nil)
	require.NoError(t, err)

	assert.Nil(t, req.Noise)
	assert.Nil(t, req.Seed)
	assert.Equal(t, 1024, req.Shots)
}
