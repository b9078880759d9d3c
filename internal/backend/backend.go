// Package backend abstracts circuit execution targets behind a single
// submit(circuit) -> outcome-mapping-or-error contract. The local backend
// runs the in-process simulator; the remote backend talks to an HTTP
// execution service. Sessions add retry with backoff on top.
package backend

import (
	"context"

	"github.com/google/uuid"

	"github.com/abawan7/quantum-entanglement-and-decoherence-simulator/internal/sim"
)

// NoiseSpec is the wire description of a noise model.
type NoiseSpec struct {
	Policy      string   `json:"policy"` // "uniform" or "per-arity"
	SingleQubit float64  `json:"single_qubit"`
	TwoQubit    float64  `json:"two_qubit,omitempty"`
	Gates       []string `json:"gates,omitempty"` // empty means every gate is noisy
}

// Request is a complete circuit execution request: the QASM payload, the
// shot count, and an optional noise model. The ID identifies the submission
// in logs on both ends.
type Request struct {
	ID    string     `json:"id"`
	QASM  string     `json:"qasm"`
	Shots int        `json:"shots"`
	Seed  *int64     `json:"seed,omitempty"`
	Noise *NoiseSpec `json:"noise,omitempty"`
}

// NewRequest assigns a fresh submission ID.
func NewRequest(qasm string, shots int) *Request {
	return &Request{ID: uuid.NewString(), QASM: qasm, Shots: shots}
}

// Backend executes circuits. Submit blocks until the outcome mapping is
// available or the context expires; implementations make no latency
// guarantees, so callers own the deadline.
type Backend interface {
	Name() string
	Submit(ctx context.Context, req *Request) (sim.Counts, error)
}

// NoiseModel converts the wire description into a simulator noise model.
// A nil spec means a noiseless run.
func (s *NoiseSpec) NoiseModel() (*sim.NoiseModel, error) {
	if s == nil {
		return nil, nil
	}
	policy := sim.PolicyUniform
	if s.Policy == "per-arity" {
		policy = sim.PolicyPerArity
	}
	return sim.DepolarizingNoise(policy, s.SingleQubit, s.TwoQubit, s.Gates...)
}
