package backend

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/abawan7/quantum-entanglement-and-decoherence-simulator/internal/qasm"
	"github.com/abawan7/quantum-entanglement-and-decoherence-simulator/internal/sim"
)

// Local executes requests on the in-process simulator. The zero value is
// usable; attach a logger to see drift corrections.
type Local struct {
	Logger zerolog.Logger
}

// NewLocal returns a local simulator backend.
func NewLocal(logger zerolog.Logger) *Local {
	return &Local{Logger: logger}
}

func (l *Local) Name() string { return "simulator" }

// Submit parses the request payload, runs it, and samples the requested
// shots. Request noise overrides any noise directives embedded in the QASM.
func (l *Local) Submit(ctx context.Context, req *Request) (sim.Counts, error) {
	program, err := qasm.Parse(req.QASM)
	if err != nil {
		return nil, fatalError("bad_circuit", "parse: %v", err)
	}

	noise, err := req.Noise.NoiseModel()
	if err != nil {
		return nil, fatalError("bad_noise", "noise model: %v", err)
	}
	if noise == nil {
		noise, err = program.NoiseModel()
		if err != nil {
			return nil, fatalError("bad_noise", "noise directives: %v", err)
		}
	}

	opts := []sim.RunOption{sim.WithLogger(l.Logger)}
	if noise != nil {
		opts = append(opts, sim.WithNoise(noise))
	}
	if req.Seed != nil {
		opts = append(opts, sim.WithSeed(*req.Seed))
	}

	run := sim.NewRun(program.Circuit, opts...)
	if err := run.Execute(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, transientError("interrupted", "execute: %v", err)
		}
		return nil, fatalError("execute_failed", "execute: %v", err)
	}

	counts, err := run.Sample(req.Shots)
	if err != nil {
		return nil, fatalError("sample_failed", "sample: %v", err)
	}

	l.Logger.Debug().
		Str("id", req.ID).
		Int("shots", req.Shots).
		Int("drift_fixes", run.DriftFixes()).
		Msg("local run complete")
	return counts, nil
}
