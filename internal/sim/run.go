package sim

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/rs/zerolog"
)

// RunState tracks a run through its life cycle. Transitions are
// one-directional: Sealed -> Executing -> Complete, with Failed as the
// terminal state of an aborted run.
type RunState int

const (
	StateSealed RunState = iota
	StateExecuting
	StateComplete
	StateFailed
)

func (s RunState) String() string {
	switch s {
	case StateSealed:
		return "sealed"
	case StateExecuting:
		return "executing"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("RunState(%d)", int(s))
}

// Run executes a sealed circuit and samples classical outcomes from the
// final state. Each run exclusively owns its state matrix and its random
// source; independent runs can execute in parallel with no shared state.
type Run struct {
	circuit *Circuit
	noise   *NoiseModel
	logger  zerolog.Logger
	rng     *rand.Rand

	state RunState
	sv    *StateVector
	rho   *DensityMatrix

	driftFixes int
}

// RunOption configures a Run.
type RunOption func(*Run)

// WithNoise attaches a noise model; the run then simulates on a density
// matrix instead of the pure-state fast path.
func WithNoise(m *NoiseModel) RunOption {
	return func(r *Run) { r.noise = m }
}

// WithSeed fixes the random source for reproducible sampling.
func WithSeed(seed int64) RunOption {
	return func(r *Run) { r.rng = rand.New(rand.NewSource(seed)) }
}

// WithLogger attaches a logger; drift corrections are reported through it.
func WithLogger(logger zerolog.Logger) RunOption {
	return func(r *Run) { r.logger = logger }
}

// NewRun seals the circuit and prepares a run over it.
func NewRun(c *Circuit, opts ...RunOption) *Run {
	c.Seal()
	r := &Run{
		circuit: c,
		logger:  zerolog.Nop(),
		state:   StateSealed,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return r
}

// State returns the current run state.
func (r *Run) State() RunState { return r.state }

// DriftFixes returns how many numerical drift corrections were applied
// during execution.
func (r *Run) DriftFixes() int { return r.driftFixes }

// Execute applies the circuit's gates, with noise channels interleaved in
// program order, to a fresh initial state. A run either completes or fails
// atomically: on error the partial state is discarded and the run cannot be
// sampled.
func (r *Run) Execute(ctx context.Context) error {
	if r.state != StateSealed {
		return ErrAlreadyRun
	}
	r.state = StateExecuting

	if err := r.execute(ctx); err != nil {
		r.sv = nil
		r.rho = nil
		r.state = StateFailed
		return err
	}
	r.state = StateComplete
	return nil
}

func (r *Run) execute(ctx context.Context) error {
	n := r.circuit.NumQubits()
	if r.noise != nil {
		r.rho = NewDensityMatrix(n)
	} else {
		r.sv = NewStateVector(n)
	}

	for i, op := range r.circuit.Operations() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.rho != nil {
			if err := r.rho.ApplyUnitary(op.Gate, op.Targets); err != nil {
				return fmt.Errorf("sim: op %d (%s): %w", i, op.Gate.Name, err)
			}
			for _, inj := range r.noise.injectionsFor(op) {
				if err := r.rho.ApplyChannel(inj.channel, inj.targets); err != nil {
					return fmt.Errorf("sim: op %d (%s) noise: %w", i, op.Gate.Name, err)
				}
			}
			r.repairDrift(i, op.Gate.Name)
		} else {
			if err := r.sv.Apply(op.Gate, op.Targets); err != nil {
				return fmt.Errorf("sim: op %d (%s): %w", i, op.Gate.Name, err)
			}
		}
	}
	return nil
}

// repairDrift renormalizes the density matrix when accumulated floating
// point error pushes it off the valid-state manifold. Logged, counted,
// never surfaced as an error.
func (r *Run) repairDrift(opIndex int, gateName string) {
	drift := r.rho.Drift()
	if drift <= Tolerance {
		return
	}
	r.rho.Reproject()
	r.driftFixes++
	r.logger.Warn().
		Int("op", opIndex).
		Str("gate", gateName).
		Float64("drift", drift).
		Msg("numerical drift corrected by reprojection")
}

// Sample draws shots independent outcomes from the final state's
// computational-basis distribution, marginalized over the measured qubits.
// The returned mapping is owned by the caller.
func (r *Run) Sample(shots int) (Counts, error) {
	if r.state != StateComplete {
		return nil, fmt.Errorf("sim: run is %s: %w", r.state, ErrNotReady)
	}
	if shots < 1 {
		return nil, fmt.Errorf("sim: shots=%d: %w", shots, ErrInvalidShotCount)
	}

	var probs []float64
	if r.rho != nil {
		probs = r.rho.Diagonal()
	} else {
		probs = r.sv.Probabilities()
	}

	measures := r.circuit.effectiveMeasurements()
	width := r.circuit.NumCbits()

	// Marginal distribution over the classical register.
	marginal := make(map[int]float64)
	for basis, p := range probs {
		if p < 0 {
			// Eigenvalue tolerance: tiny negatives are numerical noise.
			p = 0
		}
		key := 0
		for _, m := range measures {
			if basis&(1<<m.Qubit) != 0 {
				key |= 1 << m.Cbit
			}
		}
		marginal[key] += p
	}

	keys := make([]int, 0, len(marginal))
	for k := range marginal {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	cumulative := make([]float64, len(keys))
	total := 0.0
	for i, k := range keys {
		total += marginal[k]
		cumulative[i] = total
	}

	counts := make(Counts)
	for shot := 0; shot < shots; shot++ {
		x := r.rng.Float64() * total
		i := sort.SearchFloat64s(cumulative, x)
		if i >= len(keys) {
			i = len(keys) - 1
		}
		counts[bitstring(keys[i], width)]++
	}
	return counts, nil
}
