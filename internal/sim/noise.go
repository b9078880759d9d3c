package sim

import "fmt"

// NoisePolicy selects how channels are attached to multi-qubit gates. The
// two policies exist because common practice differs: some noise models
// depolarize every touched qubit with the same single-qubit channel, others
// use a dedicated two-qubit channel for two-qubit gates.
type NoisePolicy int

const (
	// PolicyUniform applies the single-qubit channel independently to every
	// qubit a noisy gate touches, regardless of arity.
	PolicyUniform NoisePolicy = iota

	// PolicyPerArity applies the single-qubit channel after single-qubit
	// gates and the two-qubit channel after two-qubit gates.
	PolicyPerArity
)

func (p NoisePolicy) String() string {
	switch p {
	case PolicyUniform:
		return "uniform"
	case PolicyPerArity:
		return "per-arity"
	}
	return fmt.Sprintf("NoisePolicy(%d)", int(p))
}

// NoiseModel injects a channel after each gate whose name is in the noisy
// gate set. An empty set marks every gate as noisy.
//
// When PerQubit is non-nil it replaces Single: the channel keyed by a qubit
// index fires only on that qubit, and qubits without an entry receive no
// single-qubit injection at all.
type NoiseModel struct {
	Policy   NoisePolicy
	Single   *Channel
	Double   *Channel
	PerQubit map[int]*Channel
	Gates    map[string]struct{}
}

// DepolarizingNoise builds a depolarizing noise model. pDouble is only used
// under PolicyPerArity; gates restricts injection to the named gates (none
// means all).
func DepolarizingNoise(policy NoisePolicy, pSingle, pDouble float64, gates ...string) (*NoiseModel, error) {
	single, err := Depolarizing(pSingle)
	if err != nil {
		return nil, err
	}
	m := &NoiseModel{Policy: policy, Single: single}
	if policy == PolicyPerArity {
		double, err := DepolarizingTwoQubit(pDouble)
		if err != nil {
			return nil, err
		}
		m.Double = double
	}
	for _, g := range gates {
		if m.Gates == nil {
			m.Gates = make(map[string]struct{})
		}
		m.Gates[normalizeGateName(g)] = struct{}{}
	}
	return m, nil
}

// ChannelNoise builds a noise model around an arbitrary single-qubit channel
// under PolicyUniform.
func ChannelNoise(ch *Channel, gates ...string) (*NoiseModel, error) {
	if ch == nil || ch.Arity != 1 {
		return nil, fmt.Errorf("sim: uniform noise needs a single-qubit channel: %w", ErrInvalidChannel)
	}
	m := &NoiseModel{Policy: PolicyUniform, Single: ch}
	for _, g := range gates {
		if m.Gates == nil {
			m.Gates = make(map[string]struct{})
		}
		m.Gates[normalizeGateName(g)] = struct{}{}
	}
	return m, nil
}

// PerQubitNoise builds a noise model under PolicyUniform where each listed
// qubit gets its own single-qubit channel and unlisted qubits stay clean.
func PerQubitNoise(channels map[int]*Channel, gates ...string) (*NoiseModel, error) {
	if len(channels) == 0 {
		return nil, fmt.Errorf("sim: per-qubit noise needs at least one channel: %w", ErrInvalidChannel)
	}
	perQubit := make(map[int]*Channel, len(channels))
	for q, ch := range channels {
		if q < 0 {
			return nil, fmt.Errorf("sim: per-qubit noise on qubit %d: %w", q, ErrInvalidTarget)
		}
		if ch == nil || ch.Arity != 1 {
			return nil, fmt.Errorf("sim: per-qubit noise on qubit %d needs a single-qubit channel: %w", q, ErrInvalidChannel)
		}
		perQubit[q] = ch
	}
	m := &NoiseModel{Policy: PolicyUniform, PerQubit: perQubit}
	for _, g := range gates {
		if m.Gates == nil {
			m.Gates = make(map[string]struct{})
		}
		m.Gates[normalizeGateName(g)] = struct{}{}
	}
	return m, nil
}

// Applies reports whether the gate name is in the noisy set.
func (m *NoiseModel) Applies(gateName string) bool {
	if len(m.Gates) == 0 {
		return true
	}
	_, ok := m.Gates[normalizeGateName(gateName)]
	return ok
}

// injection is one channel application scheduled after a gate.
type injection struct {
	channel *Channel
	targets []int
}

// injectionsFor returns the channel applications the model schedules after
// the given operation. The order over targets is fixed (ascending position in
// the gate's target list) so runs are reproducible.
func (m *NoiseModel) injectionsFor(op Operation) []injection {
	if !m.Applies(op.Gate.Name) {
		return nil
	}
	switch {
	case m.Policy == PolicyPerArity && op.Gate.Arity == 2 && m.Double != nil:
		return []injection{{channel: m.Double, targets: op.Targets}}
	default:
		out := make([]injection, 0, len(op.Targets))
		for _, q := range op.Targets {
			ch := m.Single
			if m.PerQubit != nil {
				ch = m.PerQubit[q]
			}
			if ch == nil {
				continue
			}
			out = append(out, injection{channel: ch, targets: []int{q}})
		}
		return out
	}
}
