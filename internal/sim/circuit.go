package sim

import "fmt"

// Operation is a gate placed on specific target qubits.
type Operation struct {
	Gate    Gate
	Targets []int
}

// Measurement maps a qubit onto a classical bit.
type Measurement struct {
	Qubit int
	Cbit  int
}

// Circuit accumulates an ordered list of gate operations and measurement
// assignments over a fixed qubit register. Once sealed, the operation list
// is immutable; a run only ever starts from a sealed circuit.
type Circuit struct {
	numQubits int
	ops       []Operation
	measures  []Measurement
	cbits     map[int]int // classical bit -> measured qubit
	sealed    bool
}

// NewCircuit returns an empty circuit over numQubits qubits.
func NewCircuit(numQubits int) (*Circuit, error) {
	if numQubits < 1 {
		return nil, fmt.Errorf("sim: circuit needs at least one qubit: %w", ErrInvalidTarget)
	}
	return &Circuit{numQubits: numQubits, cbits: make(map[int]int)}, nil
}

// NumQubits returns the register size.
func (c *Circuit) NumQubits() int { return c.numQubits }

// AddGate appends a gate operation. Targets must be distinct and inside
// [0, NumQubits).
func (c *Circuit) AddGate(g Gate, targets ...int) error {
	if c.sealed {
		return ErrCircuitFrozen
	}
	if err := checkTargets(g, targets, c.numQubits); err != nil {
		return err
	}
	ts := make([]int, len(targets))
	copy(ts, targets)
	c.ops = append(c.ops, Operation{Gate: g, Targets: ts})
	return nil
}

// AddMeasurement records that the qubit's outcome lands on the given
// classical bit. Each classical bit can be assigned once.
func (c *Circuit) AddMeasurement(qubit, cbit int) error {
	if c.sealed {
		return ErrCircuitFrozen
	}
	if qubit < 0 || qubit >= c.numQubits {
		return fmt.Errorf("sim: measured qubit q[%d] out of range [0,%d): %w",
			qubit, c.numQubits, ErrInvalidTarget)
	}
	if cbit < 0 {
		return fmt.Errorf("sim: classical bit c[%d] is negative: %w", cbit, ErrInvalidTarget)
	}
	if prev, ok := c.cbits[cbit]; ok {
		return fmt.Errorf("sim: c[%d] already holds q[%d]: %w", cbit, prev, ErrDuplicateBit)
	}
	c.cbits[cbit] = qubit
	c.measures = append(c.measures, Measurement{Qubit: qubit, Cbit: cbit})
	return nil
}

// Seal freezes the circuit. Sealing twice is a no-op.
func (c *Circuit) Seal() {
	c.sealed = true
}

// Sealed reports whether the circuit is frozen.
func (c *Circuit) Sealed() bool { return c.sealed }

// Operations returns the ordered operation list. The returned slice is
// shared; callers must not mutate it.
func (c *Circuit) Operations() []Operation { return c.ops }

// Measurements returns the recorded qubit-to-classical-bit assignments in
// the order they were added. When empty, a run samples every qubit with
// c[i] = q[i].
func (c *Circuit) Measurements() []Measurement { return c.measures }

// NumCbits returns the width of the classical outcome register: the highest
// assigned classical bit plus one, or NumQubits when no measurement was
// recorded.
func (c *Circuit) NumCbits() int {
	if len(c.measures) == 0 {
		return c.numQubits
	}
	maxBit := 0
	for cbit := range c.cbits {
		if cbit > maxBit {
			maxBit = cbit
		}
	}
	return maxBit + 1
}

// effectiveMeasurements returns the measurement list, defaulting to
// measure-all when none was recorded.
func (c *Circuit) effectiveMeasurements() []Measurement {
	if len(c.measures) > 0 {
		return c.measures
	}
	all := make([]Measurement, c.numQubits)
	for q := 0; q < c.numQubits; q++ {
		all[q] = Measurement{Qubit: q, Cbit: q}
	}
	return all
}
