// Package qasm reads and writes the OPENQASM 2.0 subset the simulator
// supports, including a comment extension for noise directives. The printed
// form doubles as the wire payload for remote submission.
package qasm

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/abawan7/quantum-entanglement-and-decoherence-simulator/internal/sim"
)

var (
	// ErrSyntax is returned for lines that match no supported construct.
	ErrSyntax = errors.New("qasm: syntax error")

	// ErrNoRegister is returned when gates appear without a qreg declaration.
	ErrNoRegister = errors.New("qasm: missing qreg declaration")
)

// Pre-compiled regexps for QASM parsing.
var (
	singleGateRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	singleGateParamRegex = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+q\[(\d+)\];?$`)
	twoQubitRegex        = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	measureRegex         = regexp.MustCompile(`^measure\s+q\[(\d+)\]\s*->\s*c\[(\d+)\];?$`)
	qregRegex            = regexp.MustCompile(`qreg\s+q\[(\d+)\]`)
	noiseRegex           = regexp.MustCompile(`^//\s*noise\s+(\w+)\s+q\[(\d+)\](?:\s+param=(` + paramPattern + `))?$`)
	barrierRegex         = regexp.MustCompile(`^barrier\s+`)
)

// Directive is a noise annotation attached to the circuit via the
// "// noise <type> q[i] param=<p>" comment extension.
type Directive struct {
	Type  string
	Qubit int
	Param float64
}

// Program is a parsed circuit plus its noise directives.
type Program struct {
	Circuit *sim.Circuit
	Noise   []Directive
}

// Parse reads QASM text into a Program. Gates are validated against the
// declared register as they are added, so malformed targets surface the sim
// package's caller-input errors.
func Parse(text string) (*Program, error) {
	lines := strings.Split(text, "\n")

	var circuit *sim.Circuit
	var noise []Directive

	for lineNo, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if matches := noiseRegex.FindStringSubmatch(line); matches != nil {
			qubit, _ := strconv.Atoi(matches[2])
			param := 0.01
			if matches[3] != "" {
				if p, ok := parseParamExpr(matches[3]); ok {
					param = p
				}
			}
			noise = append(noise, Directive{Type: matches[1], Qubit: qubit, Param: param})
			continue
		}
		if strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "OPENQASM") || strings.HasPrefix(line, "include") {
			continue
		}
		if strings.HasPrefix(line, "qreg") {
			matches := qregRegex.FindStringSubmatch(line)
			if matches == nil {
				return nil, fmt.Errorf("qasm: line %d: %q: %w", lineNo+1, line, ErrSyntax)
			}
			n, _ := strconv.Atoi(matches[1])
			c, err := sim.NewCircuit(n)
			if err != nil {
				return nil, fmt.Errorf("qasm: line %d: %w", lineNo+1, err)
			}
			circuit = c
			continue
		}
		if strings.HasPrefix(line, "creg") {
			// The classical register is derived from measurements.
			continue
		}
		if barrierRegex.MatchString(line) || strings.HasPrefix(line, "barrier;") {
			continue
		}

		if circuit == nil {
			return nil, fmt.Errorf("qasm: line %d: %q: %w", lineNo+1, line, ErrNoRegister)
		}

		if matches := measureRegex.FindStringSubmatch(line); matches != nil {
			qubit, _ := strconv.Atoi(matches[1])
			cbit, _ := strconv.Atoi(matches[2])
			if err := circuit.AddMeasurement(qubit, cbit); err != nil {
				return nil, fmt.Errorf("qasm: line %d: %w", lineNo+1, err)
			}
			continue
		}

		if matches := twoQubitRegex.FindStringSubmatch(line); matches != nil {
			gate, err := sim.GateByName(matches[1])
			if err != nil {
				return nil, fmt.Errorf("qasm: line %d: %w", lineNo+1, err)
			}
			q1, _ := strconv.Atoi(matches[2])
			q2, _ := strconv.Atoi(matches[3])
			if err := circuit.AddGate(gate, q1, q2); err != nil {
				return nil, fmt.Errorf("qasm: line %d: %w", lineNo+1, err)
			}
			continue
		}

		if matches := singleGateParamRegex.FindStringSubmatch(line); matches != nil {
			param, ok := parseParamExpr(matches[2])
			if !ok {
				return nil, fmt.Errorf("qasm: line %d: bad parameter %q: %w", lineNo+1, matches[2], ErrSyntax)
			}
			gate, err := sim.GateByName(matches[1], param)
			if err != nil {
				return nil, fmt.Errorf("qasm: line %d: %w", lineNo+1, err)
			}
			target, _ := strconv.Atoi(matches[3])
			if err := circuit.AddGate(gate, target); err != nil {
				return nil, fmt.Errorf("qasm: line %d: %w", lineNo+1, err)
			}
			continue
		}

		if matches := singleGateRegex.FindStringSubmatch(line); matches != nil {
			gate, err := sim.GateByName(matches[1])
			if err != nil {
				return nil, fmt.Errorf("qasm: line %d: %w", lineNo+1, err)
			}
			target, _ := strconv.Atoi(matches[2])
			if err := circuit.AddGate(gate, target); err != nil {
				return nil, fmt.Errorf("qasm: line %d: %w", lineNo+1, err)
			}
			continue
		}

		return nil, fmt.Errorf("qasm: line %d: %q: %w", lineNo+1, line, ErrSyntax)
	}

	if circuit == nil {
		return nil, ErrNoRegister
	}
	return &Program{Circuit: circuit, Noise: noise}, nil
}

// Print generates QASM 2.0 text from a program. Noise directives are emitted
// as comments since they are not standard QASM.
func Print(p *Program) string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", p.Circuit.NumQubits())
	fmt.Fprintf(&sb, "creg c[%d];\n\n", p.Circuit.NumCbits())

	for _, d := range p.Noise {
		fmt.Fprintf(&sb, "// noise %s q[%d] param=%s\n", d.Type, d.Qubit, formatParam(d.Param))
	}

	for _, op := range p.Circuit.Operations() {
		name := strings.ToLower(op.Gate.Name)
		switch {
		case len(op.Targets) == 2:
			fmt.Fprintf(&sb, "%s q[%d], q[%d];\n", name, op.Targets[0], op.Targets[1])
		case len(op.Gate.Params) > 0:
			fmt.Fprintf(&sb, "%s(%s) q[%d];\n", name, formatParam(op.Gate.Params[0]), op.Targets[0])
		default:
			fmt.Fprintf(&sb, "%s q[%d];\n", name, op.Targets[0])
		}
	}

	for _, m := range p.Circuit.Measurements() {
		fmt.Fprintf(&sb, "measure q[%d] -> c[%d];\n", m.Qubit, m.Cbit)
	}

	return sb.String()
}

// NoiseModel converts the program's directives into a simulator noise model.
// Each directive attaches its channel to exactly the qubit it names; qubits
// without a directive stay noiseless. All directives must share one channel
// type. Programs without directives return nil.
func (p *Program) NoiseModel() (*sim.NoiseModel, error) {
	if len(p.Noise) == 0 {
		return nil, nil
	}
	kind := p.Noise[0].Type
	channels := make(map[int]*sim.Channel, len(p.Noise))
	for _, d := range p.Noise {
		if d.Type != kind {
			return nil, fmt.Errorf("qasm: mixed noise directives %q and %q", kind, d.Type)
		}
		if d.Qubit >= p.Circuit.NumQubits() {
			return nil, fmt.Errorf("qasm: noise directive on q[%d] of a %d-qubit register: %w",
				d.Qubit, p.Circuit.NumQubits(), sim.ErrInvalidTarget)
		}
		ch, err := sim.ChannelByName(d.Type, d.Param)
		if err != nil {
			return nil, err
		}
		channels[d.Qubit] = ch
	}
	return sim.PerQubitNoise(channels)
}
