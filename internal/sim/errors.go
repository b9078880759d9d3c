package sim

import "errors"

// Caller-input errors. These are reported immediately and never retried.
var (
	// ErrInvalidTarget is returned when a gate or measurement references a
	// qubit index outside [0, NumQubits), or lists the same qubit twice
	// within one multi-qubit gate.
	ErrInvalidTarget = errors.New("sim: invalid target qubit")

	// ErrDuplicateBit is returned when a measurement assigns a classical bit
	// that is already assigned to another qubit.
	ErrDuplicateBit = errors.New("sim: classical bit already assigned")

	// ErrCircuitFrozen is returned when a circuit is mutated after Seal.
	ErrCircuitFrozen = errors.New("sim: circuit is sealed")

	// ErrNotReady is returned when sampling is attempted before the run
	// has completed.
	ErrNotReady = errors.New("sim: run has not completed")

	// ErrInvalidShotCount is returned when Sample is called with shots < 1.
	ErrInvalidShotCount = errors.New("sim: shot count must be positive")

	// ErrInvalidChannel is returned at channel construction when the Kraus
	// operators do not satisfy the completeness relation.
	ErrInvalidChannel = errors.New("sim: kraus operators do not satisfy completeness")

	// ErrNonUnitary is returned when a custom gate matrix is not unitary
	// within tolerance.
	ErrNonUnitary = errors.New("sim: gate matrix is not unitary")

	// ErrAlreadyRun is returned when Execute is called on a run that has
	// already left the sealed state.
	ErrAlreadyRun = errors.New("sim: run already executed")
)
