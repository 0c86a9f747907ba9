package contract

import "go.uber.org/atomic"

// counters holds a contract's live counters. They are updated atomically so
// concurrent calls through the same contract never race.
type counters struct {
	calls            atomic.Int64
	inputViolations  atomic.Int64
	outputViolations atomic.Int64
	predicateErrors  atomic.Int64
}

// snapshot reads the counters into an immutable Stats value.
func (c *counters) snapshot() Stats {
	return Stats{
		Calls:            c.calls.Load(),
		InputViolations:  c.inputViolations.Load(),
		OutputViolations: c.outputViolations.Load(),
		PredicateErrors:  c.predicateErrors.Load(),
	}
}

// Stats is a point-in-time snapshot of a contract's activity: how many calls
// went through it, how many failed an input or output check, and how many
// checks were aborted by a predicate's own error.
type Stats struct {
	Calls            int64 `json:"calls"`
	InputViolations  int64 `json:"inputViolations"`
	OutputViolations int64 `json:"outputViolations"`
	PredicateErrors  int64 `json:"predicateErrors"`
}

// Violations returns the combined count of input and output violations.
func (s Stats) Violations() int64 {
	return s.InputViolations + s.OutputViolations
}
