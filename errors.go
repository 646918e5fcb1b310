package sim

import "fmt"

// LookupError reports that a hierarchical path (used by mirror-signal
// resolution or VCD path inclusion/exclusion) named a module or signal
// that does not exist. The message phrasing matches the tool this
// kernel supersedes, so a user migrating an existing design recognizes
// the failure.
type LookupError struct {
	// Path is the full slash-delimited path that was being resolved.
	Path string
	// Segment is the specific name within Path that could not be found.
	Segment string
	// Kind is either "hw_module" or "signal".
	Kind string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("sim: can't find %s %q (resolving path %q)", e.Kind, e.Segment, e.Path)
}

// TraceError wraps a failure to open or write the VCD trace file.
type TraceError struct {
	Filename string
	Cause    error
}

func (e *TraceError) Error() string {
	return fmt.Sprintf("sim: vcd trace %q: %v", e.Filename, e.Cause)
}

func (e *TraceError) Unwrap() error { return e.Cause }

// ProcessPanicError wraps a panic value recovered from a process body
// that was not an explicit Process.Finish call. Grounded on the
// teacher's PanicError (eventloop/promisify.go): a process body failure
// is fatal to the whole run (spec §7), so the scheduler unwinds,
// attempts to flush the trace, and surfaces this error from Simulate.
type ProcessPanicError struct {
	// Process names the process whose body panicked, for diagnostics.
	Process string
	// Value is the recovered panic value.
	Value any
}

func (e *ProcessPanicError) Error() string {
	return fmt.Sprintf("sim: process %q panicked: %v", e.Process, e.Value)
}

// Unwrap returns the underlying error if the panic value is an error,
// enabling errors.Is/errors.As through the cause chain.
func (e *ProcessPanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// CombinationalLoopError is returned when a single time step's delta
// phase fails to settle within the bound configured by
// WithMaxDeltaRounds. The original tool has no such bound (see
// SPEC_FULL.md §4, item 3); this is an addition for hosts that cannot afford
// to hang on a user's combinational loop.
type CombinationalLoopError struct {
	Rounds int
	Time   int
}

func (e *CombinationalLoopError) Error() string {
	return fmt.Sprintf("sim: delta phase did not settle after %d rounds at time %d (combinational loop?)", e.Rounds, e.Time)
}
