package sim

import (
	"io"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// stumpyEvent aliases the concrete Event type this kernel's structured
// logging is built on, so callers configuring WithLogger don't need to
// import stumpy themselves for the common case.
type stumpyEvent = stumpy.Event

// NewJSONLogger builds a structured logger that writes one JSON object
// per line to w, using the teacher stack's own logging backend
// (logiface over stumpy). Pass the result to WithLogger.
func NewJSONLogger(w io.Writer) *logiface.Logger[*stumpyEvent] {
	return stumpy.L.New(stumpy.L.WithStumpy(stumpy.WithWriter(w)))
}

// logQuiescent records normal termination because both the pending
// signal set and the timed queue emptied.
func logQuiescent(logger *logiface.Logger[*stumpyEvent], now int) {
	logger.Info().
		Str("reason", "quiescence").
		Int("time", now).
		Log("no more events")
}

// logFinished records normal termination via an explicit Process.Finish call.
func logFinished(logger *logiface.Logger[*stumpyEvent], now int, message string) {
	logger.Info().
		Str("reason", "finish").
		Int("time", now).
		Log(message)
}

// logProcessPanic records a process body failure that was not an
// explicit finish, immediately before it is surfaced as a
// ProcessPanicError.
func logProcessPanic(logger *logiface.Logger[*stumpyEvent], process string, now int, value any) {
	logger.Err().
		Str("process", process).
		Int("time", now).
		Interface("panic", value).
		Log("process body panicked")
}

// logDeltaRound emits a debug-level trace of one delta round, useful
// when diagnosing a combinational loop.
func logDeltaRound(logger *logiface.Logger[*stumpyEvent], now int, round int, pending int, woken int) {
	logger.Debug().
		Int("time", now).
		Int("round", round).
		Int("pending_signals", pending).
		Int("woken_processes", woken).
		Log("delta round")
}
