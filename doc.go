// Package sim provides a deterministic, discrete-event simulation kernel
// for synchronous digital hardware models: signals with two-phase
// current/next update semantics, suspendable processes that yield on
// signal change, edge, or time-delay events, a module tree for naming
// and VCD scoping, and a two-level scheduler (delta cycles nested inside
// timed events) that settles a design to quiescence before advancing
// simulated time.
//
// # Architecture
//
// [Scheduler] is the core. It owns the pending-signal set, the timed
// event queue, and the current simulation time. [Signal] holds a
// current and a pending-next value; writing [Signal.SetNext] marks the
// signal pending without mutating [Signal.Value] until the scheduler's
// delta phase promotes it. [Process] wraps a goroutine-backed coroutine
// that suspends at yield points — on a [Signal], an [EdgeToken], a set
// of either ([Process.Wait]), or a time delay ([Process.Delay]) — and resumes exactly once per
// [Scheduler] activation, never concurrently with any other process.
//
// [Module] groups named signals, processes, and sub-modules into a
// tree; [Scheduler.Simulate] walks it once at startup to collect every
// process and, if a [VCDConfig] is present anywhere in the tree, to
// assign VCD identifier codes and write the trace header.
//
// # Determinism
//
// Processes never run concurrently with one another: [Scheduler]
// resumes exactly one process at a time and blocks until it yields
// again. Release order within a delta round is the order processes
// were inserted into the wake set (first wait-list drained, first
// woken); release order at equal simulated time is FIFO. Both are
// fixed by construction order of the module tree, so two runs built
// the same way produce identical traces.
//
// # Usage
//
//	root := sim.NewModule("top")
//	clock := root.NewSignal("clock", 0, 1)
//	count := root.NewSignal("count", 0, 4)
//	root.NewAlways("count_LOGIC", []sim.Waitable{clock.Posedge()}, func() {
//	    count.SetNext(count.Add(1))
//	})
//
//	sched := sim.NewScheduler(sim.WithLogger(sim.NewJSONLogger(os.Stderr)))
//	summary, err := sched.Simulate(root)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(summary)
//
// # Error Types
//
// [LookupError] reports an unknown module segment or signal name
// encountered while resolving a mirror-signal or VCD-inclusion path.
// [TraceError] wraps a failure to open or write the VCD trace file.
// [ProcessPanicError] wraps a recovered panic from inside a process
// body that was not an explicit [Process.Finish] call. All three
// implement [error]; [TraceError] and [ProcessPanicError] also have an
// Unwrap method, so [errors.Is] and [errors.As] reach their cause.
package sim
