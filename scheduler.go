package sim

import "github.com/joeycumines/logiface"

// toolVersion is recorded in the $version section of any VCD trace this
// kernel writes.
const toolVersion = "hdlsim 0.1"

// Status reports why Simulate returned.
type Status int

const (
	// StatusQuiescent means the pending-signal set and the timed event
	// queue both emptied with no Process.Finish or panic in between.
	StatusQuiescent Status = iota
	// StatusFinished means a process called Process.Finish.
	StatusFinished
)

// Summary reports the outcome of one Simulate run.
type Summary struct {
	Status Status

	// Now is the final simulation time reached.
	Now int
	// DeltaRounds is the total number of delta rounds run across the
	// whole simulation (every time step's settling included).
	DeltaRounds int
	// Activations is the total number of times any process was resumed.
	Activations int
	// FinishMessage is the message passed to Process.Finish, set only
	// when Status == StatusFinished.
	FinishMessage string
	// TraceFile is the VCD filename written, or "" if untraced.
	TraceFile string
}

// Scheduler drives a module tree through the two-level delta-cycle and
// timed-event loop described in spec.md §4: process a time step's
// signal writes to full settlement (delta phase) before advancing
// simulation time to the next pending event (time phase). Construct
// one with NewScheduler and call Simulate exactly once.
type Scheduler struct {
	opts   *schedulerOptions
	logger *logiface.Logger[*stumpyEvent]

	now   int
	queue timedQueue

	pending    []*Signal
	pendingSet map[*Signal]bool

	allProcesses []*Process
	stop         chan struct{}

	trace *vcdWriter

	deltaRounds int
	activations int
}

// NewScheduler constructs a Scheduler. now starts at 0 unless WithClock
// overrides it.
func NewScheduler(opts ...SchedulerOption) *Scheduler {
	cfg := resolveSchedulerOptions(opts)
	return &Scheduler{
		opts:       cfg,
		logger:     cfg.logger,
		now:        cfg.clock,
		pendingSet: make(map[*Signal]bool),
		stop:       make(chan struct{}),
	}
}

// Simulate is the convenience entry point: build a Scheduler with opts
// and run it once against root.
func Simulate(root *Module, opts ...SchedulerOption) (Summary, error) {
	return NewScheduler(opts...).Simulate(root)
}

// markPending implements pendingRegistrar. It is called synchronously
// from Signal.SetNext, always from within a process body that is
// currently the sole process running (the single-owner alternation
// described in spec.md §9), so no locking is required.
func (sch *Scheduler) markPending(s *Signal) {
	if sch.pendingSet[s] {
		return
	}
	sch.pendingSet[s] = true
	sch.pending = append(sch.pending, s)
}

// bindTree walks the module tree depth-first, binding every signal to
// this scheduler and collecting every process in construction order,
// matching the traversal module.go's own accessors expose.
func (sch *Scheduler) bindTree(m *Module) {
	for _, s := range m.Signals() {
		s.bind(sch)
	}
	for _, p := range m.Processes() {
		p.attachRuntime(sch.stop, &sch.now)
		sch.allProcesses = append(sch.allProcesses, p)
	}
	for _, sub := range m.Submodules() {
		sch.bindTree(sub)
	}
}

// outcome is the internal result of dispatching one process's advance:
// either normal (possibly producing a new yield to route) or a
// terminal condition (explicit finish or an uncaught panic).
type outcome struct {
	terminated bool
	finished   bool
	message    string
	err        error
}

// dispatch advances p exactly once and either routes its new yield
// event (registering sensitivity or scheduling a delay) or reports
// termination.
func (sch *Scheduler) dispatch(p *Process) outcome {
	sch.activations++
	res := p.advance()
	if !res.ok {
		if res.finish != nil {
			if sch.logger != nil {
				logFinished(sch.logger, sch.now, *res.finish)
			}
			return outcome{terminated: true, finished: true, message: *res.finish}
		}
		if res.failure != nil {
			if sch.logger != nil {
				logProcessPanic(sch.logger, p.Name(), sch.now, res.failure)
			}
			return outcome{terminated: true, err: &ProcessPanicError{Process: p.Name(), Value: res.failure}}
		}
		return outcome{}
	}

	switch res.event.kind {
	case yieldSensitivity:
		p.waitSet = res.event.wait
		for _, w := range res.event.wait {
			w.addWaiter(p)
		}
	case yieldDelay:
		d := res.event.delay
		if d < 0 {
			d = 0
		}
		sch.queue.schedule(sch.now+d, p)
	}
	return outcome{}
}

// runDeltaPhase repeatedly drains sch.pending until it is empty,
// settling every signal write made at the current simulation time
// before control returns to the time phase, per spec.md §4.3. Each
// round: snapshot the pending set, update every signal once (applying
// current = next and collecting any woken processes in
// first-occurrence order), clear each woken process's stale
// registrations, then dispatch each exactly once. A round that
// dispatches a process which itself writes new signals produces the
// next round's pending set.
func (sch *Scheduler) runDeltaPhase() outcome {
	round := 0
	for len(sch.pending) > 0 {
		round++
		if sch.opts.maxDeltaRounds > 0 && round > sch.opts.maxDeltaRounds {
			return outcome{terminated: true, err: &CombinationalLoopError{Rounds: sch.opts.maxDeltaRounds, Time: sch.now}}
		}
		sch.deltaRounds++

		snapshot := sch.pending
		sch.pending = nil
		sch.pendingSet = make(map[*Signal]bool)

		var wakeOrder []*Process
		woken := make(map[*Process]bool)
		for _, s := range snapshot {
			changed, waiters := s.update()
			if changed && sch.trace != nil {
				if err := sch.trace.writeChange(s); err != nil {
					return outcome{terminated: true, err: &TraceError{Filename: sch.trace.filename(), Cause: err}}
				}
			}
			for _, p := range waiters {
				if !woken[p] {
					woken[p] = true
					wakeOrder = append(wakeOrder, p)
				}
			}
		}

		if sch.logger != nil {
			logDeltaRound(sch.logger, sch.now, round, len(snapshot), len(wakeOrder))
		}

		for _, p := range wakeOrder {
			p.clearWait()
		}
		for _, p := range wakeOrder {
			if o := sch.dispatch(p); o.terminated {
				return o
			}
		}
	}
	return outcome{}
}

// Simulate runs root to completion: an initial pass that starts every
// process once, then alternating delta and time phases until the
// pending-signal set and timed queue are both empty (spec.md §4). It
// must be called at most once per Scheduler.
func (sch *Scheduler) Simulate(root *Module) (Summary, error) {
	sch.bindTree(root)

	if cfg := root.findVCDConfig(); cfg != nil {
		w, err := openVCDWriter(cfg.Filename)
		if err != nil {
			return Summary{}, err
		}
		sch.trace = w
		w.assignCodes(cfg.root)
		if err := w.writeHeader(cfg.root, toolVersion); err != nil {
			w.Close()
			return Summary{}, &TraceError{Filename: cfg.Filename, Cause: err}
		}
	}

	finish := func(o outcome) (Summary, error) {
		close(sch.stop)
		if sch.trace != nil {
			sch.trace.Close()
		}
		summary := Summary{
			Now:         sch.now,
			DeltaRounds: sch.deltaRounds,
			Activations: sch.activations,
		}
		if sch.trace != nil {
			summary.TraceFile = sch.trace.filename()
		}
		if o.err != nil {
			return summary, o.err
		}
		if o.finished {
			summary.Status = StatusFinished
			summary.FinishMessage = o.message
			return summary, nil
		}
		summary.Status = StatusQuiescent
		if sch.logger != nil {
			logQuiescent(sch.logger, sch.now)
		}
		return summary, nil
	}

	for _, p := range sch.allProcesses {
		if o := sch.dispatch(p); o.terminated {
			return finish(o)
		}
	}
	if o := sch.runDeltaPhase(); o.terminated {
		return finish(o)
	}

	for !sch.queue.empty() {
		sch.now = sch.queue.nextTime()
		if sch.trace != nil {
			if err := sch.trace.writeTimeMarker(sch.now); err != nil {
				return finish(outcome{terminated: true, err: &TraceError{Filename: sch.trace.filename(), Cause: err}})
			}
		}
		due := sch.queue.popDue(sch.now)
		for _, p := range due {
			if o := sch.dispatch(p); o.terminated {
				return finish(o)
			}
		}
		if o := sch.runDeltaPhase(); o.terminated {
			return finish(o)
		}
	}

	return finish(outcome{})
}
