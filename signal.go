package sim

// pendingRegistrar receives notice that a signal has a pending next
// value that must be promoted during the next delta round. Scheduler
// implements it; Signal holds one so that write-side behavior (marking
// pending) does not require a Signal to know about the full Scheduler
// type, and so a Signal can be exercised in isolation (the registrar is
// nil until bound into a module tree that's handed to a Scheduler).
type pendingRegistrar interface {
	markPending(*Signal)
}

// Signal holds a current value and a pending-next value under the
// two-phase update discipline described in spec.md §3-4.1: current and
// next are equal outside an active delta cycle, writers only ever
// target next, and readers only ever observe current.
//
// The zero width is invalid; use NewSignal or Module.NewSignal to
// construct one with width >= 1.
type Signal struct {
	name string

	width   int
	current int
	next    int

	changeWaiters []*Process
	posEdge       *EdgeToken
	negEdge       *EdgeToken

	reg pendingRegistrar

	traced bool
	vcdID  string
}

// NewSignal creates a standalone signal with the given initial value
// and bit width (width defaults to 1 if width < 1). A signal constructed
// this way is not yet attached to a module tree; Module.NewSignal does
// both in one step for normal use.
func NewSignal(initial, width int) *Signal {
	if width < 1 {
		width = 1
	}
	return &Signal{
		width:   width,
		current: initial,
		next:    initial,
	}
}

// bind attaches the signal to the registrar that will be notified when
// it becomes pending. Called by Scheduler during the startup walk.
func (s *Signal) bind(reg pendingRegistrar) { s.reg = reg }

// Name returns the local name the signal was given within its module,
// or "" for a signal constructed directly with NewSignal.
func (s *Signal) Name() string { return s.name }

// Width reports the declared bit width.
func (s *Signal) Width() int { return s.width }

// Value returns the current integer value.
func (s *Signal) Value() int { return s.current }

// Int is an alias of Value, for readers that prefer the explicit name
// mirroring the original tool's __int__ overload.
func (s *Signal) Int() int { return s.current }

// Uint returns the current value as a uint, for callers that want an
// unsigned read of a signal's bit pattern (e.g. formatting a vector
// signal) without risking a negative value from a caller that assigned
// one despite spec.md §9's "no width masking" leniency.
func (s *Signal) Uint() uint { return uint(s.current) }

// Bool reports the truthiness of the current value (nonzero is true),
// matching the edge-detection rule in spec.md §4.1: transitions are
// judged on truthiness of the new value, not on any particular bit.
func (s *Signal) Bool() bool { return s.current != 0 }

// Next returns the pending-next value (equal to Value outside an
// active delta cycle).
func (s *Signal) Next() int { return s.next }

// SetNext stores v into the pending-next slot and registers the signal
// as pending with the scheduler (Scheduler.pendingSet is the actual
// dedup/membership mechanism — SetNext may be called more than once per
// delta round before the scheduler drains it). Assigning the current
// value is still recorded as pending — the update step (not this
// method) distinguishes an actual change from a no-op write, per
// spec.md §4.1. Width is not enforced: a value outside [0, 2^width) is
// accepted without masking, preserving the original tool's leniency
// (spec.md §9).
func (s *Signal) SetNext(v int) {
	s.next = v
	if s.reg != nil {
		s.reg.markPending(s)
	}
}

// posedge lazily materialises the positive-edge token.
func (s *Signal) posedge() *EdgeToken {
	if s.posEdge == nil {
		s.posEdge = &EdgeToken{owner: s, kind: edgeKindPositive}
	}
	return s.posEdge
}

// negedge lazily materialises the negative-edge token.
func (s *Signal) negedge() *EdgeToken {
	if s.negEdge == nil {
		s.negEdge = &EdgeToken{owner: s, kind: edgeKindNegative}
	}
	return s.negEdge
}

// Posedge returns the positive-edge token, for use as a Wait argument.
// A transition from zero to nonzero delivers this edge (spec.md §3).
func (s *Signal) Posedge() *EdgeToken { return s.posedge() }

// Negedge returns the negative-edge token, for use as a Wait argument.
// A transition from nonzero to zero delivers this edge (spec.md §3).
func (s *Signal) Negedge() *EdgeToken { return s.negedge() }

// addWaiter appends p to the signal's general (any-change) wait-list.
func (s *Signal) addWaiter(p *Process) {
	s.changeWaiters = append(s.changeWaiters, p)
}

// removeWaiter drops p from the signal's general wait-list, if present.
func (s *Signal) removeWaiter(p *Process) {
	s.changeWaiters = removeProcess(s.changeWaiters, p)
}

// removeProcess returns waiters with the first occurrence of p removed.
func removeProcess(waiters []*Process, p *Process) []*Process {
	for i, w := range waiters {
		if w == p {
			return append(waiters[:i], waiters[i+1:]...)
		}
	}
	return waiters
}

// update is invoked by the scheduler once per signal per delta cycle,
// for every signal in next_signals. It implements the six numbered
// steps of spec.md §4.1 verbatim: a no-op write reports no change; a
// 0→nonzero or nonzero→0 transition splices the corresponding armed
// edge's wait-list onto the change list before current is promoted; the
// combined, order-preserving change list is returned for the scheduler
// to drain and re-arm. changed is reported separately from the waiter
// list because a signal can change value with nobody currently waiting
// on it (still worth a trace record, never worth a wake-up).
func (s *Signal) update() (changed bool, waiters []*Process) {
	if s.next == s.current {
		return false, nil
	}
	wasZero := s.current == 0
	becomesZero := s.next == 0
	if wasZero && !becomesZero && s.posEdge != nil {
		s.changeWaiters = append(s.changeWaiters, s.posEdge.waiters...)
		s.posEdge.waiters = nil
	}
	if !wasZero && becomesZero && s.negEdge != nil {
		s.changeWaiters = append(s.changeWaiters, s.negEdge.waiters...)
		s.negEdge.waiters = nil
	}
	s.current = s.next
	waiters = s.changeWaiters
	s.changeWaiters = nil
	return true, waiters
}

// edgeKind distinguishes the two edge tokens a signal may materialise.
type edgeKind int

const (
	edgeKindPositive edgeKind = iota
	edgeKindNegative
)

// EdgeToken represents the rising ("posedge") or falling ("negedge")
// event of a signal, used as a sensitivity element distinct from the
// signal itself. It is lazily allocated the first time Signal.Posedge
// or Signal.Negedge is requested (spec.md §3).
type EdgeToken struct {
	owner   *Signal
	kind    edgeKind
	waiters []*Process
}

// addWaiter appends p to this edge's wait-list.
func (e *EdgeToken) addWaiter(p *Process) {
	e.waiters = append(e.waiters, p)
}

// removeWaiter drops p from this edge's wait-list, if present.
func (e *EdgeToken) removeWaiter(p *Process) {
	e.waiters = removeProcess(e.waiters, p)
}

// Signal returns the signal this edge token belongs to.
func (e *EdgeToken) Signal() *Signal { return e.owner }

// Equals compares the current value against a plain integer, mirroring
// the original tool's overloaded __eq__ (spec.md §4.1).
func (s *Signal) Equals(v int) bool { return s.current == v }

// Add returns the current value plus v, an integer (not a signal),
// mirroring the original's overloaded __add__.
func (s *Signal) Add(v int) int { return s.current + v }

// Sub returns the current value minus v, an integer (not a signal),
// mirroring the original's overloaded __sub__.
func (s *Signal) Sub(v int) int { return s.current - v }
