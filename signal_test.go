package sim

import "testing"

func TestSignalNoOpWriteHasNoObservableEffect(t *testing.T) {
	s := NewSignal(1, 1)
	s.SetNext(1)
	changed, waiters := s.update()
	if changed {
		t.Fatalf("no-op write reported changed")
	}
	if waiters != nil {
		t.Fatalf("no-op write produced waiters: %v", waiters)
	}
	if s.Value() != 1 {
		t.Fatalf("value mutated by no-op write: %d", s.Value())
	}
}

func TestSignalCurrentEqualsNextOutsideDeltaCycle(t *testing.T) {
	s := NewSignal(0, 4)
	if s.Value() != s.Next() {
		t.Fatalf("current != next before any write")
	}
	s.SetNext(9)
	if s.Value() == s.Next() {
		t.Fatalf("current should lag next until update()")
	}
	s.update()
	if s.Value() != s.Next() {
		t.Fatalf("current should equal next immediately after update()")
	}
}

func TestSignalPosedgeAndNegedgeFireOnlyOnTransition(t *testing.T) {
	s := NewSignal(0, 1)
	p := newProcess("watcher", func(p *Process) {})
	s.Posedge().addWaiter(p)

	s.SetNext(1)
	_, waiters := s.update()
	if len(waiters) != 1 || waiters[0] != p {
		t.Fatalf("posedge did not fire on 0->1 transition: %v", waiters)
	}

	// re-subscribe, then a 1->1 no-op must not fire it again.
	s.Posedge().addWaiter(p)
	s.SetNext(1)
	_, waiters = s.update()
	if len(waiters) != 0 {
		t.Fatalf("posedge fired on a no-op write: %v", waiters)
	}

	// a 1->0 transition fires negedge and leaves the armed posedge alone.
	s.Negedge().addWaiter(p)
	s.SetNext(0)
	_, waiters = s.update()
	if len(waiters) != 1 || waiters[0] != p {
		t.Fatalf("negedge did not fire on 1->0 transition: %v", waiters)
	}
	if len(s.Posedge().waiters) != 1 {
		t.Fatalf("posedge wait-list was drained by a 1->0 transition")
	}
}

func TestSignalWidthIsNotEnforcedOnWrites(t *testing.T) {
	s := NewSignal(0, 1)
	s.SetNext(500)
	s.update()
	if s.Value() != 500 {
		t.Fatalf("write was masked to width: got %d", s.Value())
	}
}
