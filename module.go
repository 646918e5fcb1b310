package sim

import "strings"

// Module is a named tree node holding signals, processes, and
// sub-modules (spec.md §3 "Module tree"). It carries no simulation
// semantics of its own beyond naming, enclosing, and the "dump under
// this subtree" flag used by the VCD encoder. Construction is expected
// to happen entirely before a Scheduler is handed the root — the
// kernel only ever reads a module tree once, at Scheduler.Simulate
// startup, per spec.md §4.4.
type Module struct {
	name string

	signals   map[string]*Signal
	processes map[string]*Process
	modules   map[string]*Module

	// order preserves insertion order for the three maps above, so
	// depth-first traversal (VCD identifier assignment, process
	// collection) is deterministic and depends only on construction
	// order, per spec.md §4.3's determinism guarantee.
	signalOrder  []string
	processOrder []string
	moduleOrder  []string

	dump bool
	vcd  *VCDConfig
}

// NewModule creates an empty, named module. Build up its tree with
// NewSignal, NewAlways, NewBlock, and NewSubmodule before handing the
// root to Scheduler.Simulate.
func NewModule(name string) *Module {
	return &Module{
		name:      name,
		signals:   make(map[string]*Signal),
		processes: make(map[string]*Process),
		modules:   make(map[string]*Module),
	}
}

// Name returns the module's local name.
func (m *Module) Name() string { return m.name }

// NewSignal constructs a signal, names it within this module, and
// returns it.
func (m *Module) NewSignal(name string, initial, width int) *Signal {
	s := NewSignal(initial, width)
	s.name = name
	m.signals[name] = s
	m.signalOrder = append(m.signalOrder, name)
	return s
}

// AddSignal names an existing signal within this module — used for
// mirror signals or signals constructed outside the module builder.
func (m *Module) AddSignal(name string, s *Signal) {
	if _, exists := m.signals[name]; !exists {
		m.signalOrder = append(m.signalOrder, name)
	}
	m.signals[name] = s
}

// NewAlways constructs an always-process (spec.md §3), names it within
// this module, and returns it.
func (m *Module) NewAlways(name string, sensitivity []Waitable, body func()) *Process {
	p := NewAlways(name, sensitivity, body)
	m.addProcess(name, p)
	return p
}

// NewBlock constructs a block-process (spec.md §3), names it within
// this module, and returns it.
func (m *Module) NewBlock(name string, body func(p *Process)) *Process {
	p := NewBlock(name, body)
	m.addProcess(name, p)
	return p
}

func (m *Module) addProcess(name string, p *Process) {
	if _, exists := m.processes[name]; !exists {
		m.processOrder = append(m.processOrder, name)
	}
	m.processes[name] = p
}

// NewSubmodule creates a child module under the given name.
func (m *Module) NewSubmodule(name string) *Module {
	sub := NewModule(name)
	m.modules[name] = sub
	m.moduleOrder = append(m.moduleOrder, name)
	return sub
}

// AddSubmodule attaches an already-built module tree as a child.
func (m *Module) AddSubmodule(name string, sub *Module) {
	if _, exists := m.modules[name]; !exists {
		m.moduleOrder = append(m.moduleOrder, name)
	}
	m.modules[name] = sub
}

// Signals returns the module's own signals, in construction order.
func (m *Module) Signals() []*Signal {
	out := make([]*Signal, 0, len(m.signalOrder))
	for _, name := range m.signalOrder {
		out = append(out, m.signals[name])
	}
	return out
}

// Processes returns the module's own processes, in construction order.
func (m *Module) Processes() []*Process {
	out := make([]*Process, 0, len(m.processOrder))
	for _, name := range m.processOrder {
		out = append(out, m.processes[name])
	}
	return out
}

// Submodules returns the module's direct children, in construction order.
func (m *Module) Submodules() []*Module {
	out := make([]*Module, 0, len(m.moduleOrder))
	for _, name := range m.moduleOrder {
		out = append(out, m.modules[name])
	}
	return out
}

// Dump reports whether this subtree is currently flagged for VCD dumping.
func (m *Module) Dump() bool { return m.dump }

// setDumpRecursive sets the dump flag on this module and every descendant.
func (m *Module) setDumpRecursive(v bool) {
	m.dump = v
	for _, sub := range m.modules {
		sub.setDumpRecursive(v)
	}
}

// findVCDConfig performs the depth-first search spec.md §3 describes:
// the first non-nil VCDConfig found, root first.
func (m *Module) findVCDConfig() *VCDConfig {
	if m.vcd != nil {
		return m.vcd
	}
	for _, name := range m.moduleOrder {
		if cfg := m.modules[name].findVCDConfig(); cfg != nil {
			return cfg
		}
	}
	return nil
}

// resolvePath performs the slash-delimited hierarchical lookup used by
// mirror signals and the VCD inclusion API (spec.md §4.4, §6). It
// returns the module and, if the final path segment refers to a
// signal, the signal itself (sig is nil when path names a module).
func resolvePath(root *Module, path string) (*Module, *Signal, error) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	m := root
	for i, seg := range segments {
		last := i == len(segments)-1
		if last {
			if sig, ok := m.signals[seg]; ok {
				return m, sig, nil
			}
		}
		if sub, ok := m.modules[seg]; ok {
			m = sub
			continue
		}
		if last {
			return nil, nil, &LookupError{Path: path, Segment: seg, Kind: "signal"}
		}
		return nil, nil, &LookupError{Path: path, Segment: seg, Kind: "hw_module"}
	}
	return m, nil, nil
}

// MirrorSignal returns the existing signal at the slash-delimited path
// "mod/sub/signal", rooted at root — never a copy (spec.md §4.4, §6).
func MirrorSignal(root *Module, path string) (*Signal, error) {
	_, sig, err := resolvePath(root, path)
	if err != nil {
		return nil, err
	}
	if sig == nil {
		segments := strings.Split(strings.Trim(path, "/"), "/")
		return nil, &LookupError{Path: path, Segment: segments[len(segments)-1], Kind: "signal"}
	}
	return sig, nil
}
