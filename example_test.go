package sim_test

import (
	"fmt"

	"github.com/hdlsim/sim"
)

// Example_counter demonstrates the fundamental pattern of this package:
// build a module tree of signals and processes, then run it to
// completion with Simulate. This is the mod-4 counter a reader would
// reach for first, clocked on every rising edge of a free-running
// clock and printed once it rolls over.
func Example_counter() {
	root := sim.NewModule("top")
	clock := root.NewSignal("clock", 0, 1)
	count := root.NewSignal("count", 0, 4)

	root.NewAlways("count_LOGIC", []sim.Waitable{clock.Posedge()}, func() {
		if count.Equals(3) {
			count.SetNext(0)
		} else {
			count.SetNext(count.Add(1))
		}
	})

	root.NewBlock("clock_GEN", func(p *sim.Process) {
		for i := 0; i < 4; i++ {
			clock.SetNext(0)
			p.Delay(5)
			clock.SetNext(1)
			p.Delay(5)
		}
		p.Finish("Simulation finished.")
	})

	summary, err := sim.Simulate(root)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(summary.FinishMessage)
	fmt.Println("count:", count.Value())

	// Output:
	// Simulation finished.
	// count: 0
}
