package core

import (
	"io"

	"github.com/sarchlab/akita/v4/sim"
)

// Core is a console that executes one instruction per cycle on an akita
// engine.
type Core struct {
	*sim.TickingComponent

	state  coreState
	emu    instEmulator
	mapped bool
}

// MapProgram sets the program that the core needs to run, resets the console
// state and schedules the first tick. patch is the index to flip for this run,
// or NoPatch.
func (c *Core) MapProgram(program Program, patch int) {
	if c.mapped && !c.state.Halted {
		panic("cannot map a program onto a running core")
	}

	c.state = newCoreState(program, patch, State{})
	c.mapped = true

	Trace("MapProgram",
		"Core", c.Name(),
		"Len", len(program),
		"Patch", patch,
	)

	// The halting tick of the previous run may sit at the current time.
	c.TickLater()
}

// Tick runs the program for one cycle.
func (c *Core) Tick() (madeProgress bool) {
	if !c.mapped {
		return false
	}

	madeProgress = c.emu.Step(&c.state)

	if c.state.Halted {
		Trace("Halt",
			"Core", c.Name(),
			"Time", float64(c.Engine.CurrentTime()*1e9),
			"Terminated", c.state.Terminated,
			"Acc", c.state.Acc,
			"Cycles", c.state.Steps,
		)
		LogState(&c.state)
	}

	return madeProgress
}

// Halted reports whether the mapped program has stopped.
func (c *Core) Halted() bool {
	return c.mapped && c.state.Halted
}

// Result returns how the mapped program ended.
func (c *Core) Result() (Result, error) {
	if !c.Halted() {
		return Result{}, ErrNotHalted
	}

	return c.state.result()
}

// Cycles returns the number of instructions executed so far.
func (c *Core) Cycles() int {
	return c.state.Steps
}

// DumpState writes a table of the console state to w.
func (c *Core) DumpState(w io.Writer) {
	PrintState(w, &c.state)
}
