// Package api defines the driver API for the handheld console.
package api

import (
	"errors"
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/handheld/core"
)

// ErrMismatch is returned when the console disagrees with the direct
// interpreter about a repaired program.
var ErrMismatch = errors.New("console result does not match the fix")

// Console is a component that runs one program at a time on the engine.
// *core.Core implements it.
type Console interface {
	// MapProgram loads the program, resets the console state and schedules
	// the console to tick. patch is the index of the instruction to flip, or
	// core.NoPatch.
	MapProgram(program core.Program, patch int)

	Halted() bool
	Result() (core.Result, error)
	Cycles() int
}

// Outcome is what the driver collected from a console run.
type Outcome struct {
	Result core.Result
	Cycles int
	Time   sim.VTimeInSec
}

// Driver provides the interface to control a console.
type Driver interface {
	// RegisterConsole registers the console that programs run on.
	RegisterConsole(console Console)

	// Execute runs the program with the given patch until the console halts.
	Execute(program core.Program, patch int) (Outcome, error)

	// FindLoop runs the unpatched program and returns the accumulator right
	// before the first repeated instruction. A program that terminates
	// returns its outcome together with core.ErrNoLoop.
	FindLoop(program core.Program) (Outcome, error)

	// Repair searches for the single flip that makes the program terminate
	// and replays it on the console.
	Repair(program core.Program) (core.Fix, Outcome, error)
}

type driverImpl struct {
	name    string
	engine  sim.Engine
	console Console
}

func (d *driverImpl) RegisterConsole(console Console) {
	d.console = console
}

func (d *driverImpl) Execute(program core.Program, patch int) (Outcome, error) {
	if d.console == nil {
		panic("no console registered")
	}

	start := d.engine.CurrentTime()

	d.console.MapProgram(program, patch)

	if err := d.engine.Run(); err != nil {
		return Outcome{}, fmt.Errorf("%s: engine failed: %w", d.name, err)
	}

	if !d.console.Halted() {
		return Outcome{}, fmt.Errorf("%s: %w", d.name, core.ErrNotHalted)
	}

	res, err := d.console.Result()
	if err != nil {
		return Outcome{}, fmt.Errorf("%s: %w", d.name, err)
	}

	outcome := Outcome{
		Result: res,
		Cycles: d.console.Cycles(),
		Time:   d.engine.CurrentTime() - start,
	}

	core.Trace("Execute",
		"Driver", d.name,
		"Patch", patch,
		"Terminated", res.Terminated,
		"Acc", res.State.Acc,
		"Cycles", outcome.Cycles,
	)

	return outcome, nil
}

func (d *driverImpl) FindLoop(program core.Program) (Outcome, error) {
	outcome, err := d.Execute(program, core.NoPatch)
	if err != nil {
		return Outcome{}, err
	}

	if outcome.Result.Terminated {
		return outcome, core.ErrNoLoop
	}

	return outcome, nil
}

func (d *driverImpl) Repair(program core.Program) (core.Fix, Outcome, error) {
	fix, err := core.FindFix(program)
	if err != nil {
		return core.Fix{}, Outcome{}, err
	}

	outcome, err := d.Execute(program, fix.Index)
	if err != nil {
		return fix, Outcome{}, err
	}

	if !outcome.Result.Terminated || outcome.Result.State != fix.Result.State {
		return fix, outcome, fmt.Errorf("%w: %s gave %s on the console, %s directly",
			ErrMismatch, fix, outcome.Result.State, fix.Result.State)
	}

	return fix, outcome, nil
}
