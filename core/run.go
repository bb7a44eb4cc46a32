package core

import (
	"errors"
	"fmt"
)

// Result describes how a run ended.
type Result struct {
	// Terminated is true when the counter reached the end of the program and
	// false when a revisited counter was detected.
	Terminated bool

	// State at the moment the run halted. On a loop, PC is the revisited
	// counter and Acc the value right before the loop would repeat.
	State State

	// Steps is the number of instructions executed.
	Steps int
}

// Run executes the program from a zeroed state. patch is the index of the
// instruction whose opcode is flipped for this run only, or NoPatch.
func Run(p Program, patch int) (Result, error) {
	return RunFrom(p, patch, State{})
}

// RunFrom executes the program from the given state.
func RunFrom(p Program, patch int, start State) (Result, error) {
	emu := instEmulator{}
	state := newCoreState(p, patch, start)

	for !state.Halted {
		emu.Step(&state)
	}

	return state.result()
}

// RunUnmodified returns the accumulator right before the unpatched program
// would execute an instruction for the second time. If the program
// terminates instead, the final accumulator is returned with ErrNoLoop.
func RunUnmodified(p Program) (int, error) {
	res, err := Run(p, NoPatch)
	if err != nil {
		return 0, err
	}

	if res.Terminated {
		return res.State.Acc, ErrNoLoop
	}

	return res.State.Acc, nil
}

// Fix is a single flipped instruction that makes the program terminate.
type Fix struct {
	Index  int
	From   Instruction
	To     Instruction
	Result Result
}

func (f Fix) String() string {
	return fmt.Sprintf("#%d: %s -> %s", f.Index, f.From, f.To)
}

// FindFix flips each jmp or nop in ascending index order and returns the first
// variant that terminates. Variants that jump out of the program are skipped.
func FindFix(p Program) (Fix, error) {
	for i, inst := range p {
		if !inst.Patchable() {
			continue
		}

		res, err := Run(p, i)
		if err != nil {
			var boundsErr *BoundsError
			if errors.As(err, &boundsErr) {
				Trace("Candidate", "Index", i, "Outcome", "out of bounds", "PC", boundsErr.PC)
				continue
			}

			return Fix{}, err
		}

		Trace("Candidate", "Index", i, "Terminated", res.Terminated, "Acc", res.State.Acc)

		if res.Terminated {
			return Fix{
				Index:  i,
				From:   inst,
				To:     inst.Flipped(),
				Result: res,
			}, nil
		}
	}

	return Fix{}, ErrNoFix
}

// FixedAccumulator returns the accumulator of the first terminating variant,
// or 0 if there is none or the search failed.
func FixedAccumulator(p Program) int {
	fix, err := FindFix(p)
	if err != nil {
		return 0
	}

	return fix.Result.State.Acc
}
