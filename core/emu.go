package core

import (
	"fmt"
)

// NoPatch runs a program without flipping any instruction.
const NoPatch = -1

// State is the architectural state of the console.
type State struct {
	Acc int
	PC  int
}

func (s State) String() string {
	return fmt.Sprintf("(acc=%d, pc=%d)", s.Acc, s.PC)
}

type coreState struct {
	PC     int
	Acc    int
	Code   Program
	Patch  int
	LastPC int

	Visited []bool
	Steps   int

	Halted     bool
	Terminated bool
	Err        error
}

func newCoreState(code Program, patch int, start State) coreState {
	return coreState{
		PC:      start.PC,
		Acc:     start.Acc,
		Code:    code,
		Patch:   patch,
		LastPC:  -1,
		Visited: make([]bool, len(code)),
	}
}

func (s *coreState) halt(terminated bool, err error) {
	s.Halted = true
	s.Terminated = terminated
	s.Err = err
}

func (s *coreState) result() (Result, error) {
	if s.Err != nil {
		return Result{}, s.Err
	}

	return Result{
		Terminated: s.Terminated,
		State:      State{Acc: s.Acc, PC: s.PC},
		Steps:      s.Steps,
	}, nil
}

type instEmulator struct {
}

// Step checks the halting conditions and, if the console is still running,
// executes the instruction under the program counter. It reports whether an
// instruction was executed.
func (i instEmulator) Step(state *coreState) bool {
	if state.Halted {
		return false
	}

	n := len(state.Code)
	if state.PC < 0 || state.PC > n {
		state.halt(false, &BoundsError{PC: state.PC, Len: n, From: state.LastPC})
		return false
	}

	if state.PC < n && state.Visited[state.PC] {
		Trace("Loop", "PC", state.PC, "Acc", state.Acc, "Steps", state.Steps)
		state.halt(false, nil)
		return false
	}

	if state.PC == n {
		Trace("Terminate", "Acc", state.Acc, "Steps", state.Steps)
		state.halt(true, nil)
		return false
	}

	state.Visited[state.PC] = true

	inst := state.Code[state.PC]
	if state.PC == state.Patch {
		inst = inst.Flipped()
	}

	Trace("Inst",
		"PC", state.PC,
		"Inst", inst.String(),
		"Acc", state.Acc,
		"Patched", state.PC == state.Patch,
	)

	state.LastPC = state.PC
	i.RunInst(inst, state)
	state.Steps++

	return true
}

// RunInst applies the effect of one instruction to the state.
func (i instEmulator) RunInst(inst Instruction, state *coreState) {
	switch inst.Opcode {
	case OpNop:
		i.runNop(inst, state)
	case OpAcc:
		i.runAcc(inst, state)
	case OpJmp:
		i.runJmp(inst, state)
	default:
		panic(fmt.Sprintf("unknown opcode '%s' at PC %d", inst.Opcode, state.PC))
	}
}

func (i instEmulator) runNop(_ Instruction, state *coreState) {
	state.PC++
}

func (i instEmulator) runAcc(inst Instruction, state *coreState) {
	state.Acc += inst.Operand
	state.PC++
}

func (i instEmulator) runJmp(inst Instruction, state *coreState) {
	state.PC += inst.Operand
}
