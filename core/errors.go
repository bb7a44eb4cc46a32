package core

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is wrapped by BoundsError.
	ErrOutOfBounds = errors.New("program counter out of bounds")

	// ErrNoFix is returned when no single flip makes the program terminate.
	ErrNoFix = errors.New("no single-instruction fix terminates the program")

	// ErrNoLoop is returned by RunUnmodified when the program terminates.
	ErrNoLoop = errors.New("program terminated without looping")

	// ErrNotHalted is returned when a result is requested from a running core.
	ErrNotHalted = errors.New("console has not halted")
)

// BoundsError reports a jump that left the program. From is the index of the
// instruction that produced the bad counter, or -1 for a bad start state.
type BoundsError struct {
	PC   int
	Len  int
	From int
}

func (e *BoundsError) Error() string {
	if e.From < 0 {
		return fmt.Sprintf("%v: start pc %d not in [0, %d]", ErrOutOfBounds, e.PC, e.Len)
	}

	return fmt.Sprintf("%v: instruction %d jumped to %d, program length %d",
		ErrOutOfBounds, e.From, e.PC, e.Len)
}

func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}
