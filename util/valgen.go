// Package util has helpers using closures to generate values and programs.
package util

import (
	"math/rand"

	"github.com/sarchlab/handheld/core"
)

func MakeConstGen(constant int) func() int {
	return func() int {
		return constant
	}
}

func MakeIncreasingGen(start int) func() int {
	current := start
	return func() int {
		current++
		return current
	}
}

// MakeTargetGen returns operands for instruction i of an n-long program such
// that i+operand lands in [0, n].
func MakeTargetGen(r *rand.Rand, n int) func(i int) int {
	return func(i int) int {
		return r.Intn(n+1) - i
	}
}

// RandomProgram builds an n-long program whose jumps stay in bounds even
// when a jmp or nop is flipped.
func RandomProgram(r *rand.Rand, n int) core.Program {
	target := MakeTargetGen(r, n)

	p := make(core.Program, n)
	for i := range p {
		op := core.Opcode(r.Intn(3))
		operand := target(i)
		if op == core.OpAcc {
			operand = r.Intn(201) - 100
		}
		p[i] = core.Instruction{Opcode: op, Operand: operand}
	}

	return p
}

// CountedLoop builds a program that adds step to the accumulator, then jumps
// back over `body` acc instructions, so it loops after body+1 steps. The
// last jmp is the only fix.
func CountedLoop(body int, step func() int) core.Program {
	p := make(core.Program, 0, body+1)
	for i := 0; i < body; i++ {
		p = append(p, core.Instruction{Opcode: core.OpAcc, Operand: step()})
	}
	p = append(p, core.Instruction{Opcode: core.OpJmp, Operand: -body})

	return p
}
