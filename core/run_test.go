package core_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/handheld/core"
	"github.com/sarchlab/handheld/util"
)

const bootCode = `nop +0
acc +1
jmp +4
acc +3
jmp -3
acc -99
acc +1
jmp -4
acc +6`

var _ = Describe("Run", func() {
	var program core.Program

	BeforeEach(func() {
		program = core.MustParseProgram(bootCode)
	})

	It("should detect the loop of the boot code", func() {
		res, err := core.Run(program, core.NoPatch)

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Terminated).To(BeFalse())
		Expect(res.State.Acc).To(Equal(5))
		Expect(res.State.PC).To(Equal(1))
		Expect(res.Steps).To(Equal(7))
	})

	It("should terminate a lone acc", func() {
		res, err := core.Run(core.MustParseProgram("acc +5"), core.NoPatch)

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Terminated).To(BeTrue())
		Expect(res.State).To(Equal(core.State{Acc: 5, PC: 1}))
	})

	It("should terminate on an empty program", func() {
		res, err := core.Run(core.Program{}, core.NoPatch)

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Terminated).To(BeTrue())
		Expect(res.Steps).To(Equal(0))
	})

	It("should detect a self loop immediately", func() {
		res, err := core.Run(core.MustParseProgram("jmp +0\nacc +2"), core.NoPatch)

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Terminated).To(BeFalse())
		Expect(res.State.Acc).To(Equal(0))
		Expect(res.Steps).To(Equal(1))
	})

	It("should accept a jump to exactly one past the end", func() {
		res, err := core.Run(core.MustParseProgram("jmp +2\nacc +1"), core.NoPatch)

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Terminated).To(BeTrue())
		Expect(res.State.Acc).To(Equal(0))
	})

	It("should fail on jumps out of the program", func() {
		_, err := core.Run(core.MustParseProgram("jmp +3\nacc +1"), core.NoPatch)
		Expect(err).To(MatchError(core.ErrOutOfBounds))

		_, err = core.Run(core.MustParseProgram("acc +1\njmp -2"), core.NoPatch)
		var boundsErr *core.BoundsError
		Expect(err).To(BeAssignableToTypeOf(boundsErr))
		Expect(err.(*core.BoundsError).PC).To(Equal(-1))
		Expect(err.(*core.BoundsError).From).To(Equal(1))
	})

	It("should start from the given state", func() {
		res, err := core.RunFrom(program, core.NoPatch, core.State{Acc: 10, PC: 3})

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Terminated).To(BeFalse())
		Expect(res.State.Acc).To(Equal(15))
		Expect(res.State.PC).To(Equal(3))
	})

	It("should reject a start counter outside the program", func() {
		_, err := core.RunFrom(program, core.NoPatch, core.State{PC: 20})

		Expect(err).To(MatchError(core.ErrOutOfBounds))
		Expect(err.Error()).To(ContainSubstring("start pc 20"))
	})

	It("should not mutate the program when patching", func() {
		before := append(core.Program(nil), program...)

		_, err := core.Run(program, 7)

		Expect(err).NotTo(HaveOccurred())
		Expect(program).To(Equal(before))
	})

	Context("on random programs", func() {
		var r *rand.Rand

		BeforeEach(func() {
			r = rand.New(rand.NewSource(8))
		})

		It("should halt within len+1 steps", func() {
			for k := 0; k < 200; k++ {
				p := util.RandomProgram(r, 1+r.Intn(40))
				for patch := core.NoPatch; patch < len(p); patch++ {
					res, err := core.Run(p, patch)
					Expect(err).NotTo(HaveOccurred())
					Expect(res.Steps).To(BeNumerically("<=", len(p)))
				}
			}
		})

		It("should be idempotent", func() {
			for k := 0; k < 100; k++ {
				p := util.RandomProgram(r, 1+r.Intn(40))
				patch := r.Intn(len(p))

				first, err1 := core.Run(p, patch)
				second, err2 := core.Run(p, patch)

				Expect(err1).NotTo(HaveOccurred())
				Expect(err2).NotTo(HaveOccurred())
				Expect(second).To(Equal(first))
			}
		})

		It("should ignore patches on acc", func() {
			for k := 0; k < 100; k++ {
				p := util.RandomProgram(r, 1+r.Intn(40))
				plain, err := core.Run(p, core.NoPatch)
				Expect(err).NotTo(HaveOccurred())

				for i, inst := range p {
					if inst.Opcode != core.OpAcc {
						continue
					}
					patched, err := core.Run(p, i)
					Expect(err).NotTo(HaveOccurred())
					Expect(patched).To(Equal(plain))
				}
			}
		})

		It("should return the lowest terminating flip", func() {
			for k := 0; k < 200; k++ {
				p := util.RandomProgram(r, 1+r.Intn(40))

				lowest := -1
				for i, inst := range p {
					if !inst.Patchable() {
						continue
					}
					res, err := core.Run(p, i)
					Expect(err).NotTo(HaveOccurred())
					if res.Terminated {
						lowest = i
						break
					}
				}

				fix, err := core.FindFix(p)
				if lowest < 0 {
					Expect(err).To(MatchError(core.ErrNoFix))
					continue
				}
				Expect(err).NotTo(HaveOccurred())
				Expect(fix.Index).To(Equal(lowest))
			}
		})
	})
})

var _ = Describe("RunUnmodified", func() {
	It("should return the accumulator before the loop repeats", func() {
		acc, err := core.RunUnmodified(core.MustParseProgram(bootCode))

		Expect(err).NotTo(HaveOccurred())
		Expect(acc).To(Equal(5))
	})

	It("should flag a program that does not loop", func() {
		acc, err := core.RunUnmodified(core.MustParseProgram("acc +5"))

		Expect(err).To(MatchError(core.ErrNoLoop))
		Expect(acc).To(Equal(5))
	})
})

var _ = Describe("FindFix", func() {
	It("should flip the jmp of the boot code", func() {
		fix, err := core.FindFix(core.MustParseProgram(bootCode))

		Expect(err).NotTo(HaveOccurred())
		Expect(fix.Index).To(Equal(7))
		Expect(fix.From.String()).To(Equal("jmp -4"))
		Expect(fix.To.String()).To(Equal("nop -4"))
		Expect(fix.Result.Terminated).To(BeTrue())
		Expect(fix.Result.State.Acc).To(Equal(8))
		Expect(fix.String()).To(Equal("#7: jmp -4 -> nop -4"))
	})

	It("should repair a self loop at the first instruction", func() {
		fix, err := core.FindFix(core.MustParseProgram("jmp +0\nacc +2"))

		Expect(err).NotTo(HaveOccurred())
		Expect(fix.Index).To(Equal(0))
		Expect(fix.Result.State.Acc).To(Equal(2))
	})

	It("should prefer the lowest index", func() {
		fix, err := core.FindFix(core.MustParseProgram("nop +3\njmp +0\nacc +7\nacc +1"))

		Expect(err).NotTo(HaveOccurred())
		Expect(fix.Index).To(Equal(0))
		Expect(fix.Result.State.Acc).To(Equal(1))
	})

	It("should skip flips that jump out of the program", func() {
		fix, err := core.FindFix(core.MustParseProgram("nop +10\njmp -1\nacc +3"))

		Expect(err).NotTo(HaveOccurred())
		Expect(fix.Index).To(Equal(1))
		Expect(fix.Result.State.Acc).To(Equal(3))
	})

	It("should report when no fix exists", func() {
		p := core.MustParseProgram("jmp +0\njmp -1")

		_, err := core.FindFix(p)

		Expect(err).To(MatchError(core.ErrNoFix))
		Expect(core.FixedAccumulator(p)).To(Equal(0))
	})

	It("should return the fixed accumulator", func() {
		Expect(core.FixedAccumulator(core.MustParseProgram(bootCode))).To(Equal(8))
	})
})
