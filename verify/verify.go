// Package verify provides static checks and run reports for boot-code
// programs.
//
// It has two parts:
//
// 1. Static Lint (lint.go): checks a listing without running it
//   - STRUCT: a jmp whose target is outside [0, len]
//   - LOOP: a jmp +0 that loops on itself
//   - INPUT: an unknown mnemonic that was read as nop
//   - REPAIR: a nop whose flip would jump out of the program; the repair
//     search skips such candidates
//
// 2. Report (report.go): runs the program three ways and tabulates the
// answers
//   - the interpreter on the unmodified program
//   - the tick-driven console on the unmodified program, which must agree
//   - the repair search, replayed on the console
package verify

// IssueType categorizes lint issues
type IssueType string

const (
	IssueStruct IssueType = "STRUCT"
	IssueLoop   IssueType = "LOOP"
	IssueInput  IssueType = "INPUT"
	IssueRepair IssueType = "REPAIR"
)

// Issue represents a single lint issue
type Issue struct {
	Type    IssueType              // STRUCT, LOOP, INPUT or REPAIR
	Index   int                    // Instruction index
	Line    int                    // Source line (0 if unknown)
	Message string                 // Human-readable description
	Details map[string]interface{} // Additional structured data
}
