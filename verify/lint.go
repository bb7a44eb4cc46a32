package verify

import (
	"fmt"

	"github.com/sarchlab/handheld/core"
)

// RunLint performs static lint checks on a program.
// Returns a list of issues found, or empty list if no issues.
func RunLint(program core.Program) []Issue {
	var issues []Issue

	n := program.Len()

	for i, inst := range program {
		if inst.Raw != "" {
			if _, known := core.ParseOpcode(inst.Raw); !known {
				issues = append(issues, Issue{
					Type:    IssueInput,
					Index:   i,
					Line:    inst.Line,
					Message: fmt.Sprintf("unknown mnemonic %q read as nop", inst.Raw),
					Details: map[string]interface{}{"mnemonic": inst.Raw},
				})
			}
		}

		target := i + inst.Operand
		inRange := target >= 0 && target <= n

		switch inst.Opcode {
		case core.OpJmp:
			if !inRange {
				issues = append(issues, Issue{
					Type:    IssueStruct,
					Index:   i,
					Line:    inst.Line,
					Message: fmt.Sprintf("%s jumps to %d outside [0, %d]", inst, target, n),
					Details: map[string]interface{}{"target": target, "len": n},
				})
			}

			if inst.Operand == 0 {
				issues = append(issues, Issue{
					Type:    IssueLoop,
					Index:   i,
					Line:    inst.Line,
					Message: fmt.Sprintf("%s loops on itself", inst),
				})
			}
		case core.OpNop:
			if !inRange {
				issues = append(issues, Issue{
					Type:    IssueRepair,
					Index:   i,
					Line:    inst.Line,
					Message: fmt.Sprintf("flipping %s would jump to %d outside [0, %d]", inst, target, n),
					Details: map[string]interface{}{"target": target, "len": n},
				})
			}
		}
	}

	return issues
}

// Errors returns the issues that fault the console if they are reached.
func Errors(issues []Issue) []Issue {
	var errs []Issue
	for _, issue := range issues {
		if issue.Type == IssueStruct {
			errs = append(errs, issue)
		}
	}

	return errs
}
