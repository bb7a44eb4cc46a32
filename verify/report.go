package verify

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/handheld/api"
	"github.com/sarchlab/handheld/core"
)

// ErrInconsistent is returned when the console and the interpreter disagree.
var ErrInconsistent = errors.New("console and interpreter disagree")

// Report collects the answers of one program.
type Report struct {
	Name       string
	ProgramLen int
	LintIssues []Issue

	LoopAcc int
	LoopErr error

	Console    api.Outcome
	ConsoleErr error

	Fix        core.Fix
	FixOutcome api.Outcome
	FixErr     error
}

// GenerateReport runs lint, the interpreter, the console and the repair
// search on the program.
func GenerateReport(name string, program core.Program, driver api.Driver) *Report {
	r := &Report{
		Name:       name,
		ProgramLen: program.Len(),
		LintIssues: RunLint(program),
	}

	r.LoopAcc, r.LoopErr = core.RunUnmodified(program)
	r.Console, r.ConsoleErr = driver.FindLoop(program)
	r.Fix, r.FixOutcome, r.FixErr = driver.Repair(program)

	return r
}

// ConsoleAcc returns the accumulator the console reported at the loop.
func (r *Report) ConsoleAcc() int {
	return r.Console.Result.State.Acc
}

// FixAcc returns the accumulator of the repaired program.
func (r *Report) FixAcc() int {
	return r.Fix.Result.State.Acc
}

// Check returns an error if the interpreter or the console failed on the
// unmodified program, or if they disagree.
func (r *Report) Check() error {
	if r.LoopErr != nil {
		return fmt.Errorf("interpreter: %w", r.LoopErr)
	}

	if r.ConsoleErr != nil {
		return fmt.Errorf("console: %w", r.ConsoleErr)
	}

	if r.LoopAcc != r.ConsoleAcc() {
		return fmt.Errorf("%w: interpreter %d, console %d",
			ErrInconsistent, r.LoopAcc, r.ConsoleAcc())
	}

	return nil
}

// WriteReport writes a formatted report to a writer
func (r *Report) WriteReport(w io.Writer) {
	summary := table.NewWriter()
	summary.SetOutputMirror(w)
	summary.SetTitle(fmt.Sprintf("%s (%d instructions)", r.Name, r.ProgramLen))
	summary.AppendHeader(table.Row{"Stage", "Acc", "Cycles", "Detail"})

	summary.AppendRow(table.Row{"interpreter", r.LoopAcc, "-", errText(r.LoopErr, "loop detected")})
	summary.AppendRow(table.Row{
		"console", r.ConsoleAcc(), r.Console.Cycles,
		errText(r.ConsoleErr, fmt.Sprintf("loop at pc %d", r.Console.Result.State.PC)),
	})

	if r.FixErr != nil && !errors.Is(r.FixErr, api.ErrMismatch) {
		summary.AppendRow(table.Row{"repair", "-", "-", r.FixErr.Error()})
	} else {
		summary.AppendRow(table.Row{
			"repair", r.FixAcc(), r.FixOutcome.Cycles,
			errText(r.FixErr, fmt.Sprintf("line %d: %s", r.Fix.From.Line, r.Fix)),
		})
	}

	summary.Render()

	if len(r.LintIssues) == 0 {
		fmt.Fprintln(w, "No lint issues found.")
		return
	}

	issues := table.NewWriter()
	issues.SetOutputMirror(w)
	issues.SetTitle(fmt.Sprintf("Lint (%d issues)", len(r.LintIssues)))
	issues.AppendHeader(table.Row{"Type", "#", "Line", "Message"})
	for _, issue := range r.LintIssues {
		issues.AppendRow(table.Row{issue.Type, issue.Index, issue.Line, issue.Message})
	}
	issues.Render()
}

// SaveReportToFile saves the report to a file.
func (r *Report) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	r.WriteReport(file)
	return nil
}

func errText(err error, ok string) string {
	if err != nil {
		return err.Error()
	}

	return ok
}
