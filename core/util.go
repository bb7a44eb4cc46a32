package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	LevelTrace slog.Level = slog.LevelDebug - 2
)

func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

func PrintState(w io.Writer, state *coreState) {
	stateTable := table.NewWriter()
	stateTable.SetOutputMirror(w)
	stateTable.SetTitle("Console State")
	stateTable.AppendHeader(table.Row{"PC", "Acc", "Steps", "Halted", "Terminated", "Patch"})

	patch := "-"
	if state.Patch != NoPatch {
		patch = fmt.Sprintf("%d", state.Patch)
	}
	stateTable.AppendRow(table.Row{
		state.PC, state.Acc, state.Steps, state.Halted, state.Terminated, patch,
	})
	stateTable.Render()

	codeTable := table.NewWriter()
	codeTable.SetOutputMirror(w)
	codeTable.SetTitle("Program")
	codeTable.AppendHeader(table.Row{"#", "Line", "Inst", "Visited", ""})

	for i, inst := range state.Code {
		marker := ""
		if i == state.PC {
			marker = "<- pc"
		}
		if i == state.Patch {
			inst = inst.Flipped()
			marker += " (patched)"
		}
		codeTable.AppendRow(table.Row{i, inst.Line, inst.String(), state.Visited[i], marker})
	}
	codeTable.Render()
}

func LogState(state *coreState) {
	visited := 0
	for _, v := range state.Visited {
		if v {
			visited++
		}
	}

	slog.Debug("StateCheckpoint",
		"PC", state.PC,
		"Acc", state.Acc,
		"Steps", state.Steps,
		"Visited", visited,
		"Patch", state.Patch,
		"Halted", state.Halted,
		"Terminated", state.Terminated,
		"Err", state.Err,
	)
}
