package core

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Program is an ordered, read-only list of instructions.
type Program []Instruction

// Len returns the number of instructions. A program counter equal to Len
// means the program terminated.
func (p Program) Len() int {
	return len(p)
}

// ParseError reports a listing line that could not be parsed.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseProgram reads a listing with one "<mnemonic> <operand>" pair per line.
// Blank lines are skipped. Any malformed line fails the whole listing.
func ParseProgram(r io.Reader) (Program, error) {
	var program Program

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		inst, err := parseLine(text)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: text, Err: err}
		}
		inst.Line = lineNo

		if _, known := ParseOpcode(inst.Raw); !known {
			slog.Warn("unknown mnemonic, treating as nop",
				"Line", lineNo, "Mnemonic", inst.Raw)
		}

		slog.Debug("Parsed", "Line", lineNo, "Inst", inst.String())
		program = append(program, inst)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read listing: %w", err)
	}

	return program, nil
}

func parseLine(text string) (Instruction, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return Instruction{}, fmt.Errorf("expected mnemonic and operand, got %d fields", len(fields))
	}

	operand, err := strconv.Atoi(fields[1])
	if err != nil {
		return Instruction{}, fmt.Errorf("invalid operand: %w", err)
	}

	op, _ := ParseOpcode(fields[0])

	return Instruction{
		Opcode:  op,
		Operand: operand,
		Raw:     fields[0],
	}, nil
}

// LoadProgramFile parses the listing stored at path.
func LoadProgramFile(path string) (Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open program file: %w", err)
	}
	defer f.Close()

	program, err := ParseProgram(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return program, nil
}

// MustParseProgram parses a listing held in a string and panics on error.
func MustParseProgram(listing string) Program {
	program, err := ParseProgram(strings.NewReader(listing))
	if err != nil {
		panic(err)
	}

	return program
}
