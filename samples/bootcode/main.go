package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/handheld/api"
	"github.com/sarchlab/handheld/core"
	"github.com/tebeka/atexit"
)

//go:embed boot.txt
var bootCode string

func bootLoop(driver api.Driver) (loopAcc, fixAcc int) {
	program := core.MustParseProgram(bootCode)

	outcome, err := driver.FindLoop(program)
	if err != nil {
		panic(err)
	}

	fix, _, err := driver.Repair(program)
	if err != nil {
		panic(err)
	}

	fmt.Printf("loop after %d cycles, acc=%d\n", outcome.Cycles, outcome.Result.State.Acc)
	fmt.Printf("fixed %s, acc=%d\n", fix, fix.Result.State.Acc)

	return outcome.Result.State.Acc, fix.Result.State.Acc
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: core.LevelTrace,
	})))

	engine := sim.NewSerialEngine()

	driver := api.DriverBuilder{}.
		WithEngine(engine).
		Build("Driver")

	console := core.NewBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		Build("Console")

	driver.RegisterConsole(console)

	bootLoop(driver)

	atexit.Exit(0)
}
