// Command handheld runs a boot-code listing, reports the accumulator right
// before the program loops, and repairs the program by flipping one jmp or
// nop so that it terminates.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sarchlab/handheld/config"
	"github.com/sarchlab/handheld/core"
	"github.com/sarchlab/handheld/verify"
	"github.com/tebeka/atexit"
)

var (
	configFile string
	logLevel   string
	logFormat  string
	logFile    string
	reportFile string
	dumpState  bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "YAML configuration file")
	flag.StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn or error")
	flag.StringVar(&logFormat, "log-format", "", "log format: text or json")
	flag.StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	flag.StringVar(&reportFile, "report", "", "save the report to this file")
	flag.BoolVar(&dumpState, "dump", false, "print the console state after the repair run")
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [program.txt]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(2)
	}

	if cfg.Program == "" {
		flag.Usage()
		atexit.Exit(2)
	}

	if err := setupLogging(cfg.Log); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(2)
	}

	run(cfg)

	atexit.Exit(0)
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return config.Config{}, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			cfg.Log.Level = logLevel
		case "log-format":
			cfg.Log.Format = logFormat
		case "log-file":
			cfg.Log.File = logFile
		case "report":
			cfg.Report = reportFile
		case "dump":
			cfg.DumpState = dumpState
		}
	})

	if flag.NArg() > 0 {
		cfg.Program = flag.Arg(0)
	}

	return cfg, cfg.Validate()
}

func setupLogging(logCfg config.LogConfig) error {
	var w io.Writer = os.Stderr

	if logCfg.File != "" {
		f, err := os.Create(logCfg.File)
		if err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		atexit.Register(func() {
			f.Close()
		})
		w = f
	}

	handler, err := logCfg.NewHandler(w)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(handler))

	return nil
}

func run(cfg config.Config) {
	if err := execute(cfg, os.Stdout); err != nil {
		fatal(err)
	}
}

// execute prints the accumulator at the loop, the same value from the
// console, and the accumulator of the repaired program, followed by the
// report.
func execute(cfg config.Config, out io.Writer) error {
	program, err := core.LoadProgramFile(cfg.Program)
	if err != nil {
		return err
	}

	for _, issue := range verify.Errors(verify.RunLint(program)) {
		slog.Warn("Lint", "Type", issue.Type, "Line", issue.Line, "Message", issue.Message)
	}

	platform := config.PlatformBuilder{}.
		WithConfig(cfg).
		Build("Handheld")

	report := verify.GenerateReport(cfg.Program, program, platform.Driver)
	if err := report.Check(); err != nil {
		return err
	}
	if report.FixErr != nil {
		return report.FixErr
	}

	fmt.Fprintln(out, report.LoopAcc)
	fmt.Fprintln(out, report.ConsoleAcc())
	fmt.Fprintln(out, report.FixAcc())

	report.WriteReport(out)

	if cfg.Report != "" {
		if err := report.SaveReportToFile(cfg.Report); err != nil {
			return err
		}
	}

	if cfg.DumpState {
		platform.Console.DumpState(out)
	}

	return nil
}

func fatal(err error) {
	slog.Error("handheld failed", "Error", err)
	atexit.Exit(1)
}
