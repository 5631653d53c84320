// turbinesim runs the turbine animation without a window and prints its trace.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/windturbine/internal/config"
	"github.com/Faultbox/windturbine/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "run":
		cmdRun(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`turbinesim - headless wind turbine animation

Usage:
  turbinesim <command> [options]

Commands:
  run [options]       Run the controller and print the per-tick trace
  config [-config f]  Print the effective turbine settings as YAML

Run options:
  -config <file>      Config file (default: search standard locations)
  -ticks <n>          Number of ticks to run (default 120)
  -attach <n>         Tick at which blade meshes become available (default 0)
  -script <list>      Commands as tick:command pairs
  -every <n>          Print every nth tick (default 1)
  -summary            Print only the final state as YAML
  -debug              Log controller events to stderr

Commands for -script:
  engage, disengage, stop-rotation, toggle-rotation, toggle-engagement

Examples:
  turbinesim run -ticks 40 -summary
  turbinesim run -ticks 200 -every 10 -script "60:toggle-engagement,120:toggle-rotation"
  turbinesim run -attach 5 -ticks 10`)
}

func cmdRun(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file")
	ticks := fs.Int("ticks", 120, "Number of ticks")
	attach := fs.Int("attach", 0, "Tick at which blades attach")
	scriptArg := fs.String("script", "", "Commands as tick:command pairs")
	every := fs.Int("every", 1, "Print every nth tick")
	summaryOnly := fs.Bool("summary", false, "Print only the final state")
	debug := fs.Bool("debug", false, "Log controller events")
	fs.Parse(args)

	cfg := mustLoad(*configPath)

	level := "warn"
	if *debug {
		level = "debug"
	}
	if err := logger.InitTo(level, "", os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	script, err := ParseScript(*scriptArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	frames, err := Simulate(cfg.Turbine, Options{
		Ticks:    *ticks,
		AttachAt: *attach,
		Script:   script,
	}, logger.Named(logger.ComponentTurbine))
	if err != nil {
		logger.Error("simulation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	if *summaryOnly {
		err = writeSummary(os.Stdout, frames)
	} else {
		err = writeTrace(os.Stdout, frames, *every)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func cmdConfig(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file")
	fs.Parse(args)

	cfg := mustLoad(*configPath)

	out, err := yaml.Marshal(map[string]any{"turbine": cfg.Turbine})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}

func mustLoad(path string) *config.Config {
	cfg, err := config.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
