package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

type stringsFlag []string

func (sf *stringsFlag) String() string     { return fmt.Sprint(*sf) }
func (sf *stringsFlag) Set(s string) error { *sf = append(*sf, s); return nil }

func main() {
	ctx := context.Background()

	var (
		configPath string
		timeout    time.Duration
		trace      bool
		memLimit   uint
		halt       bool
		noPrelude  bool
		snapPath   string
		inspect    string
		dump       bool
		initPaths  stringsFlag
	)
	flag.StringVar(&configPath, "config", "", "load configuration from this file, rather than ./"+configName)
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.UintVar(&memLimit, "mem-limit", 0, "limit arena memory in bytes")
	flag.BoolVar(&halt, "e", false, "halt on the first error")
	flag.BoolVar(&noPrelude, "no-prelude", false, "do not define prelude words")
	flag.StringVar(&snapPath, "snapshot", "", "write a CBOR snapshot of the machine to this file on exit")
	flag.StringVar(&inspect, "inspect", "", "print a snapshot file written by -snapshot, and exit")
	flag.BoolVar(&dump, "dump", false, "dump machine state to stderr on exit")
	flag.Var(&initPaths, "init", "run this source file before input; may be repeated")
	flag.Parse()

	if inspect != "" {
		if err := inspectSnapshot(inspect, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var cfg *Config
	var err error
	if configPath != "" {
		cfg, err = LoadConfig(configPath)
	} else {
		cfg, err = FindConfig(".")
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	opts := cfg.Options()
	opts = append(opts, WithArgs(append([]string{os.Args[0]}, flag.Args()...)...))
	if trace || cfg.Trace {
		commonlog.Configure(2, nil)
		opts = append(opts, WithLogf(commonlog.GetLogger("gonf.vm").Debugf))
	}
	if memLimit != 0 {
		opts = append(opts, WithMemLimit(memLimit))
	}
	if halt {
		opts = append(opts, WithHaltOnError(true))
	}
	if noPrelude {
		opts = append(opts, WithPrelude(false))
	}

	var inits []io.Reader
	for _, path := range append(cfg.InitPaths(), initPaths...) {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(1)
		}
		inits = append(inits, f)
	}
	if len(inits) > 0 {
		opts = append(opts, WithInit(inits...))
	}

	var ti *termInput
	if isTerminal(os.Stdin) && isTerminal(os.Stdout) {
		ti, err = newTermInput(os.Stdin, os.Stdout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(1)
		}
		opts = append(opts, WithLineSource(ti), WithOutput(ti))
	} else {
		opts = append(opts, WithInput(os.Stdin), WithOutput(os.Stdout))
	}

	vm := New(opts...)
	if ti != nil {
		ti.prompt = vm.Prompt
	}

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	runErr := vm.Run(ctx)
	if ti != nil {
		vm.out.FreshLine()
	}
	if err := vm.Close(); err != nil && runErr == nil {
		runErr = err
	}

	if dump {
		vmDumper{vm: vm, out: os.Stderr}.dump()
	}
	if snapPath != "" {
		if err := writeSnapshot(vm, snapPath); err != nil && runErr == nil {
			runErr = err
		}
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %+v\n", runErr)
		os.Exit(1)
	}
	os.Exit(vm.ExitCode())
}

func writeSnapshot(vm *VM, path string) error {
	data, err := vm.Snapshot()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func inspectSnapshot(path string, out io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	snap, err := unmarshalSnapshot(data)
	if err != nil {
		return err
	}
	snapDumper{out: out, natives: true}.dump(*snap)
	return nil
}
