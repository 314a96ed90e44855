// stackie stores, inspects and encodes text in fixed-capacity strings.
// It is a thin shell over the stackie package for looking at what the
// truncating copy does to a given input at a given capacity.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/rawbytedev/stackie/internal/config"
	"github.com/rawbytedev/stackie/internal/logger"
	"github.com/rawbytedev/stackie/internal/sized"
)

var errUsage = errors.New("usage")

type command struct {
	name    string
	summary string
	run     func(e *env, args []string) error
}

var commands = []command{
	{"store", "assign each argument and print what was kept", runStore},
	{"inspect", "show the raw buffer after an assignment", runInspect},
	{"encode", "print an encoding of the stored string", runEncode},
	{"decode", "decode stdin into a string and print it", runDecode},
	{"profile", "time an assignment loop and count heap allocations", runProfile},
}

// env is what every command gets to work with.
type env struct {
	cfg    *config.Config
	stdin  io.Reader
	stdout io.Writer
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	var configPath string

	flagSet := pflag.NewFlagSet("stackie", pflag.ContinueOnError)
	flagSet.SetInterspersed(false)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&configPath, "config", "", "configuration file (default: ./stackie.toml if present)")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(stdout, flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help || flagSet.NArg() == 0 {
		printHelp(stdout, flagSet)
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger.Init(cfg.Log)

	name := flagSet.Arg(0)
	for _, c := range commands {
		if c.name == name {
			logger.Debugf("running %s", name)
			return c.run(&env{cfg: cfg, stdin: stdin, stdout: stdout}, flagSet.Args()[1:])
		}
	}
	return fmt.Errorf("%w: unknown command %q (see stackie --help)", errUsage, name)
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `stackie keeps text in fixed-capacity strings: anything past the
capacity is dropped without notice, and the buffer always ends in a 0 byte.

Usage:
  stackie [--config FILE] <command> [flags] [args]

Commands:
`)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.summary)
	}
	fmt.Fprintf(w, `
Flags:
%s
Capacities: %v
Modes: literal (declared size len+1), array (declared size len),
       cstr (up to the first 0 byte), string (len)

Configuration is read from --config or ./stackie.toml, then STACKIE_*
environment variables (a .env file is loaded first).
`, flagSet.FlagUsages(), sized.Capacities())
}

// bufferFlags are shared by every command that fills a buffer.
type bufferFlags struct {
	capacity int
	mode     string
	unquote  bool
}

func bindBufferFlags(flagSet *pflag.FlagSet, cfg *config.Config) *bufferFlags {
	f := &bufferFlags{}
	flagSet.IntVarP(&f.capacity, "capacity", "c", cfg.Capacity, "string capacity in bytes")
	flagSet.StringVarP(&f.mode, "mode", "m", cfg.Mode, "assignment mode: literal, array, cstr or string")
	flagSet.BoolVarP(&f.unquote, "unquote", "u", false, `interpret Go escapes in arguments, e.g. "ab\x00cd"`)
	return f
}

func (f *bufferFlags) buffer() (sized.Buffer, sized.Mode, error) {
	mode, err := sized.ParseMode(f.mode)
	if err != nil {
		return nil, "", err
	}
	buf, err := sized.New(f.capacity)
	if err != nil {
		return nil, "", err
	}
	return buf, mode, nil
}

func (f *bufferFlags) text(arg string) (string, error) {
	if !f.unquote {
		return arg, nil
	}
	s, err := strconv.Unquote(`"` + strings.ReplaceAll(arg, `"`, `\"`) + `"`)
	if err != nil {
		return "", fmt.Errorf("%w: cannot unquote %q: %w", errUsage, arg, err)
	}
	return s, nil
}

func newFlagSet(name string) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	return flagSet
}
