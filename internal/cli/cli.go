// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}

	normalizeOptions(&opts)
	if err := validateOptionCombinations(opts); err != nil {
		return opts, err
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: retrochip8 [options] <ROM file to run>\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions applies implied option values
func normalizeOptions(opts *options.Program) {
	if opts.Trace {
		opts.Debug = true
	}
	if opts.Headless {
		opts.Mute = true
	}
}

// validateOptionCombinations checks option values and conflicting options
func validateOptionCombinations(opts options.Program) error {
	switch {
	case opts.Rate <= 0 || opts.Rate > options.MaxRate:
		return fmt.Errorf("invalid cycle rate %d, must be between 1 and %d", opts.Rate, options.MaxRate)
	case opts.Scale <= 0:
		return fmt.Errorf("invalid window scale %d, must be positive", opts.Scale)
	case opts.KeyHold <= 0:
		return fmt.Errorf("invalid key hold %d, must be positive", opts.KeyHold)
	case opts.Cycles < 0:
		return fmt.Errorf("invalid cycle limit %d, must not be negative", opts.Cycles)
	case opts.Headless && opts.Terminal:
		return errors.New("-headless and -terminal can not be used together")
	case opts.Headless && opts.Cycles == 0:
		return errors.New("-headless requires a cycle limit set with -cycles")
	case opts.Memviz != "" && !opts.Headless:
		return errors.New("-memviz is only supported in headless mode")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Wav, "wav", "", "record the sound output to the given .wav file")
	flags.StringVar(&opts.Memviz, "memviz", "", "write a Graphviz dump of the machine state to the given file after a headless run")
	flags.IntVar(&opts.Rate, "rate", options.DefaultRate, "instruction cycles per second, the timers count down once per cycle")
	flags.IntVar(&opts.Cycles, "cycles", 0, "stop after the given number of cycles, 0 runs until stopped")
	flags.IntVar(&opts.Scale, "scale", options.DefaultScale, "window scale factor of the desktop front end")
	flags.IntVar(&opts.KeyHold, "keyhold", options.DefaultKeyHold, "cycles a key stays pressed in the terminal front end")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 uses the current time")
	flags.BoolVar(&opts.Headless, "headless", false, "run without front end and print the final machine state")
	flags.BoolVar(&opts.Terminal, "terminal", false, "render to the terminal instead of opening a window")
	flags.BoolVar(&opts.Mute, "mute", false, "disable sound output")
	flags.StringVar(&opts.Statsview, "statsview", "", "serve runtime statistics on the given address, for example localhost:12600")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
