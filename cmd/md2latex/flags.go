package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds verbosity and config selection flags.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// cliFlags holds all flags of the md2latex command.
type cliFlags struct {
	common     commonFlags
	output     string
	listFields bool
	version    bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logging")
}

// newFlagSet builds the flag set bound to f. Errors and usage are reported
// by the caller, so the set itself stays silent.
func newFlagSet(f *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("md2latex", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	fs.BoolVar(&f.listFields, "list-fields", false, "list template fields and exit")
	fs.BoolVar(&f.version, "version", false, "show version information")
	addCommonFlags(fs, &f.common)

	return fs
}

// parseFlags parses command-line flags (without the program name) and
// returns the positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	f := &cliFlags{}
	fs := newFlagSet(f)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
