package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/allocation"
	"github.com/etnz/allocation/renderer"
	"github.com/google/subcommands"
)

type columnsCmd struct {
	preset string
}

func (*columnsCmd) Name() string     { return "columns" }
func (*columnsCmd) Synopsis() string { return "show which column of a statement carries each field" }
func (*columnsCmd) Usage() string {
	return `pfa columns [-preset <name>] <statement>

  Prints the column detected for ISIN, Strumento (name), Quantita, Valore and
  Valuta. Use it to check a new statement format before writing a preset.
`
}

func (c *columnsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.preset, "preset", "", "Column preset name. Defaults to the preset whose name appears in the file name.")
}

func (c *columnsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Please provide the path to the portfolio statement.")
		return subcommands.ExitUsageError
	}
	path := f.Arg(0)
	logger, err := NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		return subcommands.ExitUsageError
	}
	defer logger.Sync()

	s, err := LoadStatement(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading statement %q: %v\n", path, err)
		return subcommands.ExitFailure
	}
	presets := OpenPresets(logger)
	preset := presetFor(presets, c.preset, path)
	r := &allocation.Resolver{Presets: presets, Logger: logger}
	m := r.Resolve(s.Headers, preset)

	if preset != "" {
		fmt.Printf("Preset: %s\n", preset)
	}
	printMarkdown(renderer.MappingMarkdown(m))
	return subcommands.ExitSuccess
}
