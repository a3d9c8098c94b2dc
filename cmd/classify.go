package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/allocation"
	"github.com/google/subcommands"
)

type classifyCmd struct{}

func (*classifyCmd) Name() string     { return "classify" }
func (*classifyCmd) Synopsis() string { return "classify a single position" }
func (*classifyCmd) Usage() string {
	return `pfa classify <name> [<isin>]

  Prints the category a position would be classified into, and the signals
  that decided it.
  Example: pfa classify "ENI SPA ORD" IT0003132476
`
}

func (c *classifyCmd) SetFlags(f *flag.FlagSet) {}

func (c *classifyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 || f.NArg() > 2 {
		fmt.Fprintln(os.Stderr, "Please provide the position name and optionally its ISIN.")
		return subcommands.ExitUsageError
	}
	name, id := f.Arg(0), f.Arg(1)

	signals := allocation.DetectSignals(name, id)
	category := signals.Category()
	fmt.Printf("Category: %s\n", category)
	fmt.Printf("Signals:  cash=%t fund=%t managed=%t isin=%t\n", signals.Cash, signals.Fund, signals.Managed, signals.SecurityShaped)
	if category == allocation.Security {
		if t := allocation.GuessSecurityType(name); t != allocation.UnknownType {
			fmt.Printf("Type:     %s\n", t)
		}
	}
	return subcommands.ExitSuccess
}
