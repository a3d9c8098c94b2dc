package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/allocation"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	preset string
	query  string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "print the analysis summary as JSON" }
func (*summaryCmd) Usage() string {
	return `pfa summary [-preset <name>] [-q <jsonpath>] <statement>

  Prints the summary, the detected columns and the warnings as a JSON document.
  With -q, prints only the value selected by the JSONPath query, e.g.

    pfa summary -q '$.summary.aum_total' statement.xlsx
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.preset, "preset", "", "Column preset name. Defaults to the preset whose name appears in the file name.")
	f.StringVar(&c.query, "q", "", "JSONPath query selecting part of the document.")
}

// summaryDocument is the JSON document printed by the summary command.
type summaryDocument struct {
	Summary  allocation.Summary      `json:"summary"`
	Mapping  allocation.FieldMapping `json:"mapping"`
	Preset   string                  `json:"preset,omitempty"`
	Warnings []string                `json:"warnings,omitempty"`
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Please provide the path to the portfolio statement.")
		return subcommands.ExitUsageError
	}
	logger, err := NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		return subcommands.ExitUsageError
	}
	defer logger.Sync()

	a := analyze(logger, f.Arg(0), c.preset)
	doc := summaryDocument{Summary: a.Summary, Mapping: a.Mapping, Preset: a.Preset, Warnings: a.Warnings}

	out, err := query(doc, c.query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error querying summary: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(out)
	return subcommands.ExitSuccess
}

// query encodes doc as indented JSON, or only the part selected by path when
// path is not empty.
func query(doc any, path string) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("cannot encode document: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return "", fmt.Errorf("cannot decode document: %w", err)
	}
	if path != "" {
		if v, err = jsonpath.Get(path, v); err != nil {
			return "", fmt.Errorf("invalid query %q: %w", path, err)
		}
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("cannot encode result: %w", err)
	}
	return string(out), nil
}
