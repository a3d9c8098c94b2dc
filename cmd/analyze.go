package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/allocation"
	"github.com/etnz/allocation/renderer"
	"github.com/google/subcommands"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Artifact file names.
const (
	WorkbookFile = "Excel_Master_AAI.xlsx"
	ReportFile   = "Report_AAI.pdf"
)

// analyzeCmd holds the flags for the 'analyze' subcommand.
type analyzeCmd struct {
	preset  string
	out     string
	json    bool
	preview int
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "analyze a portfolio statement and write the workbook and the PDF report" }
func (*analyzeCmd) Usage() string {
	return `pfa analyze [-preset <name>] [-out <dir>] [-json] <statement.xlsx|xls|csv>

  Detects the columns of the statement, classifies every position into funds,
  securities, managed mandates and cash, and writes:
    - Excel_Master_AAI.xlsx: one sheet per category and a margin summary,
    - Report_AAI.pdf: the summary report with charts.

  An unreadable file still produces both artifacts, carrying a note.
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.preset, "preset", "", "Column preset name. Defaults to the preset whose name appears in the file name.")
	f.StringVar(&c.out, "out", ".", "Directory where the artifacts are written.")
	f.BoolVar(&c.json, "json", false, "Print the summary as JSON instead of markdown.")
	f.IntVar(&c.preview, "preview", 20, "Number of input rows to preview.")
}

func (c *analyzeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	logger = logger.With(zap.String("run", uuid.NewString()))

	a := analyze(logger, path, c.preset)

	if err := c.writeArtifacts(a); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing artifacts: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.json {
		data, err := json.MarshalIndent(a.Summary, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding summary: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(data))
		if a.ZeroTotal() {
			fmt.Fprintln(os.Stderr, "Warning:", renderer.ZeroTotalWarning)
		}
	} else {
		md := renderer.SummaryMarkdown(a)
		if a.Readable() && c.preview > 0 {
			md += "\n" + renderer.PreviewMarkdown(a, c.preview)
		}
		printMarkdown(md)
	}

	fmt.Fprintf(os.Stderr, "Wrote %s and %s\n", filepath.Join(c.out, WorkbookFile), filepath.Join(c.out, ReportFile))
	return subcommands.ExitSuccess
}

func (c *analyzeCmd) writeArtifacts(a *allocation.Analysis) error {
	if err := os.MkdirAll(c.out, 0755); err != nil {
		return fmt.Errorf("cannot create output directory %q: %w", c.out, err)
	}
	xlsx, err := renderer.Workbook(a)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(c.out, WorkbookFile), xlsx, 0644); err != nil {
		return fmt.Errorf("cannot write workbook: %w", err)
	}
	pdf, err := renderer.PDF(a, renderer.PDFOptions{Date: time.Now()})
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(c.out, ReportFile), pdf, 0644); err != nil {
		return fmt.Errorf("cannot write report: %w", err)
	}
	return nil
}
