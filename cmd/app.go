// Package cmd implements the CLI application to analyze a portfolio statement.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/allocation"
	"github.com/etnz/allocation/sheet"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&analyzeCmd{}, "analysis")
	c.Register(&summaryCmd{}, "analysis")
	c.Register(&columnsCmd{}, "analysis")
	c.Register(&classifyCmd{}, "analysis")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var presetsPath = flag.String("presets", "mappings.yaml", "Path to the column presets file (YAML or JSON)")
var logLevel = flag.String("log-level", "warn", "Log level: debug, info, warn or error")
var logFormat = flag.String("log-format", "console", "Log format: console or json")

// NewLogger builds the application logger from the global flags.
func NewLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if *logFormat == "console" {
		cfg = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(*logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", *logLevel, err)
	}
	cfg.Level = level
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// OpenPresets loads the presets file. A missing or invalid file yields no presets.
func OpenPresets(logger *zap.Logger) allocation.Presets {
	return allocation.LoadPresets(*presetsPath, logger)
}

// presetFor returns the preset explicitly requested, or the one whose name
// appears in the statement file name.
func presetFor(presets allocation.Presets, requested, file string) string {
	if requested != "" {
		return requested
	}
	return presets.Match(file)
}

// LoadStatement reads a statement file.
func LoadStatement(path string) (*allocation.Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open statement: %w", err)
	}
	defer f.Close()
	return sheet.Load(f, filepath.Base(path))
}

// analyze loads and analyzes a statement. An unreadable file degrades to an
// empty analysis.
func analyze(logger *zap.Logger, path, requestedPreset string) *allocation.Analysis {
	presets := OpenPresets(logger)
	preset := presetFor(presets, requestedPreset, path)

	s, err := LoadStatement(path)
	if err != nil {
		logger.Warn("statement not readable", zap.String("file", path), zap.Error(err))
		return allocation.Unreadable(allocation.UnreadableNote)
	}
	z := &allocation.Analyzer{Presets: presets, Logger: logger}
	return z.Analyze(s, preset)
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when rendering fails.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(strings.TrimSpace(md) + "\n")
}
