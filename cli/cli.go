package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/aq/ason"
	"github.com/ardnew/aq/log"
	"github.com/ardnew/aq/pipeline"
	"github.com/ardnew/aq/pkg"
)

// ErrArguments is returned when the command line cannot be parsed.
var ErrArguments = pipeline.NewError("invalid arguments (try '--help')")

// configBase is the base name of the configuration files.
const configBase = "config"

// CLI is the command line of aq.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version information and quit." short:"V"`

	Output    string `help:"Write the result to PATH instead of standard output." placeholder:"PATH" short:"o"`
	QueryFile string `help:"Read the query from PATH."                             name:"query" placeholder:"PATH" short:"q"`
	Text      string `help:"Read the input document from TEXT instead of standard input." placeholder:"TEXT" short:"t"`
	Format    string `default:"${format}" enum:"${formatEnum}" help:"Output format (${enum})." short:"f"`
	Indent    int    `default:"${indent}" help:"Indent width of the output; 0 writes each document on one line."`

	QueryExpression string   `arg:"" help:"Query applied to the input."         name:"query-expression" optional:""`
	InputFiles      []string `arg:"" help:"Input files, read in the order given." name:"input-files"      optional:""`
}

// pipelineConfig builds the immutable run configuration from parsed flags.
func (c *CLI) pipelineConfig() (pipeline.Config, error) {
	format, err := ason.ParseOutputFormat(c.Format)
	if err != nil {
		return pipeline.Config{}, ErrArguments.Wrap(err)
	}

	if c.Indent < 0 {
		return pipeline.Config{}, ErrArguments.Wrap(
			errors.New("--indent must not be negative: " + strconv.Itoa(c.Indent)),
		)
	}

	return pipeline.Config{
		Output:    c.Output,
		QueryFile: c.QueryFile,
		Query:     c.QueryExpression,
		Inputs:    append([]string(nil), c.InputFiles...),
		Text:      c.Text,
		Printer:   ason.Printer{Format: format, Indent: c.Indent},
	}, nil
}

func (c *CLI) groups() []kong.Group {
	var groups []kong.Group

	for _, g := range []kong.Group{c.Log.group(), c.Pprof.group()} {
		if g.Key != "" {
			groups = append(groups, g)
		}
	}

	return groups
}

// session is everything a run touches outside its arguments.
type session struct {
	streams   pipeline.Streams
	stderr    io.Writer
	exit      func(code int)
	configDir string
}

// Run parses args and runs the pipeline on the standard streams.
//
// The exit function is only called by help and version output, which
// end the process successfully. Every failure is returned; pass it to
// [Report].
func Run(ctx context.Context, exit func(code int), args ...string) error {
	return run(ctx, session{
		streams:   pipeline.StdStreams(),
		stderr:    os.Stderr,
		exit:      exit,
		configDir: pkg.ConfigDir(),
	}, args)
}

func run(ctx context.Context, s session, args []string) error {
	var cli CLI

	vars := kong.Vars{
		"version":    pkg.Name + " " + pkg.Version,
		"format":     ason.OutputASON.String(),
		"formatEnum": strings.Join(ason.OutputFormats(), ","),
		"indent":     strconv.Itoa(ason.DefaultIndent),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.Writers(s.streams.Stdout, s.stderr),
		kong.Exit(s.exit),
		kong.ExplicitGroups(cli.groups()),
		kong.DefaultEnvars(pkg.EnvPrefix),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true, Summary: true}),
		kong.Configuration(kong.JSON, filepath.Join(s.configDir, configBase+".json")),
		kong.Configuration(resolve, filepath.Join(s.configDir, configBase+".ason")),
		vars,
	)
	if err != nil {
		return err
	}

	if _, err := parser.Parse(args); err != nil {
		return ErrArguments.Wrap(err)
	}

	cli.Log.start(ctx)

	// No-op unless built with the pprof tag and a mode is given.
	defer cli.Pprof.start(ctx)()

	cfg, err := cli.pipelineConfig()
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "configuration resolved",
		slog.String("output", cfg.Output),
		slog.Int("inputs", len(cfg.Inputs)),
		slog.String("format", cfg.Printer.Format.String()),
		slog.Int("indent", cfg.Printer.Indent),
	)

	return pipeline.Run(ctx, cfg, s.streams)
}
