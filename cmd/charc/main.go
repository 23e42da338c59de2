package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/raymyers/charlang/pkg/ast"
	"github.com/raymyers/charlang/pkg/config"
	"github.com/raymyers/charlang/pkg/diag"
	"github.com/raymyers/charlang/pkg/lexer"
	"github.com/raymyers/charlang/pkg/parser"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// Debug flags for dumping intermediate results
var (
	dTokens bool
	dParse  bool
	dAST    bool
)

var (
	checkOnly  bool
	configPath string
	colorMode  string
	verbose    bool
)

// ErrParseFailed is returned when the input has a lexical or syntax error.
// The error itself has already been rendered to the error stream.
var ErrParseFailed = errors.New("parse failed")

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, ErrParseFailed) {
			fmt.Fprintf(os.Stderr, "charc: %v\n", err)
		}
		return 1
	}
	return 0
}

// debugFlagNames lists the flags that also accept a single dash (-dparse).
var debugFlagNames = []string{"dtokens", "dparse", "dast"}

// normalizeFlags converts single-dash debug flags like -dparse to --dparse
func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	for i, arg := range args {
		result[i] = arg
		for _, flagName := range debugFlagNames {
			if arg == "-"+flagName {
				result[i] = "--" + flagName
				break
			}
		}
	}
	return result
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "charc [file]",
		Short: "charc parses charlang source and dumps its syntax tree",
		Long: `charc is the command line front end for the charlang parser.
It reads a source file (or - for stdin), reports the first lexical or
syntax error against the source, and can dump the token stream, the
syntax tree as YAML, or the re-printed source.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			d := &driver{
				filename: args[0],
				out:      out,
				errOut:   errOut,
				cfg:      cfg,
				log:      newLogger(errOut, cfg),
			}
			return d.run(cmd.InOrStdin())
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().BoolVar(&dTokens, "dtokens", false, "Dump the token stream")
	rootCmd.Flags().BoolVar(&dParse, "dparse", false, "Dump the re-printed source after parsing")
	rootCmd.Flags().BoolVar(&dAST, "dast", false, "Dump the syntax tree as YAML")
	rootCmd.Flags().BoolVar(&checkOnly, "check", false, "Only report errors")
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to a charc.toml file (default $"+config.EnvVar+")")
	rootCmd.Flags().StringVar(&colorMode, "color", "auto", "Color diagnostics: auto, always or never")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")

	return rootCmd
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("color") {
		if _, err := diag.ParseColorMode(colorMode); err != nil {
			return nil, err
		}
		cfg.Diagnostics.Color = colorMode
	}
	if verbose {
		cfg.General.LogLevel = "debug"
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level, err := config.ParseLevel(cfg.General.LogLevel)
	if err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// driver runs one invocation against one input.
type driver struct {
	filename string
	out      io.Writer
	errOut   io.Writer
	cfg      *config.Config
	log      *slog.Logger
	src      string
}

func (d *driver) run(stdin io.Reader) error {
	if err := d.read(stdin); err != nil {
		return err
	}
	d.log.Debug("read input", "file", d.filename, "bytes", len(d.src))

	if dTokens {
		if err := d.dumpTokens(); err != nil {
			return err
		}
	}

	start := time.Now()
	prog, err := parser.Parse(d.src)
	if err != nil {
		return d.report(err)
	}
	d.log.Info("parsed", "file", d.filename, "items", len(prog.Items), "elapsed", time.Since(start))

	if checkOnly {
		return nil
	}
	if dAST {
		if err := ast.DumpYAML(d.out, prog); err != nil {
			return err
		}
	}
	if dParse {
		return d.dumpParsed(prog)
	}
	return nil
}

func (d *driver) read(stdin io.Reader) error {
	var content []byte
	var err error
	if d.filename == "-" {
		content, err = io.ReadAll(stdin)
	} else {
		content, err = os.ReadFile(d.filename)
	}
	if err != nil {
		return fmt.Errorf("error reading %s: %w", d.filename, err)
	}
	d.src = string(content)
	return nil
}

// report renders a lexer or parser error and returns ErrParseFailed
// wrapping it.
func (d *driver) report(err error) error {
	mode, merr := diag.ParseColorMode(d.cfg.Diagnostics.Color)
	if merr != nil {
		mode = diag.ColorAuto
	}
	opts := diag.Options{Color: mode, ContextLines: d.cfg.Diagnostics.ContextLines}
	if rerr := diag.Render(d.errOut, d.filename, d.src, err, opts); rerr != nil {
		return rerr
	}
	d.log.Debug("parse failed", "file", d.filename, "kind", parser.ErrorKindName(err))
	return fmt.Errorf("%w: %w", ErrParseFailed, err)
}

func (d *driver) dumpTokens() error {
	l := lexer.New(d.src)
	for {
		tok, err := l.NextToken()
		if err != nil {
			return d.report(err)
		}
		fmt.Fprintf(d.out, "%s\t%s\t%s", tok.Pos, tok.Type.Class(), tok.Literal)
		if tok.Type == lexer.TokenNumber {
			fmt.Fprintf(d.out, "\t%s", tok.Num.Kind)
		}
		fmt.Fprintln(d.out)
		if tok.Type == lexer.TokenEOF {
			return nil
		}
	}
}

// dumpParsed prints the program to stdout and, for a named file, to the
// matching .parsed file next to it.
func (d *driver) dumpParsed(prog *ast.Program) error {
	var buf bytes.Buffer
	ast.Fprint(&buf, prog)

	if d.filename != "-" {
		outputFilename := parsedOutputFilename(d.filename)
		if err := os.WriteFile(outputFilename, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("error creating %s: %w", outputFilename, err)
		}
		d.log.Debug("wrote parsed output", "file", outputFilename)
	}

	_, err := d.out.Write(buf.Bytes())
	return err
}

// parsedOutputFilename returns the output filename for -dparse
// input.c -> input.parsed.c
func parsedOutputFilename(filename string) string {
	ext := filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext) + ".parsed" + ext
}
