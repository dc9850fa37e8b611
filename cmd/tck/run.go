package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/dkoosis/tck/internal/config"
	"github.com/dkoosis/tck/internal/live"
	"github.com/dkoosis/tck/pkg/candidatelist"
	"github.com/dkoosis/tck/pkg/candidates"
	"github.com/dkoosis/tck/pkg/classpath"
	"github.com/dkoosis/tck/pkg/instantiator"
	"github.com/dkoosis/tck/pkg/render"
	"github.com/dkoosis/tck/pkg/reporter"
	"github.com/dkoosis/tck/pkg/results"
	"github.com/dkoosis/tck/pkg/tck"
)

// matrixReporter is a reporter that keeps the run for the exit code.
type matrixReporter interface {
	tck.Reporter
	Matrix() *results.Matrix
	Err() error
}

type runFlags struct {
	cli     config.CliFlags
	live    bool
	envFile string
}

func (a *app) runCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every instantiator against every candidate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			f.cli.ParallelSet = flags.Changed("parallel")
			f.cli.StrictSet = flags.Changed("strict")
			f.cli.NoColorSet = flags.Changed("no-color")
			return a.run(cmd.Context(), f)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.cli.List, "list", "", "Candidate list: general, serializable, or a .properties/.yaml/.txt file")
	flags.StringSliceVarP(&f.cli.Instantiators, "instantiator", "i", nil, "Instantiators to run, in order: std, serializer, constructor")
	flags.StringVar(&f.cli.Format, "format", "", "Output format: auto, terminal, llm, json")
	flags.StringVar(&f.cli.ThemeName, "theme", "", "Theme: "+strings.Join(render.ThemeNames(), ", "))
	flags.IntVarP(&f.cli.Parallel, "parallel", "p", config.DefaultParallel, "Candidates tried concurrently per instantiator")
	flags.BoolVar(&f.cli.Strict, "strict", false, "Reject duplicate instantiator labels")
	flags.BoolVar(&f.cli.NoColor, "no-color", false, "Disable colors")
	flags.BoolVar(&f.live, "live", false, "Show a live progress view (terminal only)")
	flags.StringVar(&f.envFile, "env-file", ".env", "Environment file loaded before configuration")
	return cmd
}

func (a *app) run(ctx context.Context, f runFlags) error {
	if err := config.LoadDotEnv(f.envFile); err != nil {
		return usageError("%w", err)
	}
	cfg, err := config.ResolveConfig(f.cli, a.logger)
	if err != nil {
		return usageError("%w", err)
	}
	a.logger.Debug("configuration resolved",
		zap.String("format", cfg.Format), zap.String("format_source", cfg.FormatSource),
		zap.String("theme", cfg.Theme), zap.String("theme_source", cfg.ThemeSource),
		zap.Int("parallel", cfg.Parallel), zap.Bool("strict", cfg.Strict),
		zap.String("list", cfg.List), zap.Strings("instantiators", cfg.Instantiators))

	entries, err := loadList(cfg.List)
	if err != nil {
		return usageError("%w", err)
	}

	cp := candidates.Default()
	opts := []tck.Option{tck.WithLogger(a.logger), tck.WithParallelism(cfg.Parallel)}
	if cfg.Strict {
		opts = append(opts, tck.WithStrictRegistration())
	}
	k := tck.New(opts...)
	for _, name := range cfg.Instantiators {
		inst, err := newInstantiator(name, cp)
		if err != nil {
			return usageError("%w", err)
		}
		if err := k.RegisterInstantiator(name, inst); err != nil {
			return usageError("register %s: %w", name, err)
		}
	}

	var unresolved []string
	loader := tck.NewLoader(cp, tck.ErrorHandlerFunc(func(name tck.ClassIdentifier, err error) {
		unresolved = append(unresolved, name)
		fmt.Fprintf(a.stderr, "tck: %v\n", err)
	}), tck.WithLoaderLogger(a.logger))
	set := loader.LoadEntries(entries)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	mode := resolveFormat(cfg.Format, a.stdout)
	theme := render.ThemeByName(cfg.Theme)

	var runErr error
	var rep matrixReporter
	if f.live && mode == "terminal" && isTTYWriter(a.stdout) {
		// The report is held back until the live view has released the terminal.
		var buf bytes.Buffer
		rep = a.selectReporter(mode, theme, &buf)
		runErr = live.Run(ctx, a.stdout, theme, func(ctx context.Context, r tck.Reporter) error {
			return k.RunContext(ctx, set, a.withLog(r, rep))
		})
		if _, err := io.Copy(a.stdout, &buf); err != nil && runErr == nil {
			runErr = err
		}
	} else {
		rep = a.selectReporter(mode, theme, a.stdout)
		runErr = k.RunContext(ctx, set, a.withLog(rep))
	}

	if runErr != nil {
		return &exitError{code: exitFailed, err: runErr}
	}
	if err := rep.Err(); err != nil {
		return &exitError{code: exitFailed, err: fmt.Errorf("write report: %w", err)}
	}
	if len(unresolved) > 0 || !rep.Matrix().Passed() {
		return &exitError{code: exitFailed}
	}
	return nil
}

// withLog adds the structured log reporter when debug logging is on.
func (a *app) withLog(reps ...tck.Reporter) tck.Reporter {
	if a.verbose {
		reps = append(reps, reporter.NewLog(a.logger))
	}
	return tck.MultiReporter(reps...)
}

func (a *app) selectReporter(mode string, theme render.Theme, w io.Writer) matrixReporter {
	switch mode {
	case "json":
		return reporter.NewJSON(w, true)
	case "llm":
		return reporter.NewLLM(w)
	default:
		width, _ := termSize(a.stdout)
		return reporter.NewText(w, theme, width)
	}
}

// loadList returns a built-in list by name or reads one from disk.
func loadList(name string) ([]candidatelist.Entry, error) {
	switch name {
	case "", "general":
		return candidates.General(), nil
	case "serializable":
		return candidates.Serializable(), nil
	default:
		return candidatelist.ReadFile(name)
	}
}

func newInstantiator(name string, cp *classpath.ClassPath) (tck.Instantiator, error) {
	switch strings.ToLower(name) {
	case "std":
		return instantiator.Std{}, nil
	case "serializer":
		return instantiator.Serializer{Classes: cp}, nil
	case "constructor":
		return instantiator.Constructor{Classes: cp}, nil
	default:
		return nil, fmt.Errorf("unknown instantiator %q (expected std, serializer, constructor)", name)
	}
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termSize returns the terminal dimensions for w, defaulting to 80x24.
func termSize(w io.Writer) (width, height int) {
	width, height = 80, 24
	if f, ok := w.(*os.File); ok {
		if tw, th, err := term.GetSize(int(f.Fd())); err == nil {
			if tw > 0 {
				width = tw
			}
			if th > 0 {
				height = th
			}
		}
	}
	return width, height
}

func resolveFormat(format string, w io.Writer) string {
	if format != "auto" {
		return format
	}
	// Auto-detect: TTY = terminal, piped = llm
	if isTTYWriter(w) {
		return "terminal"
	}
	return "llm"
}
