package commands

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/mutigen/config"
	"github.com/teranos/mutigen/driver"
	"github.com/teranos/mutigen/errors"
	"github.com/teranos/mutigen/internal/format"
	"github.com/teranos/mutigen/internal/gitinfo"
	"github.com/teranos/mutigen/internal/watch"
	"github.com/teranos/mutigen/logger"
	"github.com/teranos/mutigen/model"
	"github.com/teranos/mutigen/version"
)

func (a *app) generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <model files...>",
		Short: "Generate reactive wrappers from class models",
		Long: `Generate one Java wrapper per class model.

Model files are read in argument order; .yaml/.yml, .toml and .json are
supported. Every class is attempted and all failures are reported unless
--fail-fast is set. A class that fails leaves no output behind.

Examples:
  mutigen generate core.yaml net.yaml        # Write to output.dir
  mutigen generate -o build/gen core.yaml    # Write to build/gen
  mutigen generate --stdout core.yaml        # Print to stdout
  mutigen generate --watch core.yaml         # Regenerate on change`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runGenerate,
	}
	f := cmd.Flags()
	f.StringP("out", "o", "", "Output directory (default: output.dir)")
	f.Bool("fail-fast", false, "Stop at the first class that fails")
	f.Int("workers", 0, "Parallel workers (0 = GOMAXPROCS)")
	f.Bool("stamp", false, "Write the model files' last commit as a source version line")
	f.String("formatter", "", "Command run on written files, e.g. \"google-java-format -i\"")
	f.Bool("stdout", false, "Write units to stdout instead of files")
	f.BoolP("watch", "w", false, "Regenerate whenever a model file changes")
	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, args []string) error {
	stdout, _ := cmd.Flags().GetBool("stdout")
	watching, _ := cmd.Flags().GetBool("watch")
	if stdout && watching {
		return errors.New("--watch cannot be combined with --stdout")
	}
	if err := a.cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	g := &generation{
		cfg:       a.cfg,
		paths:     args,
		stdout:    stdout,
		verbosity: a.verbosity,
		out:       cmd.OutOrStdout(),
		errOut:    cmd.ErrOrStderr(),
	}
	err := g.run(ctx)
	if !watching {
		return err
	}
	if err != nil {
		pterm.Warning.WithWriter(g.errOut).Printfln("Generation failed: %v", err)
	}

	w, err := watch.New(args, watch.DefaultDebounce, 0)
	if err != nil {
		return err
	}
	pterm.Info.WithWriter(g.errOut).Printfln("Watching %d model files (Ctrl+C to stop)", len(args))
	return w.Run(ctx, func(ctx context.Context, changed []string) error {
		if logger.ShouldOutput(g.verbosity, logger.OutputProgress) {
			pterm.Info.WithWriter(g.errOut).Printfln("Regenerating after changes to %d model files", len(changed))
		}
		return g.run(ctx)
	})
}

// generation is one configured generate invocation, re-run in watch mode
type generation struct {
	cfg       *config.Config
	paths     []string
	stdout    bool
	verbosity int
	out       io.Writer
	errOut    io.Writer
}

func (g *generation) run(ctx context.Context) error {
	batch, err := model.LoadFiles(version.Get().RequiresVersion(), g.paths...)
	if err != nil {
		return err
	}

	dc := g.cfg.DriverConfig(g.stamp())
	dc.TraceShapes = logger.ShouldOutput(g.verbosity, logger.OutputShapes)
	layout := JavaLayout(g.cfg.Output.Dir)
	var sink driver.Sink = driver.NewFileSink(layout)
	if g.stdout {
		sink = driver.NewStreamSink(g.out)
	}

	report, err := driver.Run(ctx, dc, batch.Classes, sink)
	if err != nil {
		return err
	}

	dir := ""
	if !g.stdout {
		dir = g.cfg.Output.Dir
		formatter, err := format.Parse(g.cfg.Output.Formatter)
		if err != nil {
			return err
		}
		if err := formatter.Run(ctx, unitPaths(report, layout)); err != nil {
			return err
		}
	}
	printReport(g.errOut, report, dir, g.verbosity)
	return report.Err()
}

// stamp returns the source version for the header, or "" when disabled or
// unavailable
func (g *generation) stamp() string {
	if !g.cfg.Output.StampSourceVersion {
		return ""
	}
	hash, err := gitinfo.LastCommit(g.paths...)
	if err != nil {
		logger.Warnw("Source version stamp unavailable", logger.FieldError, err)
		return ""
	}
	return hash
}
