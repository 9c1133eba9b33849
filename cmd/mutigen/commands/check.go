package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/mutigen/check"
	"github.com/teranos/mutigen/errors"
	"github.com/teranos/mutigen/internal/format"
	"github.com/teranos/mutigen/model"
	"github.com/teranos/mutigen/version"
)

func (a *app) checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <model files...>",
		Short: "Check that generated sources are up to date",
		Long: `Regenerate into a temporary directory and compare with output.dir.

Fails when a generated file differs, is missing, or is still committed
although no model produces it any more. Source version lines are ignored.

Examples:
  mutigen check models/*.yaml
  mutigen check -o src/main/generated models/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runCheck,
	}
	cmd.Flags().StringP("out", "o", "", "Directory holding the committed sources (default: output.dir)")
	cmd.Flags().String("formatter", "", "Command run on regenerated files before comparing")
	return cmd
}

func (a *app) runCheck(cmd *cobra.Command, args []string) error {
	if err := a.cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}
	batch, err := model.LoadFiles(version.Get().RequiresVersion(), args...)
	if err != nil {
		return err
	}
	formatter, err := format.Parse(a.cfg.Output.Formatter)
	if err != nil {
		return err
	}
	var post check.PostProcess
	if formatter != nil {
		post = formatter.Run
	}

	dir := a.cfg.Output.Dir
	result, report, err := check.Run(cmd.Context(), a.cfg.DriverConfig(""), batch.Classes, dir, JavaLayout, post)
	if report != nil {
		printProblems(cmd.ErrOrStderr(), report)
	}
	if err != nil {
		return err
	}
	if report.HasErrors() {
		return report.Err()
	}

	printCheck(cmd.ErrOrStderr(), result, dir)
	if !result.UpToDate {
		return errors.WithHint(errors.New("generated sources are out of date"),
			"run 'mutigen generate' to update them")
	}
	return nil
}
