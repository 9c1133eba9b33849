// Package commands implements the mutigen command line.
package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/teranos/mutigen/config"
	"github.com/teranos/mutigen/errors"
	"github.com/teranos/mutigen/logger"
)

// flagKeys maps command flags onto configuration keys, so a flag set on the
// command line overrides files and environment
var flagKeys = map[string]string{
	"fail-fast": "generator.fail_fast",
	"workers":   "generator.workers",
	"out":       "output.dir",
	"stamp":     "output.stamp_source_version",
	"formatter": "output.formatter",
	"log-json":  "log.json",
}

// app holds the configuration loaded before a command runs
type app struct {
	cfg       *config.Config
	v         *viper.Viper
	verbosity int
}

// NewRootCmd builds the mutigen command tree
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "mutigen",
		Short: "Generate reactive wrappers for callback-based APIs",
		Long: `mutigen - reactive wrapper generator.

Reads class models (YAML, TOML or JSON) describing a callback and future based
API and writes Java wrappers exposing Uni/Multi reactive methods plus blocking
and fire-and-forget variants.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (MUTIGEN_* prefix)
3. Project config (./mutigen.toml, searched up directories) or --config
4. User config (~/.mutigen/mutigen.toml)
5. System config (/etc/mutigen/mutigen.toml)
6. Default values

Examples:
  mutigen generate models/*.yaml            # Write wrappers to output.dir
  mutigen generate --stdout core.yaml       # Print wrappers
  mutigen generate --watch models/*.yaml    # Regenerate on change
  mutigen check models/*.yaml               # Fail if committed wrappers are stale
  mutigen config show --format yaml`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	flags.String("config", "", "Config file (default: mutigen.toml found from the working directory upwards)")
	flags.Bool("log-json", false, "Log as JSON")

	root.AddCommand(a.generateCmd())
	root.AddCommand(a.checkCmd())
	root.AddCommand(a.configCmd())
	root.AddCommand(versionCmd())
	return root
}

// setup loads configuration and initializes the logger
func (a *app) setup(cmd *cobra.Command, args []string) error {
	a.verbosity, _ = cmd.Flags().GetCount("verbose")

	// version works without a readable config
	if cmd.Name() == "version" {
		return logger.Initialize(false, a.verbosity)
	}

	path, _ := cmd.Flags().GetString("config")
	v, err := config.New(path)
	if err != nil {
		return err
	}
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return errors.Wrapf(err, "failed to bind --%s", flag)
			}
		}
	}
	cfg, err := config.LoadWithViper(v)
	if err != nil {
		return err
	}
	if err := logger.Initialize(cfg.Log.JSON, a.verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	if logger.ShouldOutput(a.verbosity, logger.OutputConfig) {
		logger.Debugw("Configuration loaded",
			"verbosity", logger.LevelName(a.verbosity),
			"shows", logger.VerbosityDescription(a.verbosity),
			"sources", config.Paths(path))
	}

	a.cfg, a.v = cfg, v
	return nil
}
