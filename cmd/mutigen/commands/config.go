package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/mutigen/config"
	"github.com/teranos/mutigen/errors"
)

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage mutigen configuration",
		Long: `Display and manage mutigen configuration.

Examples:
  mutigen config show                     # Show current configuration
  mutigen config show --format json       # Show configuration as JSON
  mutigen config get generator.workers    # Get a specific value
  mutigen config init                     # Write ./mutigen.toml with defaults
  mutigen config validate                 # Validate current configuration
  mutigen config where                    # Show the config file cascade`,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			data, err := config.Marshal(a.cfg, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	show.Flags().String("format", "toml", "Output format: toml, json, yaml")

	get := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a specific configuration value",
		Long:  "Get a specific configuration value using dot notation (e.g., generator.workers, output.dir)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(args[0])
			if !a.v.IsSet(key) {
				return errors.WithHintf(errors.Newf("configuration key %q not found", key),
					"known keys: %s", strings.Join(config.Keys(a.v), ", "))
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.v.Get(key))
			return nil
		},
	}

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Validate current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Validate(); err != nil {
				return errors.Wrap(err, "configuration validation failed")
			}
			pterm.Success.WithWriter(cmd.OutOrStdout()).Println("Configuration is valid")
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("path")
			force, _ := cmd.Flags().GetBool("force")
			if err := config.Write(config.Default(), path, force); err != nil {
				return err
			}
			pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln("Wrote %s", path)
			return nil
		},
	}
	initCmd.Flags().String("path", config.ProjectFileName, "Config file to write")
	initCmd.Flags().Bool("force", false, "Overwrite an existing file, keeping a .back1 copy")

	where := &cobra.Command{
		Use:   "where",
		Short: "Show where configuration is loaded from",
		RunE: func(cmd *cobra.Command, args []string) error {
			explicit, _ := cmd.Flags().GetString("config")
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Configuration cascade (later overrides earlier):")
			fmt.Fprintln(out, "  [DEFAULT]  Built-in defaults")
			for _, path := range config.Paths(explicit) {
				status := "missing"
				if _, err := os.Stat(path); err == nil {
					status = "loaded"
				}
				fmt.Fprintf(out, "  [FILE]     %s (%s)\n", path, status)
			}
			fmt.Fprintln(out, "  [ENV]      MUTIGEN_* environment variables")
			return nil
		},
	}

	cmd.AddCommand(show, get, validate, initCmd, where)
	return cmd
}
