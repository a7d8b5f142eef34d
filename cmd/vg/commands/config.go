package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/visualgenome/am"
	"github.com/teranos/visualgenome/errors"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect client configuration",
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			switch format {
			case "json":
				data, err := json.MarshalIndent(cfg, "", "  ")
				if err != nil {
					return errors.Wrap(err, "failed to marshal config to JSON")
				}
				fmt.Fprintln(out, string(data))
			case "yaml":
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return errors.Wrap(err, "failed to marshal config to YAML")
				}
				fmt.Fprintf(out, "# vg configuration\n%s", data)
			case "toml":
				data, err := toml.Marshal(cfg)
				if err != nil {
					return errors.Wrap(err, "failed to marshal config to TOML")
				}
				fmt.Fprintf(out, "# vg configuration\n%s", data)
			default:
				return errors.Newf("unsupported format: %s (supported: toml, json, yaml)", format)
			}
			return nil
		},
	}
	// Shadows the global --format, whose default suits records rather than config
	showCmd.Flags().StringVarP(&format, "format", "f", "toml", "Output format: toml, json, yaml")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			dir, err := am.DataDir(cfg)
			if err != nil {
				return err
			}
			pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln("Configuration is valid (api %s, data %s)", cfg.API.BaseURL, dir)
			return nil
		},
	}

	configCmd.AddCommand(showCmd, validateCmd)
	return configCmd
}
