// Package commands implements the vg command line.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/visualgenome/am"
	"github.com/teranos/visualgenome/errors"
	"github.com/teranos/visualgenome/logger"
)

// Global flag names
const (
	flagVerbose = "verbose"
	flagConfig  = "config"
	flagFormat  = "format"
	flagSave    = "save"
	flagLogJSON = "log-json"
)

// NewRootCmd builds the vg command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vg",
		Short: "Visual Genome dataset client",
		Long: `vg - fetch Visual Genome annotations from the dataset API.

Records are printed to stdout; logs and progress go to stderr.

Configuration sources (in order of precedence):
1. Environment variables (VG_* prefix)
2. --config file, or project ./vg.toml (searched upward)
3. User config (~/.vg/config.toml)
4. Default values

Examples:
  vg image 1                        # Image metadata
  vg regions 1 --format table       # Region descriptions
  vg graph 1 --format yaml          # Full scene graph
  vg region-graph 1 4091            # Scene graph of one region
  vg qa --type why --limit 10       # QAs by question type
  vg ids --start 0 --end 100        # A slice of the image id listing
  vg fetch /api/v0/images/1         # Raw JSON`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbosity, _ := cmd.Flags().GetCount(flagVerbose)
			jsonLog, _ := cmd.Flags().GetBool(flagLogJSON)
			// Config errors surface from the command itself
			if cfg, err := loadConfig(cmd); err == nil {
				jsonLog = jsonLog || cfg.Log.JSON
			}
			if err := logger.InitializeWriter(cmd.ErrOrStderr(), jsonLog, verbosity); err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Cleanup()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.CountP(flagVerbose, "v", "Increase log verbosity (-v info, -vv debug)")
	flags.String(flagConfig, "", "Config file (default: ~/.vg/config.toml merged with ./vg.toml)")
	flags.StringP(flagFormat, "f", "json", "Output format: json, yaml, toml, table")
	flags.Bool(flagSave, false, "Also write the output to the configured data directory")
	flags.Bool(flagLogJSON, false, "Emit logs as JSON")

	rootCmd.AddCommand(
		newImageCmd(),
		newRegionsCmd(),
		newRegionGraphCmd(),
		newGraphCmd(),
		newQACmd(),
		newIDsCmd(),
		newFetchCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// loadConfig reads configuration from --config when given, otherwise from
// the standard cascade
func loadConfig(cmd *cobra.Command) (*am.Config, error) {
	path, _ := cmd.Flags().GetString(flagConfig)
	var (
		cfg *am.Config
		err error
	)
	if path != "" {
		cfg, err = am.LoadFromFile(path)
	} else {
		cfg, err = am.Load()
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	return cfg, nil
}
