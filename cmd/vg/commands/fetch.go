package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/teranos/visualgenome/errors"
)

func newFetchCmd() *cobra.Command {
	var legacy bool
	cmd := &cobra.Command{
		Use:   "fetch <path>",
		Short: "Fetch a raw JSON document from the API",
		Long: `Fetch GETs <base_url><path> and prints the JSON body unmodified.

With --legacy, failures print {"detail": "Not found."} instead of an error.`,
		Example: `  vg fetch /api/v0/images/1
  vg fetch /api/v0/images/999999999 --legacy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !strings.HasPrefix(path, "/") {
				path = "/" + path
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			client := newClient(cfg)
			defer client.Close()

			var doc gjson.Result
			if legacy {
				doc = client.Retrieve(cmd.Context(), path)
			} else {
				doc, err = client.Fetch(cmd.Context(), path)
				if err != nil {
					return err
				}
			}

			if _, err := cmd.OutOrStdout().Write(pretty.Pretty([]byte(doc.Raw))); err != nil {
				return errors.Wrap(err, "failed to write output")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&legacy, "legacy", false, "Print the not-found sentinel instead of failing")
	return cmd
}
