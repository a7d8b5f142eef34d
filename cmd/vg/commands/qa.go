package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/visualgenome/api"
	"github.com/teranos/visualgenome/errors"
	"github.com/teranos/visualgenome/model"
)

func newQACmd() *cobra.Command {
	var (
		qtype string
		limit int
		all   bool
	)
	cmd := &cobra.Command{
		Use:   "qa [image-id]",
		Short: "List question-answer pairs",
		Long: `List question-answer pairs.

  vg qa 1                     # QAs about image 1
  vg qa --type why --limit 5  # QAs by question type (` + strings.Join(api.QuestionTypes, ", ") + `)
  vg qa --all --limit 20      # QAs across the dataset`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modes := 0
			for _, set := range []bool{len(args) == 1, qtype != "", all} {
				if set {
					modes++
				}
			}
			if modes != 1 {
				return errors.WithHint(
					errors.New("specify exactly one of an image id, --type or --all"),
					"run 'vg qa --help' for examples")
			}
			if limit < 0 {
				return errors.Newf("--limit must be >= 0, got %d", limit)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			client := newClient(cfg)
			defer client.Close()

			var (
				qas  []*model.QA
				name string
			)
			switch {
			case len(args) == 1:
				id, err := parseID(args[0], "image id")
				if err != nil {
					return err
				}
				name = fmt.Sprintf("qa-image-%d", id)
				qas, err = withSpinner(cmd, fmt.Sprintf("Fetching QAs of image %d", id), func() ([]*model.QA, error) {
					return client.GetQAOfImage(cmd.Context(), id)
				})
				if err != nil {
					return err
				}
			case qtype != "":
				name = "qa-" + qtype
				qas, err = withSpinner(cmd, fmt.Sprintf("Fetching %q QAs", qtype), func() ([]*model.QA, error) {
					return client.GetQAOfType(cmd.Context(), qtype, limit)
				})
				if err != nil {
					return err
				}
			default:
				name = "qa-all"
				qas, err = withSpinner(cmd, "Fetching QAs", func() ([]*model.QA, error) {
					return client.GetAllQAs(cmd.Context(), limit)
				})
				if err != nil {
					return err
				}
			}
			return emit(cmd, cfg, "qas", name, qas)
		},
	}
	cmd.Flags().StringVarP(&qtype, "type", "t", "", "Question type: "+strings.Join(api.QuestionTypes, ", "))
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of QAs (0 = no limit; ignored for an image id)")
	cmd.Flags().BoolVar(&all, "all", false, "List QAs across the whole dataset")
	return cmd
}
