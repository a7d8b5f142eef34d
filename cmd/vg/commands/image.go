package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/visualgenome/errors"
	"github.com/teranos/visualgenome/model"
)

func newImageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "image <image-id>",
		Short: "Show image metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "image id")
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			client := newClient(cfg)
			defer client.Close()

			img, err := withSpinner(cmd, fmt.Sprintf("Fetching image %d", id), func() (*model.Image, error) {
				return client.GetImageData(cmd.Context(), id)
			})
			if err != nil {
				return err
			}
			return emit(cmd, cfg, "image", fmt.Sprintf("image-%d", id), img)
		},
	}
}

func newRegionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regions <image-id>",
		Short: "List the region descriptions of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "image id")
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			client := newClient(cfg)
			defer client.Close()

			regions, err := withSpinner(cmd, fmt.Sprintf("Fetching regions of image %d", id), func() ([]*model.Region, error) {
				return client.GetRegionDescriptionsOfImage(cmd.Context(), id)
			})
			if err != nil {
				return err
			}
			return emit(cmd, cfg, "regions", fmt.Sprintf("regions-%d", id), regions)
		},
	}
}

func newRegionGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "region-graph <image-id> <region-id>",
		Short: "Show the scene graph of one region",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			imageID, err := parseID(args[0], "image id")
			if err != nil {
				return err
			}
			regionID, err := parseID(args[1], "region id")
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			client := newClient(cfg)
			defer client.Close()

			graph, err := withSpinner(cmd, fmt.Sprintf("Fetching graph of region %d", regionID), func() (*model.Graph, error) {
				return client.GetRegionGraphOfRegion(cmd.Context(), imageID, regionID)
			})
			if err != nil {
				return err
			}
			return emit(cmd, cfg, "graph", fmt.Sprintf("region-graph-%d-%d", imageID, regionID), graph)
		},
	}
}

func newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph <image-id>",
		Short: "Show the scene graph of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "image id")
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			client := newClient(cfg)
			defer client.Close()

			graph, err := withSpinner(cmd, fmt.Sprintf("Fetching scene graph of image %d", id), func() (*model.Graph, error) {
				return client.GetSceneGraphOfImage(cmd.Context(), id)
			})
			if err != nil {
				return err
			}
			return emit(cmd, cfg, "graph", fmt.Sprintf("graph-%d", id), graph)
		},
	}
}

func newIDsCmd() *cobra.Command {
	var start, end int
	cmd := &cobra.Command{
		Use:   "ids",
		Short: "List image ids",
		Long: `List image ids from the dataset listing.

Without flags every id is listed, which pages through the whole dataset.
--start and --end select listing positions [start, end).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			client := newClient(cfg)
			defer client.Close()

			ranged := cmd.Flags().Changed("start") || cmd.Flags().Changed("end")
			if ranged && !cmd.Flags().Changed("end") {
				return errors.New("--end is required with --start")
			}

			ids, err := withSpinner(cmd, "Listing image ids", func() ([]int64, error) {
				if ranged {
					return client.GetImageIDsInRange(cmd.Context(), start, end)
				}
				return client.GetAllImageIDs(cmd.Context())
			})
			if err != nil {
				return err
			}

			name := "image-ids"
			if ranged {
				name = fmt.Sprintf("image-ids-%d-%d", start, end)
			}
			return emit(cmd, cfg, "ids", name, ids)
		},
	}
	cmd.Flags().IntVar(&start, "start", 0, "First listing position (inclusive)")
	cmd.Flags().IntVar(&end, "end", 0, "Last listing position (exclusive)")
	return cmd
}
