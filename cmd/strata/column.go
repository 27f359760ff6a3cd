package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/strata/internal/presentation/tui"
	"github.com/aretw0/strata/pkg/domain"
)

var columnCmd = &cobra.Command{
	Use:   "column <borehole-id>",
	Short: "Print the completed layer column of a borehole",
	Long: `Sorts the layers of one kind, flags overlapping bounds and fills the holes
between 0 and the total depth with gap intervals.

With --elevation the bounds are converted to meters above sea level through the geometry API.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rawKind, _ := cmd.Flags().GetString("kind")
		elevation, _ := cmd.Flags().GetBool("elevation")

		kind, err := domain.ParseLayerKind(rawKind)
		if err != nil {
			return err
		}

		engine, cleanup, err := engineFromFlags(cmd, nil)
		if err != nil {
			return err
		}
		defer cleanup()

		title := fmt.Sprintf("%s: %s", args[0], kind)
		if elevation {
			layers, err := engine.ElevationColumn(cmd.Context(), args[0], kind)
			if err != nil {
				return err
			}
			return render(cmd, tui.ElevationMarkdown(title, layers), layers)
		}

		col, err := engine.Column(cmd.Context(), args[0], kind)
		if err != nil {
			return err
		}
		return render(cmd, tui.ColumnMarkdown(title, col), col)
	},
}

var casingsCmd = &cobra.Command{
	Use:   "casings <borehole-id>",
	Short: "Print the casing column of a borehole",
	Long:  `Each casing spans the envelope of its elements; the holes between casings are filled with gaps.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, cleanup, err := engineFromFlags(cmd, nil)
		if err != nil {
			return err
		}
		defer cleanup()

		col, err := engine.CasingColumn(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return render(cmd, tui.ColumnMarkdown(args[0]+": casings", col), col)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the boreholes of the dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, cleanup, err := engineFromFlags(cmd, nil)
		if err != nil {
			return err
		}
		defer cleanup()

		ids, err := engine.Boreholes(cmd.Context())
		if err != nil {
			return err
		}
		md := "## Boreholes\n\n"
		for _, id := range ids {
			md += "- " + id + "\n"
		}
		return render(cmd, md, ids)
	},
}

func init() {
	rootCmd.AddCommand(columnCmd, casingsCmd, listCmd)

	columnCmd.Flags().StringP("kind", "k", string(domain.KindLithology), "Layer kind: lithology, lithological_description, facies_description, backfill, instrumentation")
	columnCmd.Flags().Bool("elevation", false, "Convert the bounds to meters above sea level")
}
