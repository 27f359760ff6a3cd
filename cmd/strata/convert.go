package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/strata/pkg/convert"
	"github.com/aretw0/strata/pkg/domain"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert depths and coordinates through the external services",
}

var convertDepthCmd = &cobra.Command{
	Use:   "depth <borehole-id> <value>",
	Short: "Convert a depth between MD and MASL",
	Long: `Converts a measured depth (--from md) to meters above sea level, or back (--from masl).
The result keeps the number of decimals of the input.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		ref := domain.VerticalReference(from)
		if err := ref.Validate(); err != nil {
			return err
		}

		engine, cleanup, err := engineFromFlags(cmd, nil)
		if err != nil {
			return err
		}
		defer cleanup()

		v, err := engine.ConvertDepth(cmd.Context(), args[0], ref, args[1])
		if err != nil {
			return err
		}
		md := fmt.Sprintf("**%s %s** = **%s %s**\n", args[1], ref, v.String(), v.Reference)
		return render(cmd, md, v)
	},
}

var convertCoordsCmd = &cobra.Command{
	Use:   "coords <easting> <northing>",
	Short: "Convert a coordinate pair between LV95 and LV03",
	Long: `Converts a pair from the --from reference system to its counterpart.
Pairs outside the bounding box of the source system are rejected without calling the service.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		rs := domain.ReferenceSystem(from)

		engine, cleanup, err := engineFromFlags(cmd, nil)
		if err != nil {
			return err
		}
		defer cleanup()

		r, err := engine.CoordinateReconciler(rs)
		if err != nil {
			return err
		}
		if err := r.Load(rs, args[0], ""); err != nil {
			return err
		}
		res, err := r.Edit(cmd.Context(), domain.Northing, args[1])
		if err != nil {
			return err
		}
		switch res.Outcome {
		case convert.OutcomeRejected:
			return fmt.Errorf("%w: (%s, %s) is outside %s", domain.ErrOutOfBounds, args[0], args[1], rs)
		case convert.OutcomeIncomplete:
			return fmt.Errorf("%w: (%s, %s)", domain.ErrUnparsable, args[0], args[1])
		}

		sys, _ := domain.LookupReferenceSystem(rs)
		out := map[string]string{
			"reference_system": string(sys.Counterpart),
			"easting":          r.Value(sys.Counterpart, domain.Easting),
			"northing":         r.Value(sys.Counterpart, domain.Northing),
		}
		md := fmt.Sprintf("**%s** E %s / N %s\n", sys.Counterpart, out["easting"], out["northing"])
		return render(cmd, md, out)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.AddCommand(convertDepthCmd, convertCoordsCmd)

	convertDepthCmd.Flags().String("from", string(domain.MeasuredDepth), "Reference of the input: md or masl")
	convertCoordsCmd.Flags().String("from", string(domain.LV95), "Reference system of the input: LV95 or LV03")
}
