package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/2beens/krank/internal/logs"
	"github.com/2beens/krank/internal/stats"
	"github.com/2beens/krank/internal/strength"

	"github.com/spf13/cobra"
)

func newE1RMCmd() *cobra.Command {
	var (
		weight float64
		reps   int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "e1rm",
		Short: "Estimate a one-rep-max from a single set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rpe, err := optionalFloat(cmd.Flags(), "rpe")
			if err != nil {
				return err
			}

			estimate, err := stats.EstimateSet(strength.LoggedSet{
				Weight: weight,
				Reps:   reps,
				RPE:    rpe,
			})
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), estimate)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "e1RM:           %.2f (%d)\n", estimate.E1RM, estimate.E1RMRounded)
			fmt.Fprintf(out, "effective RPE:  %g\n", estimate.EffectiveRPE)
			fmt.Fprintf(out, "effective reps: %g\n", estimate.EffectiveReps)
			return nil
		},
	}

	cmd.Flags().Float64Var(&weight, "weight", 0, "weight lifted")
	cmd.Flags().IntVar(&reps, "reps", 0, "reps performed")
	cmd.Flags().Float64("rpe", 0, "rate of perceived exertion, 10 when omitted")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	_ = cmd.MarkFlagRequired("weight")
	_ = cmd.MarkFlagRequired("reps")

	return cmd
}

func newSuggestCmd() *cobra.Command {
	var (
		weight     float64
		reps       int
		targetReps int
		increment  float64
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest training loads from a last anchor set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rpe, err := optionalFloat(cmd.Flags(), "rpe")
			if err != nil {
				return err
			}
			targetRPE, err := optionalFloat(cmd.Flags(), "target-rpe")
			if err != nil {
				return err
			}

			lastAnchor := strength.LoggedSet{
				Weight:      weight,
				Reps:        reps,
				RPE:         rpe,
				PerformedAt: time.Now().UTC(),
				IsAnchor:    true,
			}
			if err := logs.ValidateSet(lastAnchor); err != nil {
				return err
			}

			var target *strength.Target
			switch {
			case cmd.Flags().Changed("target-reps") && targetRPE != nil:
				if targetReps <= 0 || *targetRPE <= 0 {
					return fmt.Errorf("target reps and rpe must be positive")
				}
				target = &strength.Target{Reps: targetReps, RPE: *targetRPE}
			case cmd.Flags().Changed("target-reps") || targetRPE != nil:
				return fmt.Errorf("--target-reps and --target-rpe go together")
			}

			recommendation := strength.NewRecommender(increment).Recommend(&lastAnchor, target)
			return writeJSON(cmd.OutOrStdout(), recommendation)
		},
	}

	cmd.Flags().Float64Var(&weight, "weight", 0, "weight of the last anchor set")
	cmd.Flags().IntVar(&reps, "reps", 0, "reps of the last anchor set")
	cmd.Flags().Float64("rpe", 0, "RPE of the last anchor set, 10 when omitted")
	cmd.Flags().IntVar(&targetReps, "target-reps", 0, "target reps")
	cmd.Flags().Float64("target-rpe", 0, "target RPE")
	cmd.Flags().Float64Var(&increment, "increment", strength.DefaultLoadIncrement, "smallest loadable weight jump")
	_ = cmd.MarkFlagRequired("weight")
	_ = cmd.MarkFlagRequired("reps")

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
