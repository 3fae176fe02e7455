package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/2beens/krank/internal/db"
	"github.com/2beens/krank/internal/logs"
	"github.com/2beens/krank/internal/stats"
	"github.com/2beens/krank/internal/strength"
	"github.com/2beens/krank/pkg"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newSeriesCmd() *cobra.Command {
	var (
		dbPath   string
		userID   string
		family   string
		variant  string
		isAnchor bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "series",
		Short: "Print the e1RM trend of a movement family from a local log database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			movementFamily, err := strength.ParseMovementFamily(family)
			if err != nil {
				return err
			}

			exists, err := pkg.PathExists(dbPath, false)
			if err != nil {
				return fmt.Errorf("checking database: %w", err)
			}
			if !exists {
				return fmt.Errorf("no database at %s, run krankctl migrate first", dbPath)
			}

			database, err := db.OpenSQLite(dbPath)
			if err != nil {
				return err
			}
			defer func() {
				if err := database.Close(); err != nil {
					log.Warnf("close database: %s", err)
				}
			}()

			service := stats.NewService(logs.NewSQLiteRepo(database), nil, nil, nil)
			points, err := service.E1RMSeries(context.Background(), stats.SeriesQuery{
				UserID:         userID,
				MovementFamily: movementFamily,
				IsAnchor:       &isAnchor,
				Variant:        variant,
			})
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), points)
			}
			if len(points) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no sets")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tE1RM\tWEIGHT\tREPS\tRPE")
			for _, p := range points {
				rpe := "-"
				if p.RPE != nil {
					rpe = strconv.FormatFloat(*p.RPE, 'g', -1, 64)
				}
				fmt.Fprintf(tw, "%s\t%d\t%g\t%d\t%s\n", p.Date, p.E1RM, p.Weight, p.Reps, rpe)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", defaultDBPath(), "path to the SQLite log database")
	cmd.Flags().StringVar(&userID, "user", "", "user id")
	cmd.Flags().StringVar(&family, "family", "", "movement family")
	cmd.Flags().StringVar(&variant, "variant", "", "only sets of this variant")
	cmd.Flags().BoolVar(&isAnchor, "anchor", true, "anchor sets only")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("family")

	return cmd
}

func newMigrateCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema of a local log database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			database, err := db.OpenSQLite(dbPath)
			if err != nil {
				return err
			}
			defer func() {
				if err := database.Close(); err != nil {
					log.Warnf("close database: %s", err)
				}
			}()

			if err := db.MigrateSQLite(context.Background(), database); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %s\n", dbPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", defaultDBPath(), "path to the SQLite log database")
	return cmd
}
