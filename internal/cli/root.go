package cli

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// NewRootCmd creates the top-level "krankctl" command with all subcommands.
func NewRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "krankctl",
		Short:         "Strength estimates and load suggestions from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			log.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level [trace | debug | info | warn | error]")

	root.AddCommand(
		newE1RMCmd(),
		newSuggestCmd(),
		newSeriesCmd(),
		newMigrateCmd(),
		newUserCmd(),
	)

	return root
}

// defaultDBPath is KRANK_DB, or ~/.krank/krank.db.
func defaultDBPath() string {
	if p := os.Getenv("KRANK_DB"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "krank.db"
	}
	return filepath.Join(home, ".krank", "krank.db")
}

// optionalFloat returns nil for a flag the user did not set.
func optionalFloat(flags *pflag.FlagSet, name string) (*float64, error) {
	if !flags.Changed(name) {
		return nil, nil
	}
	v, err := flags.GetFloat64(name)
	if err != nil {
		return nil, fmt.Errorf("reading --%s: %w", name, err)
	}
	return &v, nil
}
