package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/2beens/krank/internal/auth"
	"github.com/2beens/krank/internal/config"
	"github.com/2beens/krank/internal/db"
	"github.com/2beens/krank/pkg"

	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage service users",
	}

	cmd.AddCommand(
		newUserAddCmd(),
		newHashPasswordCmd(),
	)

	return cmd
}

func newUserAddCmd() *cobra.Command {
	var (
		env        string
		configPath string
		username   string
		password   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a user to the service database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(env, configPath)
			if err != nil {
				return err
			}

			passwordHash, err := pkg.HashPassword(password)
			if err != nil {
				return fmt.Errorf("hashing password: %w", err)
			}

			ctx := context.Background()
			dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
				DBHost:     cfg.PostgresHost,
				DBPort:     cfg.PostgresPort,
				DBName:     cfg.PostgresDBName,
				DBUser:     os.Getenv("KRANK_POSTGRES_USER"),
				DBPassword: os.Getenv("KRANK_POSTGRES_PASS"),
			})
			if err != nil {
				return err
			}
			defer dbPool.Close()

			if err := db.MigratePsql(ctx, dbPool); err != nil {
				return err
			}

			user, err := auth.NewUsersRepo(dbPool).Add(ctx, auth.User{
				Username:     username,
				PasswordHash: passwordHash,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "added user %s: %s\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&env, "env", "development", "environment [prod | production | dev | development]")
	cmd.Flags().StringVar(&configPath, "config", "./config.toml", "path for the TOML config file")
	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Print the bcrypt hash of a password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			hash, err := pkg.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
