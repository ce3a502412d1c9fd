package commands

import (
	"errors"
	"fmt"

	"veye-site/internal/repository"
	"veye-site/internal/service"
	"veye-site/pkg/auth"
	"veye-site/pkg/config"
	"veye-site/pkg/postgres"

	"github.com/spf13/cobra"
)

var errDatabaseDisabled = errors.New("admin accounts need the database; set DB_ENABLED=true")

func newAdminCmd(opts *options) *cobra.Command {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage back-office admin accounts",
	}
	adminCmd.AddCommand(newAdminCreateCmd(opts))
	return adminCmd
}

func newAdminCreateCmd(opts *options) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if !cfg.Database.Enabled {
				return errDatabaseDisabled
			}

			ctx := cmd.Context()
			log := opts.logger()

			db, err := postgres.NewPool(ctx, &cfg.Database, log)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := postgres.EnsureSchema(ctx, db); err != nil {
				return err
			}

			jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)
			authService := service.NewAuthService(repository.NewAdminRepository(db, log), jwtManager, log)

			admin, err := authService.CreateAdmin(ctx, email, password)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", admin.Email, admin.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email (required)")
	cmd.Flags().StringVar(&password, "password", "", "admin password, at least 12 characters (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
