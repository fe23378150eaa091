package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rpupo63/construction-site-backend/config"
	"github.com/rpupo63/construction-site-backend/content"
	"github.com/rpupo63/construction-site-backend/database"
	"github.com/rpupo63/construction-site-backend/models"
	"github.com/rpupo63/construction-site-backend/services"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := loadConfig(cmd.Context())
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			if err := db.Migrate(); err != nil {
				return err
			}
			log.Info().Msg("Migration complete")
			return nil
		},
	}
}

func newCreateAdminCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account or reset its password",
		Long: `Create an admin account, or reset the password and grant the admin role
when the email already exists.

The password can also be given in ADMIN_PASSWORD to keep it out of the
shell history.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := loadConfig(cmd.Context())
			if password == "" {
				password = config.GetString(cfg, "ADMIN_PASSWORD", "")
			}
			if email == "" || password == "" {
				return fmt.Errorf("both --email and a password are required")
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			authService, err := newAuthService(cfg, db)
			if err != nil {
				return err
			}
			user, err := authService.EnsureAdmin(cmd.Context(), strings.TrimSpace(email), password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Admin ready: %s (%s)\n", user.Email, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Admin email address")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Admin password")
	return cmd
}

func newCleanupOrphansCmd() *cobra.Command {
	var (
		deleteMode bool
		prefixes   []string
	)
	cmd := &cobra.Command{
		Use:   "cleanup-orphans",
		Short: "Report or delete uploaded files no record references",
		Long: `Lists every object under the upload prefixes and compares it with the
URLs stored in the content tables. Objects nothing references and older than
ORPHAN_GRACE_PERIOD (default 1h) are orphans.

Without --delete the command only prints the report.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := loadConfig(ctx)
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			files, err := openFiles(ctx, cfg)
			if err != nil {
				return err
			}
			grace := config.GetDuration(cfg, "ORPHAN_GRACE_PERIOD", services.DefaultGracePeriod)
			sweeper := services.NewOrphanSweeper(db, files, content.ManagedPrefixes, grace)

			report, err := sweeper.Sweep(ctx, services.SweepOptions{
				DryRun:   !deleteMode,
				Confirm:  deleteMode,
				Prefixes: prefixes,
			})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}
	cmd.Flags().BoolVar(&deleteMode, "delete", false, "Delete the orphans instead of only reporting them")
	cmd.Flags().StringSliceVar(&prefixes, "prefix", nil, "Limit the sweep to these prefixes")
	return cmd
}

func newGenerateModelsCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "generate-models",
		Short: "Generate typed query helpers for every model",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := loadConfig(cmd.Context())
			gdb, err := database.Open(cfg)
			if err != nil {
				return err
			}
			log.Info().Str("out", out).Msg("Generating query helpers...")
			models.GenerateQueries(gdb, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "./query", "Output directory")
	return cmd
}

func newColumnReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "column-report",
		Short: "List database columns no model field covers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := loadConfig(cmd.Context())
			gdb, err := database.Open(cfg)
			if err != nil {
				return err
			}
			report, err := models.ColumnMismatches(gdb)
			if err != nil {
				return err
			}
			models.WriteColumnMismatchReport(os.Stdout, report)
			return nil
		},
	}
}
