package cli

import (
	"context"
	"fmt"
	"strconv"

	"board/internal/bootstrap"
	"board/internal/config"
	"board/internal/database"
	"board/internal/middleware"

	"github.com/spf13/cobra"
)

func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run schema operations",
	}
	cmd.AddCommand(
		migrateSub("up", "Apply pending SQL migrations", cobra.NoArgs,
			func(ctx context.Context, cmd *cobra.Command, rt *bootstrap.Runtime, _ []string) error {
				migrator, err := database.BoardMigrator(rt.DB)
				if err != nil {
					return err
				}
				ran, err := migrator.Up(ctx)
				if err != nil {
					return fmt.Errorf("sql migrations failed: %w", err)
				}
				out := cmd.OutOrStdout()
				for _, m := range ran {
					fmt.Fprintf(out, "applied: %s\n", m.ID())
				}
				middleware.Logger.Info("sql migrations applied", "count", len(ran))
				return nil
			}),
		migrateSub("auto", "Apply gorm AutoMigrate", cobra.NoArgs,
			func(ctx context.Context, cmd *cobra.Command, rt *bootstrap.Runtime, _ []string) error {
				rt.Config.DBSchemaMode = database.SchemaModeAuto
				if err := database.ApplySchema(ctx, rt.DB, rt.Config); err != nil {
					return fmt.Errorf("auto schema apply failed: %w", err)
				}
				middleware.Logger.Info("automigrations applied")
				return nil
			}),
		migrateSub("status", "Show applied and pending migrations", cobra.NoArgs,
			func(ctx context.Context, cmd *cobra.Command, rt *bootstrap.Runtime, _ []string) error {
				status, err := database.GetSchemaStatus(ctx, rt.DB, rt.Config)
				if err != nil {
					return fmt.Errorf("schema status failed: %w", err)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "mode=%s env=%s run_sql=%t run_auto=%t applied=%d pending=%d\n",
					status.Mode, status.Environment, status.SQL, status.Auto,
					len(status.Applied), len(status.Pending))
				for _, m := range status.Pending {
					fmt.Fprintf(out, "pending: %s\n", m.ID())
				}
				return nil
			}),
		migrateSub("down <version>", "Roll back the newest applied migration", cobra.ExactArgs(1),
			func(ctx context.Context, _ *cobra.Command, rt *bootstrap.Runtime, args []string) error {
				version, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q: %w", args[0], err)
				}
				migrator, err := database.BoardMigrator(rt.DB)
				if err != nil {
					return err
				}
				if err := migrator.Down(ctx, version); err != nil {
					return fmt.Errorf("rollback failed: %w", err)
				}
				middleware.Logger.Info("rolled back migration", "version", version)
				return nil
			}),
	)
	return cmd
}

type migrateFunc func(ctx context.Context, cmd *cobra.Command, rt *bootstrap.Runtime, args []string) error

func migrateSub(use, short string, args cobra.PositionalArgs, run migrateFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, argv []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			rt, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{})
			if err != nil {
				return err
			}
			defer rt.Close(ctx)

			return run(ctx, cmd, rt, argv)
		},
	}
}
