package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"board/internal/config"
	"board/internal/middleware"

	"gorm.io/gorm"
)

const (
	SchemaModeHybrid = "hybrid"
	SchemaModeSQL    = "sql"
	SchemaModeAuto   = "auto"
)

// SchemaPlan is what ApplySchema does for one configuration.
type SchemaPlan struct {
	Mode string
	// SQL runs the embedded migrations.
	SQL bool
	// Auto runs gorm AutoMigrate over the board models.
	Auto bool
}

// SchemaStatus reports the plan and, when it runs SQL, the migration state.
type SchemaStatus struct {
	SchemaPlan
	Environment string
	Applied     []int
	Pending     []Migration
}

func isProdLikeEnv(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production", "prod", "staging", "stage":
		return true
	}
	return false
}

// PlanSchema resolves DB_SCHEMA_MODE for the configured driver and
// environment. SQLite always uses AutoMigrate since the migrations are
// PostgreSQL scripts. AutoMigrate is kept out of production-like
// environments unless explicitly allowed.
func PlanSchema(cfg *config.Config) (SchemaPlan, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.DBSchemaMode))
	if mode == "" {
		mode = SchemaModeHybrid
	}
	plan := SchemaPlan{Mode: mode}

	if cfg.DBDriver == config.DriverSQLite {
		plan.Auto = true
		return plan, nil
	}

	prodLike := isProdLikeEnv(cfg.Env)
	switch mode {
	case SchemaModeSQL:
		plan.SQL = true
	case SchemaModeAuto:
		if prodLike && !cfg.DBAutoMigrateAllowDestructive {
			return SchemaPlan{}, fmt.Errorf("refusing DB_SCHEMA_MODE=auto in %q without DB_AUTOMIGRATE_ALLOW_DESTRUCTIVE=true", cfg.Env)
		}
		plan.Auto = true
	case SchemaModeHybrid:
		plan.SQL = true
		plan.Auto = !prodLike
	default:
		return SchemaPlan{}, fmt.Errorf("unsupported DB_SCHEMA_MODE %q", mode)
	}
	return plan, nil
}

// ApplySchema brings the schema up to date following PlanSchema. Migrations
// run before AutoMigrate so AutoMigrate only adds what they lack.
func ApplySchema(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	plan, err := PlanSchema(cfg)
	if err != nil {
		return err
	}

	if plan.SQL {
		migrator, err := BoardMigrator(db)
		if err != nil {
			return err
		}
		ran, err := migrator.Up(ctx)
		if err != nil {
			return fmt.Errorf("run sql migrations: %w", err)
		}
		if len(ran) > 0 {
			middleware.Logger.Info("SQL migrations applied", slog.Int("count", len(ran)))
		}
	}

	if plan.Auto {
		if plan.Mode == SchemaModeAuto && cfg.DBAutoMigrateAllowDestructive {
			middleware.Logger.Warn("AutoMigrate allowed in a production-like environment; review schema diffs")
		}
		middleware.Logger.Info("Running AutoMigrate", slog.String("mode", plan.Mode), slog.String("env", cfg.Env))
		if err := db.WithContext(ctx).AutoMigrate(PersistentModels()...); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
	}
	return nil
}

// GetSchemaStatus reports what ApplySchema would do without changing the
// database.
func GetSchemaStatus(ctx context.Context, db *gorm.DB, cfg *config.Config) (*SchemaStatus, error) {
	plan, err := PlanSchema(cfg)
	if err != nil {
		return nil, err
	}
	status := &SchemaStatus{SchemaPlan: plan, Environment: cfg.Env}
	if !plan.SQL {
		return status, nil
	}

	migrator, err := BoardMigrator(db)
	if err != nil {
		return nil, err
	}
	if status.Applied, err = migrator.Applied(ctx); err != nil {
		return nil, err
	}
	status.Pending = migrator.Pending(status.Applied)
	return status, nil
}
