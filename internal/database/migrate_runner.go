package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"board/internal/middleware"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const createMigrationLogsSQL = `CREATE TABLE IF NOT EXISTS migration_logs (
	version BIGINT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL
)`

// pgUndefinedTable is the SQLSTATE for a missing relation.
const pgUndefinedTable = "42P01"

// Migrator applies and reverts SQL migrations, recording each applied
// version in migration_logs. Every migration runs in its own transaction
// together with its log row.
type Migrator struct {
	db         *gorm.DB
	migrations []Migration
	now        func() time.Time
}

// NewMigrator runs migrations against db.
func NewMigrator(db *gorm.DB, migrations []Migration) *Migrator {
	return &Migrator{db: db, migrations: migrations, now: time.Now}
}

// BoardMigrator runs the embedded board migrations against db.
func BoardMigrator(db *gorm.DB) (*Migrator, error) {
	migrations, err := Migrations()
	if err != nil {
		return nil, err
	}
	return NewMigrator(db, migrations), nil
}

// Applied lists the recorded versions, oldest first. A database that never
// ran a migration has none.
func (m *Migrator) Applied(ctx context.Context) ([]int, error) {
	var versions []int
	err := m.db.WithContext(ctx).Table("migration_logs").Order("version").Pluck("version", &versions).Error
	if err != nil {
		if isMissingTable(err) {
			return []int{}, nil
		}
		return nil, fmt.Errorf("read migration_logs: %w", err)
	}
	return versions, nil
}

func isMissingTable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedTable
	}
	return strings.Contains(err.Error(), "no such table")
}

// Pending returns the migrations not yet recorded in applied.
func (m *Migrator) Pending(applied []int) []Migration {
	var pending []Migration
	for _, mig := range m.migrations {
		if !slices.Contains(applied, mig.Version) {
			pending = append(pending, mig)
		}
	}
	return pending
}

// Up applies every pending migration in version order and returns the ones
// it ran. It refuses to run when migration_logs holds versions this binary
// does not know.
func (m *Migrator) Up(ctx context.Context) ([]Migration, error) {
	if err := m.db.WithContext(ctx).Exec(createMigrationLogsSQL).Error; err != nil {
		return nil, fmt.Errorf("create migration_logs: %w", err)
	}
	applied, err := m.Applied(ctx)
	if err != nil {
		return nil, err
	}
	if err := m.checkKnown(applied); err != nil {
		return nil, err
	}

	var ran []Migration
	for _, mig := range m.Pending(applied) {
		if err := m.apply(ctx, mig); err != nil {
			return ran, err
		}
		ran = append(ran, mig)
	}
	if len(ran) == 0 {
		middleware.Logger.Debug("Schema up to date", slog.Int("applied", len(applied)))
	}
	return ran, nil
}

func (m *Migrator) apply(ctx context.Context, mig Migration) error {
	start := time.Now()
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(mig.Up).Error; err != nil {
			return err
		}
		return tx.Exec(`INSERT INTO migration_logs (version, name, applied_at) VALUES (?, ?, ?)`,
			mig.Version, mig.Name, m.now().UTC()).Error
	})
	if err != nil {
		return fmt.Errorf("apply migration %s: %w", mig.ID(), err)
	}
	middleware.Logger.Info("Migration applied",
		slog.String("migration", mig.ID()),
		slog.Duration("took", time.Since(start)))
	return nil
}

// Down reverts version, which must be the newest applied migration.
func (m *Migrator) Down(ctx context.Context, version int) error {
	idx := slices.IndexFunc(m.migrations, func(mig Migration) bool { return mig.Version == version })
	if idx < 0 {
		return fmt.Errorf("migration %06d is not known", version)
	}
	mig := m.migrations[idx]

	applied, err := m.Applied(ctx)
	if err != nil {
		return err
	}
	if !slices.Contains(applied, version) {
		return fmt.Errorf("migration %s has not been applied", mig.ID())
	}
	if newest := applied[len(applied)-1]; newest != version {
		return fmt.Errorf("migration %s is not the newest applied (%06d); roll that back first", mig.ID(), newest)
	}

	err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(mig.Down).Error; err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM migration_logs WHERE version = ?`, version).Error
	})
	if err != nil {
		return fmt.Errorf("revert migration %s: %w", mig.ID(), err)
	}
	middleware.Logger.Info("Migration reverted", slog.String("migration", mig.ID()))
	return nil
}

func (m *Migrator) checkKnown(applied []int) error {
	var unknown []string
	for _, version := range applied {
		if !slices.ContainsFunc(m.migrations, func(mig Migration) bool { return mig.Version == version }) {
			unknown = append(unknown, fmt.Sprintf("%06d", version))
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	return fmt.Errorf("migration_logs has versions this build does not know: %s (upgrade the binary or roll them back)",
		strings.Join(unknown, ", "))
}
