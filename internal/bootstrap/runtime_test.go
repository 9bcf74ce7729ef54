package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"board/internal/cache"
	"board/internal/config"
	"board/internal/database"
	"board/internal/events"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:         "0",
		Env:          "test",
		DBDriver:     config.DriverSQLite,
		DBSQLitePath: filepath.Join(t.TempDir(), "board.db"),
		DBSchemaMode: database.SchemaModeHybrid,
		LogLevel:     "error",
	}
}

func TestInitRuntime_SQLite(t *testing.T) {
	ctx := context.Background()
	rt, err := InitRuntime(ctx, sqliteConfig(t), Options{ApplySchema: true, Events: true})
	require.NoError(t, err)

	assert.IsType(t, events.NopPublisher{}, rt.Publisher)
	for _, table := range []string{"posts", "comments", "tags", "likes"} {
		assert.True(t, rt.DB.Migrator().HasTable(table), table)
	}

	require.NoError(t, rt.Close(ctx))
	assert.Error(t, database.Ping(ctx, rt.DB), "database should be closed")
}

func TestInitRuntime_ConnectsCache(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Cleanup(func() { cache.SetClient(nil) })

	cfg := sqliteConfig(t)
	cfg.RedisURL = mr.Addr()

	ctx := context.Background()
	rt, err := InitRuntime(ctx, cfg, Options{Cache: true})
	require.NoError(t, err)
	require.NotNil(t, cache.GetClient())
	assert.NoError(t, cache.Ping(ctx))

	require.NoError(t, rt.Close(ctx))
}

func TestInitRuntime_BadDriverFails(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.DBDriver = "oracle"

	_, err := InitRuntime(context.Background(), cfg, Options{})
	assert.Error(t, err)
}
