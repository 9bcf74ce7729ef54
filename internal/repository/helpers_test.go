package repository

import (
	"context"
	"testing"
	"time"

	"board/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

// setupMockDB creates a GORM *gorm.DB backed by sqlmock for unit tests.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func seedPost(t *testing.T, stores Stores, title, author string, tags ...string) *models.Post {
	t.Helper()
	ctx := context.Background()
	post := models.NewPost(title, "body", author, testNow)
	require.NoError(t, stores.Posts.Create(ctx, post))
	require.NoError(t, stores.Tags.CreateBatch(ctx, post.BuildTags(tags, testNow)))
	return post
}

func strPtr(s string) *string { return &s }
