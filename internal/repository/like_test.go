package repository

import (
	"context"
	"regexp"
	"testing"

	"board/internal/models"
	"board/internal/testutil/testdb"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeRepository_CountByPost(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "likes" WHERE post_id = $1`)).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	count, err := repo.CountByPost(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(12), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_DuplicatesCount_SQLite(t *testing.T) {
	db := testdb.NewSQLite(t)
	stores := NewStores(db)
	ctx := context.Background()
	post := seedPost(t, stores, "p", "alice")

	for i := 0; i < 3; i++ {
		require.NoError(t, stores.Likes.Create(ctx, models.NewLike(post.ID, "bob", testNow)))
	}
	count, err := stores.Likes.CountByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	require.NoError(t, stores.Likes.DeleteByPost(ctx, post.ID))
	count, err = stores.Likes.CountByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
