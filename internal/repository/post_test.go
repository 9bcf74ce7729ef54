package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"testing"

	"board/internal/models"
	"board/internal/testutil/testdb"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := models.NewPost("Test Post", "Content", "alice", testNow)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, post)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), post.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		postID        uint
		mockBehavior  func()
		expectedTitle string
		expectedErr   error
	}{
		{
			name:   "Success",
			postID: 1,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1 ORDER BY "posts"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(sqlmock.NewRows([]string{"id", "title", "created_by"}).AddRow(1, "Post 1", "alice"))
			},
			expectedTitle: "Post 1",
		},
		{
			name:   "Not found",
			postID: 2,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1 ORDER BY "posts"."id" LIMIT $2`)).
					WithArgs(2, 1).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			expectedErr: gorm.ErrRecordNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			post, err := repo.GetByID(ctx, tt.postID)

			if tt.expectedErr != nil {
				assert.True(t, errors.Is(err, tt.expectedErr))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedTitle, post.Title)
				assert.Equal(t, "alice", post.CreatedBy)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostRepository_FindPage_EscapesTitle(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts" WHERE title LIKE $1 ESCAPE '\'`)).
		WithArgs(`%50\%\_off%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT \* FROM "posts" WHERE title LIKE \$1 ESCAPE '\\' ORDER BY id DESC LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	posts, total, err := repo.FindPage(context.Background(), PostFilter{Title: strPtr("50%_off")}, models.PageRequest{Page: 0, Size: 10})
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Equal(t, int64(3), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_FindPage_PastLastPageSkipsQuery(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))

	page := models.PageRequest{Page: math.MaxInt / 2, Size: 2}
	posts, total, err := repo.FindPage(context.Background(), PostFilter{}, page)
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Equal(t, int64(10), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\%b\_c\\d`, escapeLike(`a%b_c\d`))
	assert.Equal(t, "plain", escapeLike("plain"))
}

func TestPostRepository_FindPage_SQLite(t *testing.T) {
	db := testdb.NewSQLite(t)
	stores := NewStores(db)
	ctx := context.Background()

	for i := 1; i <= 6; i++ {
		author := "alice"
		if i%2 == 0 {
			author = "bob"
		}
		seedPost(t, stores, fmt.Sprintf("post %d", i), author)
	}
	seedPost(t, stores, "100% pure", "carol")
	seedPost(t, stores, "1000 ways", "carol")

	tests := []struct {
		name   string
		filter PostFilter
		page   models.PageRequest
		titles []string
		total  int64
	}{
		{
			name:   "no filter newest first",
			page:   models.PageRequest{Page: 0, Size: 3},
			titles: []string{"1000 ways", "100% pure", "post 6"},
			total:  8,
		},
		{
			name:   "second page",
			page:   models.PageRequest{Page: 1, Size: 3},
			titles: []string{"post 5", "post 4", "post 3"},
			total:  8,
		},
		{
			name:   "author",
			filter: PostFilter{CreatedBy: strPtr("bob")},
			page:   models.PageRequest{Page: 0, Size: 10},
			titles: []string{"post 6", "post 4", "post 2"},
			total:  3,
		},
		{
			name:   "title and author",
			filter: PostFilter{Title: strPtr("post"), CreatedBy: strPtr("alice")},
			page:   models.PageRequest{Page: 0, Size: 2},
			titles: []string{"post 5", "post 3"},
			total:  3,
		},
		{
			name:   "percent is literal",
			filter: PostFilter{Title: strPtr("100%")},
			page:   models.PageRequest{Page: 0, Size: 10},
			titles: []string{"100% pure"},
			total:  1,
		},
		{
			name:   "out of range",
			page:   models.PageRequest{Page: 5, Size: 10},
			titles: nil,
			total:  8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, total, err := stores.Posts.FindPage(ctx, tt.filter, tt.page)
			require.NoError(t, err)
			var titles []string
			for _, p := range posts {
				titles = append(titles, p.Title)
			}
			assert.Equal(t, tt.titles, titles)
			assert.Equal(t, tt.total, total)
		})
	}
}

func TestPostRepository_UpdateAndDelete_SQLite(t *testing.T) {
	db := testdb.NewSQLite(t)
	stores := NewStores(db)
	ctx := context.Background()
	post := seedPost(t, stores, "before", "alice")

	require.NoError(t, post.Update("after", "new body", "alice", testNow))
	require.NoError(t, stores.Posts.Update(ctx, post))

	got, err := stores.Posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	require.NotNil(t, got.UpdatedBy)
	assert.Equal(t, "alice", *got.UpdatedBy)
	assert.Equal(t, "alice", got.CreatedBy)

	require.NoError(t, stores.Posts.Delete(ctx, post.ID))
	_, err = stores.Posts.GetByID(ctx, post.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
