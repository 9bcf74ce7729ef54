package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"board/internal/models"
	"board/internal/testutil/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const boardYAML = `
posts:
  - title: Hello
    content: First post
    created_by: alice
    tags: [go, intro]
    comments:
      - content: Welcome!
        created_by: bob
    likes: [bob, carol, bob]
  - title: Second
    content: More
    created_by: bob
`

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestParseFixtures(t *testing.T) {
	fx, err := ParseFixtures([]byte(boardYAML))
	require.NoError(t, err)
	require.Len(t, fx.Posts, 2)
	assert.Equal(t, []string{"go", "intro"}, fx.Posts[0].Tags)
	assert.Equal(t, "bob", fx.Posts[0].Comments[0].CreatedBy)
	assert.Len(t, fx.Posts[0].Likes, 3)

	_, err = ParseFixtures([]byte("posts:\n  - title: anonymous\n"))
	assert.Error(t, err)

	_, err = ParseFixtures([]byte("posts: [unterminated"))
	assert.Error(t, err)
}

func TestLoadFixtures(t *testing.T) {
	db := testdb.NewSQLite(t)
	path := filepath.Join(t.TempDir(), "board.yml")
	require.NoError(t, os.WriteFile(path, []byte(boardYAML), 0o600))

	sum, err := NewSeeder(db, nil, 1).LoadFixtures(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, Summary{Posts: 2, Comments: 1, Likes: 3}, sum)

	var tags []models.Tag
	require.NoError(t, db.Order("position asc").Find(&tags).Error)
	require.Len(t, tags, 2)
	assert.Equal(t, "go", tags[0].Name)
	assert.Equal(t, "alice", tags[0].CreatedBy)
	assert.Equal(t, int64(3), count(t, db, &models.Like{}))
}

func TestSeedBoardAndClearAll(t *testing.T) {
	db := testdb.NewSQLite(t)
	s := NewSeeder(db, nil, 42)
	ctx := context.Background()

	sum, err := s.SeedBoard(ctx, 5, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, sum.Posts)
	assert.Equal(t, int64(5), count(t, db, &models.Post{}))
	assert.Equal(t, int64(sum.Comments), count(t, db, &models.Comment{}))
	assert.Equal(t, int64(sum.Likes), count(t, db, &models.Like{}))

	require.NoError(t, s.ClearAll(ctx))
	for _, model := range []any{&models.Post{}, &models.Comment{}, &models.Tag{}, &models.Like{}} {
		assert.Zero(t, count(t, db, model), "%T", model)
	}
}

func TestSeed_CleanThenFixtures(t *testing.T) {
	db := testdb.NewSQLite(t)
	ctx := context.Background()
	_, err := NewSeeder(db, nil, 7).SeedBoard(ctx, 3, 0, 0)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "board.yml")
	require.NoError(t, os.WriteFile(path, []byte(boardYAML), 0o600))

	sum, err := Seed(ctx, db, nil, Options{ShouldClean: true, Fixtures: path})
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Posts)
	assert.Equal(t, int64(2), count(t, db, &models.Post{}))
}

func TestFactory_BuildPost(t *testing.T) {
	f := NewFactory(3, 4)
	for i := 0; i < 20; i++ {
		in := f.BuildPost()
		assert.NotEmpty(t, in.Title)
		assert.NotEmpty(t, in.CreatedBy)
		assert.LessOrEqual(t, len(in.Tags), 3)

		seen := map[string]bool{}
		for _, tag := range in.Tags {
			assert.False(t, seen[tag], "duplicate tag %q", tag)
			seen[tag] = true
		}
	}
	assert.Len(t, f.authors, 4)
}
