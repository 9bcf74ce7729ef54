package repository

import (
	"context"
	"errors"
	"testing"

	"board/internal/models"
	"board/internal/testutil/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := testdb.NewSQLite(t)
	tx := NewTransactor(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := tx.WithinTransaction(ctx, func(st Stores) error {
		post := models.NewPost("doomed", "", "alice", testNow)
		if err := st.Posts.Create(ctx, post); err != nil {
			return err
		}
		if err := st.Tags.CreateBatch(ctx, post.BuildTags([]string{"a"}, testNow)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	posts, total, err := NewPostRepository(db).FindPage(ctx, PostFilter{}, models.PageRequest{Size: 10})
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Zero(t, total)
}

func TestTransactor_CommitsAndReads(t *testing.T) {
	db := testdb.NewSQLite(t)
	tx := NewTransactor(db)
	ctx := context.Background()

	var id uint
	require.NoError(t, tx.WithinTransaction(ctx, func(st Stores) error {
		post := models.NewPost("kept", "", "alice", testNow)
		if err := st.Posts.Create(ctx, post); err != nil {
			return err
		}
		id = post.ID
		return st.Tags.CreateBatch(ctx, post.BuildTags([]string{"x", "y"}, testNow))
	}))

	var tags []*models.Tag
	require.NoError(t, tx.WithinReadTransaction(ctx, func(st Stores) error {
		if _, err := st.Posts.GetByID(ctx, id); err != nil {
			return err
		}
		var err error
		tags, err = st.Tags.ListByPost(ctx, id)
		return err
	}))
	assert.Len(t, tags, 2)
}
