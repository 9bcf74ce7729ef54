package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"board/internal/cache"
	"board/internal/events"
	"board/internal/models"
	"board/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

// mockPublisher records published events.
type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// acceptAll lets every Publish call succeed.
func (m *mockPublisher) acceptAll() *mockPublisher {
	m.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	return m
}

// published returns the types of the events published so far.
func (m *mockPublisher) published() []events.Type {
	var types []events.Type
	for _, call := range m.Calls {
		if call.Method == "Publish" {
			types = append(types, call.Arguments.Get(1).(events.Event).Type)
		}
	}
	return types
}

type testServices struct {
	store    *testutil.MemStore
	pub      *mockPublisher
	posts    *PostService
	comments *CommentService
	likes    *LikeService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	store := testutil.NewMemStore()
	pub := new(mockPublisher).acceptAll()

	likes := NewLikeService(store.Stores(), store, pub)
	posts := NewPostService(store, likes, pub)
	comments := NewCommentService(store, pub)
	clock := func() time.Time { return fixedNow }
	likes.now, posts.now, comments.now = clock, clock, clock

	return &testServices{store: store, pub: pub, posts: posts, comments: comments, likes: likes}
}

func (ts *testServices) createPost(t *testing.T, title, author string, tags ...string) uint {
	t.Helper()
	id, err := ts.posts.CreatePost(context.Background(), CreatePostInput{
		Title:     title,
		Content:   "content of " + title,
		CreatedBy: author,
		Tags:      tags,
	})
	require.NoError(t, err)
	return id
}

func strPtr(s string) *string { return &s }

// assertAppError asserts that err is an AppError with the given code and kind.
func assertAppError(t *testing.T, err error, code string, kind error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
	assert.ErrorIs(t, err, kind)
}

// useMiniredis points the like-count cache at a throwaway server.
func useMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = cache.Close() })
	return mr
}
