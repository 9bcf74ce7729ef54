package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() {
		_ = Close()
		mr.Close()
	})
	return mr
}

func TestLikeCountKeys(t *testing.T) {
	assert.Equal(t, "post:42:likes", LikeCountKey(42))
	assert.Equal(t, "post:42:likes:gen", LikeCountGenKey(42))
}

func TestAside_MissThenHit(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *int64) func() error {
		return func() error {
			calls++
			*dest = 7
			return nil
		}
	}

	var first int64
	require.NoError(t, Aside(ctx, LikeCountKey(1), LikeCountGenKey(1), &first, LikeCountTTL, fetch(&first)))
	assert.Equal(t, int64(7), first)
	assert.Equal(t, 1, calls)
	assert.True(t, mr.Exists(LikeCountKey(1)))
	assert.Greater(t, mr.TTL(LikeCountKey(1)), time.Duration(0))

	var second int64
	require.NoError(t, Aside(ctx, LikeCountKey(1), LikeCountGenKey(1), &second, LikeCountTTL, fetch(&second)))
	assert.Equal(t, int64(7), second)
	assert.Equal(t, 1, calls, "second read must be served from redis")
}

func TestAside_WriteDuringFetchIsNotCached(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	var n int64
	err := Aside(ctx, LikeCountKey(9), LikeCountGenKey(9), &n, LikeCountTTL, func() error {
		n = 2
		// A like commits after the count was read.
		InvalidateLikeCount(ctx, 9)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n, "the caller still gets what the store returned")
	assert.False(t, mr.Exists(LikeCountKey(9)))

	gen, err := mr.Get(LikeCountGenKey(9))
	require.NoError(t, err)
	assert.Equal(t, "1", gen)

	require.NoError(t, Aside(ctx, LikeCountKey(9), LikeCountGenKey(9), &n, LikeCountTTL, func() error {
		n = 3
		return nil
	}))
	got, err := mr.Get(LikeCountKey(9))
	require.NoError(t, err)
	assert.Equal(t, "3", got)
}

func TestAside_FetchErrorIsNotCached(t *testing.T) {
	mr := setupMiniredis(t)
	boom := errors.New("boom")

	var n int64
	err := Aside(context.Background(), LikeCountKey(2), LikeCountGenKey(2), &n, LikeCountTTL, func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists(LikeCountKey(2)))
}

func TestAside_CorruptEntryFallsBackToFetch(t *testing.T) {
	mr := setupMiniredis(t)
	require.NoError(t, mr.Set(LikeCountKey(3), "not-json"))

	var n int64
	err := Aside(context.Background(), LikeCountKey(3), LikeCountGenKey(3), &n, LikeCountTTL, func() error {
		n = 4
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestInvalidateLikeCount(t *testing.T) {
	mr := setupMiniredis(t)
	require.NoError(t, mr.Set(LikeCountKey(5), "3"))

	InvalidateLikeCount(context.Background(), 5)
	InvalidateLikeCount(context.Background(), 5)
	assert.False(t, mr.Exists(LikeCountKey(5)))

	gen, err := mr.Get(LikeCountGenKey(5))
	require.NoError(t, err)
	assert.Equal(t, "2", gen)
}

func TestWithoutClient(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	found, err := GetJSON(ctx, "k", new(int))
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, SetJSON(ctx, "k", 1, LikeCountTTL))
	assert.NoError(t, Ping(ctx))
	InvalidateLikeCount(ctx, 1)

	var n int64
	calls := 0
	for i := 0; i < 2; i++ {
		require.NoError(t, Aside(ctx, LikeCountKey(1), LikeCountGenKey(1), &n, LikeCountTTL, func() error {
			calls++
			n = 1
			return nil
		}))
	}
	assert.Equal(t, 2, calls)
}
