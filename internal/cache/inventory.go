package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	LikeCountKeyPrefix    = "post:%d:likes"
	LikeCountGenKeyPrefix = "post:%d:likes:gen"
)

const (
	LikeCountTTL = 30 * time.Second
)

func LikeCountKey(postID uint) string {
	return fmt.Sprintf(LikeCountKeyPrefix, postID)
}

// LikeCountGenKey names the counter bumped on every like write of a post.
func LikeCountGenKey(postID uint) string {
	return fmt.Sprintf(LikeCountGenKeyPrefix, postID)
}

// InvalidateLikeCount drops the cached count and discards fills that read
// the store before the write committed.
func InvalidateLikeCount(ctx context.Context, postID uint) {
	Bump(ctx, LikeCountKey(postID), LikeCountGenKey(postID))
}
