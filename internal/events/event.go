// Package events publishes board domain events after their changes commit.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Type names a domain event. It is also the last part of the broker subject.
type Type string

const (
	PostCreated    Type = "post.created"
	PostUpdated    Type = "post.updated"
	PostDeleted    Type = "post.deleted"
	CommentCreated Type = "comment.created"
	CommentUpdated Type = "comment.updated"
	CommentDeleted Type = "comment.deleted"
	LikeCreated    Type = "like.created"
)

// Event describes one committed change.
type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       Type      `json:"type"`
	PostID     uint      `json:"post_id"`
	EntityID   uint      `json:"entity_id"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurred_at"`
}

// New builds an event with a fresh id. entityID is the post, comment or
// like the event is about; postID is the post it belongs to.
func New(t Type, postID, entityID uint, actor string, at time.Time) Event {
	return Event{
		ID:         uuid.New(),
		Type:       t,
		PostID:     postID,
		EntityID:   entityID,
		Actor:      actor,
		OccurredAt: at.UTC(),
	}
}

// Subject returns the broker subject for t under prefix.
func Subject(prefix string, t Type) string {
	if prefix == "" {
		return string(t)
	}
	return prefix + "." + string(t)
}
