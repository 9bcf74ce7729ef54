package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	natspkg "github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	subjects []string
	payloads [][]byte
	err      error
	drained  bool
}

func (c *fakeConn) Publish(subject string, data []byte) error {
	if c.err != nil {
		return c.err
	}
	c.subjects = append(c.subjects, subject)
	c.payloads = append(c.payloads, data)
	return nil
}

func (c *fakeConn) Drain() error {
	c.drained = true
	return nil
}

func (c *fakeConn) Status() natspkg.Status { return natspkg.CONNECTED }

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "board.post.created", Subject("board", PostCreated))
	assert.Equal(t, "like.created", Subject("", LikeCreated))
}

func TestNew(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("x", 3600))
	e := New(CommentCreated, 1, 9, "alice", at)

	assert.NotEqual(t, [16]byte{}, [16]byte(e.ID))
	assert.Equal(t, CommentCreated, e.Type)
	assert.Equal(t, uint(1), e.PostID)
	assert.Equal(t, uint(9), e.EntityID)
	assert.Equal(t, "alice", e.Actor)
	assert.Equal(t, time.UTC, e.OccurredAt.Location())
	assert.True(t, at.Equal(e.OccurredAt))
}

func TestNATSPublisher_Publish(t *testing.T) {
	nc := &fakeConn{}
	p := newNATSPublisher(nc, "")

	e := New(PostDeleted, 3, 3, "bob", time.Now())
	require.NoError(t, p.Publish(context.Background(), e))

	require.Len(t, nc.subjects, 1)
	assert.Equal(t, "board.post.deleted", nc.subjects[0])

	var decoded Event
	require.NoError(t, json.Unmarshal(nc.payloads[0], &decoded))
	assert.Equal(t, e.ID, decoded.ID)
	assert.Equal(t, PostDeleted, decoded.Type)
	assert.True(t, p.IsConnected())

	require.NoError(t, p.Close())
	assert.True(t, nc.drained)
}

func TestNATSPublisher_PublishError(t *testing.T) {
	p := newNATSPublisher(&fakeConn{err: errors.New("no responders")}, "forum")

	err := p.Publish(context.Background(), New(LikeCreated, 1, 2, "c", time.Now()))
	assert.ErrorContains(t, err, "forum.like.created")
}

func TestPublishAfterCommit_SwallowsErrors(t *testing.T) {
	pub := new(mockPublisher)
	e := New(PostCreated, 1, 1, "a", time.Now())
	pub.On("Publish", mock.Anything, e).Return(errors.New("down")).Once()

	assert.NotPanics(t, func() {
		PublishAfterCommit(context.Background(), pub, e)
	})
	pub.AssertExpectations(t)

	PublishAfterCommit(context.Background(), nil, e)
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), e))
}
