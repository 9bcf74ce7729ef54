// Package testutil provides shared test doubles and fixtures for backend tests.
package testutil

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"board/internal/models"
	"board/internal/repository"

	"gorm.io/gorm"
)

// ErrForeignKey is returned when a post is deleted while rows still
// reference it.
var ErrForeignKey = errors.New("foreign key constraint violated")

type memState struct {
	posts    map[uint]models.Post
	comments map[uint]models.Comment
	tags     map[uint]models.Tag
	likes    map[uint]models.Like
	nextID   map[string]uint
}

func newMemState() memState {
	return memState{
		posts:    map[uint]models.Post{},
		comments: map[uint]models.Comment{},
		tags:     map[uint]models.Tag{},
		likes:    map[uint]models.Like{},
		nextID:   map[string]uint{},
	}
}

func (s memState) clone() memState {
	c := newMemState()
	for k, v := range s.posts {
		c.posts[k] = v
	}
	for k, v := range s.comments {
		c.comments[k] = v
	}
	for k, v := range s.tags {
		c.tags[k] = v
	}
	for k, v := range s.likes {
		c.likes[k] = v
	}
	for k, v := range s.nextID {
		c.nextID[k] = v
	}
	return c
}

func (s memState) id(table string) uint {
	s.nextID[table]++
	return s.nextID[table]
}

// MemStore is an in-memory implementation of every board store and of
// repository.Transactor. A failed transaction restores the state it
// started from. Rows are stored by value, so changes to a loaded entity
// only persist through Update.
type MemStore struct {
	mu       sync.Mutex
	state    memState
	failures map[string]error

	// Transactions and ReadTransactions count the units of work started.
	Transactions     int
	ReadTransactions int
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{state: newMemState(), failures: map[string]error{}}
}

// Stores returns store handles backed by m.
func (m *MemStore) Stores() repository.Stores {
	return repository.Stores{
		Posts:    memPosts{m},
		Comments: memComments{m},
		Tags:     memTags{m},
		Likes:    memLikes{m},
	}
}

// Fail makes the named store operation, such as "tags.CreateBatch", return err.
func (m *MemStore) Fail(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[op] = err
}

func (m *MemStore) failure(op string) error {
	return m.failures[op]
}

func (m *MemStore) WithinTransaction(_ context.Context, fn func(repository.Stores) error) error {
	m.mu.Lock()
	m.Transactions++
	snapshot := m.state.clone()
	m.mu.Unlock()

	if err := fn(m.Stores()); err != nil {
		m.mu.Lock()
		m.state = snapshot
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *MemStore) WithinReadTransaction(_ context.Context, fn func(repository.Stores) error) error {
	m.mu.Lock()
	m.ReadTransactions++
	m.mu.Unlock()
	return fn(m.Stores())
}

// Post returns a copy of the stored post.
func (m *MemStore) Post(id uint) (models.Post, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.state.posts[id]
	return p, ok
}

// Comment returns a copy of the stored comment.
func (m *MemStore) Comment(id uint) (models.Comment, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.state.comments[id]
	return c, ok
}

// TagNames returns the tag names of a post ordered by position.
func (m *MemStore) TagNames(postID uint) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	tags := m.tagsOf(postID)
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names
}

// Count returns the number of rows in table ("posts", "comments", "tags" or "likes").
func (m *MemStore) Count(table string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch table {
	case "posts":
		return len(m.state.posts)
	case "comments":
		return len(m.state.comments)
	case "tags":
		return len(m.state.tags)
	case "likes":
		return len(m.state.likes)
	}
	return 0
}

func (m *MemStore) tagsOf(postID uint) []models.Tag {
	var tags []models.Tag
	for _, t := range m.state.tags {
		if t.PostID == postID {
			tags = append(tags, t)
		}
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Position < tags[j].Position })
	return tags
}

func page(posts []models.Post, req models.PageRequest) ([]*models.Post, int64) {
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID > posts[j].ID })
	total := int64(len(posts))
	start := req.Offset()
	if start > len(posts) {
		start = len(posts)
	}
	stop := start + req.Size
	if stop > len(posts) {
		stop = len(posts)
	}
	out := make([]*models.Post, 0, stop-start)
	for i := start; i < stop; i++ {
		p := posts[i]
		out = append(out, &p)
	}
	return out, total
}

type memPosts struct{ m *MemStore }

func (r memPosts) Create(_ context.Context, post *models.Post) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("posts.Create"); err != nil {
		return err
	}
	post.ID = r.m.state.id("posts")
	r.m.state.posts[post.ID] = *post
	return nil
}

func (r memPosts) GetByID(_ context.Context, id uint) (*models.Post, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("posts.GetByID"); err != nil {
		return nil, err
	}
	p, ok := r.m.state.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r memPosts) Update(_ context.Context, post *models.Post) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("posts.Update"); err != nil {
		return err
	}
	r.m.state.posts[post.ID] = *post
	return nil
}

func (r memPosts) Delete(_ context.Context, id uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("posts.Delete"); err != nil {
		return err
	}
	for _, c := range r.m.state.comments {
		if c.PostID == id {
			return ErrForeignKey
		}
	}
	for _, t := range r.m.state.tags {
		if t.PostID == id {
			return ErrForeignKey
		}
	}
	for _, l := range r.m.state.likes {
		if l.PostID == id {
			return ErrForeignKey
		}
	}
	delete(r.m.state.posts, id)
	return nil
}

func (r memPosts) FindPage(_ context.Context, filter repository.PostFilter, req models.PageRequest) ([]*models.Post, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("posts.FindPage"); err != nil {
		return nil, 0, err
	}
	var matched []models.Post
	for _, p := range r.m.state.posts {
		if filter.Title != nil && !strings.Contains(p.Title, *filter.Title) {
			continue
		}
		if filter.CreatedBy != nil && p.CreatedBy != *filter.CreatedBy {
			continue
		}
		matched = append(matched, p)
	}
	posts, total := page(matched, req)
	return posts, total, nil
}

type memComments struct{ m *MemStore }

func (r memComments) Create(_ context.Context, comment *models.Comment) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("comments.Create"); err != nil {
		return err
	}
	comment.ID = r.m.state.id("comments")
	r.m.state.comments[comment.ID] = *comment
	return nil
}

func (r memComments) GetByID(_ context.Context, id uint) (*models.Comment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("comments.GetByID"); err != nil {
		return nil, err
	}
	c, ok := r.m.state.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r memComments) ListByPost(_ context.Context, postID uint) ([]*models.Comment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("comments.ListByPost"); err != nil {
		return nil, err
	}
	var out []*models.Comment
	for _, c := range r.m.state.comments {
		if c.PostID == postID {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memComments) Update(_ context.Context, comment *models.Comment) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("comments.Update"); err != nil {
		return err
	}
	r.m.state.comments[comment.ID] = *comment
	return nil
}

func (r memComments) Delete(_ context.Context, id uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("comments.Delete"); err != nil {
		return err
	}
	delete(r.m.state.comments, id)
	return nil
}

func (r memComments) DeleteByPost(_ context.Context, postID uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("comments.DeleteByPost"); err != nil {
		return err
	}
	for id, c := range r.m.state.comments {
		if c.PostID == postID {
			delete(r.m.state.comments, id)
		}
	}
	return nil
}

type memTags struct{ m *MemStore }

func (r memTags) CreateBatch(_ context.Context, tags []*models.Tag) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("tags.CreateBatch"); err != nil {
		return err
	}
	for _, t := range tags {
		t.ID = r.m.state.id("tags")
		r.m.state.tags[t.ID] = *t
	}
	return nil
}

func (r memTags) ListByPost(_ context.Context, postID uint) ([]*models.Tag, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("tags.ListByPost"); err != nil {
		return nil, err
	}
	tags := r.m.tagsOf(postID)
	out := make([]*models.Tag, 0, len(tags))
	for i := range tags {
		out = append(out, &tags[i])
	}
	return out, nil
}

func (r memTags) DeleteByPost(_ context.Context, postID uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("tags.DeleteByPost"); err != nil {
		return err
	}
	for id, t := range r.m.state.tags {
		if t.PostID == postID {
			delete(r.m.state.tags, id)
		}
	}
	return nil
}

func (r memTags) FirstTagsByPosts(_ context.Context, postIDs []uint) (map[uint]string, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("tags.FirstTagsByPosts"); err != nil {
		return nil, err
	}
	first := make(map[uint]string, len(postIDs))
	for _, id := range postIDs {
		if tags := r.m.tagsOf(id); len(tags) > 0 {
			first[id] = tags[0].Name
		}
	}
	return first, nil
}

func (r memTags) FindPostPageByTag(_ context.Context, name string, req models.PageRequest) ([]*models.Post, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("tags.FindPostPageByTag"); err != nil {
		return nil, 0, err
	}
	tagged := map[uint]bool{}
	for _, t := range r.m.state.tags {
		if t.Name == name {
			tagged[t.PostID] = true
		}
	}
	var matched []models.Post
	for id := range tagged {
		if p, ok := r.m.state.posts[id]; ok {
			matched = append(matched, p)
		}
	}
	posts, total := page(matched, req)
	return posts, total, nil
}

type memLikes struct{ m *MemStore }

func (r memLikes) Create(_ context.Context, like *models.Like) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("likes.Create"); err != nil {
		return err
	}
	like.ID = r.m.state.id("likes")
	r.m.state.likes[like.ID] = *like
	return nil
}

func (r memLikes) CountByPost(_ context.Context, postID uint) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("likes.CountByPost"); err != nil {
		return 0, err
	}
	var n int64
	for _, l := range r.m.state.likes {
		if l.PostID == postID {
			n++
		}
	}
	return n, nil
}

func (r memLikes) DeleteByPost(_ context.Context, postID uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("likes.DeleteByPost"); err != nil {
		return err
	}
	for id, l := range r.m.state.likes {
		if l.PostID == postID {
			delete(r.m.state.likes, id)
		}
	}
	return nil
}
