package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Stores groups the stores of one unit of work. Inside a transaction every
// store shares the same connection.
type Stores struct {
	Posts    PostRepository
	Comments CommentRepository
	Tags     TagRepository
	Likes    LikeRepository
}

// NewStores binds every store to db.
func NewStores(db *gorm.DB) Stores {
	return Stores{
		Posts:    NewPostRepository(db),
		Comments: NewCommentRepository(db),
		Tags:     NewTagRepository(db),
		Likes:    NewLikeRepository(db),
	}
}

// Transactor runs a function inside one database transaction.
type Transactor interface {
	// WithinTransaction commits when fn returns nil and rolls back otherwise.
	WithinTransaction(ctx context.Context, fn func(Stores) error) error
	// WithinReadTransaction runs fn against a consistent read snapshot.
	WithinReadTransaction(ctx context.Context, fn func(Stores) error) error
}

type gormTransactor struct {
	db *gorm.DB
}

// NewTransactor creates a Transactor backed by gorm transactions.
func NewTransactor(db *gorm.DB) Transactor {
	return &gormTransactor{db: db}
}

func (t *gormTransactor) WithinTransaction(ctx context.Context, fn func(Stores) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStores(tx))
	})
}

func (t *gormTransactor) WithinReadTransaction(ctx context.Context, fn func(Stores) error) error {
	var opts *sql.TxOptions
	// sqlite rejects isolation levels other than the default.
	if t.db.Dialector.Name() == "postgres" {
		opts = &sql.TxOptions{ReadOnly: true, Isolation: sql.LevelRepeatableRead}
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStores(tx))
	}, opts)
}
