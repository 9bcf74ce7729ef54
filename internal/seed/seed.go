package seed

import (
	"context"
	"fmt"
	"log/slog"

	"board/internal/events"
	"board/internal/middleware"
	"board/internal/models"
	"board/internal/repository"
	"board/internal/service"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumPosts    int
	MaxComments int
	MaxLikes    int
	ShouldClean bool
	// Fixtures, when set, names a YAML file loaded after the random board.
	Fixtures string
	// RandomSeed makes generated content reproducible when non-zero.
	RandomSeed int64
}

// Summary counts what a seeding run created.
type Summary struct {
	Posts    int
	Comments int
	Likes    int
}

func (s *Summary) add(o Summary) {
	s.Posts += o.Posts
	s.Comments += o.Comments
	s.Likes += o.Likes
}

// Seeder writes demo content through the services so tags, ownership and
// like counts follow the same rules as API traffic.
type Seeder struct {
	db       *gorm.DB
	posts    *service.PostService
	comments *service.CommentService
	likes    *service.LikeService
	factory  *Factory
}

// NewSeeder wires services over db. A nil publisher keeps seeding silent.
func NewSeeder(db *gorm.DB, publisher events.Publisher, randomSeed int64) *Seeder {
	stores := repository.NewStores(db)
	tx := repository.NewTransactor(db)
	likes := service.NewLikeService(stores, tx, publisher)
	return &Seeder{
		db:       db,
		posts:    service.NewPostService(tx, likes, publisher),
		comments: service.NewCommentService(tx, publisher),
		likes:    likes,
		factory:  NewFactory(randomSeed, 12),
	}
}

// Seed populates the database according to opts.
func Seed(ctx context.Context, db *gorm.DB, publisher events.Publisher, opts Options) (Summary, error) {
	middleware.Logger.Info("Starting database seeding",
		slog.Int("posts", opts.NumPosts),
		slog.Bool("clean", opts.ShouldClean),
		slog.String("fixtures", opts.Fixtures))

	s := NewSeeder(db, publisher, opts.RandomSeed)
	if opts.ShouldClean {
		if err := s.ClearAll(ctx); err != nil {
			return Summary{}, fmt.Errorf("failed to clear data: %w", err)
		}
	}

	var total Summary
	if opts.NumPosts > 0 {
		sum, err := s.SeedBoard(ctx, opts.NumPosts, opts.MaxComments, opts.MaxLikes)
		if err != nil {
			return total, err
		}
		total.add(sum)
	}
	if opts.Fixtures != "" {
		sum, err := s.LoadFixtures(ctx, opts.Fixtures)
		if err != nil {
			return total, err
		}
		total.add(sum)
	}

	middleware.Logger.Info("Database seeding completed",
		slog.Int("posts", total.Posts),
		slog.Int("comments", total.Comments),
		slog.Int("likes", total.Likes))
	return total, nil
}

// ClearAll deletes every like, tag, comment and post, children first.
func (s *Seeder) ClearAll(ctx context.Context) error {
	middleware.Logger.Info("Clearing existing data")
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&models.Like{}, &models.Tag{}, &models.Comment{}, &models.Post{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}
		return nil
	})
}

// SeedBoard generates posts with up to maxComments comments and maxLikes
// likes each.
func (s *Seeder) SeedBoard(ctx context.Context, posts, maxComments, maxLikes int) (Summary, error) {
	var sum Summary
	for i := 0; i < posts; i++ {
		postID, err := s.posts.CreatePost(ctx, s.factory.BuildPost())
		if err != nil {
			return sum, fmt.Errorf("create post: %w", err)
		}
		sum.Posts++

		for c := s.factory.Intn(maxComments); c > 0; c-- {
			if _, err := s.comments.CreateComment(ctx, s.factory.BuildComment(postID)); err != nil {
				return sum, fmt.Errorf("create comment on post %d: %w", postID, err)
			}
			sum.Comments++
		}
		for l := s.factory.Intn(maxLikes); l > 0; l-- {
			if _, err := s.likes.CreateLike(ctx, postID, s.factory.Author()); err != nil {
				return sum, fmt.Errorf("create like on post %d: %w", postID, err)
			}
			sum.Likes++
		}
	}
	return sum, nil
}

// LoadFixtures persists the board described by the YAML file at path.
func (s *Seeder) LoadFixtures(ctx context.Context, path string) (Summary, error) {
	fx, err := ReadFixtures(path)
	if err != nil {
		return Summary{}, err
	}
	return s.Apply(ctx, fx)
}

// Apply persists already-parsed fixtures in document order.
func (s *Seeder) Apply(ctx context.Context, fx *Fixtures) (Summary, error) {
	var sum Summary
	for _, p := range fx.Posts {
		postID, err := s.posts.CreatePost(ctx, service.CreatePostInput{
			Title:     p.Title,
			Content:   p.Content,
			CreatedBy: p.CreatedBy,
			Tags:      p.Tags,
		})
		if err != nil {
			return sum, fmt.Errorf("fixture post %q: %w", p.Title, err)
		}
		sum.Posts++

		for _, c := range p.Comments {
			if _, err := s.comments.CreateComment(ctx, service.CreateCommentInput{
				PostID:    postID,
				Content:   c.Content,
				CreatedBy: c.CreatedBy,
			}); err != nil {
				return sum, fmt.Errorf("fixture comment on %q: %w", p.Title, err)
			}
			sum.Comments++
		}
		for _, author := range p.Likes {
			if _, err := s.likes.CreateLike(ctx, postID, author); err != nil {
				return sum, fmt.Errorf("fixture like on %q: %w", p.Title, err)
			}
			sum.Likes++
		}
	}
	return sum, nil
}
