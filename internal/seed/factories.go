// Package seed provides helpers to create demo data for the board database.
// These helpers are intended for development and testing only.
package seed

import (
	"strings"

	"board/internal/service"

	"github.com/brianvoe/gofakeit/v6"
)

var tagPool = []string{
	"go", "databases", "devops", "frontend", "backend", "linux", "homelab",
	"books", "music", "gaming", "travel", "food", "science", "startups",
}

// Factory builds random service inputs for posts, comments and likes.
type Factory struct {
	faker   *gofakeit.Faker
	authors []string
}

// NewFactory creates a Factory. A zero seed picks a random one; any other
// seed makes the generated board reproducible.
func NewFactory(seed int64, numAuthors int) *Factory {
	if numAuthors <= 0 {
		numAuthors = 10
	}
	faker := gofakeit.New(seed)
	authors := make([]string, 0, numAuthors)
	seen := make(map[string]bool, numAuthors)
	for len(authors) < numAuthors {
		name := strings.ToLower(faker.Username())
		if seen[name] {
			continue
		}
		seen[name] = true
		authors = append(authors, name)
	}
	return &Factory{faker: faker, authors: authors}
}

// Author returns one of the factory's authors.
func (f *Factory) Author() string {
	return f.faker.RandomString(f.authors)
}

// BuildPost returns input for a post with up to three distinct tags.
func (f *Factory) BuildPost() service.CreatePostInput {
	count := f.faker.Number(0, 3)
	tags := make([]string, 0, count)
	for len(tags) < count {
		tag := f.faker.RandomString(tagPool)
		if !contains(tags, tag) {
			tags = append(tags, tag)
		}
	}
	return service.CreatePostInput{
		Title:     strings.TrimSuffix(f.faker.Sentence(5), "."),
		Content:   f.faker.Paragraph(1, 3, 8, "\n"),
		CreatedBy: f.Author(),
		Tags:      tags,
	}
}

// BuildComment returns input for a comment on postID.
func (f *Factory) BuildComment(postID uint) service.CreateCommentInput {
	return service.CreateCommentInput{
		PostID:    postID,
		Content:   f.faker.Sentence(10),
		CreatedBy: f.Author(),
	}
}

// Intn returns a number in [0, n].
func (f *Factory) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return f.faker.Number(0, n)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
