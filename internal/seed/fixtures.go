package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Fixtures is a hand-written board loaded from YAML:
//
//	posts:
//	  - title: Hello
//	    content: First post
//	    created_by: alice
//	    tags: [go, intro]
//	    comments:
//	      - content: Welcome!
//	        created_by: bob
//	    likes: [bob, carol]
type Fixtures struct {
	Posts []PostFixture `yaml:"posts"`
}

type PostFixture struct {
	Title     string           `yaml:"title"`
	Content   string           `yaml:"content"`
	CreatedBy string           `yaml:"created_by"`
	Tags      []string         `yaml:"tags"`
	Comments  []CommentFixture `yaml:"comments"`
	// Likes lists the liking authors; repeats add more likes.
	Likes []string `yaml:"likes"`
}

type CommentFixture struct {
	Content   string `yaml:"content"`
	CreatedBy string `yaml:"created_by"`
}

// ReadFixtures parses a fixtures file.
func ReadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return ParseFixtures(data)
}

// ParseFixtures decodes a fixtures document. Every post needs an author.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var fx Fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	for i, p := range fx.Posts {
		if p.CreatedBy == "" {
			return nil, fmt.Errorf("fixture post %d (%q) has no created_by", i, p.Title)
		}
	}
	return &fx, nil
}
