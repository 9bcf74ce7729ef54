package database

import (
	"testing"

	modelspkg "board/internal/models"

	"github.com/stretchr/testify/require"
)

func TestPersistentModels_IncludesBoardTables(t *testing.T) {
	var post, comment, tag, like bool
	for _, model := range PersistentModels() {
		switch model.(type) {
		case *modelspkg.Post:
			post = true
		case *modelspkg.Comment:
			comment = true
		case *modelspkg.Tag:
			tag = true
		case *modelspkg.Like:
			like = true
		}
	}
	require.True(t, post && comment && tag && like, "PersistentModels should include posts, comments, tags and likes")
}
