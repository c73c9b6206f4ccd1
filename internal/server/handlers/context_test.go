package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorFromContext(t *testing.T) {
	_, ok := AuthorFromContext(context.Background())
	assert.False(t, ok)

	_, ok = AuthorFromContext(WithAuthor(context.Background(), Author{Name: "anon"}))
	assert.False(t, ok, "author without id is not authenticated")

	got, ok := AuthorFromContext(WithAuthor(context.Background(), Author{ID: "u1", Name: "author1"}))
	assert.True(t, ok)
	assert.Equal(t, Author{ID: "u1", Name: "author1"}, got)
}
