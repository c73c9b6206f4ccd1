package handlers

import "context"

type authorKey struct{}

// Author автор контента, от имени которого выполняется запрос
type Author struct {
	ID   string
	Name string
}

// WithAuthor кладёт автора в контекст запроса
func WithAuthor(ctx context.Context, a Author) context.Context {
	return context.WithValue(ctx, authorKey{}, a)
}

// AuthorFromContext возвращает автора, положенного AuthMiddleware
func AuthorFromContext(ctx context.Context) (Author, bool) {
	a, ok := ctx.Value(authorKey{}).(Author)
	return a, ok && a.ID != ""
}
