package blog

import (
	"context"

	"github.com/kailas-cloud/parksite/internal/domain/content"
)

// Repository reads blog posts.
type Repository interface {
	ListPosts(ctx context.Context, offset, limit int) ([]content.Post, int, error)
	GetPost(ctx context.Context, slug string) (content.Post, error)
}
