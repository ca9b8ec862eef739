package search

import (
	"context"

	"github.com/kailas-cloud/parksite/internal/domain/content"
)

// Source reads the remote content collections searched alongside the
// static section table.
type Source interface {
	SearchFaqs(ctx context.Context, term string, limit int) ([]content.Faq, error)
	SearchPosts(ctx context.Context, term string, limit int) ([]content.Post, error)
	SearchMenuItems(ctx context.Context, term string, limit int) ([]content.MenuItem, error)
}
