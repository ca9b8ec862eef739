package blog

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/kailas-cloud/parksite/internal/domain"
	"github.com/kailas-cloud/parksite/internal/domain/content"
)

// Page size defaults.
const (
	DefaultPageSize = 9
	MaxPageSize     = 50
)

// Page is one page of the blog listing.
type Page struct {
	Items   []content.Post
	Total   int
	Page    int
	Limit   int
	HasMore bool
}

// Service lists and reads blog posts.
type Service struct {
	repo            Repository
	defaultPageSize int
	maxPageSize     int
}

// New creates a blog service. Zero sizes fall back to the package defaults.
func New(repo Repository, defaultPageSize, maxPageSize int) *Service {
	if maxPageSize <= 0 {
		maxPageSize = MaxPageSize
	}
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	defaultPageSize = min(defaultPageSize, maxPageSize)
	return &Service{repo: repo, defaultPageSize: defaultPageSize, maxPageSize: maxPageSize}
}

// List returns the 1-based page of posts, newest first. A zero page or
// limit selects the first page or the default size; limit is capped.
func (s *Service) List(ctx context.Context, page, limit int) (Page, error) {
	if page < 0 || limit < 0 {
		return Page{}, fmt.Errorf("%w: page and limit must not be negative", domain.ErrInvalidArgument)
	}
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = s.defaultPageSize
	}
	limit = min(limit, s.maxPageSize)
	// offset+limit must fit in an int.
	if page-1 > (math.MaxInt-limit)/limit {
		return Page{}, fmt.Errorf("%w: page %d is out of range", domain.ErrInvalidArgument, page)
	}

	offset := (page - 1) * limit
	posts, total, err := s.repo.ListPosts(ctx, offset, limit)
	if err != nil {
		return Page{}, fmt.Errorf("list posts: %w", err)
	}

	return Page{
		Items:   posts,
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasMore: offset+len(posts) < total,
	}, nil
}

// Get returns a post by slug.
func (s *Service) Get(ctx context.Context, slug string) (content.Post, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return content.Post{}, fmt.Errorf("%w: slug is required", domain.ErrInvalidArgument)
	}
	post, err := s.repo.GetPost(ctx, slug)
	if err != nil {
		return content.Post{}, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}
