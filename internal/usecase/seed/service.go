package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/parksite/internal/domain"
	"github.com/kailas-cloud/parksite/internal/domain/content"
	"github.com/kailas-cloud/parksite/internal/logger"
)

// Writer stores content records.
type Writer interface {
	SaveFaqs(ctx context.Context, faqs []content.Faq) error
	SavePosts(ctx context.Context, posts []content.Post) error
	SaveMenuItems(ctx context.Context, items []content.MenuItem) error
}

// Summary counts the records written.
type Summary struct {
	Faqs      int
	Posts     int
	MenuItems int
}

// Service loads fixtures into the content store.
type Service struct {
	w Writer
}

// New creates a seed service.
func New(w Writer) *Service {
	return &Service{w: w}
}

// Apply validates the whole fixture, then writes FAQs, posts and menu items.
// Records with the same key are replaced, so applying a fixture twice is safe.
func (s *Service) Apply(ctx context.Context, f *Fixture) (Summary, error) {
	faqs, err := faqsFrom(f.Faqs)
	if err != nil {
		return Summary{}, err
	}
	posts, err := postsFrom(f.Posts)
	if err != nil {
		return Summary{}, err
	}
	items, err := menuFrom(f.MenuItems)
	if err != nil {
		return Summary{}, err
	}

	if len(faqs) > 0 {
		if err := s.w.SaveFaqs(ctx, faqs); err != nil {
			return Summary{}, fmt.Errorf("seed faqs: %w", err)
		}
	}
	if len(posts) > 0 {
		if err := s.w.SavePosts(ctx, posts); err != nil {
			return Summary{}, fmt.Errorf("seed posts: %w", err)
		}
	}
	if len(items) > 0 {
		if err := s.w.SaveMenuItems(ctx, items); err != nil {
			return Summary{}, fmt.Errorf("seed menu items: %w", err)
		}
	}

	sum := Summary{Faqs: len(faqs), Posts: len(posts), MenuItems: len(items)}
	logger.FromContext(ctx).Info("content seeded",
		zap.Int("faqs", sum.Faqs),
		zap.Int("posts", sum.Posts),
		zap.Int("menu_items", sum.MenuItems),
	)
	return sum, nil
}

// stableID derives a repeatable id so reseeding replaces instead of duplicating.
func stableID(kind, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("parksite:"+kind+":"+name)).String()
}

func faqsFrom(in []FaqFixture) ([]content.Faq, error) {
	out := make([]content.Faq, 0, len(in))
	for i, f := range in {
		q := strings.TrimSpace(f.Question)
		if q == "" {
			return nil, fmt.Errorf("%w: faqs[%d]: question is required", domain.ErrInvalidArgument, i)
		}
		id := f.ID
		if id == "" {
			id = stableID("faq", q)
		}
		out = append(out, content.Faq{ID: id, Question: q, Answer: f.Answer})
	}
	return out, nil
}

func postsFrom(in []PostFixture) ([]content.Post, error) {
	out := make([]content.Post, 0, len(in))
	for i, p := range in {
		if strings.TrimSpace(p.Slug) == "" || strings.TrimSpace(p.Title) == "" {
			return nil, fmt.Errorf("%w: posts[%d]: slug and title are required", domain.ErrInvalidArgument, i)
		}
		out = append(out, content.Post{
			Slug:        strings.TrimSpace(p.Slug),
			Title:       p.Title,
			Description: p.Description,
			PublishedAt: p.PublishedAt,
		})
	}
	return out, nil
}

func menuFrom(in []MenuFixture) ([]content.MenuItem, error) {
	out := make([]content.MenuItem, 0, len(in))
	for i, m := range in {
		title := strings.TrimSpace(m.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: menu_items[%d]: title is required", domain.ErrInvalidArgument, i)
		}
		id := m.ID
		if id == "" {
			id = stableID("menu", title)
		}
		out = append(out, content.MenuItem{ID: id, Title: title, Description: m.Description, Category: m.Category})
	}
	return out, nil
}
