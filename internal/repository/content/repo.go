package content

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/parksite/internal/db"
	"github.com/kailas-cloud/parksite/internal/domain"
	"github.com/kailas-cloud/parksite/internal/domain/content"
)

// store is the consumer interface for content operations (ISP).
type store interface {
	db.Searcher
	db.Lister
	db.Writer
}

// Repo reads and writes park content records.
type Repo struct {
	store store
}

// New creates a content repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

var (
	faqColumns  = []string{"id", "question", "answer"}
	postColumns = []string{"slug", "title", "description", "published_at"}
	menuColumns = []string{"id", "title", "description", "category"}

	postOrder = []db.Order{{Column: "published_at", Desc: true}, {Column: "slug"}}
)

// SearchFaqs returns FAQs whose question or answer contains term.
func (r *Repo) SearchFaqs(ctx context.Context, term string, limit int) ([]content.Faq, error) {
	rows, err := r.store.SearchContains(ctx, &db.ContainsQuery{
		Collection:   content.CollectionFaqs,
		Columns:      faqColumns,
		MatchColumns: []string{"question", "answer"},
		Term:         term,
		Limit:        limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search faqs: %w", err)
	}

	faqs := make([]content.Faq, 0, len(rows))
	for _, row := range rows {
		faqs = append(faqs, faqFromRow(row))
	}
	return faqs, nil
}

// SearchPosts returns posts whose title or description contains term.
func (r *Repo) SearchPosts(ctx context.Context, term string, limit int) ([]content.Post, error) {
	rows, err := r.store.SearchContains(ctx, &db.ContainsQuery{
		Collection:   content.CollectionPosts,
		Columns:      postColumns,
		MatchColumns: []string{"title", "description"},
		Term:         term,
		Limit:        limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	return postsFromRows(rows), nil
}

// SearchMenuItems returns menu items whose title or description contains term.
func (r *Repo) SearchMenuItems(ctx context.Context, term string, limit int) ([]content.MenuItem, error) {
	rows, err := r.store.SearchContains(ctx, &db.ContainsQuery{
		Collection:   content.CollectionMenuItems,
		Columns:      menuColumns,
		MatchColumns: []string{"title", "description"},
		Term:         term,
		Limit:        limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search menu items: %w", err)
	}

	items := make([]content.MenuItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, content.MenuItem{
			ID:          row.String("id"),
			Title:       row.String("title"),
			Description: row.String("description"),
			Category:    row.String("category"),
		})
	}
	return items, nil
}

// ListPosts returns one page of posts, newest first, and the post count.
func (r *Repo) ListPosts(ctx context.Context, offset, limit int) ([]content.Post, int, error) {
	res, err := r.store.List(ctx, &db.ListQuery{
		Collection: content.CollectionPosts,
		Columns:    postColumns,
		OrderBy:    postOrder,
		Offset:     offset,
		Limit:      limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	return postsFromRows(res.Rows), res.Total, nil
}

// AllPosts pages through every post, newest first.
func (r *Repo) AllPosts(ctx context.Context) ([]content.Post, error) {
	const batch = 100

	var all []content.Post
	for offset := 0; ; offset += batch {
		posts, total, err := r.ListPosts(ctx, offset, batch)
		if err != nil {
			return nil, err
		}
		all = append(all, posts...)
		if len(posts) < batch || offset+batch >= total {
			return all, nil
		}
	}
}

// GetPost returns the post with slug or domain.ErrNotFound.
func (r *Repo) GetPost(ctx context.Context, slug string) (content.Post, error) {
	row, err := r.store.Get(ctx, &db.GetQuery{
		Collection: content.CollectionPosts,
		Columns:    postColumns,
		Key:        slug,
	})
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return content.Post{}, fmt.Errorf("post %q: %w", slug, domain.ErrNotFound)
		}
		return content.Post{}, fmt.Errorf("get post %q: %w", slug, err)
	}
	return postFromRow(row), nil
}

// SaveFaqs stores FAQs; their slice order becomes the display position.
func (r *Repo) SaveFaqs(ctx context.Context, faqs []content.Faq) error {
	rows := make([]db.Row, len(faqs))
	for i, f := range faqs {
		rows[i] = optional(db.Row{
			"id":       f.ID,
			"question": f.Question,
			"position": strconv.Itoa(i + 1),
		}, "answer", f.Answer)
	}
	if err := r.store.Upsert(ctx, content.CollectionFaqs, rows); err != nil {
		return fmt.Errorf("save faqs: %w", err)
	}
	return nil
}

// SavePosts stores posts.
func (r *Repo) SavePosts(ctx context.Context, posts []content.Post) error {
	rows := make([]db.Row, len(posts))
	for i, p := range posts {
		row := optional(db.Row{"slug": p.Slug, "title": p.Title}, "description", p.Description)
		if !p.PublishedAt.IsZero() {
			row["published_at"] = p.PublishedAt.UTC().Format(time.RFC3339)
		}
		rows[i] = row
	}
	if err := r.store.Upsert(ctx, content.CollectionPosts, rows); err != nil {
		return fmt.Errorf("save posts: %w", err)
	}
	return nil
}

// SaveMenuItems stores menu items; their slice order becomes the display position.
func (r *Repo) SaveMenuItems(ctx context.Context, items []content.MenuItem) error {
	rows := make([]db.Row, len(items))
	for i, m := range items {
		row := db.Row{"id": m.ID, "title": m.Title, "position": strconv.Itoa(i + 1)}
		row = optional(row, "description", m.Description)
		rows[i] = optional(row, "category", m.Category)
	}
	if err := r.store.Upsert(ctx, content.CollectionMenuItems, rows); err != nil {
		return fmt.Errorf("save menu items: %w", err)
	}
	return nil
}

// optional sets column only when v is non-empty, so "" is stored as NULL.
func optional(row db.Row, column, v string) db.Row {
	if v != "" {
		row[column] = v
	}
	return row
}

func faqFromRow(row db.Row) content.Faq {
	return content.Faq{
		ID:       row.String("id"),
		Question: row.String("question"),
		Answer:   row.String("answer"),
	}
}

func postsFromRows(rows []db.Row) []content.Post {
	posts := make([]content.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, postFromRow(row))
	}
	return posts
}

func postFromRow(row db.Row) content.Post {
	p := content.Post{
		Slug:        row.String("slug"),
		Title:       row.String("title"),
		Description: row.String("description"),
	}
	if v, ok := row.Value("published_at"); ok {
		p.PublishedAt = parseTime(v)
	}
	return p
}

// parseTime accepts RFC 3339 timestamps and bare dates; anything else is zero.
func parseTime(v string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
