package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/parksite/internal/domain/search/query"
	"github.com/kailas-cloud/parksite/internal/domain/search/result"
	"github.com/kailas-cloud/parksite/internal/domain/section"
	"github.com/kailas-cloud/parksite/internal/logger"
	"github.com/kailas-cloud/parksite/internal/metrics"
)

// Defaults applied by New to zero Options fields.
const (
	DefaultPerSourceLimit = 5
	DefaultMaxResults     = 10
	DefaultSourceTimeout  = 2 * time.Second
)

// Source names used in logs and metric labels. Their order is the order
// remote results are appended in.
const (
	SourceFaq  = "faq"
	SourceBlog = "blog"
	SourceMenu = "menu"
)

// Options tunes the search pipeline.
type Options struct {
	MinQueryLength int
	PerSourceLimit int
	MaxResults     int
	SourceTimeout  time.Duration
}

func (o *Options) applyDefaults() {
	if o.MinQueryLength <= 0 {
		o.MinQueryLength = query.DefaultMinLength
	}
	if o.PerSourceLimit <= 0 {
		o.PerSourceLimit = DefaultPerSourceLimit
	}
	if o.MaxResults <= 0 {
		o.MaxResults = DefaultMaxResults
	}
	if o.SourceTimeout <= 0 {
		o.SourceTimeout = DefaultSourceTimeout
	}
}

// Service searches the static section table and the remote content
// collections and merges them into one ranked list.
type Service struct {
	table  *section.Table
	source Source
	opts   Options
}

// New creates a search service.
func New(table *section.Table, source Source, opts Options) *Service {
	opts.applyDefaults()
	return &Service{table: table, source: source, opts: opts}
}

// Search returns at most MaxResults hits for raw. It never fails: a source
// that errors or times out contributes no rows. Queries shorter than
// MinQueryLength runes after trimming return an empty list without
// touching any source.
func (s *Service) Search(ctx context.Context, raw string) []result.Result {
	q, ok := query.Parse(raw, s.opts.MinQueryLength)
	if !ok {
		return []result.Result{}
	}
	metrics.SearchRequestsTotal.Inc()

	results := s.table.Match(q)
	for _, part := range s.searchSources(ctx, q) {
		results = append(results, part...)
	}

	results = rank(results, q.Term())
	if len(results) > s.opts.MaxResults {
		results = results[:s.opts.MaxResults]
	}

	metrics.SearchResults.Observe(float64(len(results)))
	return results
}

type sourceFunc func(ctx context.Context, term string, limit int) ([]result.Result, error)

// searchSources queries every remote source concurrently. Each source has
// its own timeout and error boundary; slot order is fixed.
func (s *Service) searchSources(ctx context.Context, q query.Query) [][]result.Result {
	sources := []struct {
		name  string
		fetch sourceFunc
	}{
		{SourceFaq, s.searchFaqs},
		{SourceBlog, s.searchPosts},
		{SourceMenu, s.searchMenu},
	}

	slots := make([][]result.Result, len(sources))
	g, gctx := errgroup.WithContext(ctx)

	for i, src := range sources {
		g.Go(func() error {
			slots[i] = s.runSource(gctx, src.name, src.fetch, q)
			return nil
		})
	}
	_ = g.Wait()

	return slots
}

func (s *Service) runSource(ctx context.Context, name string, fetch sourceFunc, q query.Query) []result.Result {
	ctx, cancel := context.WithTimeout(ctx, s.opts.SourceTimeout)
	defer cancel()

	start := time.Now()
	rows, err := fetch(ctx, q.Term(), s.opts.PerSourceLimit)
	metrics.SearchSourceDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.SearchSourceQueriesTotal.WithLabelValues(name, "error").Inc()
		logger.FromContext(ctx).Warn("search source failed",
			zap.String("source", name),
			zap.String("query", q.Term()),
			zap.Error(err),
		)
		return nil
	}
	metrics.SearchSourceQueriesTotal.WithLabelValues(name, "ok").Inc()
	return rows
}

func (s *Service) searchFaqs(ctx context.Context, term string, limit int) ([]result.Result, error) {
	faqs, err := s.source.SearchFaqs(ctx, term, limit)
	if err != nil {
		return nil, fmt.Errorf("search faqs: %w", err)
	}
	return faqResults(faqs), nil
}

func (s *Service) searchPosts(ctx context.Context, term string, limit int) ([]result.Result, error) {
	posts, err := s.source.SearchPosts(ctx, term, limit)
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	return postResults(posts), nil
}

func (s *Service) searchMenu(ctx context.Context, term string, limit int) ([]result.Result, error) {
	items, err := s.source.SearchMenuItems(ctx, term, limit)
	if err != nil {
		return nil, fmt.Errorf("search menu items: %w", err)
	}
	return menuResults(items), nil
}
