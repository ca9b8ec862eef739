package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/parksite/internal/domain/content"
	"github.com/kailas-cloud/parksite/internal/logger"
)

// Namespace is the sitemaps.org protocol namespace.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// PostLister reads every published post.
type PostLister interface {
	AllPosts(ctx context.Context) ([]content.Post, error)
}

// URL is one <url> entry.
type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// URLSet is the sitemap document root.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// Service builds the site map from static routes and blog posts.
type Service struct {
	baseURL string
	routes  []string
	posts   PostLister
}

// New creates a sitemap service. baseURL is joined with every route.
func New(baseURL string, staticRoutes []string, posts PostLister) *Service {
	return &Service{
		baseURL: strings.TrimRight(baseURL, "/"),
		routes:  staticRoutes,
		posts:   posts,
	}
}

// Build returns static routes followed by one entry per post. If posts
// cannot be listed the sitemap holds the static routes only.
func (s *Service) Build(ctx context.Context) URLSet {
	set := URLSet{Xmlns: Namespace}
	for _, route := range s.routes {
		priority := "0.8"
		if route == "/" {
			priority = "1.0"
		}
		set.URLs = append(set.URLs, URL{
			Loc:        s.abs(route),
			ChangeFreq: "weekly",
			Priority:   priority,
		})
	}

	posts, err := s.posts.AllPosts(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn("sitemap without blog posts", zap.Error(err))
		return set
	}
	for _, p := range posts {
		if p.Slug == "" {
			continue
		}
		u := URL{
			Loc:        s.abs("/blog/" + url.PathEscape(p.Slug)),
			ChangeFreq: "monthly",
			Priority:   "0.6",
		}
		if !p.PublishedAt.IsZero() {
			u.LastMod = p.PublishedAt.UTC().Format("2006-01-02")
		}
		set.URLs = append(set.URLs, u)
	}
	return set
}

// Render returns the sitemap as an XML document.
func (s *Service) Render(ctx context.Context) ([]byte, error) {
	body, err := xml.MarshalIndent(s.Build(ctx), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

func (s *Service) abs(route string) string {
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return s.baseURL + route
}
