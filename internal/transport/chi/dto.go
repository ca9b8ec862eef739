package chi

import (
	"time"

	"github.com/kailas-cloud/parksite/internal/domain/content"
	"github.com/kailas-cloud/parksite/internal/domain/search/kind"
	"github.com/kailas-cloud/parksite/internal/domain/search/result"
	bloguc "github.com/kailas-cloud/parksite/internal/usecase/blog"
)

// ErrorCode is the machine-readable error code of an ErrorResponse.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeNotFound         ErrorCode = "not_found"
	ErrorCodeMethodNotAllowed ErrorCode = "method_not_allowed"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// SearchResultItem is one search hit.
type SearchResultItem struct {
	Kind        kind.Kind `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Href        string    `json:"href"`
	SectionID   string    `json:"section_id,omitempty"`
}

// BlogPost is a blog post summary.
type BlogPost struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// BlogListResponse is one page of posts.
type BlogListResponse struct {
	Items   []BlogPost `json:"items"`
	Total   int        `json:"total"`
	Page    int        `json:"page"`
	Limit   int        `json:"limit"`
	HasMore bool       `json:"has_more"`
}

// HealthResponse reports service health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Version string            `json:"version"`
}

func searchResultToDTO(r *result.Result) SearchResultItem {
	return SearchResultItem{
		Kind:        r.Kind(),
		Title:       r.Title(),
		Description: r.Description(),
		Href:        r.Href(),
		SectionID:   r.SectionID(),
	}
}

func postToDTO(p content.Post) BlogPost {
	out := BlogPost{Slug: p.Slug, Title: p.Title, Description: p.Description}
	if !p.PublishedAt.IsZero() {
		t := p.PublishedAt.UTC()
		out.PublishedAt = &t
	}
	return out
}

func blogPageToDTO(p bloguc.Page) BlogListResponse {
	items := make([]BlogPost, len(p.Items))
	for i, post := range p.Items {
		items[i] = postToDTO(post)
	}
	return BlogListResponse{
		Items:   items,
		Total:   p.Total,
		Page:    p.Page,
		Limit:   p.Limit,
		HasMore: p.HasMore,
	}
}
