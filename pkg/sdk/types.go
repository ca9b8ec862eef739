package parksite

import "time"

// Kind is the category of a search result.
type Kind string

// Kind constants.
const (
	KindPage    Kind = "page"
	KindSection Kind = "section"
	KindFAQ     Kind = "faq"
	KindBlog    Kind = "blog"
	KindMenu    Kind = "menu"
)

// SearchResult is one search hit.
type SearchResult struct {
	Kind        Kind   `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Href        string `json:"href"`
	SectionID   string `json:"section_id,omitempty"`
}

// Post is a blog post summary. PublishedAt is nil for drafts without a date.
type Post struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// PostPage is one page of the blog listing.
type PostPage struct {
	Items   []Post `json:"items"`
	Total   int    `json:"total"`
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	HasMore bool   `json:"has_more"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
