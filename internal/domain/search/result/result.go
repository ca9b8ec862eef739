package result

import (
	"errors"
	"strings"

	"github.com/kailas-cloud/parksite/internal/domain/search/kind"
)

// Result is a single search hit.
type Result struct {
	kind        kind.Kind
	title       string
	description string
	href        string
	sectionID   string
}

// New creates a search result. Title and href are required.
func New(k kind.Kind, title, description, href, sectionID string) (Result, error) {
	if !k.IsValid() {
		return Result{}, errors.New("invalid result kind " + string(k))
	}
	if strings.TrimSpace(title) == "" {
		return Result{}, errors.New("result title is required")
	}
	if strings.TrimSpace(href) == "" {
		return Result{}, errors.New("result href is required")
	}
	return Result{
		kind: k, title: title, description: description,
		href: href, sectionID: sectionID,
	}, nil
}

// Kind returns the origin of the hit.
func (r *Result) Kind() kind.Kind { return r.kind }

// Title returns the display title.
func (r *Result) Title() string { return r.title }

// Description returns the secondary text, empty when absent.
func (r *Result) Description() string { return r.description }

// Href returns the navigation target.
func (r *Result) Href() string { return r.href }

// SectionID returns the in-page anchor, empty when absent.
func (r *Result) SectionID() string { return r.sectionID }

// TitleContains reports whether the lower-cased title contains term.
// term must already be normalized.
func (r *Result) TitleContains(term string) bool {
	return strings.Contains(strings.ToLower(r.title), term)
}
