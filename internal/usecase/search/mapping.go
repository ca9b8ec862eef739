package search

import (
	"github.com/kailas-cloud/parksite/internal/domain/content"
	"github.com/kailas-cloud/parksite/internal/domain/search/kind"
	"github.com/kailas-cloud/parksite/internal/domain/search/result"
)

const (
	faqPreviewRunes  = 100
	menuPreviewRunes = 80

	faqHref   = "/#faq"
	faqAnchor = "faq"

	menuHref   = "/menu-alimentos"
	menuAnchor = "menu"

	ellipsis = "..."
)

func faqResults(faqs []content.Faq) []result.Result {
	out := make([]result.Result, 0, len(faqs))
	for _, f := range faqs {
		desc := content.Preview(f.Answer, faqPreviewRunes) + ellipsis
		if r, err := result.New(kind.Faq, f.Question, desc, faqHref, faqAnchor); err == nil {
			out = append(out, r)
		}
	}
	return out
}

func postResults(posts []content.Post) []result.Result {
	out := make([]result.Result, 0, len(posts))
	for _, p := range posts {
		if p.Slug == "" {
			continue
		}
		if r, err := result.New(kind.Blog, p.Title, p.Description, "/blog/"+p.Slug, ""); err == nil {
			out = append(out, r)
		}
	}
	return out
}

func menuResults(items []content.MenuItem) []result.Result {
	out := make([]result.Result, 0, len(items))
	for _, m := range items {
		desc := m.Category + " - " + content.Preview(m.Description, menuPreviewRunes) + ellipsis
		if r, err := result.New(kind.Menu, m.Title, desc, menuHref, menuAnchor); err == nil {
			out = append(out, r)
		}
	}
	return out
}
