// Package content holds the records served by the content store.
package content

import (
	"time"
	"unicode/utf8"
)

// Collection names in the content store.
const (
	CollectionFaqs      = "faqs"
	CollectionPosts     = "posts"
	CollectionMenuItems = "menu_items"
)

// Faq is a question/answer pair shown on the home page.
type Faq struct {
	ID       string
	Question string
	Answer   string
}

// Post is a blog post.
type Post struct {
	Slug        string
	Title       string
	Description string
	PublishedAt time.Time
}

// MenuItem is a food or drink offered at the park.
type MenuItem struct {
	ID          string
	Title       string
	Description string
	Category    string
}

// Preview returns the first n runes of s.
func Preview(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
