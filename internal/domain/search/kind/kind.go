package kind

// Kind is the origin of a search hit.
type Kind string

// Search hit kinds.
const (
	// Page is a top-level site page from the static table.
	Page Kind = "page"
	// Section is an in-page anchor from the static table.
	Section Kind = "section"
	Faq     Kind = "faq"
	Blog    Kind = "blog"
	Menu    Kind = "menu"
)

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	switch k {
	case Page, Section, Faq, Blog, Menu:
		return true
	}
	return false
}

// IsStatic reports whether the kind may appear in the static section table.
func (k Kind) IsStatic() bool {
	return k == Page || k == Section
}
