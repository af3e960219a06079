// Package sort defines the ordering modes a listing can be ranked by.
package sort

// Mode is the requested result ordering.
type Mode string

// Sort mode constants.
const (
	// Relevance orders by full-text score; without a query it degrades to Newest.
	Relevance  Mode = "relevance"
	Newest     Mode = "newest"
	Oldest     Mode = "oldest"
	Name       Mode = "name"
	NameDesc   Mode = "name_desc"
	MostActive Mode = "most-active"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	switch m {
	case Relevance, Newest, Oldest, Name, NameDesc, MostActive:
		return true
	}
	return false
}

// Normalize resolves a raw mode against a listing default. Unknown or empty
// modes fall back to def rather than failing, and Relevance degrades to
// Newest when no text query is present so the ordering stays total.
func Normalize(m Mode, def Mode, hasQuery bool) Mode {
	if !m.IsValid() {
		m = def
	}
	if !m.IsValid() {
		m = Newest
	}
	if m == Relevance && !hasQuery {
		return Newest
	}
	return m
}
