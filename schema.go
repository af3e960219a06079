package gavel

import "time"

// Sort selects the result ordering of a listing.
type Sort string

// Supported sort orders.
const (
	// SortRelevance orders by full-text score. Without a search query it
	// behaves like SortNewest.
	SortRelevance Sort = "relevance"
	SortNewest    Sort = "newest"
	SortOldest    Sort = "oldest"
	// SortName and SortNameDesc apply to member listings only.
	SortName     Sort = "name"
	SortNameDesc Sort = "name_desc"
	// SortMostActive orders members by how many sections they spoke in.
	SortMostActive Sort = "most-active"
)

// ListOptions configures a flat listing query. The zero value lists the
// first page with the default ordering.
type ListOptions struct {
	Search   string
	Sort     Sort
	Page     int
	PageSize int
}

// MemberListOptions configures the member listing. Constituency filters on
// the resolved constituency, exact match.
type MemberListOptions struct {
	ListOptions
	Constituency string
}

// DetailOptions configures the child listings of a detail view. The child
// lists are capped, not paginated.
type DetailOptions struct {
	Search string
	Sort   Sort
}

// Page is one page of results with the totals of the full result set.
type Page[T any] struct {
	Items      []T
	TotalCount int
	TotalPages int
}

// Speaker is one member's appearance in a section, with the constituency
// and designation they held at that sitting.
type Speaker struct {
	MemberID     string
	Name         string
	Constituency *string
	Designation  *string
}

// Section is a transcript unit joined with its session, ministry, and
// speaker list.
type Section struct {
	ID          string
	SessionID   string
	Type        string
	Title       string
	Category    *string
	Snippet     string
	Order       int
	MinistryID  *string
	Ministry    *string
	SessionDate time.Time
	SittingNo   *int
	Speakers    []Speaker
}

// Bill is a bill with its derived second reading. Both second-reading
// fields are nil when the bill has no second-reading section.
type Bill struct {
	ID                     string
	Title                  string
	FirstReadingDate       *time.Time
	FirstReadingSessionID  *string
	MinistryID             *string
	Ministry               *string
	MinistryName           *string
	SecondReadingDate      *time.Time
	SecondReadingSessionID *string
}

// Member is a legislator with the constituency and designation resolved
// from their most recent speaking record, falling back to attendance.
type Member struct {
	ID           string
	Name         string
	Summary      *string
	Constituency *string
	Designation  *string
	SectionCount int
}

// MemberSection is one section a member spoke in.
type MemberSection struct {
	ID           string
	Type         string
	Title        string
	Category     *string
	Ministry     *string
	SessionDate  time.Time
	Designation  *string
	Constituency *string
}

// BillInvolvement is the representative second-reading section kept per
// bill on the member and ministry detail views.
type BillInvolvement struct {
	BillID      string
	Type        string
	Title       string
	Ministry    *string
	SessionDate time.Time
}

// MemberDetail is a member with capped question and bill listings.
type MemberDetail struct {
	Member
	Questions []MemberSection
	Bills     []BillInvolvement
}

// Ministry is a government ministry.
type Ministry struct {
	ID      string
	Name    string
	Acronym string
}

// MinistryDetail is a ministry with capped question and bill listings.
type MinistryDetail struct {
	Ministry
	Questions []Section
	Bills     []BillInvolvement
}
