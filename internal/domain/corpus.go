// Package domain holds the entities of the parliamentary corpus and the
// sentinel errors shared across layers. The corpus is read-only: every type
// here is a row shape scanned out of the store, never written back.
package domain

import "time"

// Section type codes as stored in the corpus.
const (
	SectionOralQuestion       = "OA"
	SectionWrittenQuestion    = "WA"
	SectionBillFirstReading   = "BI"
	SectionBillSecondReading  = "BP"
	SectionMinisterStatement  = "MS"
	SectionOther              = "OT"
)

// Section categories used by the listing filters.
const (
	CategoryQuestion          = "question"
	CategoryMotion            = "motion"
	CategoryAdjournmentMotion = "adjournment_motion"
)

// Speaker is one member's appearance in a section, with the constituency and
// designation they held at that sitting (snapshots, not member attributes).
type Speaker struct {
	MemberID     string
	Name         string
	Constituency *string
	Designation  *string
}

// Section is a transcript unit as returned by the flat listings: the section
// row joined with its session, ministry, and aggregated speaker list.
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

// Bill is a bill row enriched with its derived second reading. The second
// reading is not stored: it is the earliest BP section for the bill, via the
// owning session's date, and both fields are nil when no such section exists.
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

// Member is a legislator with the representative constituency and designation
// resolved from their most recent speaking record, falling back to attendance.
type Member struct {
	ID           string
	Name         string
	Summary      *string
	Constituency *string
	Designation  *string
	SectionCount int
}

// MemberSection is one section a member spoke in, for the member detail view.
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

// BillInvolvement is the single representative second-reading section kept
// per bill after deduplication on the member and ministry detail views.
type BillInvolvement struct {
	BillID      string
	Type        string
	Title       string
	Ministry    *string
	SessionDate time.Time
}

// MemberDetail is a member row plus its two independently ordered child
// listings. The child lists are capped, not paginated.
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

// MinistryDetail is a ministry row plus its capped child listings.
type MinistryDetail struct {
	Ministry
	Questions []Section
	Bills     []BillInvolvement
}
