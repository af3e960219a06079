package chi

import (
	"time"

	"github.com/hansardlab/gavel/internal/domain"
	"github.com/hansardlab/gavel/internal/domain/listing"
)

const dateLayout = "2006-01-02"

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes.
const (
	codeBadRequest       = "bad_request"
	codeMemberNotFound   = "member_not_found"
	codeMinistryNotFound = "ministry_not_found"
	codeQueryFailed      = "query_failed"
	codeInternalError    = "internal_error"
)

// pageResponse is the envelope of a paginated listing.
type pageResponse[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

func pageToDTO[D, T any](p listing.Page[T], conv func(T) D) pageResponse[D] {
	items := make([]D, len(p.Items))
	for i, it := range p.Items {
		items[i] = conv(it)
	}
	return pageResponse[D]{Items: items, TotalCount: p.TotalCount, TotalPages: p.TotalPages}
}

type speakerDTO struct {
	MemberID     string  `json:"member_id"`
	Name         string  `json:"name"`
	Constituency *string `json:"constituency"`
	Designation  *string `json:"designation"`
}

type sectionDTO struct {
	ID           string       `json:"id"`
	SessionID    string       `json:"session_id"`
	SectionType  string       `json:"section_type"`
	SectionTitle string       `json:"section_title"`
	Category     *string      `json:"category"`
	Snippet      string       `json:"snippet"`
	SectionOrder int          `json:"section_order"`
	MinistryID   *string      `json:"ministry_id"`
	Ministry     *string      `json:"ministry"`
	SessionDate  string       `json:"session_date"`
	SittingNo    *int         `json:"sitting_no"`
	Speakers     []speakerDTO `json:"speakers"`
}

func sectionToDTO(s domain.Section) sectionDTO {
	speakers := make([]speakerDTO, len(s.Speakers))
	for i, sp := range s.Speakers {
		speakers[i] = speakerDTO{
			MemberID:     sp.MemberID,
			Name:         sp.Name,
			Constituency: sp.Constituency,
			Designation:  sp.Designation,
		}
	}
	return sectionDTO{
		ID:           s.ID,
		SessionID:    s.SessionID,
		SectionType:  s.Type,
		SectionTitle: s.Title,
		Category:     s.Category,
		Snippet:      s.Snippet,
		SectionOrder: s.Order,
		MinistryID:   s.MinistryID,
		Ministry:     s.Ministry,
		SessionDate:  s.SessionDate.Format(dateLayout),
		SittingNo:    s.SittingNo,
		Speakers:     speakers,
	}
}

type billDTO struct {
	ID                     string  `json:"id"`
	Title                  string  `json:"title"`
	FirstReadingDate       *string `json:"first_reading_date"`
	FirstReadingSessionID  *string `json:"first_reading_session_id"`
	MinistryID             *string `json:"ministry_id"`
	Ministry               *string `json:"ministry"`
	MinistryName           *string `json:"ministry_name"`
	SecondReadingDate      *string `json:"second_reading_date"`
	SecondReadingSessionID *string `json:"second_reading_session_id"`
}

func billToDTO(b domain.Bill) billDTO {
	return billDTO{
		ID:                     b.ID,
		Title:                  b.Title,
		FirstReadingDate:       dateOrNil(b.FirstReadingDate),
		FirstReadingSessionID:  b.FirstReadingSessionID,
		MinistryID:             b.MinistryID,
		Ministry:               b.Ministry,
		MinistryName:           b.MinistryName,
		SecondReadingDate:      dateOrNil(b.SecondReadingDate),
		SecondReadingSessionID: b.SecondReadingSessionID,
	}
}

type memberDTO struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Summary      *string `json:"summary"`
	Constituency *string `json:"constituency"`
	Designation  *string `json:"designation"`
	SectionCount int     `json:"section_count"`
}

func memberToDTO(m domain.Member) memberDTO {
	return memberDTO{
		ID:           m.ID,
		Name:         m.Name,
		Summary:      m.Summary,
		Constituency: m.Constituency,
		Designation:  m.Designation,
		SectionCount: m.SectionCount,
	}
}

type memberSectionDTO struct {
	ID           string  `json:"id"`
	SectionType  string  `json:"section_type"`
	SectionTitle string  `json:"section_title"`
	Category     *string `json:"category"`
	Ministry     *string `json:"ministry"`
	SessionDate  string  `json:"session_date"`
	Designation  *string `json:"designation"`
	Constituency *string `json:"constituency"`
}

func memberSectionToDTO(s domain.MemberSection) memberSectionDTO {
	return memberSectionDTO{
		ID:           s.ID,
		SectionType:  s.Type,
		SectionTitle: s.Title,
		Category:     s.Category,
		Ministry:     s.Ministry,
		SessionDate:  s.SessionDate.Format(dateLayout),
		Designation:  s.Designation,
		Constituency: s.Constituency,
	}
}

type billInvolvementDTO struct {
	BillID       string  `json:"bill_id"`
	SectionType  string  `json:"section_type"`
	SectionTitle string  `json:"section_title"`
	Ministry     *string `json:"ministry"`
	SessionDate  string  `json:"session_date"`
}

func involvementToDTO(inv domain.BillInvolvement) billInvolvementDTO {
	return billInvolvementDTO{
		BillID:       inv.BillID,
		SectionType:  inv.Type,
		SectionTitle: inv.Title,
		Ministry:     inv.Ministry,
		SessionDate:  inv.SessionDate.Format(dateLayout),
	}
}

type memberDetailDTO struct {
	memberDTO
	Questions []memberSectionDTO   `json:"questions"`
	Bills     []billInvolvementDTO `json:"bills"`
}

func memberDetailToDTO(d domain.MemberDetail) memberDetailDTO {
	questions := make([]memberSectionDTO, len(d.Questions))
	for i, s := range d.Questions {
		questions[i] = memberSectionToDTO(s)
	}
	bills := make([]billInvolvementDTO, len(d.Bills))
	for i, b := range d.Bills {
		bills[i] = involvementToDTO(b)
	}
	return memberDetailDTO{memberDTO: memberToDTO(d.Member), Questions: questions, Bills: bills}
}

type ministryDetailDTO struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Acronym   string               `json:"acronym"`
	Questions []sectionDTO         `json:"questions"`
	Bills     []billInvolvementDTO `json:"bills"`
}

func ministryDetailToDTO(d domain.MinistryDetail) ministryDetailDTO {
	questions := make([]sectionDTO, len(d.Questions))
	for i, s := range d.Questions {
		questions[i] = sectionToDTO(s)
	}
	bills := make([]billInvolvementDTO, len(d.Bills))
	for i, b := range d.Bills {
		bills[i] = involvementToDTO(b)
	}
	return ministryDetailDTO{
		ID:        d.ID,
		Name:      d.Name,
		Acronym:   d.Acronym,
		Questions: questions,
		Bills:     bills,
	}
}

func dateOrNil(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
