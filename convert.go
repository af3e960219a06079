package gavel

import (
	"github.com/hansardlab/gavel/internal/domain"
	"github.com/hansardlab/gavel/internal/domain/listing"
	"github.com/hansardlab/gavel/internal/domain/listing/sort"
)

func toParams(o ListOptions, def sort.Mode, defSize int) listing.Params {
	return listing.NewParams(o.Search, sort.Mode(o.Sort), def, o.Page, o.PageSize, defSize, 0)
}

func toDetailParams(o DetailOptions) listing.Params {
	return listing.NewParams(o.Search, sort.Mode(o.Sort), sort.Relevance, 1, 0, 0, 0)
}

func pageOf[I, P any](p listing.Page[I], conv func(I) P) Page[P] {
	items := make([]P, len(p.Items))
	for i := range p.Items {
		items[i] = conv(p.Items[i])
	}
	return Page[P]{Items: items, TotalCount: p.TotalCount, TotalPages: p.TotalPages}
}

func fromSpeakers(in []domain.Speaker) []Speaker {
	out := make([]Speaker, len(in))
	for i, s := range in {
		out[i] = Speaker{
			MemberID:     s.MemberID,
			Name:         s.Name,
			Constituency: s.Constituency,
			Designation:  s.Designation,
		}
	}
	return out
}

func fromSection(s domain.Section) Section {
	return Section{
		ID:          s.ID,
		SessionID:   s.SessionID,
		Type:        s.Type,
		Title:       s.Title,
		Category:    s.Category,
		Snippet:     s.Snippet,
		Order:       s.Order,
		MinistryID:  s.MinistryID,
		Ministry:    s.Ministry,
		SessionDate: s.SessionDate,
		SittingNo:   s.SittingNo,
		Speakers:    fromSpeakers(s.Speakers),
	}
}

func fromBill(b domain.Bill) Bill {
	return Bill{
		ID:                     b.ID,
		Title:                  b.Title,
		FirstReadingDate:       b.FirstReadingDate,
		FirstReadingSessionID:  b.FirstReadingSessionID,
		MinistryID:             b.MinistryID,
		Ministry:               b.Ministry,
		MinistryName:           b.MinistryName,
		SecondReadingDate:      b.SecondReadingDate,
		SecondReadingSessionID: b.SecondReadingSessionID,
	}
}

func fromMember(m domain.Member) Member {
	return Member{
		ID:           m.ID,
		Name:         m.Name,
		Summary:      m.Summary,
		Constituency: m.Constituency,
		Designation:  m.Designation,
		SectionCount: m.SectionCount,
	}
}

func fromMemberSections(in []domain.MemberSection) []MemberSection {
	out := make([]MemberSection, len(in))
	for i, s := range in {
		out[i] = MemberSection{
			ID:           s.ID,
			Type:         s.Type,
			Title:        s.Title,
			Category:     s.Category,
			Ministry:     s.Ministry,
			SessionDate:  s.SessionDate,
			Designation:  s.Designation,
			Constituency: s.Constituency,
		}
	}
	return out
}

func fromInvolvements(in []domain.BillInvolvement) []BillInvolvement {
	out := make([]BillInvolvement, len(in))
	for i, b := range in {
		out[i] = BillInvolvement{
			BillID:      b.BillID,
			Type:        b.Type,
			Title:       b.Title,
			Ministry:    b.Ministry,
			SessionDate: b.SessionDate,
		}
	}
	return out
}

func fromSections(in []domain.Section) []Section {
	out := make([]Section, len(in))
	for i := range in {
		out[i] = fromSection(in[i])
	}
	return out
}

func fromMemberDetail(d domain.MemberDetail) MemberDetail {
	return MemberDetail{
		Member:    fromMember(d.Member),
		Questions: fromMemberSections(d.Questions),
		Bills:     fromInvolvements(d.Bills),
	}
}

func fromMinistryDetail(d domain.MinistryDetail) MinistryDetail {
	return MinistryDetail{
		Ministry: Ministry{
			ID:      d.ID,
			Name:    d.Name,
			Acronym: d.Acronym,
		},
		Questions: fromSections(d.Questions),
		Bills:     fromInvolvements(d.Bills),
	}
}
