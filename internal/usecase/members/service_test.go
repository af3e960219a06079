package members

import (
	"context"
	"errors"
	"testing"

	"github.com/hansardlab/gavel/internal/domain"
	"github.com/hansardlab/gavel/internal/domain/listing"
	"github.com/hansardlab/gavel/internal/domain/listing/sort"
)

type mockRepo struct {
	page   listing.Page[domain.Member]
	member domain.Member
	getErr error
}

func (m *mockRepo) List(context.Context, listing.Params, string) (listing.Page[domain.Member], error) {
	return m.page, nil
}

func (m *mockRepo) Get(context.Context, string) (domain.Member, error) {
	return m.member, m.getErr
}

type mockSections struct {
	items   []domain.MemberSection
	err     error
	maxRows int
}

func (m *mockSections) ByMember(_ context.Context, _ string, _ listing.Params, maxRows int) ([]domain.MemberSection, error) {
	m.maxRows = maxRows
	return m.items, m.err
}

type mockBills struct {
	items   []domain.BillInvolvement
	maxRows int
}

func (m *mockBills) ByMember(_ context.Context, _ string, _ listing.Params, maxRows int) ([]domain.BillInvolvement, error) {
	m.maxRows = maxRows
	return m.items, nil
}

func params() listing.Params {
	return listing.NewParams("", "", sort.Relevance, 1, 0, 0, 0)
}

func TestDetail(t *testing.T) {
	repo := &mockRepo{member: domain.Member{ID: "m-1", Name: "A. Perera"}}
	secs := &mockSections{items: []domain.MemberSection{{ID: "sec-1"}}}
	bills := &mockBills{}
	svc := New(repo, secs, bills, nil, 0, Limits{})

	detail, err := svc.Detail(context.Background(), "m-1", params())
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if detail.Name != "A. Perera" {
		t.Errorf("Name = %q", detail.Name)
	}
	if len(detail.Questions) != 1 {
		t.Errorf("Questions = %+v", detail.Questions)
	}
	if detail.Bills == nil || len(detail.Bills) != 0 {
		t.Errorf("Bills = %v, want empty non-nil slice", detail.Bills)
	}
	if secs.maxRows != 1000 || bills.maxRows != 500 {
		t.Errorf("caps = %d/%d, want defaults 1000/500", secs.maxRows, bills.maxRows)
	}
}

func TestDetailNotFound(t *testing.T) {
	repo := &mockRepo{getErr: domain.ErrMemberNotFound}
	svc := New(repo, &mockSections{}, &mockBills{}, nil, 0, Limits{})

	_, err := svc.Detail(context.Background(), "missing", params())
	if !errors.Is(err, domain.ErrMemberNotFound) {
		t.Fatalf("err = %v, want ErrMemberNotFound", err)
	}
	if errors.Is(err, domain.ErrQueryFailed) {
		t.Fatal("not-found must stay distinguishable from query failure")
	}
}

func TestDetailChildFailure(t *testing.T) {
	repo := &mockRepo{member: domain.Member{ID: "m-1"}}
	secs := &mockSections{err: errors.New("timeout")}
	svc := New(repo, secs, &mockBills{}, nil, 0, Limits{})

	_, err := svc.Detail(context.Background(), "m-1", params())
	if !errors.Is(err, domain.ErrQueryFailed) {
		t.Fatalf("err = %v, want ErrQueryFailed", err)
	}
}

func TestList(t *testing.T) {
	repo := &mockRepo{page: listing.Page[domain.Member]{Items: []domain.Member{{ID: "m-1"}}}}
	svc := New(repo, &mockSections{}, &mockBills{}, nil, 0, Limits{Questions: 10, Bills: 5})

	page, err := svc.List(context.Background(), params(), "Colombo")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Items) != 1 {
		t.Errorf("page = %+v", page)
	}
}
