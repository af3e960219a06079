package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hansardlab/gavel/internal/domain"
	"github.com/hansardlab/gavel/internal/domain/listing"
	"github.com/hansardlab/gavel/internal/domain/listing/sort"
	billsuc "github.com/hansardlab/gavel/internal/usecase/bills"
	healthuc "github.com/hansardlab/gavel/internal/usecase/health"
	membersuc "github.com/hansardlab/gavel/internal/usecase/members"
	ministriesuc "github.com/hansardlab/gavel/internal/usecase/ministries"
	sectionsuc "github.com/hansardlab/gavel/internal/usecase/sections"
)

// --- Mocks ---

type mockSectionRepo struct {
	page   listing.Page[domain.Section]
	err    error
	params listing.Params
}

func (m *mockSectionRepo) Questions(_ context.Context, p listing.Params) (listing.Page[domain.Section], error) {
	m.params = p
	return m.page, m.err
}

func (m *mockSectionRepo) Motions(_ context.Context, p listing.Params) (listing.Page[domain.Section], error) {
	m.params = p
	return m.page, m.err
}

type mockBillRepo struct {
	page listing.Page[domain.Bill]
}

func (m *mockBillRepo) List(context.Context, listing.Params) (listing.Page[domain.Bill], error) {
	return m.page, nil
}

type mockMemberRepo struct {
	member domain.Member
	getErr error
}

func (m *mockMemberRepo) List(context.Context, listing.Params, string) (listing.Page[domain.Member], error) {
	return listing.Page[domain.Member]{Items: []domain.Member{}}, nil
}

func (m *mockMemberRepo) Get(context.Context, string) (domain.Member, error) {
	return m.member, m.getErr
}

type mockMemberSections struct{}

func (mockMemberSections) ByMember(context.Context, string, listing.Params, int) ([]domain.MemberSection, error) {
	return nil, nil
}

type mockMemberBills struct{}

func (mockMemberBills) ByMember(context.Context, string, listing.Params, int) ([]domain.BillInvolvement, error) {
	return nil, nil
}

type mockMinistryRepo struct {
	ministry domain.Ministry
	err      error
}

func (m *mockMinistryRepo) Get(context.Context, string) (domain.Ministry, error) {
	return m.ministry, m.err
}

type mockMinistrySections struct{}

func (mockMinistrySections) ByMinistry(context.Context, string, listing.Params, int) ([]domain.Section, error) {
	return nil, nil
}

type mockMinistryBills struct{}

func (mockMinistryBills) ByMinistry(context.Context, string, listing.Params, int) ([]domain.BillInvolvement, error) {
	return nil, nil
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(context.Context) error { return m.err }

// --- Harness ---

type harness struct {
	sections *mockSectionRepo
	members  *mockMemberRepo
	ministry *mockMinistryRepo
	corpus   *mockPinger
	cache    *mockPinger
	router   http.Handler
}

func newHarness() *harness {
	h := &harness{
		sections: &mockSectionRepo{},
		members:  &mockMemberRepo{},
		ministry: &mockMinistryRepo{},
		corpus:   &mockPinger{},
		cache:    &mockPinger{},
	}

	server := NewServer(
		sectionsuc.New(h.sections, nil, 0),
		billsuc.New(&mockBillRepo{}, nil, 0),
		membersuc.New(h.members, mockMemberSections{}, mockMemberBills{}, nil, 0, membersuc.Limits{}),
		ministriesuc.New(h.ministry, mockMinistrySections{}, mockMinistryBills{}, nil, 0, ministriesuc.Limits{}),
		healthuc.New(h.corpus, h.cache),
		zap.NewNop(),
	)

	r := chirouter.NewRouter()
	server.Routes(r)
	h.router = r
	return h
}

func (h *harness) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

// --- Tests ---

func TestListQuestions(t *testing.T) {
	h := newHarness()
	h.sections.page = listing.Page[domain.Section]{
		Items: []domain.Section{{
			ID:          "sec-1",
			SessionID:   "sess-1",
			Type:        "OA",
			Title:       "Fuel pricing formula",
			SessionDate: time.Date(2019, 3, 12, 0, 0, 0, 0, time.UTC),
		}},
		TotalCount: 1,
		TotalPages: 1,
	}

	rec := h.get(t, "/api/v1/questions?search=fuel&sort=relevance&page=2&page_size=10")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if cc := rec.Header().Get("Cache-Control"); cc != cacheControl {
		t.Errorf("Cache-Control = %q", cc)
	}

	var resp struct {
		Items []struct {
			ID          string  `json:"id"`
			SessionDate string  `json:"session_date"`
			Category    *string `json:"category"`
		} `json:"items"`
		TotalCount int `json:"total_count"`
		TotalPages int `json:"total_pages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.TotalCount != 1 || len(resp.Items) != 1 {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.Items[0].SessionDate != "2019-03-12" {
		t.Errorf("session_date = %q, want 2019-03-12", resp.Items[0].SessionDate)
	}

	p := h.sections.params
	if p.Query() != "fuel" || p.Sort() != sort.Relevance || p.Page() != 2 || p.PageSize() != 10 {
		t.Errorf("bound params = %+v", p)
	}
}

func TestListQuestionsBadInputClamped(t *testing.T) {
	h := newHarness()
	h.sections.page = listing.Page[domain.Section]{Items: []domain.Section{}}

	rec := h.get(t, "/api/v1/questions?page=banana&page_size=9999&sort=bogus")
	if rec.Code != http.StatusOK {
		t.Fatalf("bad input must be clamped, not rejected: %d", rec.Code)
	}

	p := h.sections.params
	if p.Page() != 1 {
		t.Errorf("page = %d, want 1", p.Page())
	}
	if p.PageSize() != listing.MaxPageSize {
		t.Errorf("page_size = %d, want clamped to %d", p.PageSize(), listing.MaxPageSize)
	}
	// relevance without a query degrades to newest
	if p.Sort() != sort.Newest {
		t.Errorf("sort = %q, want newest", p.Sort())
	}
}

func TestListMotionsQueryFailure(t *testing.T) {
	h := newHarness()
	h.sections.err = errors.New("connection refused")

	rec := h.get(t, "/api/v1/motions")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != codeQueryFailed {
		t.Errorf("code = %q, want %q", resp.Code, codeQueryFailed)
	}
	if resp.Message != domain.ErrQueryFailed.Error() {
		t.Errorf("raw driver errors must not leak: %q", resp.Message)
	}
}

func TestGetMemberNotFound(t *testing.T) {
	h := newHarness()
	h.members.getErr = domain.ErrMemberNotFound

	rec := h.get(t, "/api/v1/members/nobody")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != codeMemberNotFound {
		t.Errorf("code = %q", resp.Code)
	}
}

func TestGetMember(t *testing.T) {
	h := newHarness()
	h.members.member = domain.Member{ID: "m-1", Name: "A. Perera"}

	rec := h.get(t, "/api/v1/members/m-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ID        string            `json:"id"`
		Questions []json.RawMessage `json:"questions"`
		Bills     []json.RawMessage `json:"bills"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != "m-1" {
		t.Errorf("id = %q", resp.ID)
	}
	if resp.Questions == nil || resp.Bills == nil {
		t.Errorf("child listings must be empty arrays, not null: %s", rec.Body.String())
	}
}

func TestGetMinistryNotFound(t *testing.T) {
	h := newHarness()
	h.ministry.err = domain.ErrMinistryNotFound

	rec := h.get(t, "/api/v1/ministries/nobody")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	h := newHarness()

	rec := h.get(t, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	h.corpus.err = errors.New("down")
	rec = h.get(t, "/health")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 when corpus is down", rec.Code)
	}
}

// A failing cache degrades the report but keeps the instance in rotation.
func TestHealthDegradedCacheStillServes(t *testing.T) {
	h := newHarness()
	h.cache.err = errors.New("down")

	rec := h.get(t, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with only the cache down", rec.Code)
	}

	var report struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Status != "degraded" {
		t.Errorf("status = %q, want degraded", report.Status)
	}
}
