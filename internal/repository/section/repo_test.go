package section

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/hansardlab/gavel/internal/domain/listing"
	"github.com/hansardlab/gavel/internal/domain/listing/sort"
	"github.com/hansardlab/gavel/internal/pg/pgtest"
)

var sittingDate = time.Date(2019, 3, 12, 0, 0, 0, 0, time.UTC)

func sectionRow() []any {
	speakers := []byte(`[{"member_id":"m-1","name":"A. Perera",` +
		`"constituency":"Colombo","designation":null}]`)
	return []any{
		"sec-1", "sess-1", "OA", "Fuel pricing formula", "question",
		"Asked the Minister whether", 3,
		"min-1", "MOF",
		sittingDate, 7,
		speakers,
	}
}

func TestListQuestions(t *testing.T) {
	q := &pgtest.Querier{Results: []pgtest.Result{
		{Rows: [][]any{{42}}},
		{Rows: [][]any{sectionRow()}},
	}}
	repo := New(q)

	p := listing.NewParams("", "", sort.Relevance, 1, 0, 0, 0)
	page, err := repo.List(context.Background(), KindQuestions, p)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if page.TotalCount != 42 {
		t.Errorf("TotalCount = %d, want 42", page.TotalCount)
	}
	if page.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", page.TotalPages)
	}
	if len(page.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(page.Items))
	}

	s := page.Items[0]
	if s.ID != "sec-1" || s.Type != "OA" {
		t.Errorf("unexpected section: %+v", s)
	}
	if s.Ministry == nil || *s.Ministry != "MOF" {
		t.Errorf("Ministry = %v, want MOF", s.Ministry)
	}
	if len(s.Speakers) != 1 || s.Speakers[0].Name != "A. Perera" {
		t.Fatalf("Speakers = %+v", s.Speakers)
	}
	if s.Speakers[0].Designation != nil {
		t.Errorf("Designation = %v, want nil", s.Speakers[0].Designation)
	}

	if len(q.Calls) != 2 {
		t.Fatalf("calls = %d, want count then page", len(q.Calls))
	}
	countSQL := q.Calls[0].SQL
	if !strings.Contains(countSQL, "s.category = 'question' OR s.category IS NULL") {
		t.Errorf("count query missing question predicate: %s", countSQL)
	}
	if len(q.Calls[0].Args) != 0 {
		t.Errorf("count args = %v, want none without a query", q.Calls[0].Args)
	}

	dataSQL := q.Calls[1].SQL
	if !strings.Contains(dataSQL, "ORDER BY sess.date DESC NULLS LAST, s.section_order ASC") {
		t.Errorf("relevance without a query should order by newest: %s", dataSQL)
	}
	if strings.Contains(dataSQL, "plainto_tsquery") {
		t.Errorf("no text predicate expected without a query: %s", dataSQL)
	}
	wantArgs := []any{20, 0}
	if len(q.Calls[1].Args) != 2 || q.Calls[1].Args[0] != wantArgs[0] || q.Calls[1].Args[1] != wantArgs[1] {
		t.Errorf("page args = %v, want %v", q.Calls[1].Args, wantArgs)
	}
}

func TestListMotionsWithQuery(t *testing.T) {
	row := sectionRow()
	row = append(row, 0.42) // rank

	q := &pgtest.Querier{Results: []pgtest.Result{
		{Rows: [][]any{{5}}},
		{Rows: [][]any{row}},
	}}
	repo := New(q)

	p := listing.NewParams("fuel", sort.Relevance, sort.Relevance, 2, 0, 0, 0)
	page, err := repo.List(context.Background(), KindMotions, p)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(page.Items))
	}

	countSQL := q.Calls[0].SQL
	if !strings.Contains(countSQL, "s.category IN ('motion', 'adjournment_motion')") {
		t.Errorf("count query missing motion predicate: %s", countSQL)
	}
	if !strings.Contains(countSQL, "plainto_tsquery('english', $1)") ||
		!strings.Contains(countSQL, "ILIKE $2") {
		t.Errorf("count query missing text predicate: %s", countSQL)
	}
	if len(q.Calls[0].Args) != 2 || q.Calls[0].Args[1] != "%fuel%" {
		t.Errorf("count args = %v", q.Calls[0].Args)
	}

	dataSQL := q.Calls[1].SQL
	if !strings.Contains(dataSQL, "ORDER BY rank DESC NULLS LAST, sess.date DESC NULLS LAST") {
		t.Errorf("searching page should order by rank first: %s", dataSQL)
	}
	// Same placeholders in count and page: the query text binds once.
	wantArgs := []any{"fuel", "%fuel%", 20, 20}
	got := q.Calls[1].Args
	if len(got) != len(wantArgs) {
		t.Fatalf("page args = %v, want %v", got, wantArgs)
	}
	for i := range wantArgs {
		if got[i] != wantArgs[i] {
			t.Errorf("page args[%d] = %v, want %v", i, got[i], wantArgs[i])
		}
	}
}

// A member-listing sort mode on the question listing clamps to the newest
// ordering instead of rendering an empty sort key into the SQL.
func TestListUnsupportedSortClamps(t *testing.T) {
	q := &pgtest.Querier{Results: []pgtest.Result{
		{Rows: [][]any{{1}}},
		{Rows: [][]any{sectionRow()}},
	}}
	repo := New(q)

	p := listing.NewParams("", sort.Name, sort.Relevance, 1, 0, 0, 0)
	if _, err := repo.List(context.Background(), KindQuestions, p); err != nil {
		t.Fatalf("List: %v", err)
	}

	dataSQL := q.Calls[1].SQL
	if !strings.Contains(dataSQL, "ORDER BY sess.date DESC NULLS LAST, s.section_order ASC") {
		t.Errorf("name sort should clamp to newest: %s", dataSQL)
	}
	if strings.Contains(dataSQL, "ORDER BY  ") {
		t.Errorf("empty sort key rendered: %s", dataSQL)
	}
}

func TestListCountError(t *testing.T) {
	q := &pgtest.Querier{}
	repo := New(q)

	p := listing.NewParams("", "", sort.Newest, 1, 0, 0, 0)
	if _, err := repo.List(context.Background(), KindQuestions, p); err == nil {
		t.Fatal("expected error from unscripted count query")
	}
}

func TestByMinistry(t *testing.T) {
	row := []any{
		"sec-9", "sess-3", "WA", "Hospital staffing", nil,
		"To ask the Minister of Health", 11,
		"min-2", nil,
		sittingDate, 2,
		[]byte(`[]`),
	}
	q := &pgtest.Querier{Results: []pgtest.Result{{Rows: [][]any{row}}}}
	repo := New(q)

	p := listing.NewParams("", "", sort.Newest, 1, 0, 0, 0)
	items, err := repo.ByMinistry(context.Background(), "min-2", p, 1000)
	if err != nil {
		t.Fatalf("ByMinistry: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].Category != nil {
		t.Errorf("Category = %v, want nil", items[0].Category)
	}
	if len(items[0].Speakers) != 0 {
		t.Errorf("Speakers = %+v, want empty", items[0].Speakers)
	}

	call := q.Calls[0]
	if !strings.Contains(call.SQL, "s.ministry_id = $1") {
		t.Errorf("missing ministry scope: %s", call.SQL)
	}
	if !strings.Contains(call.SQL, "s.section_type NOT IN ('BI', 'BP')") {
		t.Errorf("bill sections should be excluded: %s", call.SQL)
	}
	if len(call.Args) != 2 || call.Args[0] != "min-2" || call.Args[1] != 1000 {
		t.Errorf("args = %v, want [min-2 1000]", call.Args)
	}
}

func TestByMember(t *testing.T) {
	row := []any{
		"sec-4", "OA", "Paddy purchase scheme", "question",
		"MOA", sittingDate,
		"State Minister", "Anuradhapura",
	}
	q := &pgtest.Querier{Results: []pgtest.Result{{Rows: [][]any{row}}}}
	repo := New(q)

	p := listing.NewParams("", "", sort.Newest, 1, 0, 0, 0)
	items, err := repo.ByMember(context.Background(), "m-7", p, 1000)
	if err != nil {
		t.Fatalf("ByMember: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}

	s := items[0]
	if s.Designation == nil || *s.Designation != "State Minister" {
		t.Errorf("Designation = %v, want appearance snapshot", s.Designation)
	}
	if s.Constituency == nil || *s.Constituency != "Anuradhapura" {
		t.Errorf("Constituency = %v, want appearance snapshot", s.Constituency)
	}

	call := q.Calls[0]
	if !strings.Contains(call.SQL, "ss.member_id = $1") {
		t.Errorf("missing member scope: %s", call.SQL)
	}
	if len(call.Args) != 2 || call.Args[0] != "m-7" {
		t.Errorf("args = %v", call.Args)
	}
}
