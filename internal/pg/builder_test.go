package pg

import (
	"strings"
	"testing"
)

func TestBuilder_BindAssignsSequentialPlaceholders(t *testing.T) {
	b := NewBuilder()

	p1 := b.Bind("a")
	p2 := b.Bind(42)
	p3 := b.Bind("c")

	if p1.String() != "$1" || p2.String() != "$2" || p3.String() != "$3" {
		t.Errorf("unexpected placeholders: %s %s %s", p1, p2, p3)
	}

	args := b.Args()
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
	if args[0] != "a" || args[1] != 42 || args[2] != "c" {
		t.Errorf("args out of order: %v", args)
	}
}

func TestBuilder_ArgsReturnsSnapshot(t *testing.T) {
	b := NewBuilder()
	b.Bind("q")

	countArgs := b.Args()
	b.Paginate(20, 40)

	if len(countArgs) != 1 {
		t.Fatalf("snapshot grew after later binds: %v", countArgs)
	}
	if len(b.Args()) != 3 {
		t.Fatalf("expected 3 args after paginate, got %d", len(b.Args()))
	}
}

func TestBuilder_PaginatePlaceholders(t *testing.T) {
	b := NewBuilder()
	b.Bind("q")
	limit, offset := b.Paginate(20, 40)

	if limit.String() != "$2" || offset.String() != "$3" {
		t.Errorf("unexpected limit/offset placeholders: %s %s", limit, offset)
	}
	args := b.Args()
	if args[1] != 20 || args[2] != 40 {
		t.Errorf("limit/offset values not bound: %v", args)
	}
}

func TestBindText_EmptyQuery(t *testing.T) {
	b := NewBuilder()
	if _, ok := b.BindText(""); ok {
		t.Error("empty query must not bind a text match")
	}
	if b.Len() != 0 {
		t.Errorf("empty query bound %d args", b.Len())
	}
}

func TestBindText_BindsQueryOnce(t *testing.T) {
	b := NewBuilder()
	m, ok := b.BindText("housing")
	if !ok {
		t.Fatal("expected text match")
	}

	args := b.Args()
	if len(args) != 2 {
		t.Fatalf("expected exactly 2 bound values, got %d", len(args))
	}
	if args[0] != "housing" || args[1] != "%housing%" {
		t.Errorf("unexpected bound values: %v", args)
	}

	// Rank, filter, and count all reference the same tsquery placeholder.
	rank := m.Rank("s.content_plain")
	pred := m.Predicate("s.content_plain", "s.section_title")
	if !strings.Contains(rank, "$1") {
		t.Errorf("rank does not reference $1: %s", rank)
	}
	if !strings.Contains(pred, "$1") || !strings.Contains(pred, "$2") {
		t.Errorf("predicate does not reference $1 and $2: %s", pred)
	}
	if strings.Contains(pred, "$3") {
		t.Errorf("predicate rebound the query: %s", pred)
	}
}

func TestTextMatch_Predicate(t *testing.T) {
	b := NewBuilder()
	m, _ := b.BindText("transport")

	got := m.Predicate("s.content_plain", "s.section_title")
	want := "(to_tsvector('english', s.content_plain) @@ plainto_tsquery('english', $1)" +
		" OR s.section_title ILIKE $2)"
	if got != want {
		t.Errorf("predicate mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestWhere_SQL(t *testing.T) {
	if got := NewWhere().SQL(); got != "" {
		t.Errorf("empty where should render nothing, got %q", got)
	}

	w := NewWhere("a = 1")
	w.And("").And("b = 2")
	if got := w.SQL(); got != "WHERE a = 1 AND b = 2" {
		t.Errorf("unexpected where clause: %q", got)
	}
}
