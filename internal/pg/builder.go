package pg

import (
	"strconv"
	"strings"
)

// Placeholder is the positional parameter index a bound value received. Its
// string form is the Postgres placeholder ($1, $2, ...), so the same bound
// value can be referenced from several clauses without rebinding.
type Placeholder int

func (p Placeholder) String() string {
	return "$" + strconv.Itoa(int(p))
}

// Builder accumulates bound query arguments and assigns their placeholder
// positions as predicates are appended. Clauses built before a Bind call
// never reference placeholders bound after them, so a snapshot of Args
// taken between binds pairs exactly with the SQL built so far (the count
// query relies on this).
type Builder struct {
	args []any
}

// NewBuilder creates an empty argument builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Bind appends a value and returns its placeholder.
func (b *Builder) Bind(v any) Placeholder {
	b.args = append(b.args, v)
	return Placeholder(len(b.args))
}

// Args returns a copy of the bound values in placeholder order.
func (b *Builder) Args() []any {
	out := make([]any, len(b.args))
	copy(out, b.args)
	return out
}

// Len returns the number of bound values.
func (b *Builder) Len() int {
	return len(b.args)
}

// Paginate binds a page slice and returns the LIMIT and OFFSET placeholders.
// Bound last so the count query can run on the args snapshot taken before.
func (b *Builder) Paginate(limit, offset int) (Placeholder, Placeholder) {
	return b.Bind(limit), b.Bind(offset)
}

// Where accumulates AND-joined predicate fragments.
type Where struct {
	conds []string
}

// NewWhere creates a predicate list with optional initial conditions.
func NewWhere(conds ...string) *Where {
	w := &Where{}
	for _, c := range conds {
		w.And(c)
	}
	return w
}

// And appends a condition. Empty fragments are ignored.
func (w *Where) And(cond string) *Where {
	if cond != "" {
		w.conds = append(w.conds, cond)
	}
	return w
}

// SQL renders the WHERE clause, or an empty string when no conditions exist.
func (w *Where) SQL() string {
	if len(w.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conds, " AND ")
}

// TextMatch is a free-text query bound exactly once: the tsquery value and
// the ILIKE pattern each get a single placeholder that the rank expression,
// the filter predicate, and the count query all reference.
type TextMatch struct {
	query   Placeholder
	pattern Placeholder
}

// BindText binds a free-text query. Returns ok=false without binding when
// the query is empty, in which case no text predicate applies.
func (b *Builder) BindText(q string) (TextMatch, bool) {
	if q == "" {
		return TextMatch{}, false
	}
	return TextMatch{
		query:   b.Bind(q),
		pattern: b.Bind("%" + q + "%"),
	}, true
}

// Rank returns the ts_rank expression scoring contentCol against the query.
func (m TextMatch) Rank(contentCol string) string {
	return "ts_rank(to_tsvector('english', " + contentCol + "), plainto_tsquery('english', " + m.query.String() + "))"
}

// ContentPredicate returns the full-text match predicate on contentCol.
func (m TextMatch) ContentPredicate(contentCol string) string {
	return "to_tsvector('english', " + contentCol + ") @@ plainto_tsquery('english', " + m.query.String() + ")"
}

// TitlePredicate returns the case-insensitive substring predicate on titleCol.
func (m TextMatch) TitlePredicate(titleCol string) string {
	return titleCol + " ILIKE " + m.pattern.String()
}

// Predicate returns the combined filter: full-text match on content OR
// substring match on title.
func (m TextMatch) Predicate(contentCol, titleCol string) string {
	return "(" + m.ContentPredicate(contentCol) + " OR " + m.TitlePredicate(titleCol) + ")"
}
