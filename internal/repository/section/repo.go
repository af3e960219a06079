// Package section queries transcript sections: the flat question and motion
// listings and the scoped variants the detail views embed.
package section

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hansardlab/gavel/internal/domain"
	"github.com/hansardlab/gavel/internal/domain/listing"
	"github.com/hansardlab/gavel/internal/metrics"
	"github.com/hansardlab/gavel/internal/pg"
)

// querier is the consumer interface for the corpus (ISP).
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repo implements the section listing contracts.
type Repo struct {
	db querier
}

// New creates a section repository.
func New(db querier) *Repo {
	return &Repo{db: db}
}

// Kind selects which flat listing predicate applies.
type Kind string

// Flat listing kinds.
const (
	KindQuestions Kind = "questions"
	KindMotions   Kind = "motions"
)

// predicate returns the category filter for the listing kind. Questions
// include sections with no category at all: early sittings were ingested
// before categorisation existed.
func (k Kind) predicate() string {
	if k == KindMotions {
		return "s.category IN ('motion', 'adjournment_motion')"
	}
	return "(s.category = 'question' OR s.category IS NULL)" +
		" AND s.section_type NOT IN ('BI', 'BP')"
}

// speakersAgg aggregates a section's speakers into an order-stable JSON
// array, empty for sections where nobody is recorded.
var speakersAgg = pg.CollectionAgg(
	"json_build_object("+
		"'member_id', mem.id, 'name', mem.name,"+
		" 'constituency', ss.constituency, 'designation', ss.designation)",
	"mem.name",
	"mem.id IS NOT NULL",
)

// Questions returns one page of the flat question listing.
func (r *Repo) Questions(ctx context.Context, p listing.Params) (listing.Page[domain.Section], error) {
	return r.List(ctx, KindQuestions, p)
}

// Motions returns one page of the flat motion listing.
func (r *Repo) Motions(ctx context.Context, p listing.Params) (listing.Page[domain.Section], error) {
	return r.List(ctx, KindMotions, p)
}

// List returns one ranked page of a flat section listing together with the
// totals computed under the same predicate.
func (r *Repo) List(ctx context.Context, kind Kind, p listing.Params) (listing.Page[domain.Section], error) {
	defer metrics.ObserveQuery("sections_"+string(kind), time.Now())

	b := pg.NewBuilder()
	where := pg.NewWhere(kind.predicate())

	match, searching := b.BindText(p.Query())
	if searching {
		where.And(match.Predicate("s.content_plain", "s.section_title"))
	}

	countSQL := "SELECT COUNT(*) FROM sections s " + where.SQL()
	total, err := pg.Count(ctx, r.db, countSQL, b.Args())
	if err != nil {
		return listing.Page[domain.Section]{}, fmt.Errorf("count %s: %w", kind, err)
	}

	keys := pg.SortKeys{Date: "sess.date", Natural: "s.section_order"}
	rankSelect := ""
	rankGroup := ""
	if searching {
		keys.Rank = "rank"
		rankSelect = ", " + match.Rank("s.content_plain") + " AS rank"
		rankGroup = ", rank"
	}

	limit, offset := b.Paginate(p.PageSize(), p.Offset())

	dataSQL := `
		SELECT
			s.id, s.session_id, s.section_type, s.section_title, s.category,
			LEFT(s.content_plain, 300), s.section_order,
			m.id, m.acronym,
			sess.date, sess.sitting_no,
			` + speakersAgg + rankSelect + `
		FROM sections s
		JOIN sessions sess ON s.session_id = sess.id
		LEFT JOIN ministries m ON s.ministry_id = m.id
		LEFT JOIN section_speakers ss ON s.id = ss.section_id
		LEFT JOIN members mem ON ss.member_id = mem.id
		` + where.SQL() + `
		GROUP BY s.id, s.session_id, s.section_type, s.section_title, s.category,
			s.section_order, m.id, m.acronym, sess.date, sess.sitting_no` + rankGroup + `
		ORDER BY ` + pg.OrderBy(p.Sort(), keys) + `
		LIMIT ` + limit.String() + ` OFFSET ` + offset.String()

	rows, err := r.db.Query(ctx, dataSQL, b.Args()...)
	if err != nil {
		return listing.Page[domain.Section]{}, fmt.Errorf("list %s: %w", kind, err)
	}
	defer rows.Close()

	items, err := scanSections(rows, searching)
	if err != nil {
		return listing.Page[domain.Section]{}, fmt.Errorf("scan %s: %w", kind, err)
	}

	return listing.NewPage(items, total, p.PageSize()), nil
}

// ByMinistry returns the ranked question sections of one ministry, capped
// rather than paginated.
func (r *Repo) ByMinistry(ctx context.Context, ministryID string, p listing.Params, maxRows int) ([]domain.Section, error) {
	defer metrics.ObserveQuery("sections_by_ministry", time.Now())

	b := pg.NewBuilder()
	// Scope filter binds before the text predicate.
	scope := b.Bind(ministryID)
	where := pg.NewWhere(
		"s.ministry_id = "+scope.String(),
		"s.section_type NOT IN ('BI', 'BP')",
	)

	match, searching := b.BindText(p.Query())
	if searching {
		where.And(match.Predicate("s.content_plain", "s.section_title"))
	}

	keys := pg.SortKeys{Date: "sess.date", Natural: "s.section_order"}
	rankSelect := ""
	rankGroup := ""
	if searching {
		keys.Rank = "rank"
		rankSelect = ", " + match.Rank("s.content_plain") + " AS rank"
		rankGroup = ", rank"
	}

	limit := b.Bind(maxRows)

	sql := `
		SELECT
			s.id, s.session_id, s.section_type, s.section_title, s.category,
			LEFT(s.content_plain, 300), s.section_order,
			s.ministry_id, NULL::text,
			sess.date, sess.sitting_no,
			` + speakersAgg + rankSelect + `
		FROM sections s
		JOIN sessions sess ON s.session_id = sess.id
		LEFT JOIN section_speakers ss ON s.id = ss.section_id
		LEFT JOIN members mem ON ss.member_id = mem.id
		` + where.SQL() + `
		GROUP BY s.id, s.session_id, s.section_type, s.section_title, s.category,
			s.section_order, s.ministry_id, sess.date, sess.sitting_no` + rankGroup + `
		ORDER BY ` + pg.OrderBy(p.Sort(), keys) + `
		LIMIT ` + limit.String()

	rows, err := r.db.Query(ctx, sql, b.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list ministry sections: %w", err)
	}
	defer rows.Close()

	items, err := scanSections(rows, searching)
	if err != nil {
		return nil, fmt.Errorf("scan ministry sections: %w", err)
	}
	return items, nil
}

// ByMember returns the ranked non-bill sections a member spoke in, with the
// constituency and designation snapshots from that appearance. Capped, not
// paginated.
func (r *Repo) ByMember(ctx context.Context, memberID string, p listing.Params, maxRows int) ([]domain.MemberSection, error) {
	defer metrics.ObserveQuery("sections_by_member", time.Now())

	b := pg.NewBuilder()
	scope := b.Bind(memberID)
	where := pg.NewWhere(
		"ss.member_id = "+scope.String(),
		"s.section_type NOT IN ('BI', 'BP')",
	)

	match, searching := b.BindText(p.Query())
	if searching {
		where.And(match.Predicate("s.content_plain", "s.section_title"))
	}

	keys := pg.SortKeys{Date: "sess.date", Natural: "s.section_order"}
	rankSelect := ""
	if searching {
		keys.Rank = "rank"
		rankSelect = ", " + match.Rank("s.content_plain") + " AS rank"
	}

	limit := b.Bind(maxRows)

	sql := `
		SELECT
			s.id, s.section_type, s.section_title, s.category,
			m.acronym, sess.date,
			ss.designation, ss.constituency` + rankSelect + `
		FROM section_speakers ss
		JOIN sections s ON ss.section_id = s.id
		JOIN sessions sess ON s.session_id = sess.id
		LEFT JOIN ministries m ON s.ministry_id = m.id
		` + where.SQL() + `
		ORDER BY ` + pg.OrderBy(p.Sort(), keys) + `
		LIMIT ` + limit.String()

	rows, err := r.db.Query(ctx, sql, b.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list member sections: %w", err)
	}
	defer rows.Close()

	var items []domain.MemberSection
	for rows.Next() {
		var (
			s    domain.MemberSection
			rank *float64
		)
		dest := []any{
			&s.ID, &s.Type, &s.Title, &s.Category,
			&s.Ministry, &s.SessionDate,
			&s.Designation, &s.Constituency,
		}
		if searching {
			dest = append(dest, &rank)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan member section: %w", err)
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate member sections: %w", err)
	}
	return items, nil
}
