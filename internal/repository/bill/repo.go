// Package bill queries bills: the flat listing with its derived second
// reading and the deduplicated involvement lists the detail views embed.
package bill

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

// Repo implements the bill listing contracts.
type Repo struct {
	db querier
}

// New creates a bill repository.
func New(db querier) *Repo {
	return &Repo{db: db}
}

// The second reading is derived, never stored: the earliest second-reading
// section of the bill, via the owning session's date.
var (
	secondReadingDate = pg.RepresentativeSource{
		From:    "sections s2 JOIN sessions sess2 ON s2.session_id = sess2.id",
		Where:   "s2.bill_id = b.id AND s2.section_type = 'BP'",
		Value:   "sess2.date",
		OrderBy: "sess2.date ASC, s2.id ASC",
	}.SQL()

	secondReadingSessionID = pg.RepresentativeSource{
		From:    "sections s2 JOIN sessions sess2 ON s2.session_id = sess2.id",
		Where:   "s2.bill_id = b.id AND s2.section_type = 'BP'",
		Value:   "s2.session_id",
		OrderBy: "sess2.date ASC, s2.id ASC",
	}.SQL()
)

// effectiveDate is the recency key of the bill listing: the first reading
// date, or the earliest session any of the bill's sections appears in when
// the first reading was never recorded.
const effectiveDate = "COALESCE(b.first_reading_date," +
	" (SELECT MIN(sess2.date) FROM sections s2" +
	" JOIN sessions sess2 ON s2.session_id = sess2.id" +
	" WHERE s2.bill_id = b.id))"

// List returns one ranked page of bills with their derived second readings.
// A searching listing matches the bill title or any of its sections, and
// ranks each bill by its best matching section.
func (r *Repo) List(ctx context.Context, p listing.Params) (listing.Page[domain.Bill], error) {
	defer metrics.ObserveQuery("bills_list", time.Now())

	b := pg.NewBuilder()
	where := pg.NewWhere()

	match, searching := b.BindText(p.Query())
	if searching {
		where.And("(" + match.TitlePredicate("b.title") +
			" OR EXISTS (SELECT 1 FROM sections se" +
			" WHERE se.bill_id = b.id AND " + match.ContentPredicate("se.content_plain") + "))")
	}

	countSQL := "SELECT COUNT(*) FROM bills b " + where.SQL()
	total, err := pg.Count(ctx, r.db, countSQL, b.Args())
	if err != nil {
		return listing.Page[domain.Bill]{}, fmt.Errorf("count bills: %w", err)
	}

	keys := pg.SortKeys{Date: effectiveDate}
	rankSelect := ""
	if searching {
		keys.Rank = "rank"
		rankSelect = ", (SELECT MAX(" + match.Rank("sr.content_plain") + ")" +
			" FROM sections sr WHERE sr.bill_id = b.id) AS rank"
	}

	limit, offset := b.Paginate(p.PageSize(), p.Offset())

	dataSQL := `
		SELECT
			b.id, b.title, b.first_reading_date, b.first_reading_session_id,
			m.id, m.acronym, m.name,
			` + secondReadingDate + `,
			` + secondReadingSessionID + rankSelect + `
		FROM bills b
		LEFT JOIN ministries m ON b.ministry_id = m.id
		` + where.SQL() + `
		ORDER BY ` + pg.OrderBy(p.Sort(), keys) + `
		LIMIT ` + limit.String() + ` OFFSET ` + offset.String()

	rows, err := r.db.Query(ctx, dataSQL, b.Args()...)
	if err != nil {
		return listing.Page[domain.Bill]{}, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	items, err := scanBills(rows, searching)
	if err != nil {
		return listing.Page[domain.Bill]{}, fmt.Errorf("scan bills: %w", err)
	}

	return listing.NewPage(items, total, p.PageSize()), nil
}

// Scope restricts an involvement listing to one parent entity. Exactly one
// field is set.
type Scope struct {
	MemberID   string
	MinistryID string
}

// ByMember returns the deduplicated bill involvements of one member.
func (r *Repo) ByMember(ctx context.Context, memberID string, p listing.Params, maxRows int) ([]domain.BillInvolvement, error) {
	return r.Involvements(ctx, Scope{MemberID: memberID}, p, maxRows)
}

// ByMinistry returns the deduplicated bill involvements of one ministry.
func (r *Repo) ByMinistry(ctx context.Context, ministryID string, p listing.Params, maxRows int) ([]domain.BillInvolvement, error) {
	return r.Involvements(ctx, Scope{MinistryID: ministryID}, p, maxRows)
}

// Involvements returns one representative second-reading section per bill
// the scoped entity is involved in. The inner DISTINCT ON pass keeps the
// section the current sort mode places first within each bill, then the
// outer pass re-sorts the deduplicated rows under the same mode; both
// reference the one computed rank alias when searching, so the passes never
// disagree on a score.
func (r *Repo) Involvements(ctx context.Context, scope Scope, p listing.Params, maxRows int) ([]domain.BillInvolvement, error) {
	defer metrics.ObserveQuery("bill_involvements", time.Now())

	b := pg.NewBuilder()
	where := pg.NewWhere()

	// Scope filter binds before the text predicate.
	from := "sections s"
	if scope.MemberID != "" {
		from = "section_speakers ss JOIN sections s ON ss.section_id = s.id"
		where.And("ss.member_id = " + b.Bind(scope.MemberID).String())
	} else {
		where.And("s.ministry_id = " + b.Bind(scope.MinistryID).String())
	}
	where.And("s.section_type = 'BP'").And("s.bill_id IS NOT NULL")

	match, searching := b.BindText(p.Query())
	if searching {
		where.And(match.Predicate("s.content_plain", "s.section_title"))
	}

	innerKeys := pg.SortKeys{Date: "sess.date"}
	outerKeys := pg.SortKeys{Date: "session_date"}
	rankSelect := ""
	if searching {
		innerKeys.Rank = "rank"
		outerKeys.Rank = "rank"
		rankSelect = ", " + match.Rank("s.content_plain") + " AS rank"
	}

	limit := b.Bind(maxRows)

	sql := `
		SELECT * FROM (
			SELECT DISTINCT ON (s.bill_id)
				s.bill_id, s.section_type, s.section_title,
				m.acronym AS ministry, sess.date AS session_date` + rankSelect + `
			FROM ` + from + `
			JOIN sessions sess ON s.session_id = sess.id
			LEFT JOIN ministries m ON s.ministry_id = m.id
			` + where.SQL() + `
			ORDER BY ` + pg.GroupedOrderBy("s.bill_id", p.Sort(), innerKeys) + `
		) dedup
		ORDER BY ` + pg.OrderBy(p.Sort(), outerKeys) + `
		LIMIT ` + limit.String()

	rows, err := r.db.Query(ctx, sql, b.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list bill involvements: %w", err)
	}
	defer rows.Close()

	items, err := scanInvolvements(rows, searching)
	if err != nil {
		return nil, fmt.Errorf("scan bill involvements: %w", err)
	}
	return items, nil
}
