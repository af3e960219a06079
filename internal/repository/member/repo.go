// Package member queries legislators, resolving each member's display
// constituency and designation from the snapshots their speaking and
// attendance records carry.
package member

import (
	"context"
	"errors"
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

// Repo implements the member listing and detail contracts.
type Repo struct {
	db querier
}

// New creates a member repository.
func New(db querier) *Repo {
	return &Repo{db: db}
}

// A member's display constituency and designation are the most recent
// non-null snapshots from their speaking records, falling back to their
// attendance records only when they never spoke with one recorded. The
// speaking tier wins outright even when an attendance snapshot is newer.
var (
	resolvedConstituency = pg.LatestWithFallback(
		pg.RepresentativeSource{
			From: "section_speakers ss2 JOIN sections s2 ON ss2.section_id = s2.id" +
				" JOIN sessions sess2 ON s2.session_id = sess2.id",
			Where:   "ss2.member_id = m.id AND ss2.constituency IS NOT NULL",
			Value:   "ss2.constituency",
			OrderBy: "sess2.date DESC, s2.id ASC",
		},
		pg.RepresentativeSource{
			From:    "session_attendance sa JOIN sessions sess3 ON sa.session_id = sess3.id",
			Where:   "sa.member_id = m.id AND sa.constituency IS NOT NULL",
			Value:   "sa.constituency",
			OrderBy: "sess3.date DESC, sa.session_id ASC",
		},
	)

	resolvedDesignation = pg.LatestWithFallback(
		pg.RepresentativeSource{
			From: "section_speakers ss4 JOIN sections s4 ON ss4.section_id = s4.id" +
				" JOIN sessions sess4 ON s4.session_id = sess4.id",
			Where:   "ss4.member_id = m.id AND ss4.designation IS NOT NULL",
			Value:   "ss4.designation",
			OrderBy: "sess4.date DESC, s4.id ASC",
		},
		pg.RepresentativeSource{
			From:    "session_attendance sa2 JOIN sessions sess5 ON sa2.session_id = sess5.id",
			Where:   "sa2.member_id = m.id AND sa2.designation IS NOT NULL",
			Value:   "sa2.designation",
			OrderBy: "sess5.date DESC, sa2.session_id ASC",
		},
	)
)

// constituencyCTE resolves every member's constituency once, so the listing
// can both select it and filter on it with the same definition.
const ctePrefix = "WITH member_constituency AS (SELECT m.id AS member_id, "
const cteSuffix = " AS constituency FROM members m) "

func constituencyCTE() string {
	return ctePrefix + resolvedConstituency + cteSuffix
}

// List returns one page of members with resolved constituency and
// designation and their speaking-section counts. The text query is a
// case-insensitive substring match on the name; constituency, when
// non-empty, is an equality filter on the resolved value.
func (r *Repo) List(ctx context.Context, p listing.Params, constituency string) (listing.Page[domain.Member], error) {
	defer metrics.ObserveQuery("members_list", time.Now())

	b := pg.NewBuilder()
	where := pg.NewWhere()

	if p.HasQuery() {
		where.And("m.name ILIKE " + b.Bind("%"+p.Query()+"%").String())
	}
	if constituency != "" {
		where.And("mc.constituency = " + b.Bind(constituency).String())
	}

	countSQL := constituencyCTE() +
		"SELECT COUNT(*) FROM members m" +
		" LEFT JOIN member_constituency mc ON m.id = mc.member_id " +
		where.SQL()
	total, err := pg.Count(ctx, r.db, countSQL, b.Args())
	if err != nil {
		return listing.Page[domain.Member]{}, fmt.Errorf("count members: %w", err)
	}

	keys := pg.SortKeys{Name: "m.name", Activity: "section_count"}
	limit, offset := b.Paginate(p.PageSize(), p.Offset())

	dataSQL := constituencyCTE() + `
		SELECT
			m.id, m.name, ms.summary,
			mc.constituency,
			` + resolvedDesignation + `,
			COUNT(DISTINCT ss.section_id) AS section_count
		FROM members m
		LEFT JOIN member_constituency mc ON m.id = mc.member_id
		LEFT JOIN member_summaries ms ON m.id = ms.member_id
		LEFT JOIN section_speakers ss ON m.id = ss.member_id
		` + where.SQL() + `
		GROUP BY m.id, m.name, ms.summary, mc.constituency
		ORDER BY ` + pg.OrderBy(p.Sort(), keys) + `
		LIMIT ` + limit.String() + ` OFFSET ` + offset.String()

	rows, err := r.db.Query(ctx, dataSQL, b.Args()...)
	if err != nil {
		return listing.Page[domain.Member]{}, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var items []domain.Member
	for rows.Next() {
		var m domain.Member
		err := rows.Scan(&m.ID, &m.Name, &m.Summary,
			&m.Constituency, &m.Designation, &m.SectionCount)
		if err != nil {
			return listing.Page[domain.Member]{}, fmt.Errorf("scan member: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return listing.Page[domain.Member]{}, fmt.Errorf("iterate members: %w", err)
	}

	return listing.NewPage(items, total, p.PageSize()), nil
}

// Get returns one member with summary, resolved constituency and
// designation, and their speaking-section count. Returns
// domain.ErrMemberNotFound when no member has the id.
func (r *Repo) Get(ctx context.Context, id string) (domain.Member, error) {
	defer metrics.ObserveQuery("member_get", time.Now())

	b := pg.NewBuilder()
	idPh := b.Bind(id)

	sql := `
		SELECT
			m.id, m.name, ms.summary,
			` + resolvedConstituency + `,
			` + resolvedDesignation + `,
			(SELECT COUNT(DISTINCT ss.section_id) FROM section_speakers ss
			 WHERE ss.member_id = m.id)
		FROM members m
		LEFT JOIN member_summaries ms ON m.id = ms.member_id
		WHERE m.id = ` + idPh.String()

	var m domain.Member
	err := r.db.QueryRow(ctx, sql, b.Args()...).Scan(
		&m.ID, &m.Name, &m.Summary,
		&m.Constituency, &m.Designation, &m.SectionCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Member{}, domain.ErrMemberNotFound
	}
	if err != nil {
		return domain.Member{}, fmt.Errorf("get member: %w", err)
	}
	return m, nil
}
