// Package ministry queries government ministries.
package ministry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hansardlab/gavel/internal/domain"
	"github.com/hansardlab/gavel/internal/metrics"
)

// querier is the consumer interface for the corpus (ISP).
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repo implements the ministry contracts.
type Repo struct {
	db querier
}

// New creates a ministry repository.
func New(db querier) *Repo {
	return &Repo{db: db}
}

// Get returns one ministry, or domain.ErrMinistryNotFound when no ministry
// has the id.
func (r *Repo) Get(ctx context.Context, id string) (domain.Ministry, error) {
	defer metrics.ObserveQuery("ministry_get", time.Now())

	var m domain.Ministry
	err := r.db.QueryRow(ctx,
		"SELECT id, name, acronym FROM ministries WHERE id = $1", id).
		Scan(&m.ID, &m.Name, &m.Acronym)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Ministry{}, domain.ErrMinistryNotFound
	}
	if err != nil {
		return domain.Ministry{}, fmt.Errorf("get ministry: %w", err)
	}
	return m, nil
}
