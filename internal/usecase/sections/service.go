// Package sections serves the question and motion listings.
package sections

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hansardlab/gavel/internal/cache"
	"github.com/hansardlab/gavel/internal/domain"
	"github.com/hansardlab/gavel/internal/domain/listing"
)

// Service handles the flat question and motion listings.
type Service struct {
	repo  Repository
	cache cache.Client
	ttl   time.Duration
}

// New creates a sections service. cache may be nil to disable response caching.
func New(repo Repository, c cache.Client, ttl time.Duration) *Service {
	return &Service{repo: repo, cache: c, ttl: ttl}
}

// Questions returns one page of the question listing.
func (s *Service) Questions(ctx context.Context, p listing.Params) (listing.Page[domain.Section], error) {
	return s.list(ctx, "questions", p, s.repo.Questions)
}

// Motions returns one page of the motion listing.
func (s *Service) Motions(ctx context.Context, p listing.Params) (listing.Page[domain.Section], error) {
	return s.list(ctx, "motions", p, s.repo.Motions)
}

func (s *Service) list(
	ctx context.Context, view string, p listing.Params,
	load func(context.Context, listing.Params) (listing.Page[domain.Section], error),
) (listing.Page[domain.Section], error) {
	key := cache.Key(view, p.Query(), string(p.Sort()),
		strconv.Itoa(p.Page()), strconv.Itoa(p.PageSize()))

	page, err := cache.Fetch(ctx, s.cache, key, s.ttl,
		func(ctx context.Context) (listing.Page[domain.Section], error) {
			return load(ctx, p)
		})
	if err != nil {
		return listing.Page[domain.Section]{}, fmt.Errorf("%w: %w", domain.ErrQueryFailed, err)
	}
	return page, nil
}
