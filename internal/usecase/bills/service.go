// Package bills serves the bill listing with its derived second readings.
package bills

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hansardlab/gavel/internal/cache"
	"github.com/hansardlab/gavel/internal/domain"
	"github.com/hansardlab/gavel/internal/domain/listing"
)

// Service handles the bill listing.
type Service struct {
	repo  Repository
	cache cache.Client
	ttl   time.Duration
}

// New creates a bills service. cache may be nil to disable response caching.
func New(repo Repository, c cache.Client, ttl time.Duration) *Service {
	return &Service{repo: repo, cache: c, ttl: ttl}
}

// List returns one page of the bill listing.
func (s *Service) List(ctx context.Context, p listing.Params) (listing.Page[domain.Bill], error) {
	key := cache.Key("bills", p.Query(), string(p.Sort()),
		strconv.Itoa(p.Page()), strconv.Itoa(p.PageSize()))

	page, err := cache.Fetch(ctx, s.cache, key, s.ttl,
		func(ctx context.Context) (listing.Page[domain.Bill], error) {
			return s.repo.List(ctx, p)
		})
	if err != nil {
		return listing.Page[domain.Bill]{}, fmt.Errorf("%w: %w", domain.ErrQueryFailed, err)
	}
	return page, nil
}
