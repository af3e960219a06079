// Package ministries serves the ministry detail view.
package ministries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hansardlab/gavel/internal/cache"
	"github.com/hansardlab/gavel/internal/domain"
	"github.com/hansardlab/gavel/internal/domain/listing"
)

// Limits caps the child listings of the detail view.
type Limits struct {
	Questions int
	Bills     int
}

// DefaultLimits matches the caps the detail views have always used.
var DefaultLimits = Limits{Questions: 1000, Bills: 500}

// Service handles ministry details.
type Service struct {
	repo     Repository
	sections SectionLister
	bills    BillLister
	cache    cache.Client
	ttl      time.Duration
	limits   Limits
}

// New creates a ministries service. cache may be nil to disable response
// caching; zero limits fall back to DefaultLimits.
func New(repo Repository, sections SectionLister, bills BillLister, c cache.Client, ttl time.Duration, limits Limits) *Service {
	if limits.Questions <= 0 {
		limits.Questions = DefaultLimits.Questions
	}
	if limits.Bills <= 0 {
		limits.Bills = DefaultLimits.Bills
	}
	return &Service{repo: repo, sections: sections, bills: bills, cache: c, ttl: ttl, limits: limits}
}

// Detail returns one ministry with its capped question and bill listings.
// Returns domain.ErrMinistryNotFound when the id matches no ministry.
func (s *Service) Detail(ctx context.Context, id string, p listing.Params) (domain.MinistryDetail, error) {
	key := cache.Key("ministry", id, p.Query(), string(p.Sort()))

	detail, err := cache.Fetch(ctx, s.cache, key, s.ttl,
		func(ctx context.Context) (domain.MinistryDetail, error) {
			return s.load(ctx, id, p)
		})
	if err != nil {
		if errors.Is(err, domain.ErrMinistryNotFound) {
			return domain.MinistryDetail{}, err
		}
		return domain.MinistryDetail{}, fmt.Errorf("%w: %w", domain.ErrQueryFailed, err)
	}
	return detail, nil
}

func (s *Service) load(ctx context.Context, id string, p listing.Params) (domain.MinistryDetail, error) {
	ministry, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.MinistryDetail{}, err
	}

	questions, err := s.sections.ByMinistry(ctx, id, p, s.limits.Questions)
	if err != nil {
		return domain.MinistryDetail{}, fmt.Errorf("ministry questions: %w", err)
	}

	bills, err := s.bills.ByMinistry(ctx, id, p, s.limits.Bills)
	if err != nil {
		return domain.MinistryDetail{}, fmt.Errorf("ministry bills: %w", err)
	}

	if questions == nil {
		questions = []domain.Section{}
	}
	if bills == nil {
		bills = []domain.BillInvolvement{}
	}
	return domain.MinistryDetail{Ministry: ministry, Questions: questions, Bills: bills}, nil
}
