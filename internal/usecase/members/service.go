// Package members serves the member listing and the member detail view.
package members

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/hansardlab/gavel/internal/cache"
	"github.com/hansardlab/gavel/internal/domain"
	"github.com/hansardlab/gavel/internal/domain/listing"
)

// Limits caps the child listings of the detail view. The children share the
// detail's text query but are capped rather than paginated.
type Limits struct {
	Questions int
	Bills     int
}

// DefaultLimits matches the caps the detail views have always used.
var DefaultLimits = Limits{Questions: 1000, Bills: 500}

// Service handles member listings and details.
type Service struct {
	repo     Repository
	sections SectionLister
	bills    BillLister
	cache    cache.Client
	ttl      time.Duration
	limits   Limits
}

// New creates a members service. cache may be nil to disable response
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

// List returns one page of the member listing.
func (s *Service) List(ctx context.Context, p listing.Params, constituency string) (listing.Page[domain.Member], error) {
	key := cache.Key("members", p.Query(), string(p.Sort()), constituency,
		strconv.Itoa(p.Page()), strconv.Itoa(p.PageSize()))

	page, err := cache.Fetch(ctx, s.cache, key, s.ttl,
		func(ctx context.Context) (listing.Page[domain.Member], error) {
			return s.repo.List(ctx, p, constituency)
		})
	if err != nil {
		return listing.Page[domain.Member]{}, fmt.Errorf("%w: %w", domain.ErrQueryFailed, err)
	}
	return page, nil
}

// Detail returns one member with their capped question and bill listings.
// Both children share p's text query and sort mode. Returns
// domain.ErrMemberNotFound when the id matches no member.
func (s *Service) Detail(ctx context.Context, id string, p listing.Params) (domain.MemberDetail, error) {
	key := cache.Key("member", id, p.Query(), string(p.Sort()))

	detail, err := cache.Fetch(ctx, s.cache, key, s.ttl,
		func(ctx context.Context) (domain.MemberDetail, error) {
			return s.load(ctx, id, p)
		})
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return domain.MemberDetail{}, err
		}
		return domain.MemberDetail{}, fmt.Errorf("%w: %w", domain.ErrQueryFailed, err)
	}
	return detail, nil
}

func (s *Service) load(ctx context.Context, id string, p listing.Params) (domain.MemberDetail, error) {
	member, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.MemberDetail{}, err
	}

	questions, err := s.sections.ByMember(ctx, id, p, s.limits.Questions)
	if err != nil {
		return domain.MemberDetail{}, fmt.Errorf("member questions: %w", err)
	}

	bills, err := s.bills.ByMember(ctx, id, p, s.limits.Bills)
	if err != nil {
		return domain.MemberDetail{}, fmt.Errorf("member bills: %w", err)
	}

	if questions == nil {
		questions = []domain.MemberSection{}
	}
	if bills == nil {
		bills = []domain.BillInvolvement{}
	}
	return domain.MemberDetail{Member: member, Questions: questions, Bills: bills}, nil
}
