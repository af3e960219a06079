// Package gavel is the embedded SDK for the parliamentary corpus: the same
// query engine the API server runs, wired in-process against a Postgres
// corpus. Useful for batch jobs and tools that want ranked listings without
// going through HTTP.
package gavel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hansardlab/gavel/internal/cache"
	"github.com/hansardlab/gavel/internal/domain"
	"github.com/hansardlab/gavel/internal/domain/listing/sort"
	"github.com/hansardlab/gavel/internal/pg"
	billrepo "github.com/hansardlab/gavel/internal/repository/bill"
	memberrepo "github.com/hansardlab/gavel/internal/repository/member"
	ministryrepo "github.com/hansardlab/gavel/internal/repository/ministry"
	sectionrepo "github.com/hansardlab/gavel/internal/repository/section"
	billsuc "github.com/hansardlab/gavel/internal/usecase/bills"
	membersuc "github.com/hansardlab/gavel/internal/usecase/members"
	ministriesuc "github.com/hansardlab/gavel/internal/usecase/ministries"
	sectionsuc "github.com/hansardlab/gavel/internal/usecase/sections"
)

// Sentinel errors. Match with errors.Is.
var (
	// ErrMemberNotFound is returned by Member for an unknown id.
	ErrMemberNotFound = domain.ErrMemberNotFound
	// ErrMinistryNotFound is returned by Ministry for an unknown id.
	ErrMinistryNotFound = domain.ErrMinistryNotFound
	// ErrQueryFailed wraps corpus query failures.
	ErrQueryFailed = domain.ErrQueryFailed
)

const defaultReadinessTimeout = 10 * time.Second

// billsDefaultPageSize matches the bills endpoint of the API server.
const billsDefaultPageSize = 50

// Client is the gavel SDK entry point.
type Client struct {
	db         *pg.DB
	store      *cache.Store
	sections   *sectionsuc.Service
	bills      *billsuc.Service
	members    *membersuc.Service
	ministries *ministriesuc.Service
}

// New creates a Client and connects to the corpus database.
func New(databaseURL string, opts ...Option) (*Client, error) {
	if databaseURL == "" {
		return nil, errors.New("gavel: database url required")
	}

	cfg := &clientConfig{
		readinessTimeout: defaultReadinessTimeout,
		cacheTTL:         time.Minute,
	}
	for _, o := range opts {
		o(cfg)
	}

	ctx := context.Background()

	db, err := pg.Connect(ctx, pg.Config{URL: databaseURL, MaxConns: cfg.maxConns})
	if err != nil {
		return nil, fmt.Errorf("gavel: connect: %w", err)
	}
	if err := db.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		db.Close()
		return nil, fmt.Errorf("gavel: database not ready: %w", err)
	}

	var store *cache.Store
	if len(cfg.cacheAddrs) > 0 {
		store, err = cache.NewStore(cache.Config{
			Addrs:    cfg.cacheAddrs,
			Username: cfg.cacheUsername,
			Password: cfg.cachePassword,
			DB:       cfg.cacheDB,
		})
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("gavel: create cache: %w", err)
		}
		if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
			store.Close()
			db.Close()
			return nil, fmt.Errorf("gavel: cache not ready: %w", err)
		}
	}

	return wireClient(db, store, cfg), nil
}

func wireClient(db *pg.DB, store *cache.Store, cfg *clientConfig) *Client {
	// Pass a nil interface, not a typed nil pointer, when the cache is off.
	var cc cache.Client
	if store != nil {
		cc = store
	}

	sectionRepo := sectionrepo.New(db)
	billRepo := billrepo.New(db)
	memberRepo := memberrepo.New(db)
	ministryRepo := ministryrepo.New(db)

	ttl := cfg.cacheTTL
	limits := membersuc.Limits{Questions: cfg.detailQuestions, Bills: cfg.detailBills}

	return &Client{
		db:       db,
		store:    store,
		sections: sectionsuc.New(sectionRepo, cc, ttl),
		bills:    billsuc.New(billRepo, cc, ttl),
		members:  membersuc.New(memberRepo, sectionRepo, billRepo, cc, ttl, limits),
		ministries: ministriesuc.New(ministryRepo, sectionRepo, billRepo, cc, ttl, ministriesuc.Limits{
			Questions: cfg.detailQuestions,
			Bills:     cfg.detailBills,
		}),
	}
}

// Close releases the database and cache connections.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
	if c.db != nil {
		c.db.Close()
	}
}

// Ping checks corpus database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.db.Ping(ctx); err != nil {
		return fmt.Errorf("gavel: ping: %w", err)
	}
	return nil
}

// Questions lists parliamentary questions, ranked.
func (c *Client) Questions(ctx context.Context, opts ListOptions) (Page[Section], error) {
	page, err := c.sections.Questions(ctx, toParams(opts, sort.Relevance, 0))
	if err != nil {
		return Page[Section]{}, err
	}
	return pageOf(page, fromSection), nil
}

// Motions lists motions and adjournment motions, ranked.
func (c *Client) Motions(ctx context.Context, opts ListOptions) (Page[Section], error) {
	page, err := c.sections.Motions(ctx, toParams(opts, sort.Relevance, 0))
	if err != nil {
		return Page[Section]{}, err
	}
	return pageOf(page, fromSection), nil
}

// Bills lists bills with their derived second readings, ranked.
func (c *Client) Bills(ctx context.Context, opts ListOptions) (Page[Bill], error) {
	page, err := c.bills.List(ctx, toParams(opts, sort.Relevance, billsDefaultPageSize))
	if err != nil {
		return Page[Bill]{}, err
	}
	return pageOf(page, fromBill), nil
}

// Members lists members with resolved constituency and designation.
func (c *Client) Members(ctx context.Context, opts MemberListOptions) (Page[Member], error) {
	page, err := c.members.List(ctx, toParams(opts.ListOptions, sort.Name, 0), opts.Constituency)
	if err != nil {
		return Page[Member]{}, err
	}
	return pageOf(page, fromMember), nil
}

// Member returns one member with capped question and bill listings.
// Returns ErrMemberNotFound for an unknown id.
func (c *Client) Member(ctx context.Context, id string, opts DetailOptions) (MemberDetail, error) {
	detail, err := c.members.Detail(ctx, id, toDetailParams(opts))
	if err != nil {
		return MemberDetail{}, err
	}
	return fromMemberDetail(detail), nil
}

// Ministry returns one ministry with capped question and bill listings.
// Returns ErrMinistryNotFound for an unknown id.
func (c *Client) Ministry(ctx context.Context, id string, opts DetailOptions) (MinistryDetail, error) {
	detail, err := c.ministries.Detail(ctx, id, toDetailParams(opts))
	if err != nil {
		return MinistryDetail{}, err
	}
	return fromMinistryDetail(detail), nil
}
