package gavel

import "time"

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	maxConns         int32
	readinessTimeout time.Duration

	cacheAddrs    []string
	cacheUsername string
	cachePassword string
	cacheDB       int
	cacheTTL      time.Duration

	detailQuestions int
	detailBills     int
}

// WithMaxConns caps the database connection pool.
func WithMaxConns(n int32) Option {
	return func(c *clientConfig) {
		c.maxConns = n
	}
}

// WithReadinessTimeout sets how long New waits for the database (and cache,
// if configured) to answer pings.
func WithReadinessTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.readinessTimeout = d
	}
}

// WithCache enables the response cache on the given redis addresses.
// Without it every query hits the corpus directly.
func WithCache(addrs ...string) Option {
	return func(c *clientConfig) {
		c.cacheAddrs = addrs
	}
}

// WithCacheAuth sets credentials for the response cache.
func WithCacheAuth(username, password string) Option {
	return func(c *clientConfig) {
		c.cacheUsername = username
		c.cachePassword = password
	}
}

// WithCacheDB selects the redis logical database.
func WithCacheDB(db int) Option {
	return func(c *clientConfig) {
		c.cacheDB = db
	}
}

// WithCacheTTL sets how long cached responses live. Default one minute.
func WithCacheTTL(d time.Duration) Option {
	return func(c *clientConfig) {
		c.cacheTTL = d
	}
}

// WithDetailCaps overrides the child listing caps of the detail views.
// Zero values keep the defaults (1000 questions, 500 bills).
func WithDetailCaps(questions, bills int) Option {
	return func(c *clientConfig) {
		c.detailQuestions = questions
		c.detailBills = bills
	}
}
