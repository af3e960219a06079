package health

import "context"

// CorpusPinger checks corpus database availability.
type CorpusPinger interface {
	Ping(ctx context.Context) error
}

// CachePinger checks response cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
