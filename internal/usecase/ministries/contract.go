package ministries

import (
	"context"

	"github.com/hansardlab/gavel/internal/domain"
	"github.com/hansardlab/gavel/internal/domain/listing"
)

// Repository defines the storage contract for ministries.
type Repository interface {
	Get(ctx context.Context, id string) (domain.Ministry, error)
}

// SectionLister reads the sections filed under a ministry.
type SectionLister interface {
	ByMinistry(ctx context.Context, ministryID string, p listing.Params, maxRows int) ([]domain.Section, error)
}

// BillLister reads the deduplicated bill involvements of a ministry.
type BillLister interface {
	ByMinistry(ctx context.Context, ministryID string, p listing.Params, maxRows int) ([]domain.BillInvolvement, error)
}
