package sections

import (
	"context"

	"github.com/hansardlab/gavel/internal/domain"
	"github.com/hansardlab/gavel/internal/domain/listing"
)

// Repository defines the storage contract for the flat section listings.
type Repository interface {
	Questions(ctx context.Context, p listing.Params) (listing.Page[domain.Section], error)
	Motions(ctx context.Context, p listing.Params) (listing.Page[domain.Section], error)
}
