package bills

import (
	"context"

	"github.com/hansardlab/gavel/internal/domain"
	"github.com/hansardlab/gavel/internal/domain/listing"
)

// Repository defines the storage contract for the bill listing.
type Repository interface {
	List(ctx context.Context, p listing.Params) (listing.Page[domain.Bill], error)
}
