package members

import (
	"context"

	"github.com/hansardlab/gavel/internal/domain"
	"github.com/hansardlab/gavel/internal/domain/listing"
)

// Repository defines the storage contract for members.
type Repository interface {
	List(ctx context.Context, p listing.Params, constituency string) (listing.Page[domain.Member], error)
	Get(ctx context.Context, id string) (domain.Member, error)
}

// SectionLister reads the sections a member spoke in.
type SectionLister interface {
	ByMember(ctx context.Context, memberID string, p listing.Params, maxRows int) ([]domain.MemberSection, error)
}

// BillLister reads the deduplicated bill involvements of a member.
type BillLister interface {
	ByMember(ctx context.Context, memberID string, p listing.Params, maxRows int) ([]domain.BillInvolvement, error)
}
