package pg

import (
	"strings"

	"github.com/hansardlab/gavel/internal/domain/listing/sort"
)

// SortKeys names the column expressions a listing exposes to the ordering.
// Rank is the relevance expression or its alias and stays empty when no
// text query is bound; Natural is the order-within-session tiebreak; Name
// and Activity back the member sorts. Keys a listing does not define are
// left empty and the clauses that would use them are skipped.
type SortKeys struct {
	Rank     string
	Date     string
	Natural  string
	Name     string
	Activity string
}

// OrderBy builds the ORDER BY clause body for a sort mode. This is the
// outer, across-groups ordering; the per-group ordering used inside a dedup
// is GroupedOrderBy. A mode whose backing key the listing does not define
// degrades to the listing's fallback ordering instead of rendering an empty
// key, so a member sort on a dated listing (or a date sort on the member
// listing) clamps rather than producing invalid SQL.
func OrderBy(m sort.Mode, k SortKeys) string {
	switch m {
	case sort.Relevance:
		if k.Rank == "" {
			return OrderBy(sort.Newest, k)
		}
		return joinKeys(k.Rank+" DESC NULLS LAST", dateDesc(k), naturalAsc(k))
	case sort.Oldest:
		if k.Date == "" {
			return fallbackOrder(k)
		}
		return joinKeys(k.Date+" ASC NULLS LAST", naturalAsc(k))
	case sort.Name:
		if k.Name == "" {
			return fallbackOrder(k)
		}
		return k.Name + " ASC"
	case sort.NameDesc:
		if k.Name == "" {
			return fallbackOrder(k)
		}
		return k.Name + " DESC"
	case sort.MostActive:
		if k.Activity == "" {
			return fallbackOrder(k)
		}
		return joinKeys(k.Activity+" DESC", k.Name+" ASC")
	default: // newest
		if k.Date == "" {
			return fallbackOrder(k)
		}
		return joinKeys(dateDesc(k), naturalAsc(k))
	}
}

// fallbackOrder is the ordering an unsupported mode clamps to: the rank
// ordering when a text query bound one, newest-first on dated listings,
// name ascending on the member listing.
func fallbackOrder(k SortKeys) string {
	if k.Rank != "" {
		return joinKeys(k.Rank+" DESC NULLS LAST", dateDesc(k), naturalAsc(k))
	}
	if k.Date != "" {
		return joinKeys(dateDesc(k), naturalAsc(k))
	}
	return k.Name + " ASC"
}

// GroupedOrderBy prefixes the group key so DISTINCT ON (group) keeps the
// row that is extremal under the same mode within each group. The rank key
// must be the same computed-once expression the outer ordering references;
// re-deriving it per pass risks the two orderings disagreeing.
func GroupedOrderBy(group string, m sort.Mode, k SortKeys) string {
	return group + ", " + OrderBy(m, k)
}

func dateDesc(k SortKeys) string {
	return k.Date + " DESC NULLS LAST"
}

func naturalAsc(k SortKeys) string {
	if k.Natural == "" {
		return ""
	}
	return k.Natural + " ASC"
}

func joinKeys(keys ...string) string {
	parts := keys[:0:0]
	for _, key := range keys {
		if key != "" {
			parts = append(parts, key)
		}
	}
	return strings.Join(parts, ", ")
}
