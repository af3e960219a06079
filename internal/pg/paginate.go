package pg

import (
	"context"
	"fmt"
)

// Count executes a COUNT query and returns the total.
//
// The count and page queries of one request are issued separately, sharing
// predicate text and bound values through the same Builder and Where, but
// they are not wrapped in a transaction: a write landing between the two
// observes as a total that is off by the writes in that window. The corpus
// is append-only and listings are cached, so this staleness is accepted
// rather than paying for a combined count-and-page query.
func Count(ctx context.Context, q Querier, sql string, args []any) (int, error) {
	var total int
	if err := q.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return total, nil
}
