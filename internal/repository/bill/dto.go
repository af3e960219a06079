package bill

import (
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hansardlab/gavel/internal/domain"
)

func scanBills(rows pgx.Rows, searching bool) ([]domain.Bill, error) {
	var items []domain.Bill
	for rows.Next() {
		var (
			b    domain.Bill
			rank *float64
		)
		dest := []any{
			&b.ID, &b.Title, &b.FirstReadingDate, &b.FirstReadingSessionID,
			&b.MinistryID, &b.Ministry, &b.MinistryName,
			&b.SecondReadingDate, &b.SecondReadingSessionID,
		}
		if searching {
			dest = append(dest, &rank)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		items = append(items, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bills: %w", err)
	}
	return items, nil
}

func scanInvolvements(rows pgx.Rows, searching bool) ([]domain.BillInvolvement, error) {
	var items []domain.BillInvolvement
	for rows.Next() {
		var (
			inv  domain.BillInvolvement
			rank *float64
		)
		dest := []any{
			&inv.BillID, &inv.Type, &inv.Title, &inv.Ministry, &inv.SessionDate,
		}
		if searching {
			dest = append(dest, &rank)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan bill involvement: %w", err)
		}
		items = append(items, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bill involvements: %w", err)
	}
	return items, nil
}
