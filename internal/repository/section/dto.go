package section

import (
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hansardlab/gavel/internal/domain"
)

// speakerDTO matches the json_build_object keys of the speaker aggregate.
type speakerDTO struct {
	MemberID     string  `json:"member_id"`
	Name         string  `json:"name"`
	Constituency *string `json:"constituency"`
	Designation  *string `json:"designation"`
}

func speakersFromJSON(raw []byte) ([]domain.Speaker, error) {
	var dtos []speakerDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, fmt.Errorf("decode speakers: %w", err)
	}
	speakers := make([]domain.Speaker, len(dtos))
	for i, d := range dtos {
		speakers[i] = domain.Speaker{
			MemberID:     d.MemberID,
			Name:         d.Name,
			Constituency: d.Constituency,
			Designation:  d.Designation,
		}
	}
	return speakers, nil
}

// scanSections reads the common flat-listing row shape. When searching is
// true a trailing rank column is present; it orders the rows and is
// discarded, never exposed.
func scanSections(rows pgx.Rows, searching bool) ([]domain.Section, error) {
	var items []domain.Section
	for rows.Next() {
		var (
			s        domain.Section
			speakers []byte
			rank     *float64
		)
		dest := []any{
			&s.ID, &s.SessionID, &s.Type, &s.Title, &s.Category,
			&s.Snippet, &s.Order,
			&s.MinistryID, &s.Ministry,
			&s.SessionDate, &s.SittingNo,
			&speakers,
		}
		if searching {
			dest = append(dest, &rank)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}

		sp, err := speakersFromJSON(speakers)
		if err != nil {
			return nil, err
		}
		s.Speakers = sp
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sections: %w", err)
	}
	return items, nil
}
