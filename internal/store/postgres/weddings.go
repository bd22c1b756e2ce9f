// internal/store/postgres/weddings.go
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"wedding-matching-workers/internal/matching"
)

type WeddingStore struct {
	db *sql.DB
}

func NewWeddingStore(db *sql.DB) *WeddingStore {
	return &WeddingStore{db: db}
}

// GetWeddingParams returns nil, nil when the plan does not exist.
func (s *WeddingStore) GetWeddingParams(ctx context.Context, weddingPlanID string) (*matching.WeddingMatchParams, error) {
	query := `
		SELECT id, wedding_date, budget_total, estimated_guests, style, style_preferences,
		       venue_location, languages, category_priorities, preferences
		FROM wedding_plans
		WHERE id = $1
	`

	var (
		p           matching.WeddingMatchParams
		weddingDate sql.NullTime
		style       sql.NullString
		styles      pq.StringArray
		location    sql.NullString
		languages   pq.StringArray
		priorities  []byte
		preferences []byte
	)
	err := s.db.QueryRowContext(ctx, query, weddingPlanID).Scan(
		&p.WeddingPlanID, &weddingDate, &p.Budget, &p.GuestCount, &style, &styles,
		&location, &languages, &priorities, &preferences,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query wedding plan: %w", err)
	}

	if weddingDate.Valid {
		d := weddingDate.Time
		p.WeddingDate = &d
	}
	p.Style = style.String
	p.Styles = []string(styles)
	p.Location = location.String
	p.Languages = []string(languages)

	if len(priorities) > 0 {
		if err := json.Unmarshal(priorities, &p.Priorities); err != nil {
			return nil, fmt.Errorf("decode category priorities: %w", err)
		}
	}
	if len(preferences) > 0 {
		if err := json.Unmarshal(preferences, &p.Preferences); err != nil {
			return nil, fmt.Errorf("decode preferences: %w", err)
		}
	}

	return &p, nil
}
