// internal/store/postgres/availability.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// AvailabilityStore reads vendor_availability. Only explicit is_available=false rows
// make a vendor unavailable; a missing row means available.
type AvailabilityStore struct {
	db *sql.DB
}

func NewAvailabilityStore(db *sql.DB) *AvailabilityStore {
	return &AvailabilityStore{db: db}
}

// GetUnavailableVendorIDs resolves a whole candidate set in one round trip.
func (s *AvailabilityStore) GetUnavailableVendorIDs(ctx context.Context, vendorIDs []string, date time.Time) (map[string]struct{}, error) {
	out := make(map[string]struct{})
	if len(vendorIDs) == 0 {
		return out, nil
	}

	query := `
		SELECT vendor_id
		FROM vendor_availability
		WHERE vendor_id = ANY($1) AND date = $2 AND is_available = FALSE
	`
	rows, err := s.db.QueryContext(ctx, query, pq.Array(vendorIDs), date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("query availability: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan availability: %w", err)
		}
		out[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate availability: %w", err)
	}
	return out, nil
}
