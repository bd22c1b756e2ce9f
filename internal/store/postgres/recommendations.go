// internal/store/postgres/recommendations.go
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"wedding-matching-workers/internal/matching"
)

// RecommendationStore is the SQL recommendation cache. Rows for a (plan, category)
// are replaced wholesale inside one transaction so readers never see a mix of runs.
type RecommendationStore struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

func NewRecommendationStore(db *sql.DB, ttl time.Duration) *RecommendationStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RecommendationStore{db: db, ttl: ttl, now: time.Now}
}

func (s *RecommendationStore) Put(ctx context.Context, weddingPlanID string, category matching.Category, results []matching.VendorMatchResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM vendor_recommendations WHERE wedding_plan_id = $1 AND category = $2`,
		weddingPlanID, string(category),
	); err != nil {
		return fmt.Errorf("delete stale recommendations: %w", err)
	}

	insert := `
		INSERT INTO vendor_recommendations (
			id, wedding_plan_id, vendor_id, vendor_name, category, match_score, label,
			match_reasons, category_scores, estimated_price, available_on_date, expires_at, rank
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	expiresAt := s.now().Add(s.ttl)

	for rank, r := range results {
		reasons, err := json.Marshal(r.Reasons)
		if err != nil {
			return fmt.Errorf("encode reasons for %s: %w", r.VendorID, err)
		}
		scores, err := json.Marshal(r.CategoryScores)
		if err != nil {
			return fmt.Errorf("encode scores for %s: %w", r.VendorID, err)
		}

		if _, err := tx.ExecContext(ctx, insert,
			uuid.NewString(), weddingPlanID, r.VendorID, r.VendorName, string(category),
			r.MatchScore, r.Label, reasons, scores, r.EstimatedPrice, r.AvailableOnDate, expiresAt, rank,
		); err != nil {
			return fmt.Errorf("insert recommendation %s: %w", r.VendorID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit recommendations: %w", err)
	}
	return nil
}

// GetCached returns unexpired rows. A single category comes back in the order it was put;
// an empty category reads every category of the plan ordered by score.
func (s *RecommendationStore) GetCached(ctx context.Context, weddingPlanID string, category matching.Category) ([]matching.VendorMatchResult, error) {
	query := `
		SELECT vendor_id, vendor_name, category, match_score, label, match_reasons,
		       category_scores, estimated_price, available_on_date
		FROM vendor_recommendations
		WHERE wedding_plan_id = $1 AND expires_at > $2`
	args := []interface{}{weddingPlanID, s.now()}
	if category != "" {
		query += ` AND category = $3 ORDER BY rank`
		args = append(args, string(category))
	} else {
		query += ` ORDER BY match_score DESC, category, rank`
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cached recommendations: %w", err)
	}
	defer rows.Close()

	out := make([]matching.VendorMatchResult, 0)
	for rows.Next() {
		var (
			r          matching.VendorMatchResult
			vendorName sql.NullString
			cat        string
			reasons    []byte
			scores     []byte
			price      sql.NullFloat64
		)
		if err := rows.Scan(&r.VendorID, &vendorName, &cat, &r.MatchScore, &r.Label,
			&reasons, &scores, &price, &r.AvailableOnDate); err != nil {
			return nil, fmt.Errorf("scan cached recommendation: %w", err)
		}
		r.VendorName = vendorName.String
		r.Category = matching.Category(cat)
		r.EstimatedPrice = nullFloat(price)
		if len(reasons) > 0 {
			if err := json.Unmarshal(reasons, &r.Reasons); err != nil {
				return nil, fmt.Errorf("decode reasons for %s: %w", r.VendorID, err)
			}
		}
		if len(scores) > 0 {
			if err := json.Unmarshal(scores, &r.CategoryScores); err != nil {
				return nil, fmt.Errorf("decode scores for %s: %w", r.VendorID, err)
			}
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cached recommendations: %w", err)
	}
	return out, nil
}

// PurgeExpired deletes rows past their expiry and reports how many were removed.
func (s *RecommendationStore) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM vendor_recommendations WHERE expires_at <= $1`, s.now())
	if err != nil {
		return 0, fmt.Errorf("purge expired recommendations: %w", err)
	}
	return res.RowsAffected()
}
