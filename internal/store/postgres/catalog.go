// internal/store/postgres/catalog.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"wedding-matching-workers/internal/matching"
)

const vendorColumns = `id, business_name, category, starting_price, capacity_min, capacity_max,
	service_area, location, rating, total_reviews, verified, styles, languages, contact_email, attributes`

// VendorCatalog reads vendor_profiles. Price and location are left to the hard filters.
type VendorCatalog struct {
	db *sql.DB
}

func NewVendorCatalog(db *sql.DB) *VendorCatalog {
	return &VendorCatalog{db: db}
}

func (c *VendorCatalog) ListVendors(ctx context.Context, category matching.Category) ([]matching.VendorProfile, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendor_profiles WHERE category = $1 ORDER BY id`

	rows, err := c.db.QueryContext(ctx, query, string(category))
	if err != nil {
		return nil, fmt.Errorf("query vendors by category: %w", err)
	}
	defer rows.Close()

	return scanVendors(rows)
}

func (c *VendorCatalog) GetVendorsByIDs(ctx context.Context, ids []string) ([]matching.VendorProfile, error) {
	if len(ids) == 0 {
		return []matching.VendorProfile{}, nil
	}
	query := `SELECT ` + vendorColumns + ` FROM vendor_profiles WHERE id = ANY($1) ORDER BY id`

	rows, err := c.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("query vendors by id: %w", err)
	}
	defer rows.Close()

	return scanVendors(rows)
}

func scanVendors(rows *sql.Rows) ([]matching.VendorProfile, error) {
	vendors := make([]matching.VendorProfile, 0)
	for rows.Next() {
		var (
			v            matching.VendorProfile
			category     string
			price        sql.NullFloat64
			capMin       sql.NullInt64
			capMax       sql.NullInt64
			serviceArea  pq.StringArray
			location     sql.NullString
			rating       sql.NullFloat64
			styles       pq.StringArray
			languages    pq.StringArray
			contactEmail sql.NullString
			attributes   []byte
		)
		if err := rows.Scan(
			&v.ID, &v.BusinessName, &category, &price, &capMin, &capMax,
			&serviceArea, &location, &rating, &v.TotalReviews, &v.Verified,
			&styles, &languages, &contactEmail, &attributes,
		); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}

		v.Category = matching.Category(category)
		v.StartingPrice = nullFloat(price)
		v.CapacityMin = nullInt(capMin)
		v.CapacityMax = nullInt(capMax)
		v.ServiceArea = []string(serviceArea)
		v.Location = location.String
		v.Rating = nullFloat(rating)
		v.Styles = []string(styles)
		v.Languages = []string(languages)
		v.ContactEmail = contactEmail.String

		attrs, err := matching.DecodeAttributes(v.Category, attributes)
		if err != nil {
			return nil, fmt.Errorf("vendor %s: %w", v.ID, err)
		}
		v.Attributes = attrs

		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vendors: %w", err)
	}
	return vendors, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
