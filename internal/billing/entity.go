// AngelaMos | 2026
// entity.go

package billing

import (
	"database/sql"
	"time"

	"github.com/prombirzha/marketplace/internal/core"
)

// Tariff is a subscription plan. Price is in whole roubles, 0 is free.
type Tariff struct {
	ID        int64           `db:"id"`
	Name      string          `db:"name"`
	Price     int             `db:"price"`
	Features  core.StringList `db:"features"`
	IsActive  bool            `db:"is_active"`
	CreatedAt time.Time       `db:"created_at"`
}

const (
	FeatureUnlimitedResponses = "unlimited_responses"
	FeatureTopPlacement       = "top_placement"
	FeatureAnalytics          = "analytics"
	FeatureBannerAds          = "banner_ads"
)

func (t *Tariff) Has(feature string) bool {
	return t.Features.Contains(feature)
}

// TariffRow is a tariff read through a LEFT JOIN, where every column may
// be NULL when the owning row has no tariff.
type TariffRow struct {
	ID        sql.NullInt64   `db:"id"`
	Name      sql.NullString  `db:"name"`
	Price     sql.NullInt64   `db:"price"`
	Features  core.StringList `db:"features"`
	IsActive  sql.NullBool    `db:"is_active"`
	CreatedAt sql.NullTime    `db:"created_at"`
}

func (r TariffRow) Tariff() *Tariff {
	if !r.ID.Valid {
		return nil
	}
	return &Tariff{
		ID:        r.ID.Int64,
		Name:      r.Name.String,
		Price:     int(r.Price.Int64),
		Features:  r.Features,
		IsActive:  r.IsActive.Bool,
		CreatedAt: r.CreatedAt.Time,
	}
}

type Payment struct {
	ID          int64      `db:"id"`
	CompanyID   int64      `db:"company_id"`
	TariffID    int64      `db:"tariff_id"`
	Amount      int        `db:"amount"`
	Status      string     `db:"status"`
	PaymentDate time.Time  `db:"payment_date"`
	ExpiresAt   *time.Time `db:"expires_at"`
}

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// DefaultTariffs is the plan catalogue installed by the seed command.
func DefaultTariffs() []Tariff {
	return []Tariff{
		{
			Name:     "Basic",
			Price:    0,
			Features: core.StringList{},
		},
		{
			Name:  "Professional",
			Price: 4990,
			Features: core.StringList{
				FeatureUnlimitedResponses,
				FeatureAnalytics,
			},
		},
		{
			Name:  "Premium",
			Price: 14990,
			Features: core.StringList{
				FeatureUnlimitedResponses,
				FeatureTopPlacement,
				FeatureAnalytics,
				FeatureBannerAds,
			},
		},
	}
}
