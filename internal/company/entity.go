// AngelaMos | 2026
// entity.go

package company

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/prombirzha/marketplace/internal/billing"
	"github.com/prombirzha/marketplace/internal/core"
)

// Company is a supplier profile. Rating and ReviewCount are derived from
// reviews and only the review transaction writes them.
type Company struct {
	ID          int64           `db:"id"`
	UserID      string          `db:"user_id"`
	Name        string          `db:"name"`
	Description *string         `db:"description"`
	LogoURL     *string         `db:"logo_url"`
	Website     *string         `db:"website"`
	Phone       *string         `db:"phone"`
	Email       *string         `db:"email"`
	Address     *string         `db:"address"`
	Region      *string         `db:"region"`
	Category    *string         `db:"category"`
	Tags        core.StringList `db:"tags"`
	TariffID    *int64          `db:"tariff_id"`
	Rating      decimal.Decimal `db:"rating"`
	ReviewCount int             `db:"review_count"`
	IsVerified  bool            `db:"is_verified"`
	IsActive    bool            `db:"is_active"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func (c *Company) OwnedBy(userID string) bool {
	return userID != "" && c.UserID == userID
}

// CompanyWithTariff is a company read with its plan left-joined.
type CompanyWithTariff struct {
	Company
	Tariff billing.TariffRow `db:"tariff"`
}
