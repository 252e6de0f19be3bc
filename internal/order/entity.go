// AngelaMos | 2026
// entity.go

package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/prombirzha/marketplace/internal/core"
	"github.com/prombirzha/marketplace/internal/user"
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Order is a request for quotes posted by a customer. ResponseCount is
// maintained by the response transaction and never written directly.
type Order struct {
	ID            int64               `db:"id"`
	CustomerID    string              `db:"customer_id"`
	Title         string              `db:"title"`
	Description   *string             `db:"description"`
	Category      *string             `db:"category"`
	Budget        decimal.NullDecimal `db:"budget"`
	BudgetMin     decimal.NullDecimal `db:"budget_min"`
	BudgetMax     decimal.NullDecimal `db:"budget_max"`
	Deadline      *time.Time          `db:"deadline"`
	Region        *string             `db:"region"`
	Requirements  *string             `db:"requirements"`
	Attachments   core.StringList     `db:"attachments"`
	Status        string              `db:"status"`
	ResponseCount int                 `db:"response_count"`
	IsUrgent      bool                `db:"is_urgent"`
	CreatedAt     time.Time           `db:"created_at"`
	UpdatedAt     time.Time           `db:"updated_at"`
}

// OrderWithCustomer is an order read with the posting user joined in.
type OrderWithCustomer struct {
	Order
	Customer user.User `db:"customer"`
}
