// AngelaMos | 2026
// entity.go

package review

import (
	"time"

	"github.com/prombirzha/marketplace/internal/user"
)

type Review struct {
	ID         int64     `db:"id"`
	CompanyID  int64     `db:"company_id"`
	CustomerID string    `db:"customer_id"`
	OrderID    *int64    `db:"order_id"`
	Rating     int       `db:"rating"`
	Comment    *string   `db:"comment"`
	CreatedAt  time.Time `db:"created_at"`
}

type ReviewWithCustomer struct {
	Review
	Customer user.User `db:"customer"`
}
