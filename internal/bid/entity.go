// AngelaMos | 2026
// entity.go

package bid

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/prombirzha/marketplace/internal/company"
	"github.com/prombirzha/marketplace/internal/core"
	"github.com/prombirzha/marketplace/internal/order"
)

// Bid is a company's response to an order. It is stored in
// order_responses and every insert bumps the order's response_count.
type Bid struct {
	ID               int64               `db:"id"`
	OrderID          int64               `db:"order_id"`
	CompanyID        int64               `db:"company_id"`
	Message          *string             `db:"message"`
	ProposedPrice    decimal.NullDecimal `db:"proposed_price"`
	ProposedDeadline *time.Time          `db:"proposed_deadline"`
	Attachments      core.StringList     `db:"attachments"`
	Status           string              `db:"status"`
	CreatedAt        time.Time           `db:"created_at"`
}

type BidWithCompany struct {
	Bid
	Company company.Company `db:"company"`
}

type BidWithOrder struct {
	Bid
	Order order.Order `db:"order"`
}

// Parties is a bid with the two users allowed to act on it.
type Parties struct {
	Bid
	CustomerID     string `db:"customer_id"`
	CompanyOwnerID string `db:"company_owner_id"`
}
