// AngelaMos | 2026
// dto.go

package bid

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/prombirzha/marketplace/internal/company"
	"github.com/prombirzha/marketplace/internal/order"
)

const dateLayout = "2006-01-02"

type CreateBidRequest struct {
	Message          *string          `json:"message"          validate:"omitempty,max=5000"`
	ProposedPrice    *decimal.Decimal `json:"proposedPrice"    validate:"omitempty,gte=0,lte=9999999999.99"`
	ProposedDeadline *string          `json:"proposedDeadline" validate:"omitempty,datetime=2006-01-02"`
	Attachments      []string         `json:"attachments"      validate:"omitempty,max=20,dive,url"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending accepted rejected"`
}

type BidResponse struct {
	ID               int64                    `json:"id"`
	OrderID          int64                    `json:"orderId"`
	CompanyID        int64                    `json:"companyId"`
	Message          *string                  `json:"message"`
	ProposedPrice    decimal.NullDecimal      `json:"proposedPrice"`
	ProposedDeadline *string                  `json:"proposedDeadline"`
	Attachments      []string                 `json:"attachments"`
	Status           string                   `json:"status"`
	CreatedAt        time.Time                `json:"createdAt"`
	Company          *company.CompanyResponse `json:"company,omitempty"`
	Order            *order.OrderResponse     `json:"order,omitempty"`
}

func ToBidResponse(b *Bid) BidResponse {
	attachments := []string(b.Attachments)
	if attachments == nil {
		attachments = []string{}
	}

	var deadline *string
	if b.ProposedDeadline != nil {
		d := b.ProposedDeadline.Format(dateLayout)
		deadline = &d
	}

	return BidResponse{
		ID:               b.ID,
		OrderID:          b.OrderID,
		CompanyID:        b.CompanyID,
		Message:          b.Message,
		ProposedPrice:    b.ProposedPrice,
		ProposedDeadline: deadline,
		Attachments:      attachments,
		Status:           b.Status,
		CreatedAt:        b.CreatedAt,
	}
}

func ToBidWithCompanyResponseList(bids []BidWithCompany) []BidResponse {
	out := make([]BidResponse, 0, len(bids))
	for i := range bids {
		resp := ToBidResponse(&bids[i].Bid)
		c := company.ToCompanyResponse(&bids[i].Company)
		resp.Company = &c
		out = append(out, resp)
	}
	return out
}

func ToBidWithOrderResponseList(bids []BidWithOrder) []BidResponse {
	out := make([]BidResponse, 0, len(bids))
	for i := range bids {
		resp := ToBidResponse(&bids[i].Bid)
		o := order.ToOrderResponse(&bids[i].Order)
		resp.Order = &o
		out = append(out, resp)
	}
	return out
}
