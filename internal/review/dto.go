// AngelaMos | 2026
// dto.go

package review

import (
	"time"

	"github.com/prombirzha/marketplace/internal/user"
)

type CreateReviewRequest struct {
	Rating  int     `json:"rating"  validate:"required,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=5000"`
	OrderID *int64  `json:"orderId" validate:"omitempty,gte=1"`
}

type ReviewResponse struct {
	ID         int64              `json:"id"`
	CompanyID  int64              `json:"companyId"`
	CustomerID string             `json:"customerId"`
	OrderID    *int64             `json:"orderId"`
	Rating     int                `json:"rating"`
	Comment    *string            `json:"comment"`
	CreatedAt  time.Time          `json:"createdAt"`
	Customer   *user.UserResponse `json:"customer,omitempty"`
}

func ToReviewResponse(r *Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		CompanyID:  r.CompanyID,
		CustomerID: r.CustomerID,
		OrderID:    r.OrderID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}

func ToReviewWithCustomerResponseList(reviews []ReviewWithCustomer) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		resp := ToReviewResponse(&reviews[i].Review)
		customer := user.ToUserResponse(&reviews[i].Customer)
		resp.Customer = &customer
		out = append(out, resp)
	}
	return out
}
