// AngelaMos | 2026
// dto.go

package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/prombirzha/marketplace/internal/user"
)

const dateLayout = "2006-01-02"

type CreateOrderRequest struct {
	Title        string           `json:"title"        validate:"required,min=1,max=255"`
	Description  *string          `json:"description"  validate:"omitempty,max=10000"`
	Category     *string          `json:"category"     validate:"omitempty,max=100"`
	Budget       *decimal.Decimal `json:"budget"       validate:"omitempty,gte=0,lte=9999999999.99"`
	BudgetMin    *decimal.Decimal `json:"budgetMin"    validate:"omitempty,gte=0,lte=9999999999.99"`
	BudgetMax    *decimal.Decimal `json:"budgetMax"    validate:"omitempty,gte=0,lte=9999999999.99"`
	Deadline     *string          `json:"deadline"     validate:"omitempty,datetime=2006-01-02"`
	Region       *string          `json:"region"       validate:"omitempty,max=100"`
	Requirements *string          `json:"requirements" validate:"omitempty,max=10000"`
	Attachments  []string         `json:"attachments"  validate:"omitempty,max=20,dive,url"`
	IsUrgent     bool             `json:"isUrgent"`
}

// UpdateOrderRequest is a partial update. Absent fields are left alone and
// the response counter is not client-writable.
type UpdateOrderRequest struct {
	Title        *string          `json:"title"        validate:"omitempty,min=1,max=255"`
	Description  *string          `json:"description"  validate:"omitempty,max=10000"`
	Category     *string          `json:"category"     validate:"omitempty,max=100"`
	Budget       *decimal.Decimal `json:"budget"       validate:"omitempty,gte=0,lte=9999999999.99"`
	BudgetMin    *decimal.Decimal `json:"budgetMin"    validate:"omitempty,gte=0,lte=9999999999.99"`
	BudgetMax    *decimal.Decimal `json:"budgetMax"    validate:"omitempty,gte=0,lte=9999999999.99"`
	Deadline     *string          `json:"deadline"     validate:"omitempty,datetime=2006-01-02"`
	Region       *string          `json:"region"       validate:"omitempty,max=100"`
	Requirements *string          `json:"requirements" validate:"omitempty,max=10000"`
	Attachments  *[]string        `json:"attachments"  validate:"omitempty,max=20,dive,url"`
	Status       *string          `json:"status"       validate:"omitempty,oneof=active completed cancelled"`
	IsUrgent     *bool            `json:"isUrgent"`
}

func (r *UpdateOrderRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.Category == nil &&
		r.Budget == nil && r.BudgetMin == nil && r.BudgetMax == nil &&
		r.Deadline == nil && r.Region == nil && r.Requirements == nil &&
		r.Attachments == nil && r.Status == nil && r.IsUrgent == nil
}

// SearchParams filters the public order listing. BudgetMin and BudgetMax
// bound the single budget column only.
type SearchParams struct {
	Category  string
	Region    string
	Search    string
	Status    string
	BudgetMin *decimal.Decimal
	BudgetMax *decimal.Decimal
	Limit     int
	Offset    int
}

type OrderResponse struct {
	ID            int64               `json:"id"`
	CustomerID    string              `json:"customerId"`
	Title         string              `json:"title"`
	Description   *string             `json:"description"`
	Category      *string             `json:"category"`
	Budget        decimal.NullDecimal `json:"budget"`
	BudgetMin     decimal.NullDecimal `json:"budgetMin"`
	BudgetMax     decimal.NullDecimal `json:"budgetMax"`
	Deadline      *string             `json:"deadline"`
	Region        *string             `json:"region"`
	Requirements  *string             `json:"requirements"`
	Attachments   []string            `json:"attachments"`
	Status        string              `json:"status"`
	ResponseCount int                 `json:"responseCount"`
	IsUrgent      bool                `json:"isUrgent"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
	Customer      *user.UserResponse  `json:"customer,omitempty"`
}

func ToOrderResponse(o *Order) OrderResponse {
	attachments := []string(o.Attachments)
	if attachments == nil {
		attachments = []string{}
	}

	var deadline *string
	if o.Deadline != nil {
		d := o.Deadline.Format(dateLayout)
		deadline = &d
	}

	return OrderResponse{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		Title:         o.Title,
		Description:   o.Description,
		Category:      o.Category,
		Budget:        o.Budget,
		BudgetMin:     o.BudgetMin,
		BudgetMax:     o.BudgetMax,
		Deadline:      deadline,
		Region:        o.Region,
		Requirements:  o.Requirements,
		Attachments:   attachments,
		Status:        o.Status,
		ResponseCount: o.ResponseCount,
		IsUrgent:      o.IsUrgent,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func ToOrderWithCustomerResponse(o *OrderWithCustomer) OrderResponse {
	resp := ToOrderResponse(&o.Order)
	customer := user.ToUserResponse(&o.Customer)
	resp.Customer = &customer
	return resp
}

func ToOrderWithCustomerResponseList(orders []OrderWithCustomer) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, ToOrderWithCustomerResponse(&orders[i]))
	}
	return out
}
