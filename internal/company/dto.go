// AngelaMos | 2026
// dto.go

package company

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/prombirzha/marketplace/internal/billing"
)

type CreateCompanyRequest struct {
	Name        string   `json:"name"        validate:"required,min=1,max=255"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	LogoURL     *string  `json:"logoUrl"     validate:"omitempty,url"`
	Website     *string  `json:"website"     validate:"omitempty,url"`
	Phone       *string  `json:"phone"       validate:"omitempty,max=50"`
	Email       *string  `json:"email"       validate:"omitempty,email"`
	Address     *string  `json:"address"     validate:"omitempty,max=500"`
	Region      *string  `json:"region"      validate:"omitempty,max=100"`
	Category    *string  `json:"category"    validate:"omitempty,max=100"`
	Tags        []string `json:"tags"        validate:"omitempty,max=20,dive,min=1,max=50"`
	TariffID    *int64   `json:"tariffId"    validate:"omitempty,gte=1"`
}

// UpdateCompanyRequest is a partial update. Absent fields are left alone.
// Rating, review count and verification are not client-writable.
type UpdateCompanyRequest struct {
	Name        *string   `json:"name"        validate:"omitempty,min=1,max=255"`
	Description *string   `json:"description" validate:"omitempty,max=5000"`
	LogoURL     *string   `json:"logoUrl"     validate:"omitempty,url"`
	Website     *string   `json:"website"     validate:"omitempty,url"`
	Phone       *string   `json:"phone"       validate:"omitempty,max=50"`
	Email       *string   `json:"email"       validate:"omitempty,email"`
	Address     *string   `json:"address"     validate:"omitempty,max=500"`
	Region      *string   `json:"region"      validate:"omitempty,max=100"`
	Category    *string   `json:"category"    validate:"omitempty,max=100"`
	Tags        *[]string `json:"tags"        validate:"omitempty,max=20,dive,min=1,max=50"`
	TariffID    *int64    `json:"tariffId"    validate:"omitempty,gte=1"`
	IsActive    *bool     `json:"isActive"`
}

func (r *UpdateCompanyRequest) Empty() bool {
	return r.Name == nil && r.Description == nil && r.LogoURL == nil &&
		r.Website == nil && r.Phone == nil && r.Email == nil &&
		r.Address == nil && r.Region == nil && r.Category == nil &&
		r.Tags == nil && r.TariffID == nil && r.IsActive == nil
}

type SetVerificationRequest struct {
	IsVerified *bool `json:"isVerified" validate:"required"`
}

type SearchParams struct {
	Category string
	Region   string
	Search   string
	Limit    int
	Offset   int
}

type CompanyResponse struct {
	ID          int64                   `json:"id"`
	UserID      string                  `json:"userId"`
	Name        string                  `json:"name"`
	Description *string                 `json:"description"`
	LogoURL     *string                 `json:"logoUrl"`
	Website     *string                 `json:"website"`
	Phone       *string                 `json:"phone"`
	Email       *string                 `json:"email"`
	Address     *string                 `json:"address"`
	Region      *string                 `json:"region"`
	Category    *string                 `json:"category"`
	Tags        []string                `json:"tags"`
	TariffID    *int64                  `json:"tariffId"`
	Rating      decimal.Decimal         `json:"rating"`
	ReviewCount int                     `json:"reviewCount"`
	IsVerified  bool                    `json:"isVerified"`
	IsActive    bool                    `json:"isActive"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
	Tariff      *billing.TariffResponse `json:"tariff"`
}

func ToCompanyResponse(c *Company) CompanyResponse {
	tags := []string(c.Tags)
	if tags == nil {
		tags = []string{}
	}

	return CompanyResponse{
		ID:          c.ID,
		UserID:      c.UserID,
		Name:        c.Name,
		Description: c.Description,
		LogoURL:     c.LogoURL,
		Website:     c.Website,
		Phone:       c.Phone,
		Email:       c.Email,
		Address:     c.Address,
		Region:      c.Region,
		Category:    c.Category,
		Tags:        tags,
		TariffID:    c.TariffID,
		Rating:      c.Rating.Round(2),
		ReviewCount: c.ReviewCount,
		IsVerified:  c.IsVerified,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func ToCompanyWithTariffResponse(c *CompanyWithTariff) CompanyResponse {
	resp := ToCompanyResponse(&c.Company)
	resp.Tariff = billing.ToTariffResponse(c.Tariff.Tariff())
	return resp
}

func ToCompanyWithTariffResponseList(companies []CompanyWithTariff) []CompanyResponse {
	out := make([]CompanyResponse, 0, len(companies))
	for i := range companies {
		out = append(out, ToCompanyWithTariffResponse(&companies[i]))
	}
	return out
}
