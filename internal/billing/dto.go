// AngelaMos | 2026
// dto.go

package billing

import (
	"time"
)

type TariffResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     int       `json:"price"`
	Features  []string  `json:"features"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type PaymentResponse struct {
	ID          int64      `json:"id"`
	CompanyID   int64      `json:"companyId"`
	TariffID    int64      `json:"tariffId"`
	Amount      int        `json:"amount"`
	Status      string     `json:"status"`
	PaymentDate time.Time  `json:"paymentDate"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

func ToTariffResponse(t *Tariff) *TariffResponse {
	if t == nil {
		return nil
	}

	features := []string(t.Features)
	if features == nil {
		features = []string{}
	}

	return &TariffResponse{
		ID:        t.ID,
		Name:      t.Name,
		Price:     t.Price,
		Features:  features,
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
	}
}

func ToTariffResponseList(tariffs []Tariff) []TariffResponse {
	out := make([]TariffResponse, 0, len(tariffs))
	for i := range tariffs {
		out = append(out, *ToTariffResponse(&tariffs[i]))
	}
	return out
}

func ToPaymentResponseList(payments []Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, PaymentResponse{
			ID:          p.ID,
			CompanyID:   p.CompanyID,
			TariffID:    p.TariffID,
			Amount:      p.Amount,
			Status:      p.Status,
			PaymentDate: p.PaymentDate,
			ExpiresAt:   p.ExpiresAt,
		})
	}
	return out
}
