// AngelaMos | 2026
// service.go

package billing

import (
	"context"
	"log/slog"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListTariffs(ctx context.Context) ([]Tariff, error) {
	return s.repo.ListActiveTariffs(ctx)
}

func (s *Service) GetTariff(ctx context.Context, id int64) (*Tariff, error) {
	return s.repo.GetTariff(ctx, id)
}

func (s *Service) CompanyPayments(
	ctx context.Context,
	companyID int64,
) ([]Payment, error) {
	return s.repo.ListPayments(ctx, companyID)
}

// SeedTariffs installs the default catalogue. Existing plans are left
// untouched, so it is safe to run repeatedly.
func (s *Service) SeedTariffs(ctx context.Context) (int, error) {
	inserted := 0
	for _, t := range DefaultTariffs() {
		created, err := s.repo.EnsureTariff(ctx, &t)
		if err != nil {
			return inserted, err
		}
		if created {
			inserted++
			slog.InfoContext(ctx, "tariff seeded", "name", t.Name, "price", t.Price)
		}
	}
	return inserted, nil
}
