// AngelaMos | 2026
// service.go

package company

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prombirzha/marketplace/internal/billing"
	"github.com/prombirzha/marketplace/internal/core"
	"github.com/prombirzha/marketplace/internal/events"
	"github.com/prombirzha/marketplace/internal/metrics"
	"github.com/prombirzha/marketplace/internal/policy"
)

// PaymentLister is the slice of billing the dashboard needs.
type PaymentLister interface {
	CompanyPayments(ctx context.Context, companyID int64) ([]billing.Payment, error)
}

type Service struct {
	repo      Repository
	payments  PaymentLister
	publisher events.Publisher
	metrics   *metrics.Metrics
}

func NewService(
	repo Repository,
	payments PaymentLister,
	publisher events.Publisher,
	m *metrics.Metrics,
) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		repo:      repo,
		payments:  payments,
		publisher: publisher,
		metrics:   m,
	}
}

func (s *Service) Search(
	ctx context.Context,
	params SearchParams,
) ([]CompanyWithTariff, int, error) {
	params.Search = strings.TrimSpace(params.Search)
	return s.repo.Search(ctx, params)
}

func (s *Service) Featured(
	ctx context.Context,
	limit int,
) ([]CompanyWithTariff, error) {
	return s.repo.Featured(ctx, limit)
}

func (s *Service) Get(ctx context.Context, id int64) (*CompanyWithTariff, error) {
	return s.repo.GetByID(ctx, id)
}

// FindByUserID returns the caller's company, or nil when they have none.
func (s *Service) FindByUserID(
	ctx context.Context,
	userID string,
) (*CompanyWithTariff, error) {
	company, err := s.repo.GetByUserID(ctx, userID)
	if errors.Is(err, core.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return company, nil
}

func (s *Service) Create(
	ctx context.Context,
	callerID string,
	req *CreateCompanyRequest,
) (*Company, error) {
	existing, err := s.FindByUserID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanCreateCompany(existing != nil); err != nil {
		return nil, err
	}

	tags := core.StringList(req.Tags)
	if tags == nil {
		tags = core.StringList{}
	}

	company := &Company{
		UserID:      callerID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		LogoURL:     req.LogoURL,
		Website:     req.Website,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		Region:      req.Region,
		Category:    req.Category,
		Tags:        tags,
		TariffID:    req.TariffID,
	}

	if err := s.repo.Create(ctx, company); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.ConflictError("user already has a company")
		}
		return nil, err
	}

	s.metrics.CompanyCreated(deref(company.Category))
	s.publisher.Publish(ctx, events.New(
		events.CompanyCreated,
		companyKey(company.ID),
		ToCompanyResponse(company),
	))

	slog.InfoContext(ctx, "company created",
		"company_id", company.ID,
		"user_id", callerID,
	)

	return company, nil
}

func (s *Service) Update(
	ctx context.Context,
	callerID string,
	id int64,
	req *UpdateCompanyRequest,
) (*Company, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanUpdateCompany(callerID, existing.UserID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, core.ValidationError("name must not be blank")
		}
		req.Name = &name
	}

	return s.repo.Update(ctx, id, req)
}

// SetVerified flips the verification badge. Only admins reach this.
func (s *Service) SetVerified(
	ctx context.Context,
	id int64,
	verified bool,
) (*Company, error) {
	company, err := s.repo.SetVerified(ctx, id, verified)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.New(
		events.CompanyVerified,
		companyKey(company.ID),
		map[string]any{"companyId": company.ID, "isVerified": verified},
	))

	return company, nil
}

// Payments lists the payment history of the caller's company. A caller
// without a company has no payments.
func (s *Service) Payments(
	ctx context.Context,
	callerID string,
) ([]billing.Payment, error) {
	company, err := s.FindByUserID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return []billing.Payment{}, nil
	}

	return s.payments.CompanyPayments(ctx, company.ID)
}

func companyKey(id int64) string {
	return fmt.Sprintf("company:%d", id)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
