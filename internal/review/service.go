// AngelaMos | 2026
// service.go

package review

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prombirzha/marketplace/internal/company"
	"github.com/prombirzha/marketplace/internal/core"
	"github.com/prombirzha/marketplace/internal/events"
	"github.com/prombirzha/marketplace/internal/metrics"
	"github.com/prombirzha/marketplace/internal/order"
	"github.com/prombirzha/marketplace/internal/policy"
)

type CompanyLookup interface {
	Get(ctx context.Context, id int64) (*company.CompanyWithTariff, error)
}

type OrderLookup interface {
	Get(ctx context.Context, id int64) (*order.OrderWithCustomer, error)
}

type Service struct {
	repo      Repository
	companies CompanyLookup
	orders    OrderLookup
	publisher events.Publisher
	metrics   *metrics.Metrics
}

func NewService(
	repo Repository,
	companies CompanyLookup,
	orders OrderLookup,
	publisher events.Publisher,
	m *metrics.Metrics,
) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		repo:      repo,
		companies: companies,
		orders:    orders,
		publisher: publisher,
		metrics:   m,
	}
}

func (s *Service) Create(
	ctx context.Context,
	callerID string,
	companyID int64,
	req *CreateReviewRequest,
) (*Review, *Aggregate, error) {
	target, err := s.companies.Get(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	if err := policy.CanReview(callerID, target.UserID); err != nil {
		return nil, nil, err
	}

	if req.OrderID != nil {
		o, err := s.orders.Get(ctx, *req.OrderID)
		if err != nil {
			return nil, nil, err
		}
		if o.CustomerID != callerID {
			return nil, nil, core.ForbiddenError("a review can only reference your own order")
		}
	}

	review := &Review{
		CompanyID:  companyID,
		CustomerID: callerID,
		OrderID:    req.OrderID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	agg, err := s.repo.Create(ctx, review)
	if err != nil {
		return nil, nil, err
	}

	s.metrics.ReviewCreated(review.Rating)
	s.publisher.Publish(ctx, events.New(
		events.ReviewCreated,
		fmt.Sprintf("company:%d", companyID),
		map[string]any{
			"review":      ToReviewResponse(review),
			"rating":      agg.Rating,
			"reviewCount": agg.ReviewCount,
		},
	))

	slog.InfoContext(ctx, "review created",
		"review_id", review.ID,
		"company_id", companyID,
		"rating", review.Rating,
		"company_rating", agg.Rating.String(),
	)

	return review, agg, nil
}

func (s *Service) ListForCompany(
	ctx context.Context,
	companyID int64,
) ([]ReviewWithCustomer, error) {
	if _, err := s.companies.Get(ctx, companyID); err != nil {
		return nil, err
	}
	return s.repo.ListForCompany(ctx, companyID)
}
