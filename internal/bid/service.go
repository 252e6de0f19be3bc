// AngelaMos | 2026
// service.go

package bid

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prombirzha/marketplace/internal/company"
	"github.com/prombirzha/marketplace/internal/core"
	"github.com/prombirzha/marketplace/internal/events"
	"github.com/prombirzha/marketplace/internal/metrics"
	"github.com/prombirzha/marketplace/internal/order"
	"github.com/prombirzha/marketplace/internal/policy"
)

type OrderLookup interface {
	Get(ctx context.Context, id int64) (*order.OrderWithCustomer, error)
}

type CompanyLookup interface {
	FindByUserID(ctx context.Context, userID string) (*company.CompanyWithTariff, error)
}

type Service struct {
	repo      Repository
	orders    OrderLookup
	companies CompanyLookup
	publisher events.Publisher
	metrics   *metrics.Metrics
}

func NewService(
	repo Repository,
	orders OrderLookup,
	companies CompanyLookup,
	publisher events.Publisher,
	m *metrics.Metrics,
) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		repo:      repo,
		orders:    orders,
		companies: companies,
		publisher: publisher,
		metrics:   m,
	}
}

// Create records the caller's company's bid on an order. The caller must
// own a company and the order must still be open.
func (s *Service) Create(
	ctx context.Context,
	callerID string,
	orderID int64,
	req *CreateBidRequest,
) (*Bid, error) {
	target, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	bidder, err := s.companies.FindByUserID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanRespond(bidder != nil); err != nil {
		return nil, err
	}

	if target.Status != order.StatusActive {
		return nil, core.ConflictError("order is not accepting responses")
	}

	var deadline *time.Time
	if req.ProposedDeadline != nil {
		t, err := time.Parse(dateLayout, *req.ProposedDeadline)
		if err != nil {
			return nil, core.ValidationError("proposedDeadline must be a date (YYYY-MM-DD)")
		}
		deadline = &t
	}

	var price decimal.NullDecimal
	if req.ProposedPrice != nil {
		price = decimal.NewNullDecimal(*req.ProposedPrice)
	}

	attachments := core.StringList(req.Attachments)
	if attachments == nil {
		attachments = core.StringList{}
	}

	bid := &Bid{
		OrderID:          orderID,
		CompanyID:        bidder.ID,
		Message:          req.Message,
		ProposedPrice:    price,
		ProposedDeadline: deadline,
		Attachments:      attachments,
	}

	if err := s.repo.Create(ctx, bid); err != nil {
		return nil, err
	}

	category := ""
	if target.Category != nil {
		category = *target.Category
	}
	s.metrics.ResponseCreated(category)
	s.publisher.Publish(ctx, events.New(
		events.OrderResponseCreated,
		order.Key(orderID),
		ToBidResponse(bid),
	))

	slog.InfoContext(ctx, "order response created",
		"response_id", bid.ID,
		"order_id", orderID,
		"company_id", bidder.ID,
	)

	return bid, nil
}

func (s *Service) ListForOrder(
	ctx context.Context,
	orderID int64,
) ([]BidWithCompany, error) {
	if _, err := s.orders.Get(ctx, orderID); err != nil {
		return nil, err
	}
	return s.repo.ListForOrder(ctx, orderID)
}

// ListForCaller returns the bids of the caller's company, or an empty list
// when the caller has no company.
func (s *Service) ListForCaller(
	ctx context.Context,
	callerID string,
) ([]BidWithOrder, error) {
	c, err := s.companies.FindByUserID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return []BidWithOrder{}, nil
	}
	return s.repo.ListForCompany(ctx, c.ID)
}

func (s *Service) UpdateStatus(
	ctx context.Context,
	callerID string,
	id int64,
	status string,
) (*Bid, error) {
	parties, err := s.repo.GetParties(ctx, id)
	if err != nil {
		return nil, err
	}

	err = policy.CanSetResponseStatus(
		callerID,
		parties.CustomerID,
		parties.CompanyOwnerID,
		status,
	)
	if err != nil {
		return nil, err
	}

	bid, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.metrics.ResponseStatusChanged(status)
	s.publisher.Publish(ctx, events.New(
		events.OrderResponseStatus,
		order.Key(bid.OrderID),
		map[string]any{
			"responseId": bid.ID,
			"orderId":    bid.OrderID,
			"companyId":  bid.CompanyID,
			"from":       parties.Status,
			"to":         bid.Status,
		},
	))

	return bid, nil
}
