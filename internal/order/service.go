// AngelaMos | 2026
// service.go

package order

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prombirzha/marketplace/internal/core"
	"github.com/prombirzha/marketplace/internal/events"
	"github.com/prombirzha/marketplace/internal/metrics"
	"github.com/prombirzha/marketplace/internal/policy"
)

type Service struct {
	repo      Repository
	publisher events.Publisher
	metrics   *metrics.Metrics
}

func NewService(
	repo Repository,
	publisher events.Publisher,
	m *metrics.Metrics,
) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{repo: repo, publisher: publisher, metrics: m}
}

func (s *Service) Search(
	ctx context.Context,
	params SearchParams,
) ([]OrderWithCustomer, int, error) {
	if params.Status != "" && !ValidStatus(params.Status) {
		return nil, 0, core.ValidationError(
			"status must be one of [active completed cancelled]",
		)
	}
	if params.BudgetMin != nil && params.BudgetMax != nil &&
		params.BudgetMin.GreaterThan(*params.BudgetMax) {
		return nil, 0, core.ValidationError("budgetMin must be <= budgetMax")
	}

	params.Search = strings.TrimSpace(params.Search)
	return s.repo.Search(ctx, params)
}

func (s *Service) Featured(
	ctx context.Context,
	limit int,
) ([]OrderWithCustomer, error) {
	return s.repo.Featured(ctx, limit)
}

func (s *Service) Get(ctx context.Context, id int64) (*OrderWithCustomer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByCustomer(
	ctx context.Context,
	customerID string,
) ([]OrderWithCustomer, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

func (s *Service) Create(
	ctx context.Context,
	callerID string,
	req *CreateOrderRequest,
) (*Order, error) {
	if callerID == "" {
		return nil, fmt.Errorf("create order: %w", core.ErrUnauthorized)
	}
	if err := checkRange(req.BudgetMin, req.BudgetMax); err != nil {
		return nil, err
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return nil, err
	}

	attachments := core.StringList(req.Attachments)
	if attachments == nil {
		attachments = core.StringList{}
	}

	order := &Order{
		CustomerID:   callerID,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Category:     req.Category,
		Budget:       nullable(req.Budget),
		BudgetMin:    nullable(req.BudgetMin),
		BudgetMax:    nullable(req.BudgetMax),
		Deadline:     deadline,
		Region:       req.Region,
		Requirements: req.Requirements,
		Attachments:  attachments,
		IsUrgent:     req.IsUrgent,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	category := ""
	if order.Category != nil {
		category = *order.Category
	}
	s.metrics.OrderCreated(category)
	s.publisher.Publish(ctx, events.New(
		events.OrderCreated,
		Key(order.ID),
		ToOrderResponse(order),
	))

	slog.InfoContext(ctx, "order created",
		"order_id", order.ID,
		"customer_id", callerID,
	)

	return order, nil
}

func (s *Service) Update(
	ctx context.Context,
	callerID string,
	id int64,
	req *UpdateOrderRequest,
) (*Order, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanUpdateOrder(callerID, existing.CustomerID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, core.ValidationError("title must not be blank")
		}
		req.Title = &title
	}

	lower := req.BudgetMin
	if lower == nil && existing.BudgetMin.Valid {
		lower = &existing.BudgetMin.Decimal
	}
	upper := req.BudgetMax
	if upper == nil && existing.BudgetMax.Valid {
		upper = &existing.BudgetMax.Decimal
	}
	if err := checkRange(lower, upper); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, req)
}

// Key is the event partition key for everything that happens to an order.
func Key(id int64) string {
	return fmt.Sprintf("order:%d", id)
}

func checkRange(lower, upper *decimal.Decimal) error {
	if lower != nil && upper != nil && lower.GreaterThan(*upper) {
		return core.ValidationError("budgetMin must be <= budgetMax")
	}
	return nil
}

func parseDeadline(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, core.ValidationError("deadline must be a date (YYYY-MM-DD)")
	}
	return &t, nil
}

func nullable(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}
