// AngelaMos | 2026
// repository.go

package order

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/prombirzha/marketplace/internal/core"
)

type Repository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id int64) (*OrderWithCustomer, error)
	Update(ctx context.Context, id int64, req *UpdateOrderRequest) (*Order, error)
	Search(ctx context.Context, params SearchParams) ([]OrderWithCustomer, int, error)
	Featured(ctx context.Context, limit int) ([]OrderWithCustomer, error)
	ListByCustomer(ctx context.Context, customerID string) ([]OrderWithCustomer, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const orderColumns = `id, customer_id, title, description, category, budget,
		       budget_min, budget_max, deadline, region, requirements,
		       attachments, status, response_count, is_urgent,
		       created_at, updated_at`

const joinedColumns = `o.id, o.customer_id, o.title, o.description,
		       o.category, o.budget, o.budget_min, o.budget_max,
		       o.deadline, o.region, o.requirements, o.attachments,
		       o.status, o.response_count, o.is_urgent,
		       o.created_at, o.updated_at,
		       u.id AS "customer.id",
		       u.email AS "customer.email",
		       u.first_name AS "customer.first_name",
		       u.last_name AS "customer.last_name",
		       u.profile_image_url AS "customer.profile_image_url",
		       u.role AS "customer.role",
		       u.created_at AS "customer.created_at",
		       u.updated_at AS "customer.updated_at"`

const joinedFrom = `
		FROM orders o
		JOIN users u ON u.id = o.customer_id`

func (r *repository) Create(ctx context.Context, order *Order) error {
	query := `
		INSERT INTO orders (
			customer_id, title, description, category, budget,
			budget_min, budget_max, deadline, region, requirements,
			attachments, is_urgent
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + orderColumns

	err := r.db.GetContext(ctx, order, query,
		order.CustomerID,
		order.Title,
		order.Description,
		order.Category,
		order.Budget,
		order.BudgetMin,
		order.BudgetMax,
		order.Deadline,
		order.Region,
		order.Requirements,
		order.Attachments,
		order.IsUrgent,
	)
	if err != nil {
		return core.TranslateStoreError("create order", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id int64,
) (*OrderWithCustomer, error) {
	query := `SELECT ` + joinedColumns + joinedFrom + ` WHERE o.id = $1`

	var order OrderWithCustomer
	if err := r.db.GetContext(ctx, &order, query, id); err != nil {
		return nil, core.TranslateStoreError("get order", err)
	}

	return &order, nil
}

func (r *repository) Update(
	ctx context.Context,
	id int64,
	req *UpdateOrderRequest,
) (*Order, error) {
	var set core.Set

	if req.Title != nil {
		set.Add("title", *req.Title)
	}
	if req.Description != nil {
		set.Add("description", *req.Description)
	}
	if req.Category != nil {
		set.Add("category", *req.Category)
	}
	if req.Budget != nil {
		set.Add("budget", *req.Budget)
	}
	if req.BudgetMin != nil {
		set.Add("budget_min", *req.BudgetMin)
	}
	if req.BudgetMax != nil {
		set.Add("budget_max", *req.BudgetMax)
	}
	if req.Deadline != nil {
		set.Add("deadline", *req.Deadline)
	}
	if req.Region != nil {
		set.Add("region", *req.Region)
	}
	if req.Requirements != nil {
		set.Add("requirements", *req.Requirements)
	}
	if req.Attachments != nil {
		set.Add("attachments", core.StringList(*req.Attachments))
	}
	if req.Status != nil {
		set.Add("status", *req.Status)
	}
	if req.IsUrgent != nil {
		set.Add("is_urgent", *req.IsUrgent)
	}
	set.AddRaw("updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE orders
		SET %s
		WHERE id = $%d
		RETURNING %s`,
		set.Clause(), set.Next(), orderColumns)

	args := append(set.Args(), id)

	var order Order
	if err := r.db.GetContext(ctx, &order, query, args...); err != nil {
		return nil, core.TranslateStoreError("update order", err)
	}

	return &order, nil
}

// Search lists orders in one status, urgent first then newest. The count
// runs as its own query over the same predicate.
func (r *repository) Search(
	ctx context.Context,
	params SearchParams,
) (orders []OrderWithCustomer, total int, err error) {
	ctx, span := core.StartSpan(ctx, "order.Search",
		attribute.String("status", params.Status),
		attribute.String("category", params.Category),
		attribute.String("region", params.Region),
	)
	defer func() { core.EndSpan(span, err) }()

	status := params.Status
	if status == "" {
		status = StatusActive
	}

	var where core.Where
	where.Add("o.status = $?", status)

	if params.Category != "" {
		where.Add("o.category = $?", params.Category)
	}
	if params.Region != "" {
		where.Add("o.region = $?", params.Region)
	}
	if params.BudgetMin != nil {
		where.Add("o.budget >= $?", *params.BudgetMin)
	}
	if params.BudgetMax != nil {
		where.Add("o.budget <= $?", *params.BudgetMax)
	}
	if params.Search != "" {
		where.Add(
			"(o.title ILIKE $? OR o.description ILIKE $?)",
			core.ContainsPattern(params.Search),
		)
	}

	countQuery := "SELECT COUNT(*) FROM orders o " + where.Clause()
	if err = r.db.GetContext(ctx, &total, countQuery, where.Args()...); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	next := where.Next()
	query := fmt.Sprintf(`
		SELECT %s
		%s
		%s
		ORDER BY o.is_urgent DESC, o.created_at DESC, o.id DESC
		LIMIT $%d OFFSET $%d`,
		joinedColumns, joinedFrom, where.Clause(), next, next+1)

	args := append(where.Args(), params.Limit, params.Offset)

	orders = []OrderWithCustomer{}
	if err = r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, 0, fmt.Errorf("search orders: %w", err)
	}

	return orders, total, nil
}

func (r *repository) Featured(
	ctx context.Context,
	limit int,
) (orders []OrderWithCustomer, err error) {
	ctx, span := core.StartSpan(ctx, "order.Featured")
	defer func() { core.EndSpan(span, err) }()

	query := `SELECT ` + joinedColumns + joinedFrom + `
		WHERE o.status = 'active'
		ORDER BY o.is_urgent DESC, o.budget DESC NULLS LAST, o.created_at DESC, o.id DESC
		LIMIT $1`

	orders = []OrderWithCustomer{}
	if err = r.db.SelectContext(ctx, &orders, query, limit); err != nil {
		return nil, fmt.Errorf("featured orders: %w", err)
	}

	return orders, nil
}

func (r *repository) ListByCustomer(
	ctx context.Context,
	customerID string,
) ([]OrderWithCustomer, error) {
	query := `SELECT ` + joinedColumns + joinedFrom + `
		WHERE o.customer_id = $1
		ORDER BY o.created_at DESC, o.id DESC`

	orders := []OrderWithCustomer{}
	if err := r.db.SelectContext(ctx, &orders, query, customerID); err != nil {
		return nil, fmt.Errorf("list customer orders: %w", err)
	}

	return orders, nil
}
