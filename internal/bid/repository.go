// AngelaMos | 2026
// repository.go

package bid

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/prombirzha/marketplace/internal/core"
)

type Repository interface {
	Create(ctx context.Context, bid *Bid) error
	GetParties(ctx context.Context, id int64) (*Parties, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*Bid, error)
	ListForOrder(ctx context.Context, orderID int64) ([]BidWithCompany, error)
	ListForCompany(ctx context.Context, companyID int64) ([]BidWithOrder, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository needs the pool itself rather than a DBTX because Create
// opens its own transaction.
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const bidColumns = `id, order_id, company_id, message, proposed_price,
		       proposed_deadline, attachments, status, created_at`

const prefixedColumns = `b.id, b.order_id, b.company_id, b.message,
		       b.proposed_price, b.proposed_deadline, b.attachments,
		       b.status, b.created_at`

const companyColumns = `
		       c.id AS "company.id",
		       c.user_id AS "company.user_id",
		       c.name AS "company.name",
		       c.description AS "company.description",
		       c.logo_url AS "company.logo_url",
		       c.website AS "company.website",
		       c.phone AS "company.phone",
		       c.email AS "company.email",
		       c.address AS "company.address",
		       c.region AS "company.region",
		       c.category AS "company.category",
		       c.tags AS "company.tags",
		       c.tariff_id AS "company.tariff_id",
		       c.rating AS "company.rating",
		       c.review_count AS "company.review_count",
		       c.is_verified AS "company.is_verified",
		       c.is_active AS "company.is_active",
		       c.created_at AS "company.created_at",
		       c.updated_at AS "company.updated_at"`

const orderColumns = `
		       o.id AS "order.id",
		       o.customer_id AS "order.customer_id",
		       o.title AS "order.title",
		       o.description AS "order.description",
		       o.category AS "order.category",
		       o.budget AS "order.budget",
		       o.budget_min AS "order.budget_min",
		       o.budget_max AS "order.budget_max",
		       o.deadline AS "order.deadline",
		       o.region AS "order.region",
		       o.requirements AS "order.requirements",
		       o.attachments AS "order.attachments",
		       o.status AS "order.status",
		       o.response_count AS "order.response_count",
		       o.is_urgent AS "order.is_urgent",
		       o.created_at AS "order.created_at",
		       o.updated_at AS "order.updated_at"`

// Create inserts the bid and increments the order's response counter in
// one transaction. If the order row is gone the insert is rolled back.
func (r *repository) Create(ctx context.Context, bid *Bid) (err error) {
	ctx, span := core.StartSpan(ctx, "bid.Create",
		attribute.Int64("order_id", bid.OrderID),
		attribute.Int64("company_id", bid.CompanyID),
	)
	defer func() { core.EndSpan(span, err) }()

	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		insert := `
			INSERT INTO order_responses (
				order_id, company_id, message, proposed_price,
				proposed_deadline, attachments
			)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING ` + bidColumns

		err := tx.GetContext(ctx, bid, insert,
			bid.OrderID,
			bid.CompanyID,
			bid.Message,
			bid.ProposedPrice,
			bid.ProposedDeadline,
			bid.Attachments,
		)
		if err != nil {
			if core.IsForeignKeyError(err) {
				return fmt.Errorf("create response: order or company missing: %w", core.ErrNotFound)
			}
			return core.TranslateStoreError("create response", err)
		}

		increment := `
			UPDATE orders
			SET response_count = response_count + 1, updated_at = NOW()
			WHERE id = $1`

		result, err := tx.ExecContext(ctx, increment, bid.OrderID)
		if err != nil {
			return core.TranslateStoreError("increment response count", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("increment response count: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("increment response count: %w", core.ErrNotFound)
		}

		return nil
	})
}

func (r *repository) GetParties(ctx context.Context, id int64) (*Parties, error) {
	query := `
		SELECT ` + prefixedColumns + `,
		       o.customer_id AS customer_id,
		       c.user_id AS company_owner_id
		FROM order_responses b
		JOIN orders o ON o.id = b.order_id
		JOIN companies c ON c.id = b.company_id
		WHERE b.id = $1`

	var p Parties
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		return nil, core.TranslateStoreError("get response", err)
	}

	return &p, nil
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	id int64,
	status string,
) (*Bid, error) {
	query := `
		UPDATE order_responses
		SET status = $2
		WHERE id = $1
		RETURNING ` + bidColumns

	var bid Bid
	if err := r.db.GetContext(ctx, &bid, query, id, status); err != nil {
		return nil, core.TranslateStoreError("update response status", err)
	}

	return &bid, nil
}

func (r *repository) ListForOrder(
	ctx context.Context,
	orderID int64,
) ([]BidWithCompany, error) {
	query := `
		SELECT ` + prefixedColumns + `,` + companyColumns + `
		FROM order_responses b
		JOIN companies c ON c.id = b.company_id
		WHERE b.order_id = $1
		ORDER BY b.created_at DESC, b.id DESC`

	bids := []BidWithCompany{}
	if err := r.db.SelectContext(ctx, &bids, query, orderID); err != nil {
		return nil, fmt.Errorf("list order responses: %w", err)
	}

	return bids, nil
}

func (r *repository) ListForCompany(
	ctx context.Context,
	companyID int64,
) ([]BidWithOrder, error) {
	query := `
		SELECT ` + prefixedColumns + `,` + orderColumns + `
		FROM order_responses b
		JOIN orders o ON o.id = b.order_id
		WHERE b.company_id = $1
		ORDER BY b.created_at DESC, b.id DESC`

	bids := []BidWithOrder{}
	if err := r.db.SelectContext(ctx, &bids, query, companyID); err != nil {
		return nil, fmt.Errorf("list company responses: %w", err)
	}

	return bids, nil
}
