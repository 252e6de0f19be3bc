// AngelaMos | 2026
// repository.go

package review

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/prombirzha/marketplace/internal/core"
)

type Repository interface {
	Create(ctx context.Context, review *Review) (*Aggregate, error)
	ListForCompany(ctx context.Context, companyID int64) ([]ReviewWithCustomer, error)
}

// Aggregate is the company's rating state right after a review commits.
type Aggregate struct {
	Rating      decimal.Decimal `db:"rating"`
	ReviewCount int             `db:"review_count"`
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const reviewColumns = `id, company_id, customer_id, order_id, rating,
		       comment, created_at`

// Create inserts the review and recomputes the company's rating and
// review count. The company row is locked first, so concurrent reviews
// of one company apply one after another.
func (r *repository) Create(
	ctx context.Context,
	review *Review,
) (agg *Aggregate, err error) {
	ctx, span := core.StartSpan(ctx, "review.Create",
		attribute.Int64("company_id", review.CompanyID),
		attribute.Int("rating", review.Rating),
	)
	defer func() { core.EndSpan(span, err) }()

	err = core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var locked int64
		err := tx.GetContext(ctx, &locked,
			`SELECT id FROM companies WHERE id = $1 FOR UPDATE`,
			review.CompanyID,
		)
		if err != nil {
			return core.TranslateStoreError("lock company", err)
		}

		insert := `
			INSERT INTO reviews (company_id, customer_id, order_id, rating, comment)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING ` + reviewColumns

		err = tx.GetContext(ctx, review, insert,
			review.CompanyID,
			review.CustomerID,
			review.OrderID,
			review.Rating,
			review.Comment,
		)
		if err != nil {
			return core.TranslateStoreError("create review", err)
		}

		recompute := `
			UPDATE companies
			SET rating = (
			        SELECT COALESCE(ROUND(AVG(rating)::numeric, 2), 0)
			        FROM reviews WHERE company_id = $1
			    ),
			    review_count = (
			        SELECT COUNT(*) FROM reviews WHERE company_id = $1
			    ),
			    updated_at = NOW()
			WHERE id = $1
			RETURNING rating, review_count`

		var a Aggregate
		if err := tx.GetContext(ctx, &a, recompute, review.CompanyID); err != nil {
			return core.TranslateStoreError("recompute company rating", err)
		}
		agg = &a

		return nil
	})
	if err != nil {
		return nil, err
	}

	return agg, nil
}

func (r *repository) ListForCompany(
	ctx context.Context,
	companyID int64,
) ([]ReviewWithCustomer, error) {
	query := `
		SELECT rv.id, rv.company_id, rv.customer_id, rv.order_id,
		       rv.rating, rv.comment, rv.created_at,
		       u.id AS "customer.id",
		       u.email AS "customer.email",
		       u.first_name AS "customer.first_name",
		       u.last_name AS "customer.last_name",
		       u.profile_image_url AS "customer.profile_image_url",
		       u.role AS "customer.role",
		       u.created_at AS "customer.created_at",
		       u.updated_at AS "customer.updated_at"
		FROM reviews rv
		JOIN users u ON u.id = rv.customer_id
		WHERE rv.company_id = $1
		ORDER BY rv.created_at DESC, rv.id DESC`

	reviews := []ReviewWithCustomer{}
	if err := r.db.SelectContext(ctx, &reviews, query, companyID); err != nil {
		return nil, fmt.Errorf("list company reviews: %w", err)
	}

	return reviews, nil
}
