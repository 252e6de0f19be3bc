// AngelaMos | 2026
// repository.go

package company

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/prombirzha/marketplace/internal/core"
)

type Repository interface {
	Create(ctx context.Context, company *Company) error
	GetByID(ctx context.Context, id int64) (*CompanyWithTariff, error)
	GetByUserID(ctx context.Context, userID string) (*CompanyWithTariff, error)
	Update(ctx context.Context, id int64, req *UpdateCompanyRequest) (*Company, error)
	SetVerified(ctx context.Context, id int64, verified bool) (*Company, error)
	Search(ctx context.Context, params SearchParams) ([]CompanyWithTariff, int, error)
	Featured(ctx context.Context, limit int) ([]CompanyWithTariff, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const companyColumns = `id, user_id, name, description, logo_url, website,
		       phone, email, address, region, category, tags, tariff_id,
		       rating, review_count, is_verified, is_active,
		       created_at, updated_at`

const joinedColumns = `c.id, c.user_id, c.name, c.description, c.logo_url,
		       c.website, c.phone, c.email, c.address, c.region,
		       c.category, c.tags, c.tariff_id, c.rating, c.review_count,
		       c.is_verified, c.is_active, c.created_at, c.updated_at,
		       t.id AS "tariff.id",
		       t.name AS "tariff.name",
		       t.price AS "tariff.price",
		       t.features AS "tariff.features",
		       t.is_active AS "tariff.is_active",
		       t.created_at AS "tariff.created_at"`

const joinedFrom = `
		FROM companies c
		LEFT JOIN tariffs t ON t.id = c.tariff_id`

func (r *repository) Create(ctx context.Context, company *Company) error {
	query := `
		INSERT INTO companies (
			user_id, name, description, logo_url, website, phone,
			email, address, region, category, tags, tariff_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + companyColumns

	err := r.db.GetContext(ctx, company, query,
		company.UserID,
		company.Name,
		company.Description,
		company.LogoURL,
		company.Website,
		company.Phone,
		company.Email,
		company.Address,
		company.Region,
		company.Category,
		company.Tags,
		company.TariffID,
	)
	if err != nil {
		return core.TranslateStoreError("create company", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id int64,
) (*CompanyWithTariff, error) {
	query := `SELECT ` + joinedColumns + joinedFrom + ` WHERE c.id = $1`

	var company CompanyWithTariff
	if err := r.db.GetContext(ctx, &company, query, id); err != nil {
		return nil, core.TranslateStoreError("get company", err)
	}

	return &company, nil
}

func (r *repository) GetByUserID(
	ctx context.Context,
	userID string,
) (*CompanyWithTariff, error) {
	query := `SELECT ` + joinedColumns + joinedFrom + ` WHERE c.user_id = $1`

	var company CompanyWithTariff
	if err := r.db.GetContext(ctx, &company, query, userID); err != nil {
		return nil, core.TranslateStoreError("get company by user", err)
	}

	return &company, nil
}

func (r *repository) Update(
	ctx context.Context,
	id int64,
	req *UpdateCompanyRequest,
) (*Company, error) {
	var set core.Set

	if req.Name != nil {
		set.Add("name", *req.Name)
	}
	if req.Description != nil {
		set.Add("description", *req.Description)
	}
	if req.LogoURL != nil {
		set.Add("logo_url", *req.LogoURL)
	}
	if req.Website != nil {
		set.Add("website", *req.Website)
	}
	if req.Phone != nil {
		set.Add("phone", *req.Phone)
	}
	if req.Email != nil {
		set.Add("email", *req.Email)
	}
	if req.Address != nil {
		set.Add("address", *req.Address)
	}
	if req.Region != nil {
		set.Add("region", *req.Region)
	}
	if req.Category != nil {
		set.Add("category", *req.Category)
	}
	if req.Tags != nil {
		set.Add("tags", core.StringList(*req.Tags))
	}
	if req.TariffID != nil {
		set.Add("tariff_id", *req.TariffID)
	}
	if req.IsActive != nil {
		set.Add("is_active", *req.IsActive)
	}
	set.AddRaw("updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE companies
		SET %s
		WHERE id = $%d
		RETURNING %s`,
		set.Clause(), set.Next(), companyColumns)

	args := append(set.Args(), id)

	var company Company
	if err := r.db.GetContext(ctx, &company, query, args...); err != nil {
		return nil, core.TranslateStoreError("update company", err)
	}

	return &company, nil
}

func (r *repository) SetVerified(
	ctx context.Context,
	id int64,
	verified bool,
) (*Company, error) {
	query := `
		UPDATE companies
		SET is_verified = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + companyColumns

	var company Company
	if err := r.db.GetContext(ctx, &company, query, id, verified); err != nil {
		return nil, core.TranslateStoreError("set company verification", err)
	}

	return &company, nil
}

// Search lists active companies, best rated first. The count shares the
// page query's predicate but ignores limit and offset.
func (r *repository) Search(
	ctx context.Context,
	params SearchParams,
) (companies []CompanyWithTariff, total int, err error) {
	ctx, span := core.StartSpan(ctx, "company.Search",
		attribute.String("category", params.Category),
		attribute.String("region", params.Region),
	)
	defer func() { core.EndSpan(span, err) }()

	var where core.Where
	where.AddRaw("c.is_active = TRUE")

	if params.Category != "" {
		where.Add("c.category = $?", params.Category)
	}
	if params.Region != "" {
		where.Add("c.region = $?", params.Region)
	}
	if params.Search != "" {
		where.Add(
			"(c.name ILIKE $? OR c.description ILIKE $?)",
			core.ContainsPattern(params.Search),
		)
	}

	countQuery := "SELECT COUNT(*) FROM companies c " + where.Clause()
	if err = r.db.GetContext(ctx, &total, countQuery, where.Args()...); err != nil {
		return nil, 0, fmt.Errorf("count companies: %w", err)
	}

	next := where.Next()
	query := fmt.Sprintf(`
		SELECT %s
		%s
		%s
		ORDER BY c.rating DESC, c.created_at DESC, c.id DESC
		LIMIT $%d OFFSET $%d`,
		joinedColumns, joinedFrom, where.Clause(), next, next+1)

	args := append(where.Args(), params.Limit, params.Offset)

	companies = []CompanyWithTariff{}
	if err = r.db.SelectContext(ctx, &companies, query, args...); err != nil {
		return nil, 0, fmt.Errorf("search companies: %w", err)
	}

	return companies, total, nil
}

func (r *repository) Featured(
	ctx context.Context,
	limit int,
) (companies []CompanyWithTariff, err error) {
	ctx, span := core.StartSpan(ctx, "company.Featured")
	defer func() { core.EndSpan(span, err) }()

	query := `SELECT ` + joinedColumns + joinedFrom + `
		WHERE c.is_active = TRUE AND c.is_verified = TRUE
		ORDER BY c.rating DESC, c.review_count DESC, c.id DESC
		LIMIT $1`

	companies = []CompanyWithTariff{}
	if err = r.db.SelectContext(ctx, &companies, query, limit); err != nil {
		return nil, fmt.Errorf("featured companies: %w", err)
	}

	return companies, nil
}
