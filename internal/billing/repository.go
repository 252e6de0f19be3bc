// AngelaMos | 2026
// repository.go

package billing

import (
	"context"
	"fmt"

	"github.com/prombirzha/marketplace/internal/core"
)

type Repository interface {
	ListActiveTariffs(ctx context.Context) ([]Tariff, error)
	GetTariff(ctx context.Context, id int64) (*Tariff, error)
	EnsureTariff(ctx context.Context, t *Tariff) (bool, error)
	ListPayments(ctx context.Context, companyID int64) ([]Payment, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const tariffColumns = `id, name, price, features, is_active, created_at`

func (r *repository) ListActiveTariffs(ctx context.Context) ([]Tariff, error) {
	query := `
		SELECT ` + tariffColumns + `
		FROM tariffs
		WHERE is_active = TRUE
		ORDER BY price ASC, id ASC`

	tariffs := []Tariff{}
	if err := r.db.SelectContext(ctx, &tariffs, query); err != nil {
		return nil, fmt.Errorf("list tariffs: %w", err)
	}

	return tariffs, nil
}

func (r *repository) GetTariff(ctx context.Context, id int64) (*Tariff, error) {
	query := `SELECT ` + tariffColumns + ` FROM tariffs WHERE id = $1`

	var t Tariff
	if err := r.db.GetContext(ctx, &t, query, id); err != nil {
		return nil, core.TranslateStoreError("get tariff", err)
	}

	return &t, nil
}

// EnsureTariff inserts t unless a tariff with the same name exists and
// reports whether a row was written.
func (r *repository) EnsureTariff(ctx context.Context, t *Tariff) (bool, error) {
	query := `
		INSERT INTO tariffs (name, price, features)
		SELECT $1, $2, $3
		WHERE NOT EXISTS (SELECT 1 FROM tariffs WHERE name = $1)`

	result, err := r.db.ExecContext(ctx, query, t.Name, t.Price, t.Features)
	if err != nil {
		return false, core.TranslateStoreError("ensure tariff", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ensure tariff: %w", err)
	}

	return rows > 0, nil
}

func (r *repository) ListPayments(
	ctx context.Context,
	companyID int64,
) ([]Payment, error) {
	query := `
		SELECT id, company_id, tariff_id, amount, status, payment_date, expires_at
		FROM payments
		WHERE company_id = $1
		ORDER BY payment_date DESC, id DESC`

	payments := []Payment{}
	if err := r.db.SelectContext(ctx, &payments, query, companyID); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	return payments, nil
}
