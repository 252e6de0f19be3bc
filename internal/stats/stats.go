// AngelaMos | 2026
// stats.go

// Package stats computes the platform-wide counters shown on the landing
// page. Every call hits the store; nothing is cached.
package stats

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/prombirzha/marketplace/internal/core"
)

var million = decimal.NewFromInt(1_000_000)

type Stats struct {
	TotalCompanies int   `json:"totalCompanies"`
	TotalOrders    int   `json:"totalOrders"`
	TotalRegions   int   `json:"totalRegions"`
	TotalVolume    int64 `json:"totalVolume"`
}

type row struct {
	ActiveCompanies int             `db:"active_companies"`
	ActiveOrders    int             `db:"active_orders"`
	Regions         int             `db:"regions"`
	ActiveBudget    decimal.Decimal `db:"active_budget"`
}

type Repository interface {
	Get(ctx context.Context) (*Stats, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Get reads all four figures in one round trip. TotalVolume is the summed
// budget of active orders in millions, rounded to the nearest million.
func (r *repository) Get(ctx context.Context) (s *Stats, err error) {
	ctx, span := core.StartSpan(ctx, "stats.Get")
	defer func() { core.EndSpan(span, err) }()

	query := `
		SELECT
		    (SELECT COUNT(*) FROM companies WHERE is_active) AS active_companies,
		    (SELECT COUNT(*) FROM orders WHERE status = 'active') AS active_orders,
		    (SELECT COUNT(DISTINCT region) FROM companies
		      WHERE is_active AND region IS NOT NULL) AS regions,
		    (SELECT COALESCE(SUM(budget), 0) FROM orders
		      WHERE status = 'active') AS active_budget`

	var rw row
	if err = r.db.GetContext(ctx, &rw, query); err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}

	return &Stats{
		TotalCompanies: rw.ActiveCompanies,
		TotalOrders:    rw.ActiveOrders,
		TotalRegions:   rw.Regions,
		TotalVolume:    rw.ActiveBudget.Div(million).Round(0).IntPart(),
	}, nil
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/stats", h.Get)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.repo.Get(r.Context())
	if err != nil {
		core.HandleServiceError(w, err, "stats")
		return
	}

	core.OK(w, s)
}
