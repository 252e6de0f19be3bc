// AngelaMos | 2026
// stats_test.go

package stats

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var statsCols = []string{"active_companies", "active_orders", "regions", "active_budget"}

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(sqlx.NewDb(db, "pgx")), mock
}

func TestGetRoundsVolumeToMillions(t *testing.T) {
	tests := []struct {
		budget string
		want   int64
	}{
		{"0", 0},
		{"499999.99", 0},
		{"500000.00", 1},
		{"2600000.00", 3},
		{"12345678.90", 12},
	}

	for _, tt := range tests {
		t.Run(tt.budget, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			mock.ExpectQuery("SELECT COUNT\\(DISTINCT region\\)").
				WillReturnRows(sqlmock.NewRows(statsCols).AddRow(4, 9, 2, tt.budget))

			s, err := repo.Get(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 4, s.TotalCompanies)
			assert.Equal(t, 9, s.TotalOrders)
			assert.Equal(t, 2, s.TotalRegions)
			assert.Equal(t, tt.want, s.TotalVolume)
		})
	}
}

func TestGetIsIdempotent(t *testing.T) {
	repo, mock := newMockRepo(t)
	for range 2 {
		mock.ExpectQuery("FROM companies").
			WillReturnRows(sqlmock.NewRows(statsCols).AddRow(1, 1, 1, "1000000"))
	}

	first, err := repo.Get(context.Background())
	require.NoError(t, err)
	second, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestHandler(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("FROM companies").
		WillReturnRows(sqlmock.NewRows(statsCols).AddRow(3, 5, 2, "7000000"))
	mock.ExpectQuery("FROM companies").
		WillReturnError(errors.New("db down"))

	r := chi.NewRouter()
	NewHandler(repo).RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"success":true,"data":{"totalCompanies":3,"totalOrders":5,"totalRegions":2,"totalVolume":7}}`,
		rec.Body.String(),
	)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
