// AngelaMos | 2026
// repository_test.go

package company

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prombirzha/marketplace/internal/core"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(sqlx.NewDb(db, "pgx")), mock
}

var companyCols = []string{
	"id", "user_id", "name", "description", "logo_url", "website",
	"phone", "email", "address", "region", "category", "tags", "tariff_id",
	"rating", "review_count", "is_verified", "is_active",
	"created_at", "updated_at",
}

var joinedCols = append(append([]string{}, companyCols...),
	"tariff.id", "tariff.name", "tariff.price", "tariff.features",
	"tariff.is_active", "tariff.created_at",
)

func companyValues(id int64, name string, now time.Time) []driver.Value {
	return []driver.Value{
		id, "owner-1", name, nil, nil, nil,
		nil, nil, nil, "Moscow", "metal", []byte(`["cnc"]`), nil,
		"4.50", 2, true, true,
		now, now,
	}
}

func TestGetByIDWithoutTariff(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	row := append(companyValues(1, "Steelworks", now), nil, nil, nil, nil, nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN tariffs t ON t.id = c.tariff_id WHERE c.id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(joinedCols).AddRow(row...))

	c, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Steelworks", c.Name)
	assert.True(t, c.Rating.Equal(decimal.RequireFromString("4.5")))
	assert.Equal(t, core.StringList{"cnc"}, c.Tags)
	assert.Nil(t, c.Tariff.Tariff())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDWithTariff(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	row := append(companyValues(1, "Steelworks", now),
		int64(2), "Professional", int64(4990), []byte(`["analytics"]`), true, now)
	mock.ExpectQuery("FROM companies c").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(joinedCols).AddRow(row...))

	c, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	tariff := c.Tariff.Tariff()
	require.NotNil(t, tariff)
	assert.Equal(t, "Professional", tariff.Name)
	assert.True(t, tariff.Has("analytics"))
}

func TestGetByUserIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.user_id = $1")).
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUserID(context.Background(), "nobody")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestCreateDuplicateOwner(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO companies").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &Company{UserID: "owner-1", Name: "Again"})
	require.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestUpdateOnlyTouchesGivenFields(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()
	name := "Renamed"
	tags := []string{"casting"}

	mock.ExpectQuery(regexp.QuoteMeta(
		"SET name = $1, tags = $2, updated_at = NOW()\n\t\tWHERE id = $3",
	)).
		WithArgs(name, `["casting"]`, int64(9)).
		WillReturnRows(sqlmock.NewRows(companyCols).AddRow(companyValues(9, name, now)...))

	c, err := repo.Update(context.Background(), 9, &UpdateCompanyRequest{
		Name: &name,
		Tags: &tags,
	})
	require.NoError(t, err)
	assert.Equal(t, name, c.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMissingCompany(t *testing.T) {
	repo, mock := newMockRepo(t)
	name := "Ghost"

	mock.ExpectQuery("UPDATE companies").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), 404, &UpdateCompanyRequest{Name: &name})
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestSearchComposesFilters(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM companies c WHERE c.is_active = TRUE AND c.category = $1 AND c.region = $2 AND (c.name ILIKE $3 OR c.description ILIKE $3)",
	)).
		WithArgs("metal", "Tula", "%steel%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	row := append(companyValues(1, "Steelworks", now), nil, nil, nil, nil, nil, nil)
	mock.ExpectQuery(`ORDER BY c.rating DESC, c.created_at DESC, c.id DESC\s+LIMIT \$4 OFFSET \$5`).
		WithArgs("metal", "Tula", "%steel%", 1, 5).
		WillReturnRows(sqlmock.NewRows(joinedCols).AddRow(row...))

	companies, total, err := repo.Search(context.Background(), SearchParams{
		Category: "metal",
		Region:   "Tula",
		Search:   "steel",
		Limit:    1,
		Offset:   5,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	assert.Len(t, companies, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchWithoutFiltersOnlyActive(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM companies c WHERE c.is_active = TRUE",
	)).
		WithArgs().
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`LIMIT \$1 OFFSET \$2`).
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows(joinedCols))

	companies, total, err := repo.Search(context.Background(), SearchParams{Limit: 20})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, companies)
	assert.Empty(t, companies)
}

func TestFeaturedOrdering(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"WHERE c.is_active = TRUE AND c.is_verified = TRUE\n\t\tORDER BY c.rating DESC, c.review_count DESC, c.id DESC\n\t\tLIMIT $1",
	)).
		WithArgs(6).
		WillReturnRows(sqlmock.NewRows(joinedCols))

	_, err := repo.Featured(context.Background(), 6)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
