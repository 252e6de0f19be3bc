// AngelaMos | 2026
// review_test.go

package review

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prombirzha/marketplace/internal/company"
	"github.com/prombirzha/marketplace/internal/core"
	"github.com/prombirzha/marketplace/internal/events"
	"github.com/prombirzha/marketplace/internal/order"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(sqlx.NewDb(db, "pgx")), mock
}

var reviewCols = []string{
	"id", "company_id", "customer_id", "order_id", "rating", "comment", "created_at",
}

func TestCreateLocksInsertsAndRecomputes(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM companies WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))
	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs(int64(3), "cust-1", nil, 4, nil).
		WillReturnRows(sqlmock.NewRows(reviewCols).AddRow(int64(11), int64(3), "cust-1", nil, 4, nil, now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(ROUND(AVG(rating)::numeric, 2), 0)")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"rating", "review_count"}).AddRow("4.00", 3))
	mock.ExpectCommit()

	r := &Review{CompanyID: 3, CustomerID: "cust-1", Rating: 4}
	agg, err := repo.Create(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, int64(11), r.ID)
	assert.True(t, agg.Rating.Equal(decimal.NewFromInt(4)))
	assert.Equal(t, 3, agg.ReviewCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMissingCompanyRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), &Review{CompanyID: 404, CustomerID: "cust-1", Rating: 5})
	require.ErrorIs(t, err, core.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListForCompanyJoinsCustomer(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	cols := append(append([]string{}, reviewCols...),
		"customer.id", "customer.email", "customer.first_name", "customer.last_name",
		"customer.profile_image_url", "customer.role", "customer.created_at", "customer.updated_at")

	mock.ExpectQuery(regexp.QuoteMeta("WHERE rv.company_id = $1\n\t\tORDER BY rv.created_at DESC, rv.id DESC")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(1), int64(3), "cust-1", nil, 5, "Great", now,
				"cust-1", nil, "Oleg", nil, nil, "client", now, now))

	reviews, err := repo.ListForCompany(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	require.NotNil(t, reviews[0].Customer.FirstName)
	assert.Equal(t, "Oleg", *reviews[0].Customer.FirstName)

	out := ToReviewWithCustomerResponseList(reviews)
	require.NotNil(t, out[0].Customer)
	assert.Equal(t, "cust-1", out[0].Customer.ID)
}

type fakeRepo struct {
	reviews []Review
}

func (f *fakeRepo) Create(_ context.Context, r *Review) (*Aggregate, error) {
	r.ID = int64(len(f.reviews) + 1)
	f.reviews = append(f.reviews, *r)

	sum := 0
	for _, rv := range f.reviews {
		sum += rv.Rating
	}
	avg := decimal.NewFromInt(int64(sum)).
		Div(decimal.NewFromInt(int64(len(f.reviews)))).
		Round(2)
	return &Aggregate{Rating: avg, ReviewCount: len(f.reviews)}, nil
}

func (f *fakeRepo) ListForCompany(context.Context, int64) ([]ReviewWithCustomer, error) {
	return []ReviewWithCustomer{}, nil
}

type fakeCompanies map[int64]*company.CompanyWithTariff

func (f fakeCompanies) Get(_ context.Context, id int64) (*company.CompanyWithTariff, error) {
	c, ok := f[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return c, nil
}

type fakeOrders map[int64]*order.OrderWithCustomer

func (f fakeOrders) Get(_ context.Context, id int64) (*order.OrderWithCustomer, error) {
	o, ok := f[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return o, nil
}

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) {
	p.events = append(p.events, e)
}

func (p *recordingPublisher) Close(context.Context) error { return nil }

func newTestService(pub events.Publisher) (*Service, *fakeRepo) {
	repo := &fakeRepo{}
	companies := fakeCompanies{3: {Company: company.Company{ID: 3, UserID: "owner-1"}}}
	orders := fakeOrders{
		7: {Order: order.Order{ID: 7, CustomerID: "cust-1"}},
		8: {Order: order.Order{ID: 8, CustomerID: "cust-2"}},
	}
	return NewService(repo, companies, orders, pub, nil), repo
}

func TestRatingScenario(t *testing.T) {
	pub := &recordingPublisher{}
	svc, _ := newTestService(pub)
	ctx := context.Background()

	var agg *Aggregate
	for _, rating := range []int{5, 3, 4} {
		var err error
		_, agg, err = svc.Create(ctx, "cust-1", 3, &CreateReviewRequest{Rating: rating})
		require.NoError(t, err)
	}

	assert.Equal(t, "4.00", agg.Rating.StringFixed(2))
	assert.Equal(t, 3, agg.ReviewCount)
	assert.Len(t, pub.events, 3)
	assert.Equal(t, "company:3", pub.events[2].Key)
}

func TestCreateReviewRules(t *testing.T) {
	svc, repo := newTestService(nil)
	ctx := context.Background()

	_, _, err := svc.Create(ctx, "cust-1", 404, &CreateReviewRequest{Rating: 5})
	require.ErrorIs(t, err, core.ErrNotFound)

	_, _, err = svc.Create(ctx, "owner-1", 3, &CreateReviewRequest{Rating: 5})
	require.ErrorIs(t, err, core.ErrForbidden)

	other := int64(8)
	_, _, err = svc.Create(ctx, "cust-1", 3, &CreateReviewRequest{Rating: 5, OrderID: &other})
	require.ErrorIs(t, err, core.ErrForbidden)

	missing := int64(99)
	_, _, err = svc.Create(ctx, "cust-1", 3, &CreateReviewRequest{Rating: 5, OrderID: &missing})
	require.ErrorIs(t, err, core.ErrNotFound)

	assert.Empty(t, repo.reviews)

	own := int64(7)
	r, _, err := svc.Create(ctx, "cust-1", 3, &CreateReviewRequest{Rating: 5, OrderID: &own})
	require.NoError(t, err)
	assert.Equal(t, &own, r.OrderID)
}

func TestCreateReviewValidation(t *testing.T) {
	v := core.NewValidator()

	err := v.Struct(CreateReviewRequest{Rating: 6})
	require.Error(t, err)
	assert.Contains(t, core.FormatValidationError(err), "rating must be at most 5")

	err = v.Struct(CreateReviewRequest{})
	require.Error(t, err)
	assert.Contains(t, core.FormatValidationError(err), "rating is required")

	require.NoError(t, v.Struct(CreateReviewRequest{Rating: 1}))
}
