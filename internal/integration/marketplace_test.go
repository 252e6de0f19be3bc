// AngelaMos | 2026
// marketplace_test.go

package integration

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/suite"

	"github.com/prombirzha/marketplace/internal/bid"
	"github.com/prombirzha/marketplace/internal/company"
	"github.com/prombirzha/marketplace/internal/config"
	"github.com/prombirzha/marketplace/internal/core"
	"github.com/prombirzha/marketplace/internal/order"
	"github.com/prombirzha/marketplace/internal/review"
	"github.com/prombirzha/marketplace/internal/user"
	"github.com/prombirzha/marketplace/migrations"
)

const databaseURLEnv = "MARKETPLACE_TEST_DATABASE_URL"

// StoreSuite runs the repositories against a real PostgreSQL so the
// counter and rating updates are checked under actual row locking.
type StoreSuite struct {
	suite.Suite
	db  *core.Database
	ctx context.Context

	users     user.Repository
	companies company.Repository
	orders    order.Repository
	bids      bid.Repository
	reviews   review.Repository
}

func TestStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests")
	}
	if os.Getenv(databaseURLEnv) == "" {
		t.Skipf("%s not set", databaseURLEnv)
	}
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupSuite() {
	s.ctx = context.Background()

	cfg := config.DatabaseConfig{
		URL:             os.Getenv(databaseURLEnv),
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Minute,
		ConnMaxIdleTime: time.Minute,
	}

	err := backoff.Retry(func() error {
		db, err := core.NewDatabase(s.ctx, cfg)
		if err != nil {
			return err
		}
		s.db = db
		return nil
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 8))
	s.Require().NoError(err, "database never became reachable")

	s.Require().NoError(s.db.Migrate(s.ctx, migrations.FS, migrations.Dir, "up"))

	s.users = user.NewRepository(s.db.DB)
	s.companies = company.NewRepository(s.db.DB)
	s.orders = order.NewRepository(s.db.DB)
	s.bids = bid.NewRepository(s.db.DB)
	s.reviews = review.NewRepository(s.db.DB)
}

func (s *StoreSuite) TearDownSuite() {
	if s.db != nil {
		s.NoError(s.db.Close())
	}
}

func (s *StoreSuite) SetupTest() {
	_, err := s.db.DB.ExecContext(s.ctx, `
		TRUNCATE payments, reviews, order_responses, orders, companies, tariffs, users
		RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)
}

func (s *StoreSuite) newUser(id string) {
	s.Require().NoError(s.users.Upsert(s.ctx, &user.User{ID: id}))
}

func (s *StoreSuite) newCompany(ownerID, name string) *company.Company {
	s.newUser(ownerID)
	c := &company.Company{UserID: ownerID, Name: name}
	s.Require().NoError(s.companies.Create(s.ctx, c))
	return c
}

func (s *StoreSuite) newOrder(customerID string) *order.Order {
	s.newUser(customerID)
	o := &order.Order{CustomerID: customerID, Title: "Laser cutting, 200 parts"}
	s.Require().NoError(s.orders.Create(s.ctx, o))
	return o
}

func (s *StoreSuite) TestConcurrentResponsesKeepCountExact() {
	const n = 12

	o := s.newOrder("buyer")

	suppliers := make([]*company.Company, n)
	for i := range suppliers {
		suppliers[i] = s.newCompany(fmt.Sprintf("supplier-%d", i), fmt.Sprintf("Supplier %d", i))
	}

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for _, c := range suppliers {
		wg.Add(1)
		go func(companyID int64) {
			defer wg.Done()
			errs <- s.bids.Create(s.ctx, &bid.Bid{OrderID: o.ID, CompanyID: companyID})
		}(c.ID)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		s.Require().NoError(err)
	}

	stored, err := s.orders.GetByID(s.ctx, o.ID)
	s.Require().NoError(err)
	s.Equal(n, stored.ResponseCount)

	listed, err := s.bids.ListForOrder(s.ctx, o.ID)
	s.Require().NoError(err)
	s.Len(listed, n)
}

func (s *StoreSuite) TestResponseToMissingOrderLeavesNothing() {
	c := s.newCompany("supplier", "Supplier")

	err := s.bids.Create(s.ctx, &bid.Bid{OrderID: 999, CompanyID: c.ID})
	s.ErrorIs(err, core.ErrNotFound)

	var count int
	s.Require().NoError(s.db.DB.GetContext(s.ctx, &count, `SELECT COUNT(*) FROM order_responses`))
	s.Zero(count)
}

func (s *StoreSuite) TestRatingFollowsReviews() {
	c := s.newCompany("owner", "Foundry")

	var last *review.Aggregate
	for i, rating := range []int{5, 3, 4} {
		customer := fmt.Sprintf("customer-%d", i)
		s.newUser(customer)

		agg, err := s.reviews.Create(s.ctx, &review.Review{
			CompanyID:  c.ID,
			CustomerID: customer,
			Rating:     rating,
		})
		s.Require().NoError(err)
		last = agg
	}

	s.Equal("4.00", last.Rating.StringFixed(2))
	s.Equal(3, last.ReviewCount)

	stored, err := s.companies.GetByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal("4.00", stored.Rating.StringFixed(2))
	s.Equal(3, stored.ReviewCount)
}

func (s *StoreSuite) TestConcurrentReviewsAggregateAll() {
	const n = 8

	c := s.newCompany("owner", "Foundry")
	for i := range n {
		s.newUser(fmt.Sprintf("customer-%d", i))
	}

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.reviews.Create(s.ctx, &review.Review{
				CompanyID:  c.ID,
				CustomerID: fmt.Sprintf("customer-%d", i),
				Rating:     i%5 + 1,
			})
			s.NoError(err)
		}(i)
	}
	wg.Wait()

	stored, err := s.companies.GetByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(n, stored.ReviewCount)

	// 1+2+3+4+5+1+2+3 = 21 over 8 reviews
	s.Equal("2.63", stored.Rating.StringFixed(2))
}

func (s *StoreSuite) TestOrderPagesStableOnTiedSortKeys() {
	const n = 7

	for range n {
		s.newOrder("buyer")
	}
	_, err := s.db.DB.ExecContext(s.ctx,
		`UPDATE orders SET created_at = '2026-01-01T00:00:00Z', is_urgent = FALSE`)
	s.Require().NoError(err)

	var seen []int64
	for offset := 0; offset < n; offset += 2 {
		page, total, err := s.orders.Search(s.ctx, order.SearchParams{Limit: 2, Offset: offset})
		s.Require().NoError(err)
		s.Equal(n, total)
		for _, o := range page {
			seen = append(seen, o.ID)
		}
	}

	s.Require().Len(seen, n)
	for i := 1; i < len(seen); i++ {
		s.Greater(seen[i-1], seen[i], "pages must not overlap or skip")
	}
}
