// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prombirzha/marketplace/internal/company"
	"github.com/prombirzha/marketplace/internal/core"
	"github.com/prombirzha/marketplace/internal/middleware"
	"github.com/prombirzha/marketplace/internal/user"
)

type fakeUsers struct {
	users map[string]*user.User
}

func (f *fakeUsers) Upsert(_ context.Context, p user.Profile) (*user.User, error) {
	u, ok := f.users[p.ID]
	if !ok {
		u = &user.User{ID: p.ID, Role: user.RoleClient}
		f.users[p.ID] = u
	}
	email := p.Email
	u.Email = &email
	return u, nil
}

func (f *fakeUsers) GetUser(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return u, nil
}

type fakeCompanies map[string]*company.CompanyWithTariff

func (f fakeCompanies) FindByUserID(_ context.Context, userID string) (*company.CompanyWithTariff, error) {
	return f[userID], nil
}

func TestLoginUpsertsAndAttachesCompany(t *testing.T) {
	users := &fakeUsers{users: map[string]*user.User{}}
	owned := &company.CompanyWithTariff{Company: company.Company{ID: 9, UserID: "owner", Name: "Stal"}}
	svc := NewService(users, fakeCompanies{"owner": owned})

	session, err := svc.Login(context.Background(), &middleware.Identity{
		UserID: "owner",
		Email:  "o@example.test",
	})
	require.NoError(t, err)
	assert.Equal(t, "owner", session.User.ID)
	assert.Same(t, owned, session.Company)

	session, err = svc.Login(context.Background(), &middleware.Identity{UserID: "buyer"})
	require.NoError(t, err)
	assert.Nil(t, session.Company)
	assert.Len(t, users.users, 2)
}

func TestLoginWithoutIdentity(t *testing.T) {
	svc := NewService(&fakeUsers{users: map[string]*user.User{}}, fakeCompanies{})

	_, err := svc.Login(context.Background(), nil)
	require.ErrorIs(t, err, core.ErrUnauthorized)
}

func TestCurrentUserUnknown(t *testing.T) {
	svc := NewService(&fakeUsers{users: map[string]*user.User{}}, fakeCompanies{})

	_, err := svc.CurrentUser(context.Background(), "ghost")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Test-User")
		if id == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		ctx := middleware.WithIdentity(r.Context(), &middleware.Identity{UserID: id})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func TestSessionRoutes(t *testing.T) {
	users := &fakeUsers{users: map[string]*user.User{}}
	svc := NewService(users, fakeCompanies{
		"owner": {Company: company.Company{ID: 3, UserID: "owner", Name: "Zavod"}},
	})

	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r, fakeAuth)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/user", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.Header.Set("X-Test-User", "owner")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/auth/user", nil)
	req.Header.Set("X-Test-User", "owner")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			ID      string `json:"id"`
			Role    string `json:"role"`
			Company *struct {
				ID   int64  `json:"id"`
				Name string `json:"name"`
			} `json:"company"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "owner", body.Data.ID)
	require.NotNil(t, body.Data.Company)
	assert.Equal(t, int64(3), body.Data.Company.ID)
}
