// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prombirzha/marketplace/internal/company"
	"github.com/prombirzha/marketplace/internal/core"
	"github.com/prombirzha/marketplace/internal/middleware"
	"github.com/prombirzha/marketplace/internal/user"
)

type UserStore interface {
	Upsert(ctx context.Context, p user.Profile) (*user.User, error)
	GetUser(ctx context.Context, id string) (*user.User, error)
}

type CompanyFinder interface {
	FindByUserID(ctx context.Context, userID string) (*company.CompanyWithTariff, error)
}

type Service struct {
	users     UserStore
	companies CompanyFinder
}

func NewService(users UserStore, companies CompanyFinder) *Service {
	return &Service{users: users, companies: companies}
}

// Session is the signed-in user together with their company, if any.
type Session struct {
	User    *user.User
	Company *company.CompanyWithTariff
}

// Login mirrors the provider's identity into the users table. It runs on
// every sign-in so profile changes at the provider propagate here.
func (s *Service) Login(
	ctx context.Context,
	identity *middleware.Identity,
) (*Session, error) {
	if identity == nil {
		return nil, fmt.Errorf("login: %w", core.ErrUnauthorized)
	}

	u, err := s.users.Upsert(ctx, user.Profile{
		ID:              identity.UserID,
		Email:           identity.Email,
		FirstName:       identity.FirstName,
		LastName:        identity.LastName,
		ProfileImageURL: identity.ProfileImageURL,
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "user logged in", "user_id", u.ID)

	return s.withCompany(ctx, u)
}

func (s *Service) CurrentUser(ctx context.Context, userID string) (*Session, error) {
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withCompany(ctx, u)
}

func (s *Service) withCompany(ctx context.Context, u *user.User) (*Session, error) {
	c, err := s.companies.FindByUserID(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return &Session{User: u, Company: c}, nil
}
