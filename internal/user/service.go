// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/prombirzha/marketplace/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Profile carries the provider-owned fields refreshed on every login.
type Profile struct {
	ID              string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
}

func (s *Service) Upsert(ctx context.Context, p Profile) (*User, error) {
	if p.ID == "" {
		return nil, fmt.Errorf("upsert user: %w", core.ErrUnauthorized)
	}

	user := &User{
		ID:              p.ID,
		Email:           optional(strings.ToLower(strings.TrimSpace(p.Email))),
		FirstName:       optional(p.FirstName),
		LastName:        optional(p.LastName),
		ProfileImageURL: optional(p.ProfileImageURL),
	}

	if err := s.repo.Upsert(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// Role satisfies middleware.RoleLookup.
func (s *Service) Role(ctx context.Context, id string) (string, error) {
	return s.repo.GetRole(ctx, id)
}

func (s *Service) UpdateUserRole(
	ctx context.Context,
	id, role string,
) (*User, error) {
	if !ValidRole(role) {
		return nil, fmt.Errorf(
			"update role: invalid role %q: %w",
			role,
			core.ErrInvalidInput,
		)
	}

	return s.repo.UpdateRole(ctx, id, role)
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
