// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"fmt"

	"github.com/prombirzha/marketplace/internal/core"
)

type Repository interface {
	Upsert(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetRole(ctx context.Context, id string) (string, error)
	UpdateRole(ctx context.Context, id, role string) (*User, error)
	List(ctx context.Context, params ListUsersParams) ([]User, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const userColumns = `id, email, first_name, last_name, profile_image_url,
		       role, created_at, updated_at`

// Upsert inserts the user or refreshes the profile fields the identity
// provider owns. The stored role is never overwritten by a login.
func (r *repository) Upsert(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, email, first_name, last_name, profile_image_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email,
		    first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name,
		    profile_image_url = EXCLUDED.profile_image_url,
		    updated_at = NOW()
		RETURNING ` + userColumns

	err := r.db.GetContext(ctx, user, query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.ProfileImageURL,
	)
	if err != nil {
		return core.TranslateStoreError("upsert user", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, core.TranslateStoreError("get user", err)
	}

	return &user, nil
}

func (r *repository) GetRole(ctx context.Context, id string) (string, error) {
	var role string
	err := r.db.GetContext(ctx, &role, `SELECT role FROM users WHERE id = $1`, id)
	if err != nil {
		return "", core.TranslateStoreError("get user role", err)
	}

	return role, nil
}

func (r *repository) UpdateRole(
	ctx context.Context,
	id, role string,
) (*User, error) {
	query := `
		UPDATE users
		SET role = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	var user User
	if err := r.db.GetContext(ctx, &user, query, id, role); err != nil {
		return nil, core.TranslateStoreError("update user role", err)
	}

	return &user, nil
}

func (r *repository) List(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	var where core.Where

	if params.Search != "" {
		where.Add(
			"(email ILIKE $? OR first_name ILIKE $? OR last_name ILIKE $?)",
			core.ContainsPattern(params.Search),
		)
	}

	if params.Role != "" {
		where.Add("role = $?", params.Role)
	}

	countQuery := "SELECT COUNT(*) FROM users " + where.Clause()
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, where.Args()...); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	next := where.Next()
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d`,
		userColumns, where.Clause(), next, next+1)

	args := append(where.Args(), params.Limit, params.Offset)

	users := []User{}
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	return users, total, nil
}
