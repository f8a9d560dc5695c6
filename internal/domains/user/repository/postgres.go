package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"finpress-backend/internal/domains/user"
)

const userColumns = `id, email, password, first_name, last_name, role, is_active, created_at, updated_at, last_login`

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns the pgx-backed user repository.
func NewPostgresRepository(pool *pgxpool.Pool) user.Repository {
	return &postgresRepository{pool: pool}
}

func scanUser(row pgx.Row) (*user.User, error) {
	var s user.State
	err := row.Scan(
		&s.ID, &s.Email, &s.Password, &s.FirstName, &s.LastName,
		&s.Role, &s.IsActive, &s.CreatedAt, &s.UpdatedAt, &s.LastLogin,
	)
	if err != nil {
		return nil, err
	}
	return user.Reconstitute(s)
}

// Save upserts the user's current state keyed by id.
func (r *postgresRepository) Save(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, email, password, first_name, last_name, role, is_active, created_at, updated_at, last_login)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email, password = EXCLUDED.password,
		    first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name,
		    role = EXCLUDED.role, is_active = EXCLUDED.is_active,
		    updated_at = EXCLUDED.updated_at, last_login = EXCLUDED.last_login
	`

	_, err := r.pool.Exec(ctx, query,
		u.ID, u.Email, u.Password, u.FirstName, u.LastName,
		u.Role.String(), u.IsActive, u.CreatedAt, u.UpdatedAt, u.LastLogin,
	)
	if err != nil {
		if strings.Contains(err.Error(), "23505") {
			return user.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	u, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	return u, nil
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE LOWER(email) = LOWER($1)`, userColumns)

	u, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err == pgx.ErrNoRows {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return u, nil
}

func (r *postgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check user email: %w", err)
	}
	return exists, nil
}
