package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Abhaykauahal21/LoanFlow/internal/domain/model"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/port"
)

// UserRepo implements port.UserRepository.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepo creates a new repository backed by PostgreSQL.
func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `
	id, name, email, password_hash, role, version, created_at, updated_at`

// Save persists an account (upsert by ID with optimistic locking).
// A unique index on email surfaces duplicates as port.ErrDuplicateEmail.
func (r *UserRepo) Save(ctx context.Context, u model.User) error {
	query := `
		INSERT INTO users (
			id, name, email, password_hash, role, version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO UPDATE SET
			name          = EXCLUDED.name,
			password_hash = EXCLUDED.password_hash,
			version       = users.version + 1,
			updated_at    = EXCLUDED.updated_at
		WHERE users.version = $6
	`
	tag, err := r.pool.Exec(ctx, query,
		u.ID(), u.Name(), u.Email(), u.PasswordHash(), u.Role(),
		u.Version(), u.CreatedAt(), u.UpdatedAt(),
	)
	if err != nil {
		return mapError(fmt.Errorf("save user: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return port.ErrVersionMismatch
	}
	return nil
}

// FindByID retrieves a single account.
func (r *UserRepo) FindByID(ctx context.Context, id string) (model.User, error) {
	query := `SELECT` + userColumns + `
		FROM users
		WHERE id = $1
	`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

// FindByEmail retrieves an account by its unique email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT` + userColumns + `
		FROM users
		WHERE email = lower($1)
	`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func scanUser(s scannable) (model.User, error) {
	var (
		id, name, email      string
		passwordHash, role   string
		version              int
		createdAt, updatedAt time.Time
	)

	err := s.Scan(&id, &name, &email, &passwordHash, &role, &version, &createdAt, &updatedAt)
	if err != nil {
		return model.User{}, mapError(err)
	}

	return model.ReconstructUser(id, name, email, passwordHash, role, version, createdAt, updatedAt), nil
}
