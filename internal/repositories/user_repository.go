package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"authtools/internal/dbx"
	"authtools/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

type userRepository struct {
	DB dbx.DBTX
}

func NewUserRepository(db dbx.DBTX) UserRepository {
	return &userRepository{DB: db}
}

// Create inserts the user and fills in the generated ID. A duplicate email
// comes back as ErrDuplicate; the unique index is what makes concurrent
// registrations for one email safe.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	const q = `
		INSERT INTO app_users (email, password_hash, enabled)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, q, user.Email, user.PasswordHash, user.Enabled).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user create: %w", ErrDuplicate)
		}
		return fmt.Errorf("user create: %w", err)
	}
	return nil
}

// GetByEmail does an exact-match lookup. A miss returns (nil, nil).
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `
		SELECT id, email, password_hash, enabled
		FROM app_users
		WHERE email = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, q, email), "user by email")
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	const q = `
		SELECT id, email, password_hash, enabled
		FROM app_users
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, q, id), "user by id")
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	const q = `
		UPDATE app_users
		SET email=$1, password_hash=$2, enabled=$3
		WHERE id=$4
	`
	if _, err := r.DB.ExecContext(ctx, q, user.Email, user.PasswordHash, user.Enabled, user.ID); err != nil {
		return fmt.Errorf("user update: %w", err)
	}
	return nil
}

func (r *userRepository) scanOne(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Enabled); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
