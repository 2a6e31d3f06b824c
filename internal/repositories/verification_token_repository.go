package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"authtools/internal/dbx"
	"authtools/internal/models"
)

type VerificationTokenRepository interface {
	Create(ctx context.Context, token *models.VerificationToken) error
	GetByToken(ctx context.Context, token string) (*models.VerificationToken, error)
	GetByUserID(ctx context.Context, userID int64) (*models.VerificationToken, error)
	Delete(ctx context.Context, id int64) error
}

type verificationTokenRepository struct {
	DB dbx.DBTX
}

func NewVerificationTokenRepository(db dbx.DBTX) VerificationTokenRepository {
	return &verificationTokenRepository{DB: db}
}

// Create inserts the token and fills in the generated ID. The table carries
// UNIQUE on both token and user_id, so a second live token for the same user
// surfaces as ErrDuplicate instead of slipping in.
func (r *verificationTokenRepository) Create(ctx context.Context, token *models.VerificationToken) error {
	const q = `
		INSERT INTO verification_tokens (token, user_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, q, token.Token, token.UserID, token.ExpiresAt).Scan(&token.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("verification token create: %w", ErrDuplicate)
		}
		return fmt.Errorf("verification token create: %w", err)
	}
	return nil
}

// GetByToken looks a token up by its opaque value. A miss returns (nil, nil).
func (r *verificationTokenRepository) GetByToken(ctx context.Context, token string) (*models.VerificationToken, error) {
	const q = `
		SELECT id, token, user_id, expires_at
		FROM verification_tokens
		WHERE token = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, q, token), "verification token by value")
}

func (r *verificationTokenRepository) GetByUserID(ctx context.Context, userID int64) (*models.VerificationToken, error) {
	const q = `
		SELECT id, token, user_id, expires_at
		FROM verification_tokens
		WHERE user_id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, q, userID), "verification token by user")
}

func (r *verificationTokenRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM verification_tokens WHERE id=$1`, id); err != nil {
		return fmt.Errorf("verification token delete: %w", err)
	}
	return nil
}

func (r *verificationTokenRepository) scanOne(row *sql.Row, op string) (*models.VerificationToken, error) {
	t := &models.VerificationToken{}
	if err := row.Scan(&t.ID, &t.Token, &t.UserID, &t.ExpiresAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}
