package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"authtools/internal/dbx"
	"authtools/internal/models"
	"authtools/internal/repositories"
)

// verificationTokenTTL is the fixed validity window of a confirmation link,
// measured from issuance.
const verificationTokenTTL = 15 * time.Minute

// RegistrationService drives the registration workflow: create an account in
// the unverified state, confirm it with a single-use token, and reissue the
// token when the original is lost or expired.
type RegistrationService interface {
	Register(ctx context.Context, email, password string) error
	Confirm(ctx context.Context, token string) error
	Resend(ctx context.Context, email string) error
}

type registrationService struct {
	db     *sql.DB
	repos  repositories.Registry
	auth   AuthService
	emails EmailService

	// now is swappable so expiry checks are deterministic under test.
	now func() time.Time
}

func NewRegistrationService(db *sql.DB, repos repositories.Registry, auth AuthService, emails EmailService) RegistrationService {
	return &registrationService{
		db:     db,
		repos:  repos,
		auth:   auth,
		emails: emails,
		now:    time.Now,
	}
}

// Register creates an unverified user for a not-yet-taken email, issues a
// verification token, and emails the confirmation link. The user and token
// are committed before the email goes out: a send failure is reported as an
// internal error but does NOT roll the account back.
func (s *registrationService) Register(ctx context.Context, email, password string) error {
	var (
		user  *models.User
		token string
	)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		users := s.repos.Users(tx)

		existing, err := users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return conflictError("email already in use")
		}

		hash, err := s.auth.HashPassword(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		u := &models.User{Email: email, PasswordHash: hash, Enabled: false}
		if err := users.Create(ctx, u); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				// lost the race to a concurrent registration for the same email
				return conflictError("email already in use")
			}
			return err
		}
		user = u

		token, err = s.issueToken(ctx, tx, u.ID)
		return err
	})
	if err != nil {
		return s.wrap("register", err)
	}

	log.Printf("[register] user created id=%d email=%s", user.ID, user.Email)
	return s.sendToken("register", user.Email, token)
}

// Confirm consumes a verification token: the owning user flips to enabled and
// the token is deleted, both in one transaction. An expired token is left in
// place; a later resend replaces it.
func (s *registrationService) Confirm(ctx context.Context, token string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		tokens := s.repos.VerificationTokens(tx)

		vt, err := tokens.GetByToken(ctx, token)
		if err != nil {
			return err
		}
		if vt == nil {
			return notFoundError("invalid verification token")
		}
		if !s.now().Before(vt.ExpiresAt) {
			return invalidError("verification token has expired")
		}

		users := s.repos.Users(tx)
		user, err := users.GetByID(ctx, vt.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("verification token %d references missing user %d", vt.ID, vt.UserID)
		}
		// the token should have been consumed the first time, but stay safe
		if user.Enabled {
			return invalidError("account is already verified")
		}

		user.Enabled = true
		if err := users.Update(ctx, user); err != nil {
			return err
		}
		return tokens.Delete(ctx, vt.ID)
	})
	if err != nil {
		return s.wrap("confirm", err)
	}

	log.Printf("[register][confirm] account verified")
	return nil
}

// Resend replaces whatever live token the unverified user has with a fresh
// one and emails a new confirmation link. A missing old token is fine.
func (s *registrationService) Resend(ctx context.Context, email string) error {
	var token string

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		users := s.repos.Users(tx)

		user, err := users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if user == nil {
			return notFoundError("user not found with this email")
		}
		if user.Enabled {
			return invalidError("account is already verified")
		}

		tokens := s.repos.VerificationTokens(tx)
		old, err := tokens.GetByUserID(ctx, user.ID)
		if err != nil {
			return err
		}
		if old != nil {
			if err := tokens.Delete(ctx, old.ID); err != nil {
				return err
			}
		}

		token, err = s.issueToken(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		return s.wrap("resend", err)
	}

	return s.sendToken("resend", email, token)
}

// issueToken persists a fresh random token for the user, valid for
// verificationTokenTTL from now. The value is a random UUID, which is
// unguessable for this purpose.
func (s *registrationService) issueToken(ctx context.Context, tx dbx.DBTX, userID int64) (string, error) {
	vt := &models.VerificationToken{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: s.now().Add(verificationTokenTTL),
	}
	if err := s.repos.VerificationTokens(tx).Create(ctx, vt); err != nil {
		return "", err
	}
	return vt.Token, nil
}

func (s *registrationService) sendToken(op, email, token string) error {
	if err := s.emails.SendVerificationEmail(email, token); err != nil {
		// the user/token are already committed; only the delivery failed
		log.Printf("[register][%s] failed to send verification email to %s: %v", op, email, err)
		return internalError(err)
	}
	log.Printf("[register][%s] verification email sent to %s", op, email)
	return nil
}

// wrap passes service errors through untouched and folds everything else into
// an internal error, logging the cause.
func (s *registrationService) wrap(op string, err error) error {
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	log.Printf("[register][%s] error: %v", op, err)
	return internalError(err)
}
