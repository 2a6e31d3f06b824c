package repositories

import (
	"errors"

	"github.com/lib/pq"

	"authtools/internal/dbx"
)

// ErrDuplicate is returned when an insert hits a unique constraint
// (duplicate email, duplicate token value, second live token for a user).
// Callers match it with errors.Is.
var ErrDuplicate = errors.New("duplicate record")

// Registry vends repositories bound to a DBTX, so one repository set works
// both inside and outside a transaction.
type Registry interface {
	Users(db dbx.DBTX) UserRepository
	VerificationTokens(db dbx.DBTX) VerificationTokenRepository
}

type postgresRegistry struct{}

func NewPostgresRegistry() Registry { return &postgresRegistry{} }

func (postgresRegistry) Users(db dbx.DBTX) UserRepository {
	return NewUserRepository(db)
}

func (postgresRegistry) VerificationTokens(db dbx.DBTX) VerificationTokenRepository {
	return NewVerificationTokenRepository(db)
}

// unique_violation
const pqUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
