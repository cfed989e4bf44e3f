package gormrepo

import (
	"strings"

	"storefront/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SQLSTATE codes raised by PostgreSQL for constraint and range failures.
const (
	pgUniqueViolation        = "23505"
	pgForeignKeyViolation    = "23503"
	pgNotNullViolation       = "23502"
	pgCheckViolation         = "23514"
	pgNumericValueOutOfRange = "22003"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) || pgErrorCode(err) == pgUniqueViolation {
		return true
	}

	// sqlite reports "UNIQUE constraint failed: users.email".
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}

func isForeignKeyConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) || pgErrorCode(err) == pgForeignKeyViolation {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

func isNotNullConstraintViolation(err error) bool {
	if pgErrorCode(err) == pgNotNullViolation {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "null value") ||
		strings.Contains(errMsg, "not null constraint")
}

func isCheckConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrCheckConstraintViolated) || pgErrorCode(err) == pgCheckViolation {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "check constraint")
}

// isNumericOutOfRange reports a value too large for its numeric column.
func isNumericOutOfRange(err error) bool {
	if pgErrorCode(err) == pgNumericValueOutOfRange {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "numeric field overflow")
}
