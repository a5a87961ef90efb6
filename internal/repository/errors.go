package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrPetNotFound  = errors.New("pet not found")

	// ErrTokenNotFound means no live record carries the fingerprint.
	ErrTokenNotFound = errors.New("refresh token not found")
	// ErrTokenExpired means the record exists but its expiry has passed. It is not revoked.
	ErrTokenExpired = errors.New("refresh token expired")
	// ErrFingerprintCollision is an integrity violation and is never retried.
	ErrFingerprintCollision = errors.New("refresh token fingerprint collision")

	ErrIdentityAlreadyLinked = errors.New("external identity already linked")
)

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(liteErr.Error(), "UNIQUE")
		}
	}
	return false
}
