package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate entry")
	ErrReferenced = errors.New("record is still referenced")
	ErrLocked     = errors.New("record is locked by another transaction")
	ErrStale      = errors.New("record was modified concurrently")
)

// Postgres SQLSTATE codes surfaced by the driver.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgLockNotAvailable    = "55P03"
)

// translate maps driver and gorm errors onto the repository sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return wrap(ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return wrap(ErrReferenced, err)
	}

	if code := sqlState(err); code != "" {
		switch code {
		case pgUniqueViolation:
			return wrap(ErrDuplicate, err)
		case pgForeignKeyViolation:
			return wrap(ErrReferenced, err)
		case pgLockNotAvailable:
			return wrap(ErrLocked, err)
		}
	}
	return err
}

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

type translatedError struct {
	kind  error
	cause error
}

func wrap(kind, cause error) error {
	return &translatedError{kind: kind, cause: cause}
}

func (e *translatedError) Error() string {
	return e.kind.Error() + ": " + e.cause.Error()
}

func (e *translatedError) Unwrap() []error {
	return []error{e.kind, e.cause}
}
