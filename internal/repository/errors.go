package repository

import (
	"errors"
	"strings"

	"staybnb/internal/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// translateError maps driver and gorm errors onto the domain taxonomy:
// missing rows become domain.ErrNotFound and constraint violations become
// *domain.IntegrityError. Everything else passes through untouched.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "23514", "23503", "23502":
			return &domain.IntegrityError{Constraint: pgErr.ConstraintName, Err: err}
		}
		return err
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062, 1451, 1452, 3819:
			return &domain.IntegrityError{Err: err}
		}
		return err
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return &domain.IntegrityError{Err: err}
	}

	// sqlite drivers only expose the violation through the message text
	msg := err.Error()
	for _, marker := range []string{
		"UNIQUE constraint failed",
		"CHECK constraint failed",
		"FOREIGN KEY constraint failed",
		"NOT NULL constraint failed",
	} {
		if i := strings.Index(msg, marker); i >= 0 {
			constraint := strings.TrimSpace(strings.TrimPrefix(msg[i+len(marker):], ":"))
			if j := strings.IndexAny(constraint, " ("); j >= 0 {
				constraint = constraint[:j]
			}
			return &domain.IntegrityError{Constraint: constraint, Err: err}
		}
	}
	return err
}
