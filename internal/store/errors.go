package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"airline-ops-backend/internal/domain"
)

// isTransient reports timeouts, dropped connections and lock contention.
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "08"): // connection exception
			return true
		case pgErr.Code == "40001", pgErr.Code == "40P01", pgErr.Code == "57P01":
			return true
		}
		return false
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrBusy || liteErr.Code == sqlite3.ErrLocked
	}
	return false
}

func isDomain(err error) bool {
	return domain.IsNotFound(err) || domain.IsValidation(err)
}

// writeErr classifies a failed mutation. Domain errors pass through unchanged.
func writeErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case isDomain(err):
		return err
	case isTransient(err):
		return domain.TransientError{Op: op, Err: err}
	default:
		return domain.WriteError{Op: op, Err: err}
	}
}

// readErr classifies a failed query.
func readErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case isDomain(err):
		return err
	case isTransient(err):
		return domain.TransientError{Op: op, Err: err}
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// mustExist returns NotFound when no row of m matches the condition.
func mustExist(tx *gorm.DB, m any, resource, id, query string, args ...any) error {
	var n int64
	if err := tx.Model(m).Where(query, args...).Count(&n).Error; err != nil {
		return fmt.Errorf("check %s %s: %w", resource, id, err)
	}
	if n == 0 {
		return domain.NotFoundError{Resource: resource, ID: id}
	}
	return nil
}
