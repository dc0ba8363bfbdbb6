package repositories

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Datastore error taxonomy. Classified errors wrap both the category and the
// original driver error, so callers can still errors.As into *pq.Error,
// *pgconn.PgError or *sqlite.Error.
var (
	ErrConnection          = errors.New("datastore connection failed")
	ErrConstraint          = errors.New("datastore constraint violation")
	ErrForeignKeyViolation = fmt.Errorf("%w: foreign key", ErrConstraint)
	ErrQuery               = errors.New("malformed datastore statement")
)

const (
	pgClassConnection   = "08"
	pgClassConstraint   = "23"
	pgClassSyntax       = "42"
	pgForeignKeyViolate = "23503"
)

// ClassifyError tags err with ErrConnection, ErrConstraint (or ErrForeignKeyViolation)
// or ErrQuery when the driver error is recognised. Unknown errors are returned as is.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, ErrConnection) || errors.Is(err, ErrConstraint) || errors.Is(err, ErrQuery) {
		return err
	}

	if kind := classifyKind(err); kind != nil {
		return fmt.Errorf("%w: %w", kind, err)
	}
	return err
}

func classifyKind(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return classifyPostgresCode(string(pqErr.Code))
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifyPostgresCode(pgErr.Code)
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return classifySQLiteCode(sqliteErr.Code(), sqliteErr.Error())
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return ErrConnection
	}
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) {
		return ErrConnection
	}
	return nil
}

func classifyPostgresCode(code string) error {
	switch {
	case code == pgForeignKeyViolate:
		return ErrForeignKeyViolation
	case strings.HasPrefix(code, pgClassConstraint):
		return ErrConstraint
	case strings.HasPrefix(code, pgClassConnection):
		return ErrConnection
	case strings.HasPrefix(code, pgClassSyntax):
		return ErrQuery
	}
	return nil
}

func classifySQLiteCode(code int, message string) error {
	switch {
	case code == sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY:
		return ErrForeignKeyViolation
	case code&0xff == sqlite3lib.SQLITE_CONSTRAINT:
		// Extended codes are not always reported; fall back to the message.
		if strings.Contains(strings.ToLower(message), "foreign key constraint failed") {
			return ErrForeignKeyViolation
		}
		return ErrConstraint
	case code&0xff == sqlite3lib.SQLITE_BUSY, code&0xff == sqlite3lib.SQLITE_LOCKED,
		code&0xff == sqlite3lib.SQLITE_CANTOPEN, code&0xff == sqlite3lib.SQLITE_NOTADB:
		return ErrConnection
	case code&0xff == sqlite3lib.SQLITE_ERROR:
		return ErrQuery
	}
	return nil
}
