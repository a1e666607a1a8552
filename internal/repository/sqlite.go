package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel_climate/internal/apperr"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrDuplicate is returned when an insert violates a UNIQUE constraint.
var ErrDuplicate = errors.New("duplicate key")

// tsLayout is fixed width and always UTC, so stored timestamps sort
// lexicographically in chronological order.
const tsLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string { return t.UTC().Format(tsLayout) }

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(tsLayout, s)
	if err != nil {
		return time.Time{}, apperr.ErrDataIntegrity.Wrap(fmt.Errorf("malformed timestamp %q: %w", s, err))
	}
	return t, nil
}

func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// classify maps driver failures onto the shared error taxonomy.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return err
	}
	code := se.Code()
	if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY ||
		(code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "UNIQUE")) {
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	}
	switch code & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return apperr.ErrConflict.Wrap(err)
	case sqlite3.SQLITE_CONSTRAINT:
		return apperr.ErrDataIntegrity.Wrap(err)
	}
	return err
}

// expectOneRow turns a conditional UPDATE that matched nothing into a conflict.
func expectOneRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n != 1 {
		return apperr.ErrConflict.With(op)
	}
	return nil
}
