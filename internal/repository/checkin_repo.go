package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hotel_climate/internal/models"
)

type CheckinSQLite struct {
	db DBTX
}

func NewCheckinSQLite(db DBTX) *CheckinSQLite { return &CheckinSQLite{db: db} }

var _ CheckinRepo = (*CheckinSQLite)(nil)

const (
	upsertCheckinSQL = `INSERT INTO checkins (user_id, room_id, in_time) VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET room_id = excluded.room_id, in_time = excluded.in_time`
	selectCheckinSQL = `SELECT user_id, room_id, in_time FROM checkins WHERE user_id = ?`
	deleteCheckinSQL = `DELETE FROM checkins WHERE user_id = ?`
)

// Put records the start of a stay, replacing any earlier record of the guest.
func (r *CheckinSQLite) Put(ctx context.Context, rec models.CheckinRecord) error {
	if _, err := r.db.ExecContext(ctx, upsertCheckinSQL, rec.UserID, rec.RoomID, formatTime(rec.InTime)); err != nil {
		return fmt.Errorf("upsert checkin of guest %d: %w", rec.UserID, classify(err))
	}
	return nil
}

// Get returns the guest's check-in record or (nil, nil).
func (r *CheckinSQLite) Get(ctx context.Context, guestID int) (*models.CheckinRecord, error) {
	var (
		rec models.CheckinRecord
		in  string
	)
	err := r.db.QueryRowContext(ctx, selectCheckinSQL, guestID).Scan(&rec.UserID, &rec.RoomID, &in)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select checkin of guest %d: %w", guestID, classify(err))
	}
	if rec.InTime, err = parseTime(in); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *CheckinSQLite) Delete(ctx context.Context, guestID int) error {
	if _, err := r.db.ExecContext(ctx, deleteCheckinSQL, guestID); err != nil {
		return fmt.Errorf("delete checkin of guest %d: %w", guestID, classify(err))
	}
	return nil
}
