package repository

import (
	"context"
	"fmt"
	"time"

	"hotel_climate/internal/apperr"
	"hotel_climate/internal/models"
)

type UsageSQLite struct {
	db DBTX
}

func NewUsageSQLite(db DBTX) *UsageSQLite { return &UsageSQLite{db: db} }

var _ UsageRepo = (*UsageSQLite)(nil)

const usageColumns = `id, user_id, room_id, start_time, end_time, temperature, fan_speed, mode, cost`

const (
	insertUsageSQL = `INSERT INTO usage_records (user_id, room_id, start_time, end_time, temperature, fan_speed, mode, cost)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	selectUsageByGuestSinceSQL = `SELECT ` + usageColumns + ` FROM usage_records
		WHERE user_id = ? AND start_time >= ? ORDER BY start_time ASC, id ASC`
	selectUsageByRoomSQL = `SELECT ` + usageColumns + ` FROM usage_records
		WHERE room_id = ? ORDER BY start_time ASC, id ASC`
)

// Append inserts a closed interval and returns its id.
func (r *UsageSQLite) Append(ctx context.Context, rec models.UsageRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertUsageSQL,
		rec.UserID,
		rec.RoomID,
		formatTime(rec.StartTime),
		formatTime(rec.EndTime),
		rec.Settings.Temperature,
		string(rec.Settings.FanSpeed),
		string(rec.Settings.Mode),
		rec.Cost,
	)
	if err != nil {
		return 0, fmt.Errorf("insert usage record for room %d: %w", rec.RoomID, classify(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for usage record: %w", err)
	}
	return id, nil
}

// ListByGuestSince returns the guest's records starting at or after since, oldest first.
func (r *UsageSQLite) ListByGuestSince(ctx context.Context, guestID int, since time.Time) ([]models.UsageRecord, error) {
	return r.list(ctx, selectUsageByGuestSinceSQL, guestID, formatTime(since))
}

// ListByRoom returns every record of the room, oldest first.
func (r *UsageSQLite) ListByRoom(ctx context.Context, roomID int) ([]models.UsageRecord, error) {
	return r.list(ctx, selectUsageByRoomSQL, roomID)
}

func (r *UsageSQLite) list(ctx context.Context, q string, args ...any) ([]models.UsageRecord, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select usage records: %w", classify(err))
	}
	defer rows.Close()

	out := make([]models.UsageRecord, 0, 16)
	for rows.Next() {
		var (
			rec        models.UsageRecord
			start, end string
			fan, mode  string
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.RoomID, &start, &end,
			&rec.Settings.Temperature, &fan, &mode, &rec.Cost); err != nil {
			return nil, fmt.Errorf("scan usage record: %w", err)
		}
		if rec.StartTime, err = parseTime(start); err != nil {
			return nil, err
		}
		if rec.EndTime, err = parseTime(end); err != nil {
			return nil, err
		}
		if rec.Settings.FanSpeed, err = models.ParseFanSpeed(fan); err != nil {
			return nil, apperr.ErrDataIntegrity.Wrap(fmt.Errorf("usage record %d: %w", rec.ID, err))
		}
		if rec.Settings.Mode, err = models.ParseMode(mode); err != nil {
			return nil, apperr.ErrDataIntegrity.Wrap(fmt.Errorf("usage record %d: %w", rec.ID, err))
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate usage records: %w", classify(err))
	}
	return out, nil
}
