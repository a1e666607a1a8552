package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotel_climate/internal/apperr"
	"hotel_climate/internal/models"
)

type RoomSQLite struct {
	db DBTX
}

func NewRoomSQLite(db DBTX) *RoomSQLite { return &RoomSQLite{db: db} }

var _ RoomRepo = (*RoomSQLite)(nil)

const roomColumns = `id, occupied, ac_on, occupant_id, checkin_time, ac_interval_start, temperature, fan_speed, mode`

const (
	selectRoomSQL           = `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
	selectRoomByOccupantSQL = `SELECT ` + roomColumns + ` FROM rooms WHERE occupant_id = ?`
	selectFirstFreeRoomSQL  = `SELECT ` + roomColumns + ` FROM rooms WHERE occupied = 0 ORDER BY id ASC LIMIT 1`
	selectRoomsSQL          = `SELECT ` + roomColumns + ` FROM rooms ORDER BY id ASC`

	occupyRoomSQL = `UPDATE rooms SET occupied = 1, occupant_id = ?, checkin_time = ?
		WHERE id = ? AND occupied = 0`
	releaseRoomSQL = `UPDATE rooms SET occupied = 0, occupant_id = NULL, checkin_time = NULL
		WHERE id = ? AND occupied = 1 AND occupant_id = ? AND ac_on = 0`
	startACSQL = `UPDATE rooms SET ac_on = 1, ac_interval_start = ?
		WHERE id = ? AND occupied = 1 AND ac_on = 0`
	stopACSQL = `UPDATE rooms SET ac_on = 0, ac_interval_start = NULL
		WHERE id = ? AND ac_on = 1 AND ac_interval_start = ?`
	updateSettingsSQL = `UPDATE rooms SET temperature = ?, fan_speed = ?, mode = ?
		WHERE id = ? AND occupied = 1`
	restartIntervalSQL = `UPDATE rooms SET temperature = ?, fan_speed = ?, mode = ?, ac_interval_start = ?
		WHERE id = ? AND ac_on = 1 AND ac_interval_start = ?`
	seedRoomSQL = `INSERT OR IGNORE INTO rooms (id, occupied, ac_on, temperature, fan_speed, mode)
		VALUES (?, 0, 0, ?, ?, ?)`
)

type rowScanner interface {
	Scan(dest ...any) error
}

// scanRoom decodes one row and checks the per-room invariants, so a corrupted
// row surfaces as apperr.ErrDataIntegrity rather than as a wrong bill.
func scanRoom(row rowScanner) (*models.Room, error) {
	var (
		r         models.Room
		occupant  sql.NullInt64
		checkinAt sql.NullString
		acStart   sql.NullString
		fan, mode string
	)
	if err := row.Scan(&r.ID, &r.Occupied, &r.ACOn, &occupant, &checkinAt, &acStart,
		&r.Settings.Temperature, &fan, &mode); err != nil {
		return nil, err
	}

	var err error
	if r.CheckinTime, err = parseNullTime(checkinAt); err != nil {
		return nil, err
	}
	if r.ACIntervalStart, err = parseNullTime(acStart); err != nil {
		return nil, err
	}
	if occupant.Valid {
		id := int(occupant.Int64)
		r.OccupantID = &id
	}
	if r.Settings.FanSpeed, err = models.ParseFanSpeed(fan); err != nil {
		return nil, apperr.ErrDataIntegrity.Wrap(fmt.Errorf("room %d: %w", r.ID, err))
	}
	if r.Settings.Mode, err = models.ParseMode(mode); err != nil {
		return nil, apperr.ErrDataIntegrity.Wrap(fmt.Errorf("room %d: %w", r.ID, err))
	}
	if err := checkRoom(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

func checkRoom(r *models.Room) error {
	var problem string
	switch {
	case r.ACOn && !r.Occupied:
		problem = "ac on in a free room"
	case r.Occupied != (r.OccupantID != nil):
		problem = "occupied flag disagrees with occupant"
	case r.Occupied != (r.CheckinTime != nil):
		problem = "occupied flag disagrees with check-in time"
	case r.ACOn != (r.ACIntervalStart != nil):
		problem = "ac flag disagrees with interval start"
	default:
		return nil
	}
	return apperr.ErrDataIntegrity.With(fmt.Sprintf("room %d: %s", r.ID, problem))
}

func (r *RoomSQLite) queryOne(ctx context.Context, q string, arg any) (*models.Room, error) {
	room, err := scanRoom(r.db.QueryRowContext(ctx, q, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, classify(err)
	}
	return room, nil
}

// Get returns the room or (nil, nil) if it does not exist.
func (r *RoomSQLite) Get(ctx context.Context, id int) (*models.Room, error) {
	room, err := r.queryOne(ctx, selectRoomSQL, id)
	if err != nil {
		return nil, fmt.Errorf("select room %d: %w", id, err)
	}
	return room, nil
}

// GetByOccupant returns the room held by guestID or (nil, nil).
func (r *RoomSQLite) GetByOccupant(ctx context.Context, guestID int) (*models.Room, error) {
	room, err := r.queryOne(ctx, selectRoomByOccupantSQL, guestID)
	if err != nil {
		return nil, fmt.Errorf("select room of guest %d: %w", guestID, err)
	}
	return room, nil
}

// FirstFree returns the free room with the lowest id or (nil, nil).
func (r *RoomSQLite) FirstFree(ctx context.Context) (*models.Room, error) {
	rows, err := r.db.QueryContext(ctx, selectFirstFreeRoomSQL)
	if err != nil {
		return nil, fmt.Errorf("select free room: %w", classify(err))
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("select free room: %w", classify(err))
		}
		return nil, nil
	}
	room, err := scanRoom(rows)
	if err != nil {
		return nil, fmt.Errorf("scan free room: %w", err)
	}
	return room, nil
}

func (r *RoomSQLite) List(ctx context.Context) ([]models.Room, error) {
	rows, err := r.db.QueryContext(ctx, selectRoomsSQL)
	if err != nil {
		return nil, fmt.Errorf("select rooms: %w", classify(err))
	}
	defer rows.Close()

	out := make([]models.Room, 0, 16)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		out = append(out, *room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rooms: %w", classify(err))
	}
	return out, nil
}

func (r *RoomSQLite) exec(ctx context.Context, op, q string, args ...any) error {
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}
	return expectOneRow(res, op)
}

func (r *RoomSQLite) Occupy(ctx context.Context, roomID, guestID int, at time.Time) error {
	return r.exec(ctx, fmt.Sprintf("occupy room %d", roomID), occupyRoomSQL, guestID, formatTime(at), roomID)
}

func (r *RoomSQLite) Release(ctx context.Context, roomID, guestID int) error {
	return r.exec(ctx, fmt.Sprintf("release room %d", roomID), releaseRoomSQL, roomID, guestID)
}

func (r *RoomSQLite) StartAC(ctx context.Context, roomID int, at time.Time) error {
	return r.exec(ctx, fmt.Sprintf("start ac in room %d", roomID), startACSQL, formatTime(at), roomID)
}

func (r *RoomSQLite) StopAC(ctx context.Context, roomID int, intervalStart time.Time) error {
	return r.exec(ctx, fmt.Sprintf("stop ac in room %d", roomID), stopACSQL, roomID, formatTime(intervalStart))
}

func (r *RoomSQLite) UpdateSettings(ctx context.Context, roomID int, s models.ClimateSettings) error {
	return r.exec(ctx, fmt.Sprintf("update settings of room %d", roomID), updateSettingsSQL,
		s.Temperature, string(s.FanSpeed), string(s.Mode), roomID)
}

// RestartInterval stores new settings and moves the open interval start to
// newStart, provided the interval still starts at prevStart.
func (r *RoomSQLite) RestartInterval(ctx context.Context, roomID int, s models.ClimateSettings, prevStart, newStart time.Time) error {
	return r.exec(ctx, fmt.Sprintf("restart interval of room %d", roomID), restartIntervalSQL,
		s.Temperature, string(s.FanSpeed), string(s.Mode), formatTime(newStart), roomID, formatTime(prevStart))
}

// Seed creates rooms 1..count that do not exist yet, with default settings.
func (r *RoomSQLite) Seed(ctx context.Context, count int, s models.ClimateSettings) error {
	for id := 1; id <= count; id++ {
		if _, err := r.db.ExecContext(ctx, seedRoomSQL, id, s.Temperature, string(s.FanSpeed), string(s.Mode)); err != nil {
			return fmt.Errorf("seed room %d: %w", id, classify(err))
		}
	}
	return nil
}
