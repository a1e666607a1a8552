package repository

import (
	"context"
	"database/sql"
	"time"

	"hotel_climate/internal/models"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so every repository can run
// either standalone or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Authorization interface {
	Create(ctx context.Context, u models.User) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
}

// RoomRepo reads and mutates room rows. Every mutation is conditional on the
// state the caller observed; a mismatch yields apperr.ErrConflict.
type RoomRepo interface {
	Get(ctx context.Context, id int) (*models.Room, error)
	GetByOccupant(ctx context.Context, guestID int) (*models.Room, error)
	FirstFree(ctx context.Context) (*models.Room, error)
	List(ctx context.Context) ([]models.Room, error)
	Occupy(ctx context.Context, roomID, guestID int, at time.Time) error
	Release(ctx context.Context, roomID, guestID int) error
	StartAC(ctx context.Context, roomID int, at time.Time) error
	StopAC(ctx context.Context, roomID int, intervalStart time.Time) error
	UpdateSettings(ctx context.Context, roomID int, s models.ClimateSettings) error
	RestartInterval(ctx context.Context, roomID int, s models.ClimateSettings, prevStart, newStart time.Time) error
	Seed(ctx context.Context, count int, s models.ClimateSettings) error
}

type UsageRepo interface {
	Append(ctx context.Context, rec models.UsageRecord) (int64, error)
	ListByGuestSince(ctx context.Context, guestID int, since time.Time) ([]models.UsageRecord, error)
	ListByRoom(ctx context.Context, roomID int) ([]models.UsageRecord, error)
}

type CheckinRepo interface {
	Put(ctx context.Context, rec models.CheckinRecord) error
	Get(ctx context.Context, guestID int) (*models.CheckinRecord, error)
	Delete(ctx context.Context, guestID int) error
}

type EventRepo interface {
	Append(ctx context.Context, e models.RoomEvent) error
	List(ctx context.Context, f EventFilter) ([]models.RoomEvent, error)
}

// EventFilter narrows an event listing. Zero values disable the condition.
type EventFilter struct {
	From   time.Time
	To     time.Time
	Type   string
	RoomID int
}

type Repository struct {
	Rooms    RoomRepo
	Usage    UsageRepo
	Checkins CheckinRepo
	Events   EventRepo
	Auth     Authorization
}

func NewRepository(db DBTX) *Repository {
	return &Repository{
		Rooms:    NewRoomSQLite(db),
		Usage:    NewUsageSQLite(db),
		Checkins: NewCheckinSQLite(db),
		Events:   NewEventSQLite(db),
		Auth:     NewUserRepository(db),
	}
}
