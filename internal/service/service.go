package service

import (
	"context"
	"time"

	"hotel_climate/internal/models"
	"hotel_climate/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, phone, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Rooms is the room lifecycle: check-in, check-out and occupancy queries.
type Rooms interface {
	CheckIn(ctx context.Context, guestID int) (int, error)
	CheckOut(ctx context.Context, guestID int) (models.Bill, error)
	GetRoom(ctx context.Context, roomID int) (models.Room, error)
	ListRooms(ctx context.Context) ([]models.Room, error)
}

// Ledger owns AC transitions, the usage ledger and everything priced from it.
type Ledger interface {
	TurnOnAC(ctx context.Context, roomID int) error
	TurnOffAC(ctx context.Context, roomID int) (models.ClimateSettings, error)
	SetSettings(ctx context.Context, roomID int, s models.ClimateSettings) (models.ClimateSettings, error)
	CurrentCost(ctx context.Context, guestID int) (float64, error)
	GenerateBill(ctx context.Context, guestID int) (models.Bill, error)
	UsageReport(ctx context.Context, roomID int) (models.Report, error)
}

// Monitoring exposes read-only live room status.
type Monitoring interface {
	GetStatus(ctx context.Context, roomID int) (models.RoomStatus, error)
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.RoomEvent, error)
}

type Service struct {
	Rooms
	Ledger
	Monitoring
	EventLog
	Authorization
}

// Config carries the tunables of the service layer.
type Config struct {
	Tariff         Tariff
	SettingsPolicy SettingsPolicy
	SigningKey     string
	TokenTTL       time.Duration
	Now            func() time.Time // defaults to time.Now
}

func NewService(repos *repository.Repository, tx repository.Transactor, cfg Config) *Service {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	ledger := NewLedgerService(tx, cfg.Tariff, cfg.SettingsPolicy, cfg.Now)
	return &Service{
		Rooms:         NewRoomService(tx, ledger, cfg.Now),
		Ledger:        ledger,
		Monitoring:    NewMonitoringService(tx, ledger),
		EventLog:      NewEventLogService(repos.Events),
		Authorization: NewAuthService(repos.Auth, cfg.SigningKey, cfg.TokenTTL),
	}
}

type occupantKey struct{}

// WithOccupant marks ctx as acting for guestID. AC operations under such a
// context only touch the room that guest occupies.
func WithOccupant(ctx context.Context, guestID int) context.Context {
	return context.WithValue(ctx, occupantKey{}, guestID)
}

// OccupantFrom returns the guest set by WithOccupant.
func OccupantFrom(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(occupantKey{}).(int)
	return id, ok
}
