package service

import (
	"context"
	"fmt"
	"time"

	"hotel_climate/internal/apperr"
	"hotel_climate/internal/models"
	"hotel_climate/internal/repository"
)

// SettingsPolicy decides what a settings change does to the open AC interval.
type SettingsPolicy string

const (
	// PolicyRestart closes the open interval with the old settings and
	// starts a new one, so a change only affects cost from now on.
	PolicyRestart SettingsPolicy = "restart"
	// PolicyRetroactive keeps the open interval; the new settings price all of it.
	PolicyRetroactive SettingsPolicy = "retroactive"
)

func ParseSettingsPolicy(s string) (SettingsPolicy, error) {
	switch p := SettingsPolicy(s); p {
	case PolicyRestart, PolicyRetroactive:
		return p, nil
	case "":
		return PolicyRestart, nil
	default:
		return "", fmt.Errorf("unknown settings change policy %q (want restart or retroactive)", s)
	}
}

// LedgerService owns AC transitions and the usage ledger. Every method runs
// as one transaction.
type LedgerService struct {
	tx     repository.Transactor
	tariff Tariff
	policy SettingsPolicy
	now    func() time.Time
}

func NewLedgerService(tx repository.Transactor, tariff Tariff, policy SettingsPolicy, now func() time.Time) *LedgerService {
	if now == nil {
		now = time.Now
	}
	if policy == "" {
		policy = PolicyRestart
	}
	return &LedgerService{tx: tx, tariff: tariff, policy: policy, now: now}
}

func (l *LedgerService) clock() time.Time { return l.now().UTC() }

// acRoom loads a room an AC operation may act on: it exists, is occupied and,
// when ctx carries an occupant, is held by that occupant.
func acRoom(ctx context.Context, r *repository.Repository, roomID int) (*models.Room, error) {
	room, err := r.Rooms.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound.With(fmt.Sprintf("room %d", roomID))
	}
	if !room.Occupied {
		return nil, ErrRoomNotOccupied.With(fmt.Sprintf("room %d", roomID))
	}
	if guestID, ok := OccupantFrom(ctx); ok && !room.OccupiedBy(guestID) {
		return nil, ErrNotRoomOccupant.With(fmt.Sprintf("room %d", roomID))
	}
	return room, nil
}

func (l *LedgerService) TurnOnAC(ctx context.Context, roomID int) error {
	return l.tx.WithinTx(ctx, func(r *repository.Repository) error {
		room, err := acRoom(ctx, r, roomID)
		if err != nil {
			return err
		}
		if room.ACOn {
			return ErrACAlreadyOn.With(fmt.Sprintf("room %d", roomID))
		}

		now := l.clock()
		if err := r.Rooms.StartAC(ctx, roomID, now); err != nil {
			return err
		}
		return r.Events.Append(ctx, models.RoomEvent{
			RoomID:      roomID,
			OccurredAt:  now,
			Type:        models.EventACOn,
			Description: fmt.Sprintf("AC turned on at %dC, fan %s, mode %s", room.Settings.Temperature, room.Settings.FanSpeed, room.Settings.Mode),
			Metadata:    room.Settings,
		})
	})
}

// TurnOffAC closes the open interval and returns the settings it was billed with.
func (l *LedgerService) TurnOffAC(ctx context.Context, roomID int) (models.ClimateSettings, error) {
	var settings models.ClimateSettings
	err := l.tx.WithinTx(ctx, func(r *repository.Repository) error {
		room, err := acRoom(ctx, r, roomID)
		if err != nil {
			return err
		}
		if !room.ACOn {
			return ErrACAlreadyOff.With(fmt.Sprintf("room %d", roomID))
		}
		rec, err := l.closeInterval(ctx, r, room, l.clock(), false)
		if err != nil {
			return err
		}
		settings = rec.Settings
		return nil
	})
	if err != nil {
		return models.ClimateSettings{}, err
	}
	return settings, nil
}

// closeInterval prices the room's open interval up to end, appends it to the
// ledger and switches the AC off. room is updated in place.
func (l *LedgerService) closeInterval(ctx context.Context, r *repository.Repository, room *models.Room, end time.Time, forced bool) (models.UsageRecord, error) {
	rec, err := l.recordOpenInterval(ctx, r, room, end)
	if err != nil {
		return models.UsageRecord{}, err
	}
	if err := r.Rooms.StopAC(ctx, room.ID, rec.StartTime); err != nil {
		return models.UsageRecord{}, err
	}
	room.ACOn = false
	room.ACIntervalStart = nil

	desc := fmt.Sprintf("AC turned off, interval cost %.2f", rec.Cost)
	if forced {
		desc = fmt.Sprintf("AC forced off at check-out, interval cost %.2f", rec.Cost)
	}
	err = r.Events.Append(ctx, models.RoomEvent{
		RoomID:      room.ID,
		OccurredAt:  end,
		Type:        models.EventACOff,
		Description: desc,
		Metadata: map[string]any{
			"usage_record_id": rec.ID,
			"cost":            rec.Cost,
			"forced":          forced,
		},
	})
	return rec, err
}

// recordOpenInterval writes the usage record for [ac_interval_start, end]
// under the room's current settings.
func (l *LedgerService) recordOpenInterval(ctx context.Context, r *repository.Repository, room *models.Room, end time.Time) (models.UsageRecord, error) {
	if !room.ACOn || room.ACIntervalStart == nil || room.OccupantID == nil {
		return models.UsageRecord{}, apperr.ErrDataIntegrity.With(fmt.Sprintf("room %d has no open interval", room.ID))
	}
	start := *room.ACIntervalStart
	cost, err := l.tariff.Cost(start, end, room.Settings)
	if err != nil {
		return models.UsageRecord{}, err
	}
	rec := models.UsageRecord{
		UserID:    *room.OccupantID,
		RoomID:    room.ID,
		StartTime: start,
		EndTime:   end,
		Settings:  room.Settings,
		Cost:      cost,
	}
	if rec.ID, err = r.Usage.Append(ctx, rec); err != nil {
		return models.UsageRecord{}, err
	}
	return rec, nil
}

// SetSettings changes the climate settings of a room whose AC is running.
func (l *LedgerService) SetSettings(ctx context.Context, roomID int, s models.ClimateSettings) (models.ClimateSettings, error) {
	if err := s.Validate(); err != nil {
		return models.ClimateSettings{}, ErrInvalidSettings.Wrap(err)
	}

	err := l.tx.WithinTx(ctx, func(r *repository.Repository) error {
		room, err := acRoom(ctx, r, roomID)
		if err != nil {
			return err
		}
		if !room.ACOn {
			return ErrACOff.With(fmt.Sprintf("room %d", roomID))
		}

		now := l.clock()
		prev := room.Settings
		meta := map[string]any{"from": prev, "to": s, "policy": string(l.policy)}

		switch l.policy {
		case PolicyRetroactive:
			if err := r.Rooms.UpdateSettings(ctx, roomID, s); err != nil {
				return err
			}
		default:
			rec, err := l.recordOpenInterval(ctx, r, room, now)
			if err != nil {
				return err
			}
			if err := r.Rooms.RestartInterval(ctx, roomID, s, rec.StartTime, now); err != nil {
				return err
			}
			meta["usage_record_id"] = rec.ID
			meta["cost"] = rec.Cost
		}

		return r.Events.Append(ctx, models.RoomEvent{
			RoomID:      roomID,
			OccurredAt:  now,
			Type:        models.EventSettingsChange,
			Description: fmt.Sprintf("settings changed to %dC, fan %s, mode %s", s.Temperature, s.FanSpeed, s.Mode),
			Metadata:    meta,
		})
	})
	if err != nil {
		return models.ClimateSettings{}, err
	}
	return s, nil
}

// stay returns the guest's current stay: the check-in boundary and every
// closed record starting at or after it.
func (l *LedgerService) stay(ctx context.Context, r *repository.Repository, room *models.Room) (models.Bill, error) {
	guestID := *room.OccupantID
	checkin, err := r.Checkins.Get(ctx, guestID)
	if err != nil {
		return models.Bill{}, err
	}
	if checkin == nil || checkin.RoomID != room.ID {
		return models.Bill{}, apperr.ErrDataIntegrity.With(fmt.Sprintf("guest %d holds room %d without a matching check-in record", guestID, room.ID))
	}

	records, err := r.Usage.ListByGuestSince(ctx, guestID, checkin.InTime)
	if err != nil {
		return models.Bill{}, err
	}
	return models.Bill{
		GuestID:     guestID,
		RoomID:      room.ID,
		CheckinTime: checkin.InTime,
		Total:       models.SumCost(records),
		Records:     records,
	}, nil
}

// openCost projects the cost of the open interval as if it closed at now.
func (l *LedgerService) openCost(room *models.Room, now time.Time) (float64, error) {
	if !room.ACOn || room.ACIntervalStart == nil {
		return 0, nil
	}
	return l.tariff.Cost(*room.ACIntervalStart, now, room.Settings)
}

// CurrentCost is the guest's running total: closed records of the stay plus
// the open interval priced at now. Nothing is written.
func (l *LedgerService) CurrentCost(ctx context.Context, guestID int) (float64, error) {
	var total float64
	err := l.tx.WithinTx(ctx, func(r *repository.Repository) error {
		room, err := r.Rooms.GetByOccupant(ctx, guestID)
		if err != nil {
			return err
		}
		if room == nil {
			return ErrRoomNotOccupied.With(fmt.Sprintf("guest %d has no room", guestID))
		}
		bill, err := l.stay(ctx, r, room)
		if err != nil {
			return err
		}
		open, err := l.openCost(room, l.clock())
		if err != nil {
			return err
		}
		total = bill.Total + open
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// GenerateBill lists the closed records of the guest's current stay. An open
// interval is not closed and not included.
func (l *LedgerService) GenerateBill(ctx context.Context, guestID int) (models.Bill, error) {
	var bill models.Bill
	err := l.tx.WithinTx(ctx, func(r *repository.Repository) error {
		room, err := r.Rooms.GetByOccupant(ctx, guestID)
		if err != nil {
			return err
		}
		if room == nil {
			return ErrNotCheckedIn.With(fmt.Sprintf("guest %d", guestID))
		}
		bill, err = l.stay(ctx, r, room)
		return err
	})
	if err != nil {
		return models.Bill{}, err
	}
	return bill, nil
}

// UsageReport lists every record of the room across all guests.
func (l *LedgerService) UsageReport(ctx context.Context, roomID int) (models.Report, error) {
	var report models.Report
	err := l.tx.WithinTx(ctx, func(r *repository.Repository) error {
		room, err := r.Rooms.Get(ctx, roomID)
		if err != nil {
			return err
		}
		if room == nil {
			return ErrRoomNotFound.With(fmt.Sprintf("room %d", roomID))
		}
		records, err := r.Usage.ListByRoom(ctx, roomID)
		if err != nil {
			return err
		}
		report = models.Report{RoomID: roomID, Total: models.SumCost(records), Records: records}
		return nil
	})
	if err != nil {
		return models.Report{}, err
	}
	return report, nil
}
