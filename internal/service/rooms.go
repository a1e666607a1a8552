package service

import (
	"context"
	"fmt"
	"time"

	"hotel_climate/internal/models"
	"hotel_climate/internal/repository"
)

// RoomService assigns rooms to guests and releases them. Billing of the
// open AC interval on check-out is delegated to the ledger.
type RoomService struct {
	tx     repository.Transactor
	ledger *LedgerService
	now    func() time.Time
}

func NewRoomService(tx repository.Transactor, ledger *LedgerService, now func() time.Time) *RoomService {
	if now == nil {
		now = time.Now
	}
	return &RoomService{tx: tx, ledger: ledger, now: now}
}

// CheckIn gives the guest the free room with the lowest id.
func (s *RoomService) CheckIn(ctx context.Context, guestID int) (int, error) {
	var roomID int
	err := s.tx.WithinTx(ctx, func(r *repository.Repository) error {
		guest, err := r.Auth.GetByID(ctx, guestID)
		if err != nil {
			return err
		}
		if guest == nil {
			return ErrGuestNotFound.With(fmt.Sprintf("guest %d", guestID))
		}

		held, err := r.Rooms.GetByOccupant(ctx, guestID)
		if err != nil {
			return err
		}
		if held != nil {
			return ErrAlreadyCheckedIn.With(fmt.Sprintf("guest %d holds room %d", guestID, held.ID))
		}

		room, err := r.Rooms.FirstFree(ctx)
		if err != nil {
			return err
		}
		if room == nil {
			return ErrNoRoomAvailable
		}

		now := s.now().UTC()
		if err := r.Rooms.Occupy(ctx, room.ID, guestID, now); err != nil {
			return err
		}
		if err := r.Checkins.Put(ctx, models.CheckinRecord{UserID: guestID, RoomID: room.ID, InTime: now}); err != nil {
			return err
		}
		roomID = room.ID

		return r.Events.Append(ctx, models.RoomEvent{
			RoomID:      room.ID,
			OccurredAt:  now,
			Type:        models.EventCheckIn,
			Description: fmt.Sprintf("guest %s checked in", guest.Username),
			Metadata:    map[string]any{"guest_id": guestID},
		})
	})
	if err != nil {
		return 0, err
	}
	return roomID, nil
}

// CheckOut forces the AC off if needed, bills the stay and frees the room,
// all in one transaction.
func (s *RoomService) CheckOut(ctx context.Context, guestID int) (models.Bill, error) {
	var bill models.Bill
	err := s.tx.WithinTx(ctx, func(r *repository.Repository) error {
		room, err := r.Rooms.GetByOccupant(ctx, guestID)
		if err != nil {
			return err
		}
		if room == nil {
			return ErrNotCheckedIn.With(fmt.Sprintf("guest %d", guestID))
		}

		now := s.now().UTC()
		if room.ACOn {
			if _, err := s.ledger.closeInterval(ctx, r, room, now, true); err != nil {
				return err
			}
		}

		if bill, err = s.ledger.stay(ctx, r, room); err != nil {
			return err
		}
		if err := r.Rooms.Release(ctx, room.ID, guestID); err != nil {
			return err
		}
		if err := r.Checkins.Delete(ctx, guestID); err != nil {
			return err
		}

		return r.Events.Append(ctx, models.RoomEvent{
			RoomID:      room.ID,
			OccurredAt:  now,
			Type:        models.EventCheckOut,
			Description: fmt.Sprintf("guest %d checked out, total %.2f", guestID, bill.Total),
			Metadata: map[string]any{
				"guest_id": guestID,
				"cost":     bill.Total,
				"records":  len(bill.Records),
			},
		})
	})
	if err != nil {
		return models.Bill{}, err
	}
	return bill, nil
}

// GetRoom reports occupancy, AC flag and current settings of one room.
func (s *RoomService) GetRoom(ctx context.Context, roomID int) (models.Room, error) {
	var room models.Room
	err := s.tx.WithinTx(ctx, func(r *repository.Repository) error {
		found, err := r.Rooms.Get(ctx, roomID)
		if err != nil {
			return err
		}
		if found == nil {
			return ErrRoomNotFound.With(fmt.Sprintf("room %d", roomID))
		}
		room = *found
		return nil
	})
	return room, err
}

func (s *RoomService) ListRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	err := s.tx.WithinTx(ctx, func(r *repository.Repository) error {
		var err error
		rooms, err = r.Rooms.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rooms, nil
}
