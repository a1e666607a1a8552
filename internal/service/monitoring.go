package service

import (
	"context"
	"fmt"

	"hotel_climate/internal/models"
	"hotel_climate/internal/repository"
)

type MonitoringService struct {
	tx     repository.Transactor
	ledger *LedgerService
}

func NewMonitoringService(tx repository.Transactor, ledger *LedgerService) *MonitoringService {
	return &MonitoringService{tx: tx, ledger: ledger}
}

// GetStatus returns a live snapshot of the room with the open interval and
// the occupant's stay priced at the current time. It never writes.
func (s *MonitoringService) GetStatus(ctx context.Context, roomID int) (models.RoomStatus, error) {
	var status models.RoomStatus
	err := s.tx.WithinTx(ctx, func(r *repository.Repository) error {
		room, err := r.Rooms.Get(ctx, roomID)
		if err != nil {
			return err
		}
		if room == nil {
			return ErrRoomNotFound.With(fmt.Sprintf("room %d", roomID))
		}

		now := s.ledger.clock()
		status = models.RoomStatus{Room: *room, AsOf: now}
		if !room.Occupied {
			return nil
		}

		if status.OpenIntervalCost, err = s.ledger.openCost(room, now); err != nil {
			return err
		}
		bill, err := s.ledger.stay(ctx, r, room)
		if err != nil {
			return err
		}
		status.StayCost = bill.Total + status.OpenIntervalCost
		return nil
	})
	if err != nil {
		return models.RoomStatus{}, err
	}
	return status, nil
}
