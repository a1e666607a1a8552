package repository

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"hotel_climate/internal/apperr"
	"hotel_climate/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var roomColumnNames = []string{"id", "occupied", "ac_on", "occupant_id", "checkin_time", "ac_interval_start", "temperature", "fan_speed", "mode"}

const (
	ts1 = "2025-03-01T12:00:00.000000000Z"
	ts2 = "2025-03-01T13:30:00.000000000Z"
)

func TestRoomGet(t *testing.T) {
	tests := []struct {
		name      string
		row       []driver.Value
		queryErr  error
		wantNil   bool
		wantKind  apperr.Kind
		wantErr   bool
		checkRoom func(t *testing.T, r *models.Room)
	}{
		{
			name: "free room",
			row:  []driver.Value{1, 0, 0, nil, nil, nil, 26, "medium", "cool"},
			checkRoom: func(t *testing.T, r *models.Room) {
				if r.Occupied || r.ACOn || r.OccupantID != nil || r.CheckinTime != nil {
					t.Fatalf("expected free room, got %+v", r)
				}
				if r.Settings != (models.ClimateSettings{Temperature: 26, FanSpeed: models.FanMedium, Mode: models.ModeCool}) {
					t.Fatalf("unexpected settings: %+v", r.Settings)
				}
			},
		},
		{
			name: "occupied with ac on",
			row:  []driver.Value{1, 1, 1, 9, ts1, ts2, 22, "high", "heat"},
			checkRoom: func(t *testing.T, r *models.Room) {
				if !r.OccupiedBy(9) || !r.ACOn {
					t.Fatalf("expected room held by 9 with ac on, got %+v", r)
				}
				if want, _ := time.Parse(time.RFC3339, "2025-03-01T13:30:00Z"); !r.ACIntervalStart.Equal(want) {
					t.Fatalf("interval start: want %v, got %v", want, r.ACIntervalStart)
				}
			},
		},
		{
			name:    "missing",
			wantNil: true,
		},
		{
			name:     "ac on in free room",
			row:      []driver.Value{1, 0, 1, nil, nil, ts2, 26, "low", "cool"},
			wantErr:  true,
			wantKind: apperr.KindDataIntegrity,
		},
		{
			name:     "unknown fan speed",
			row:      []driver.Value{1, 0, 0, nil, nil, nil, 26, "turbo", "cool"},
			wantErr:  true,
			wantKind: apperr.KindDataIntegrity,
		},
		{
			name:     "malformed timestamp",
			row:      []driver.Value{1, 1, 0, 9, "noon", nil, 26, "low", "cool"},
			wantErr:  true,
			wantKind: apperr.KindDataIntegrity,
		},
		{
			name:     "query error",
			queryErr: errors.New("boom"),
			wantErr:  true,
			wantKind: apperr.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewRoomSQLite(db)

			exp := mock.ExpectQuery(regexp.QuoteMeta(selectRoomSQL)).WithArgs(1)
			switch {
			case tt.queryErr != nil:
				exp.WillReturnError(tt.queryErr)
			case tt.row == nil:
				exp.WillReturnRows(sqlmock.NewRows(roomColumnNames))
			default:
				exp.WillReturnRows(sqlmock.NewRows(roomColumnNames).AddRow(tt.row...))
			}

			r, err := repo.Get(ctx(t), 1)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got room %+v", r)
				}
				if got := apperr.KindOf(err); got != tt.wantKind {
					t.Fatalf("kind: want %v, got %v (%v)", tt.wantKind, got, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if r != nil {
					t.Fatalf("expected nil room, got %+v", r)
				}
				return
			}
			tt.checkRoom(t, r)
		})
	}
}

func TestRoomFirstFree(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoomSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectFirstFreeRoomSQL)).
		WillReturnRows(sqlmock.NewRows(roomColumnNames).AddRow(3, 0, 0, nil, nil, nil, 26, "medium", "cool"))
	mock.ExpectQuery(regexp.QuoteMeta(selectFirstFreeRoomSQL)).
		WillReturnRows(sqlmock.NewRows(roomColumnNames))

	r, err := repo.FirstFree(ctx(t))
	if err != nil || r == nil || r.ID != 3 {
		t.Fatalf("want room 3, got %+v, %v", r, err)
	}

	r, err = repo.FirstFree(ctx(t))
	if err != nil || r != nil {
		t.Fatalf("want (nil, nil) when full, got %+v, %v", r, err)
	}
}

func TestRoomList(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoomSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectRoomsSQL)).
		WillReturnRows(sqlmock.NewRows(roomColumnNames).
			AddRow(1, 1, 0, 4, ts1, nil, 26, "medium", "cool").
			AddRow(2, 0, 0, nil, nil, nil, 24, "low", "heat"))

	rooms, err := repo.List(ctx(t))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rooms) != 2 || rooms[0].ID != 1 || rooms[1].ID != 2 {
		t.Fatalf("unexpected rooms: %+v", rooms)
	}
}

func TestRoomMutations(t *testing.T) {
	at, _ := time.Parse(tsLayout, ts1)
	next, _ := time.Parse(tsLayout, ts2)
	settings := models.ClimateSettings{Temperature: 20, FanSpeed: models.FanHigh, Mode: models.ModeHeat}

	tests := []struct {
		name   string
		query  string
		args   []driver.Value
		invoke func(r *RoomSQLite) error
	}{
		{
			name:   "occupy",
			query:  occupyRoomSQL,
			args:   []driver.Value{7, ts1, 2},
			invoke: func(r *RoomSQLite) error { return r.Occupy(ctx(t), 2, 7, at) },
		},
		{
			name:   "release",
			query:  releaseRoomSQL,
			args:   []driver.Value{2, 7},
			invoke: func(r *RoomSQLite) error { return r.Release(ctx(t), 2, 7) },
		},
		{
			name:   "start ac",
			query:  startACSQL,
			args:   []driver.Value{ts1, 2},
			invoke: func(r *RoomSQLite) error { return r.StartAC(ctx(t), 2, at) },
		},
		{
			name:   "stop ac",
			query:  stopACSQL,
			args:   []driver.Value{2, ts1},
			invoke: func(r *RoomSQLite) error { return r.StopAC(ctx(t), 2, at) },
		},
		{
			name:   "update settings",
			query:  updateSettingsSQL,
			args:   []driver.Value{20, "high", "heat", 2},
			invoke: func(r *RoomSQLite) error { return r.UpdateSettings(ctx(t), 2, settings) },
		},
		{
			name:   "restart interval",
			query:  restartIntervalSQL,
			args:   []driver.Value{20, "high", "heat", ts2, 2, ts1},
			invoke: func(r *RoomSQLite) error { return r.RestartInterval(ctx(t), 2, settings, at, next) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewRoomSQLite(db)

			mock.ExpectExec(regexp.QuoteMeta(tt.query)).WithArgs(tt.args...).WillReturnResult(sqlmock.NewResult(0, 1))
			if err := tt.invoke(repo); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			// The same statement matching no row means the state moved underneath us.
			mock.ExpectExec(regexp.QuoteMeta(tt.query)).WithArgs(tt.args...).WillReturnResult(sqlmock.NewResult(0, 0))
			if err := tt.invoke(repo); !errors.Is(err, apperr.ErrConflict) {
				t.Fatalf("want ErrConflict, got %v", err)
			}
		})
	}
}

func TestRoomSeed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoomSQLite(db)

	for id := 1; id <= 3; id++ {
		mock.ExpectExec(regexp.QuoteMeta(seedRoomSQL)).
			WithArgs(id, 26, "medium", "cool").
			WillReturnResult(sqlmock.NewResult(int64(id), 1))
	}

	err := repo.Seed(ctx(t), 3, models.ClimateSettings{Temperature: 26, FanSpeed: models.FanMedium, Mode: models.ModeCool})
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
}
