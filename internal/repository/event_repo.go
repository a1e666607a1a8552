package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"hotel_climate/internal/models"

	"github.com/google/uuid"
)

type EventSQLite struct {
	db DBTX
}

func NewEventSQLite(db DBTX) *EventSQLite { return &EventSQLite{db: db} }

var _ EventRepo = (*EventSQLite)(nil)

const insertEventSQL = `INSERT INTO room_events (id, room_id, occurred_at, type, message, meta)
		VALUES (?, ?, ?, ?, ?, ?)`

// Append inserts a new event. If EventID or OccurredAt are empty, they're set.
func (r *EventSQLite) Append(ctx context.Context, e models.RoomEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}

	var meta *string
	if e.Metadata != nil {
		b, err := json.Marshal(e.Metadata)
		if err != nil {
			return fmt.Errorf("marshal event metadata: %w", err)
		}
		s := string(b)
		meta = &s
	}

	_, err := r.db.ExecContext(ctx, insertEventSQL,
		e.EventID,
		e.RoomID,
		formatTime(e.OccurredAt),
		strings.ToUpper(strings.TrimSpace(e.Type)),
		e.Description,
		meta,
	)
	if err != nil {
		return fmt.Errorf("insert room event: %w", classify(err))
	}
	return nil
}

// List returns events filtered by [From, To] (inclusive), type and room, ordered ASC.
func (r *EventSQLite) List(ctx context.Context, f EventFilter) ([]models.RoomEvent, error) {
	var (
		conds []string
		args  []any
	)

	if !f.From.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, formatTime(f.From))
	}
	if !f.To.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, formatTime(f.To))
	}
	if typ := strings.ToUpper(strings.TrimSpace(f.Type)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}
	if f.RoomID > 0 {
		conds = append(conds, "room_id = ?")
		args = append(args, f.RoomID)
	}

	q := `SELECT id, room_id, occurred_at, type, message, meta FROM room_events`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC, rowid ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select room events: %w", classify(err))
	}
	defer rows.Close()

	out := make([]models.RoomEvent, 0, 64)
	for rows.Next() {
		var (
			ev      models.RoomEvent
			at      string
			metaStr sql.NullString
		)
		if err := rows.Scan(&ev.EventID, &ev.RoomID, &at, &ev.Type, &ev.Description, &metaStr); err != nil {
			return nil, fmt.Errorf("scan room event: %w", err)
		}
		if ev.OccurredAt, err = parseTime(at); err != nil {
			return nil, err
		}

		if metaStr.Valid && metaStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
				ev.Metadata = v
			} else {
				ev.Metadata = metaStr.String // keep raw if malformed
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate room events: %w", classify(err))
	}
	return out, nil
}
