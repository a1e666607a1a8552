package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hotel_climate/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid   = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid     = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"
	errRoomIDInvalid = "invalid 'room_id'; must be a positive integer"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      List room events
// @Description  Filter the audit log by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'), type and room. A date-only 'to' covers the whole day.
// @Tags         logs
// @Produce      json
// @Param        from     query   string  false  "Start of range"  example(2026-08-01)
// @Param        to       query   string  false  "End of range, date-only means end of day"  example(2026-08-31)
// @Param        type     query   string  false  "Event type"  Enums(CHECK_IN,CHECK_OUT,AC_ON,AC_OFF,SETTINGS_CHANGE)
// @Param        room_id  query   int     false  "Room id"
// @Success      200   {object}  map[string]interface{}  "count, events"
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/v1/logs [get]
// @Security     BearerAuth
func (h *Handler) getLogs(c *gin.Context) {
	var (
		filter service.LogFilter
		err    error
	)
	filter.Type = c.Query("type")

	if qs := c.Query("from"); qs != "" {
		if filter.From, err = parseQueryTime(qs); err != nil {
			h.logAndJSONError(c, http.StatusBadRequest, CodeInvalidInput, errFromInvalid, "logs_bad_from", err)
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		if filter.To, err = parseQueryTime(qs); err != nil {
			h.logAndJSONError(c, http.StatusBadRequest, CodeInvalidInput, errToInvalid, "logs_bad_to", err)
			return
		}
		if isDateOnly(qs) {
			filter.To = filter.To.Add(24*time.Hour - time.Nanosecond)
		}
	}
	if qs := c.Query("room_id"); qs != "" {
		if filter.RoomID, err = strconv.Atoi(qs); err != nil || filter.RoomID <= 0 {
			h.logAndJSONError(c, http.StatusBadRequest, CodeInvalidInput, errRoomIDInvalid, "logs_bad_room_id", err, "room_id", qs)
			return
		}
	}

	events, err := h.services.EventLog.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, "logs_list_failed", err, "from", filter.From, "to", filter.To, "type", filter.Type, "room_id", filter.RoomID)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}

// parseQueryTime accepts RFC3339, date-time and date-only forms, normalized to UTC.
func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time format %q, expected RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'", s)
}
