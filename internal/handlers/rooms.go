package handlers

import (
	"net/http"
	"strconv"

	"hotel_climate/internal/models"

	"github.com/gin-gonic/gin"
)

// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// roomIDParam parses :id and writes a 400 when it is not a positive integer.
func (h *Handler) roomIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		h.logAndJSONError(c, http.StatusBadRequest, CodeInvalidInput, "room id must be a positive integer",
			"bad_room_id", err, "id", c.Param("id"))
		return 0, false
	}
	return id, true
}

// @Summary      List rooms
// @Tags         rooms
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, rooms"
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/v1/rooms [get]
// @Security     BearerAuth
func (h *Handler) listRooms(c *gin.Context) {
	rooms, err := h.services.ListRooms(c.Request.Context())
	if err != nil {
		h.respondError(c, "rooms_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(rooms), "rooms": rooms})
}

// @Summary      Get room
// @Tags         rooms
// @Produce      json
// @Param        id   path      int  true  "Room id"
// @Success      200  {object}  models.Room
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/rooms/{id} [get]
// @Security     BearerAuth
func (h *Handler) getRoom(c *gin.Context) {
	id, ok := h.roomIDParam(c)
	if !ok {
		return
	}
	room, err := h.services.GetRoom(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "room_get_failed", err, "room_id", id)
		return
	}
	c.JSON(http.StatusOK, room)
}

// @Summary      Room usage report
// @Description  Every closed AC interval of the room across all guests, oldest first.
// @Tags         rooms
// @Produce      json
// @Param        id   path      int  true  "Room id"
// @Success      200  {object}  models.Report
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/rooms/{id}/usage [get]
// @Security     BearerAuth
func (h *Handler) roomUsage(c *gin.Context) {
	id, ok := h.roomIDParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var report models.Report
	err := h.withRetry(ctx, func() (err error) {
		report, err = h.services.UsageReport(ctx, id)
		return err
	})
	if err != nil {
		h.respondError(c, "room_usage_failed", err, "room_id", id)
		return
	}
	c.JSON(http.StatusOK, report)
}
