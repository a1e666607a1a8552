package handlers

import (
	"context"
	"net/http"

	"hotel_climate/internal/models"

	"github.com/gin-gonic/gin"
)

// @Summary      Check in
// @Description  Assigns the free room with the lowest id to the caller.
// @Tags         stay
// @Produce      json
// @Success      200  {object}  map[string]int  "room_id"
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse  "NO_ROOM_AVAILABLE or ALREADY_CHECKED_IN"
// @Failure      503  {object}  errorResponse
// @Router       /api/v1/stay/check-in [post]
// @Security     BearerAuth
func (h *Handler) checkIn(c *gin.Context) {
	guest, ok := mustGuestID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var roomID int
	err := h.withRetry(ctx, func() (err error) {
		roomID, err = h.services.CheckIn(ctx, guest)
		return err
	})
	if err != nil {
		h.respondError(c, "stay_check_in_failed", err, "guest_id", guest)
		return
	}
	if h.log != nil {
		h.log.Infow("stay_checked_in", "guest_id", guest, "room_id", roomID)
	}
	c.JSON(http.StatusOK, gin.H{"room_id": roomID})
}

// @Summary      Check out
// @Description  Turns the AC off if needed, frees the room and returns the itemized bill of the stay.
// @Tags         stay
// @Produce      json
// @Success      200  {object}  models.Bill
// @Failure      401  {object}  errorResponse
// @Failure      409  {object}  errorResponse  "NOT_CHECKED_IN"
// @Failure      503  {object}  errorResponse
// @Router       /api/v1/stay/check-out [post]
// @Security     BearerAuth
func (h *Handler) checkOut(c *gin.Context) {
	h.respondWithBill(c, "stay_check_out_failed", h.services.CheckOut)
}

// @Summary      Current bill
// @Description  Closed AC intervals of the current stay. A running interval is not included.
// @Tags         stay
// @Produce      json
// @Success      200  {object}  models.Bill
// @Failure      401  {object}  errorResponse
// @Failure      409  {object}  errorResponse  "NOT_CHECKED_IN"
// @Router       /api/v1/stay/bill [get]
// @Security     BearerAuth
func (h *Handler) bill(c *gin.Context) {
	h.respondWithBill(c, "stay_bill_failed", h.services.GenerateBill)
}

func (h *Handler) respondWithBill(c *gin.Context, logKey string, op func(context.Context, int) (models.Bill, error)) {
	guest, ok := mustGuestID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var bill models.Bill
	err := h.withRetry(ctx, func() (err error) {
		bill, err = op(ctx, guest)
		return err
	})
	if err != nil {
		h.respondError(c, logKey, err, "guest_id", guest)
		return
	}
	c.JSON(http.StatusOK, bill)
}

// @Summary      Running cost
// @Description  Closed intervals of the stay plus the running interval priced as of now.
// @Tags         stay
// @Produce      json
// @Success      200  {object}  map[string]number  "cost"
// @Failure      401  {object}  errorResponse
// @Failure      409  {object}  errorResponse  "ROOM_NOT_OCCUPIED"
// @Router       /api/v1/stay/cost [get]
// @Security     BearerAuth
func (h *Handler) currentCost(c *gin.Context) {
	guest, ok := mustGuestID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var cost float64
	err := h.withRetry(ctx, func() (err error) {
		cost, err = h.services.CurrentCost(ctx, guest)
		return err
	})
	if err != nil {
		h.respondError(c, "stay_cost_failed", err, "guest_id", guest)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cost": cost})
}
