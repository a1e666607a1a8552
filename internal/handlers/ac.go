package handlers

import (
	"net/http"

	"hotel_climate/internal/models"
	"hotel_climate/internal/service"

	"github.com/gin-gonic/gin"
)

type acRequest struct {
	RoomID int `json:"room_id" binding:"required,gt=0"`
}

// acSettingsRequest carries the full new settings; fan speed and mode are case-insensitive.
type acSettingsRequest struct {
	RoomID      int    `json:"room_id" binding:"required,gt=0"`
	Temperature int    `json:"temperature" binding:"required"`
	FanSpeed    string `json:"fan_speed" binding:"required"`
	Mode        string `json:"mode" binding:"required"`
}

func (r acSettingsRequest) settings() (models.ClimateSettings, error) {
	fan, err := models.ParseFanSpeed(r.FanSpeed)
	if err != nil {
		return models.ClimateSettings{}, service.ErrInvalidSettings.Wrap(err)
	}
	mode, err := models.ParseMode(r.Mode)
	if err != nil {
		return models.ClimateSettings{}, service.ErrInvalidSettings.Wrap(err)
	}
	return models.ClimateSettings{Temperature: r.Temperature, FanSpeed: fan, Mode: mode}, nil
}

// @Summary      Turn the AC on
// @Description  Opens a billing interval with the room's current settings. Only the occupant may do this.
// @Tags         ac
// @Accept       json
// @Produce      json
// @Param        body  body      acRequest  true  "Target room"
// @Success      200   {object}  map[string]interface{}  "status, room_id"
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse  "NOT_ROOM_OCCUPANT"
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse  "ROOM_NOT_OCCUPIED or AC_ALREADY_ON"
// @Failure      503   {object}  errorResponse
// @Router       /api/v1/ac/on [post]
// @Security     BearerAuth
func (h *Handler) acOn(c *gin.Context) {
	guest, ok := mustGuestID(c)
	if !ok {
		return
	}
	var input acRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	ctx := service.WithOccupant(c.Request.Context(), guest)

	err := h.withRetry(ctx, func() error {
		return h.services.TurnOnAC(ctx, input.RoomID)
	})
	if err != nil {
		h.respondError(c, "ac_on_failed", err, "guest_id", guest, "room_id", input.RoomID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ac_on", "room_id": input.RoomID})
}

// @Summary      Turn the AC off
// @Description  Closes the running interval into a usage record.
// @Tags         ac
// @Accept       json
// @Produce      json
// @Param        body  body      acRequest  true  "Target room"
// @Success      200   {object}  map[string]interface{}  "status, room_id, settings"
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse  "AC_ALREADY_OFF"
// @Failure      503   {object}  errorResponse
// @Router       /api/v1/ac/off [post]
// @Security     BearerAuth
func (h *Handler) acOff(c *gin.Context) {
	guest, ok := mustGuestID(c)
	if !ok {
		return
	}
	var input acRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	ctx := service.WithOccupant(c.Request.Context(), guest)

	var settings models.ClimateSettings
	err := h.withRetry(ctx, func() (err error) {
		settings, err = h.services.TurnOffAC(ctx, input.RoomID)
		return err
	})
	if err != nil {
		h.respondError(c, "ac_off_failed", err, "guest_id", guest, "room_id", input.RoomID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ac_off", "room_id": input.RoomID, "settings": settings})
}

// @Summary      Change AC settings
// @Description  Temperature 16..30, fan_speed low|medium|high, mode cool|heat. The AC must be on.
// @Tags         ac
// @Accept       json
// @Produce      json
// @Param        body  body      acSettingsRequest  true  "New settings"
// @Success      200   {object}  map[string]interface{}  "status, room_id, settings"
// @Failure      400   {object}  errorResponse  "INVALID_SETTINGS"
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse  "AC_OFF"
// @Failure      503   {object}  errorResponse
// @Router       /api/v1/ac/settings [post]
// @Security     BearerAuth
func (h *Handler) acSettings(c *gin.Context) {
	guest, ok := mustGuestID(c)
	if !ok {
		return
	}
	var input acSettingsRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	requested, err := input.settings()
	if err != nil {
		h.respondError(c, "ac_settings_invalid", err, "guest_id", guest, "room_id", input.RoomID)
		return
	}
	ctx := service.WithOccupant(c.Request.Context(), guest)

	var applied models.ClimateSettings
	err = h.withRetry(ctx, func() (err error) {
		applied, err = h.services.SetSettings(ctx, input.RoomID, requested)
		return err
	})
	if err != nil {
		h.respondError(c, "ac_settings_failed", err, "guest_id", guest, "room_id", input.RoomID)
		return
	}
	if h.log != nil {
		h.log.Infow("ac_settings_updated", "room_id", input.RoomID, "temperature", applied.Temperature,
			"fan_speed", applied.FanSpeed, "mode", applied.Mode)
	}
	c.JSON(http.StatusOK, gin.H{"status": "settings_updated", "room_id": input.RoomID, "settings": applied})
}
