package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"hotel_climate/internal/models"
	"hotel_climate/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestACOn_PassesOccupantAndRoom(t *testing.T) {
	ledger := &mockLedger{}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{parseID: 8}, Ledger: ledger})

	w := postJSON(r, "/api/v1/ac/on", `{"room_id":3}`, authHeader("tok"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"status":"ac_on","room_id":3}`, w.Body.String())
	assert.Equal(t, 3, ledger.lastRoomID)
	assert.Equal(t, 8, ledger.lastOccupant)
}

func TestACOn_Errors(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		err      error
		wantCode int
	}{
		{"missing room", `{}`, nil, http.StatusBadRequest},
		{"negative room", `{"room_id":-1}`, nil, http.StatusBadRequest},
		{"unknown room", `{"room_id":40}`, service.ErrRoomNotFound, http.StatusNotFound},
		{"vacant room", `{"room_id":3}`, service.ErrRoomNotOccupied, http.StatusConflict},
		{"someone else's room", `{"room_id":3}`, service.ErrNotRoomOccupant, http.StatusForbidden},
		{"already on", `{"room_id":3}`, service.ErrACAlreadyOn, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ledger := &mockLedger{err: tc.err}
			r := newTestRouter(&service.Service{Authorization: &mockAuth{parseID: 8}, Ledger: ledger})

			w := postJSON(r, "/api/v1/ac/on", tc.body, authHeader("tok"))
			assert.Equal(t, tc.wantCode, w.Code, w.Body.String())

			var out errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
			assert.NotEmpty(t, out.Code)
		})
	}
}

func TestACOff_ReturnsSettings(t *testing.T) {
	settings := models.ClimateSettings{Temperature: 24, FanSpeed: models.FanLow, Mode: models.ModeHeat}
	ledger := &mockLedger{settings: settings}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{parseID: 8}, Ledger: ledger})

	w := postJSON(r, "/api/v1/ac/off", `{"room_id":3}`, authHeader("tok"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t,
		`{"status":"ac_off","room_id":3,"settings":{"temperature":24,"fan_speed":"low","mode":"heat"}}`,
		w.Body.String())
}

func TestACSettings(t *testing.T) {
	t.Run("normalizes enums", func(t *testing.T) {
		ledger := &mockLedger{}
		r := newTestRouter(&service.Service{Authorization: &mockAuth{parseID: 8}, Ledger: ledger})

		w := postJSON(r, "/api/v1/ac/settings",
			`{"room_id":3,"temperature":22,"fan_speed":"HIGH","mode":" Cool "}`, authHeader("tok"))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, models.ClimateSettings{Temperature: 22, FanSpeed: models.FanHigh, Mode: models.ModeCool}, ledger.lastSettings)
		assert.Equal(t, 8, ledger.lastOccupant)
		assert.Contains(t, w.Body.String(), `"status":"settings_updated"`)
	})

	t.Run("unknown fan speed", func(t *testing.T) {
		ledger := &mockLedger{}
		r := newTestRouter(&service.Service{Authorization: &mockAuth{parseID: 8}, Ledger: ledger})

		w := postJSON(r, "/api/v1/ac/settings",
			`{"room_id":3,"temperature":22,"fan_speed":"turbo","mode":"cool"}`, authHeader("tok"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_SETTINGS")
		assert.Zero(t, ledger.calls)
	})

	t.Run("out of range temperature is rejected by the service", func(t *testing.T) {
		ledger := &mockLedger{err: service.ErrInvalidSettings}
		r := newTestRouter(&service.Service{Authorization: &mockAuth{parseID: 8}, Ledger: ledger})

		w := postJSON(r, "/api/v1/ac/settings",
			`{"room_id":3,"temperature":40,"fan_speed":"low","mode":"cool"}`, authHeader("tok"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 1, ledger.calls)
	})

	t.Run("ac off", func(t *testing.T) {
		ledger := &mockLedger{err: service.ErrACOff}
		r := newTestRouter(&service.Service{Authorization: &mockAuth{parseID: 8}, Ledger: ledger})

		w := postJSON(r, "/api/v1/ac/settings",
			`{"room_id":3,"temperature":20,"fan_speed":"low","mode":"cool"}`, authHeader("tok"))
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "AC_OFF")
	})
}
