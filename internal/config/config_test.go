package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"hotel_climate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o600))
	return dir
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("HOTEL_AUTH_SIGNING_KEY", "k")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10, cfg.Rooms.Count)
	assert.Equal(t, "restart", cfg.Billing.SettingsChange)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 3, cfg.Retry.Attempts)
	assert.InDelta(t, 10.0, cfg.Tariff.HourlyRate, 1e-12)

	s, err := cfg.Rooms.DefaultSettings.Settings()
	require.NoError(t, err)
	assert.Equal(t, models.ClimateSettings{Temperature: 26, FanSpeed: models.FanMedium, Mode: models.ModeCool}, s)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := writeConfig(t, `
port: "9090"
log:
  format: json
rooms:
  count: 4
  default_settings:
    temperature: 22
    fan_speed: HIGH
    mode: heat
billing:
  settings_change: retroactive
auth:
  signing_key: from-file
  token_ttl: 30m
`)
	t.Setenv("HOTEL_ROOMS_COUNT", "7")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 7, cfg.Rooms.Count, "env wins over file")
	assert.Equal(t, "retroactive", cfg.Billing.SettingsChange)
	assert.Equal(t, "from-file", cfg.Auth.SigningKey)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)

	s, err := cfg.Rooms.DefaultSettings.Settings()
	require.NoError(t, err)
	assert.Equal(t, models.FanHigh, s.FanSpeed)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing signing key", `rooms: {count: 2}`},
		{"unknown policy", "auth: {signing_key: k}\nbilling: {settings_change: sometimes}"},
		{"no rooms", "auth: {signing_key: k}\nrooms: {count: 0}"},
		{"bad default fan", "auth: {signing_key: k}\nrooms: {default_settings: {fan_speed: turbo}}"},
		{"temperature out of range", "auth: {signing_key: k}\nrooms: {default_settings: {temperature: 5}}"},
		{"bad log format", "auth: {signing_key: k}\nlog: {format: xml}"},
		{"malformed yaml", "auth: ["},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
