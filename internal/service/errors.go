package service

import "hotel_climate/internal/apperr"

// Room and stay outcomes.
var (
	ErrRoomNotFound     = apperr.New(apperr.KindNotFound, "ROOM_NOT_FOUND", "room not found")
	ErrGuestNotFound    = apperr.New(apperr.KindNotFound, "GUEST_NOT_FOUND", "guest not found")
	ErrNoRoomAvailable  = apperr.New(apperr.KindInvalidState, "NO_ROOM_AVAILABLE", "no room available")
	ErrAlreadyCheckedIn = apperr.New(apperr.KindInvalidState, "ALREADY_CHECKED_IN", "guest already occupies a room")
	ErrNotCheckedIn     = apperr.New(apperr.KindInvalidState, "NOT_CHECKED_IN", "guest is not checked in")
)

// AC and billing outcomes.
var (
	ErrRoomNotOccupied = apperr.New(apperr.KindInvalidState, "ROOM_NOT_OCCUPIED", "room is not occupied")
	ErrNotRoomOccupant = apperr.New(apperr.KindInvalidState, "NOT_ROOM_OCCUPANT", "room is occupied by another guest")
	ErrACAlreadyOn     = apperr.New(apperr.KindInvalidState, "AC_ALREADY_ON", "ac is already on")
	ErrACAlreadyOff    = apperr.New(apperr.KindInvalidState, "AC_ALREADY_OFF", "ac is already off")
	ErrACOff           = apperr.New(apperr.KindInvalidState, "AC_OFF", "ac is off, turn it on before changing settings")
	ErrInvalidSettings = apperr.New(apperr.KindInvalidInput, "INVALID_SETTINGS", "invalid climate settings")

	ErrInvalidInterval   = apperr.New(apperr.KindDataIntegrity, "INVALID_INTERVAL", "interval ends before it starts")
	ErrMalformedSettings = apperr.New(apperr.KindDataIntegrity, "MALFORMED_SETTINGS", "stored climate settings are malformed")
)

// Auth outcomes.
var (
	ErrInvalidPassword = apperr.New(apperr.KindInvalidInput, "INVALID_CREDENTIALS", "invalid password")
	ErrUserNotFound    = apperr.New(apperr.KindNotFound, "USER_NOT_FOUND", "user not found")
	ErrInvalidToken    = apperr.New(apperr.KindInvalidInput, "INVALID_TOKEN", "invalid token")
	ErrUsernameTaken   = apperr.New(apperr.KindInvalidState, "USERNAME_TAKEN", "username is already taken")
	ErrInvalidSignUp   = apperr.New(apperr.KindInvalidInput, "INVALID_SIGN_UP", "invalid sign-up data")
)

var ErrInvalidTimeRange = apperr.New(apperr.KindInvalidInput, "INVALID_TIME_RANGE", "invalid time range: From must be <= To")
