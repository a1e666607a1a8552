package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type FanSpeed string

const (
	FanLow    FanSpeed = "low"
	FanMedium FanSpeed = "medium"
	FanHigh   FanSpeed = "high"
)

type Mode string

const (
	ModeCool Mode = "cool"
	ModeHeat Mode = "heat"
)

// Temperature bounds accepted from guests.
const (
	MinTemperature = 16
	MaxTemperature = 30
)

// ClimateSettings is the AC configuration of a room. It is a value type and is
// copied into every UsageRecord it was billed under.
type ClimateSettings struct {
	Temperature int      `json:"temperature" validate:"min=16,max=30"`
	FanSpeed    FanSpeed `json:"fan_speed" validate:"oneof=low medium high"`
	Mode        Mode     `json:"mode" validate:"oneof=cool heat"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	return v
}

// Validate checks the settings against the accepted ranges and enums.
func (s ClimateSettings) Validate() error {
	err := validate.Struct(s)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%s must satisfy %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value())
	}
	return err
}

// ParseFanSpeed accepts the canonical lowercase names, case-insensitively.
func ParseFanSpeed(s string) (FanSpeed, error) {
	switch f := FanSpeed(strings.ToLower(strings.TrimSpace(s))); f {
	case FanLow, FanMedium, FanHigh:
		return f, nil
	default:
		return "", fmt.Errorf("unknown fan speed %q", s)
	}
}

// ParseMode accepts "cool" or "heat", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeCool, ModeHeat:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}
