package service

import (
	"fmt"
	"math"
	"time"

	"hotel_climate/internal/models"
)

// Tariff prices AC usage:
//
//	cost = HourlyRate * hours * (1 + PerDegree*|temperature-BaselineTemp|) * fan * mode
type Tariff struct {
	HourlyRate     float64
	BaselineTemp   int
	PerDegree      float64
	FanMultiplier  map[models.FanSpeed]float64
	ModeMultiplier map[models.Mode]float64
}

func DefaultTariff() Tariff {
	return Tariff{
		HourlyRate:   10,
		BaselineTemp: 26,
		PerDegree:    0.02,
		FanMultiplier: map[models.FanSpeed]float64{
			models.FanLow:    1.0,
			models.FanMedium: 1.2,
			models.FanHigh:   1.5,
		},
		ModeMultiplier: map[models.Mode]float64{
			models.ModeCool: 1.0,
			models.ModeHeat: 1.2,
		},
	}
}

// Cost prices the interval [start, end] under s. Hours are fractional and
// never rounded.
func (t Tariff) Cost(start, end time.Time, s models.ClimateSettings) (float64, error) {
	if end.Before(start) {
		return 0, ErrInvalidInterval.With(fmt.Sprintf("start %s, end %s",
			start.UTC().Format(time.RFC3339Nano), end.UTC().Format(time.RFC3339Nano)))
	}
	fan, ok := t.FanMultiplier[s.FanSpeed]
	if !ok {
		return 0, ErrMalformedSettings.With(fmt.Sprintf("fan speed %q", s.FanSpeed))
	}
	mode, ok := t.ModeMultiplier[s.Mode]
	if !ok {
		return 0, ErrMalformedSettings.With(fmt.Sprintf("mode %q", s.Mode))
	}

	hours := end.Sub(start).Seconds() / 3600
	deviation := math.Abs(float64(s.Temperature - t.BaselineTemp))
	return t.HourlyRate * hours * (1 + t.PerDegree*deviation) * fan * mode, nil
}

var defaultTariff = DefaultTariff()

// Cost prices an interval with the default tariff.
func Cost(start, end time.Time, s models.ClimateSettings) (float64, error) {
	return defaultTariff.Cost(start, end, s)
}
